package main

import (
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/diamondburned/kotone/internal/config"
	"github.com/diamondburned/kotone/internal/muse/playlist"
	"github.com/diamondburned/kotone/internal/session"
)

func SessionCmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:         "session",
		Short:       "Show the session restored by the next play",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *boa.NoParams, cmd *cobra.Command, args []string) {
			runSession(config.Load().SessionFile, os.Stdout)
		},
	}.ToCobra()
}

func runSession(path string, out io.Writer) {
	s := session.NewStore(path).Load()

	track := ""
	if s.Index >= 0 {
		store := playlist.NewStore()
		if err := store.Open(s.Dir); err == nil {
			if t, ok := store.Get(s.Index); ok {
				track = t.DisplayName
			}
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)

	t.AppendRows([]table.Row{
		{"File", path},
		{"Directory", s.Dir},
		{"Index", s.Index},
		{"Track", track},
	})

	t.Render()
}
