package main

import (
	"io"
	"log"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/diamondburned/kotone/internal/config"
	"github.com/diamondburned/kotone/internal/lyrics"
	"github.com/diamondburned/kotone/internal/muse/playlist"
)

type ListParams struct {
	Dir   string `pos:"true" optional:"true" help:"Directory to list. Defaults to KOTONE_MUSIC_DIR."`
	Query string `short:"q" optional:"true" help:"Only list tracks whose names match the query, best first"`
}

func ListCmd() *cobra.Command {
	return boa.CmdT[ListParams]{
		Use:         "list",
		Short:       "List the tracks of a directory",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *ListParams, cmd *cobra.Command, args []string) {
			if params.Dir == "" {
				params.Dir = config.Load().MusicDir
			}

			if err := runList(params, os.Stdout); err != nil {
				log.Fatalln("Failed to list directory:", err)
			}
		},
	}.ToCobra()
}

func runList(params *ListParams, out io.Writer) error {
	store := playlist.NewStore()
	if err := store.Open(params.Dir); err != nil {
		return err
	}

	tracks := store.Tracks()
	if params.Query != "" {
		tracks = store.Search(params.Query)
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"#", "Name", "Lyrics"})

	for _, track := range tracks {
		t.AppendRow(table.Row{track.Index + 1, track.DisplayName, hasSidecar(track.Path)})
	}

	t.AppendFooter(table.Row{"", len(tracks), ""})
	t.Render()

	return nil
}

func hasSidecar(audioPath string) string {
	if _, err := os.Stat(lyrics.SidecarPath(audioPath)); err != nil {
		return ""
	}
	return "yes"
}
