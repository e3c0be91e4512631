package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/diamondburned/kotone/internal/durafmt"
	"github.com/diamondburned/kotone/internal/lyrics"
)

type LyricsParams struct {
	Audio string `pos:"true" help:"Audio file whose .lrc sidecar is read"`
	At    string `optional:"true" help:"Only print the line shown at this position (mm:ss)"`
}

func LyricsCmd() *cobra.Command {
	return boa.CmdT[LyricsParams]{
		Use:         "lyrics",
		Short:       "Print the synchronized lyrics of a track",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *LyricsParams, cmd *cobra.Command, args []string) {
			if err := runLyrics(params, os.Stdout); err != nil {
				log.Fatalln("Failed to print lyrics:", err)
			}
		},
	}.ToCobra()
}

func runLyrics(params *LyricsParams, out io.Writer) error {
	timeline, err := lyrics.Load(params.Audio)
	if err != nil {
		return err
	}

	if params.At != "" {
		pos, err := durafmt.ParseClock(params.At)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, timeline.Text(pos))
		return nil
	}

	if timeline.Len() == 0 {
		fmt.Fprintln(out, lyrics.NoLyricsText)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Time", "Line"})

	for _, line := range timeline.Lines() {
		t.AppendRow(table.Row{durafmt.Clock(line.Timestamp), line.Text})
	}

	t.Render()
	return nil
}
