package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/diamondburned/kotone/internal/muse/playlist"
)

type ExportParams struct {
	Dir    string `pos:"true" help:"Directory to export"`
	Output string `pos:"true" help:"Playlist file to write (.m3u or .audpl)"`
}

func ExportCmd() *cobra.Command {
	return boa.CmdT[ExportParams]{
		Use:         "export",
		Short:       "Export a directory as a playlist file",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *ExportParams, cmd *cobra.Command, args []string) {
			if err := runExport(params, os.Stdout); err != nil {
				log.Fatalln("Failed to export:", err)
			}
		},
	}.ToCobra()
}

func runExport(params *ExportParams, out io.Writer) error {
	pl, err := playlist.Scan(params.Dir)
	if err != nil {
		return err
	}

	if err := playlist.WriteFile(pl, params.Output); err != nil {
		return err
	}

	// Read it back, in case the format lost tracks.
	written, err := playlist.ParseFile(params.Output)
	if err != nil {
		return errors.Wrap(err, "failed to read back the playlist")
	}

	if len(written.Tracks) != len(pl.Tracks) {
		return errors.Errorf("wrote %d tracks but read back %d", len(pl.Tracks), len(written.Tracks))
	}

	fmt.Fprintf(out, "Exported %d tracks to %s.\n", len(pl.Tracks), params.Output)
	return nil
}
