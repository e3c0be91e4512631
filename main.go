package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	_ "github.com/diamondburned/kotone/internal/muse/playlist/audpl"
	_ "github.com/diamondburned/kotone/internal/muse/playlist/m3u"
)

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "kotone",
		Short:   "A small music player for directories of audio files",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			PlayCmd(),
			ListCmd(),
			LyricsCmd(),
			ExportCmd(),
			SessionCmd(),
		},
	}.Run()
}

func appVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "unknown"
	}
	return bi.Main.Version
}

func defaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}
