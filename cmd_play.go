package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	"github.com/diamondburned/kotone/internal/config"
	"github.com/diamondburned/kotone/internal/mpris"
	"github.com/diamondburned/kotone/internal/muse"
	"github.com/diamondburned/kotone/internal/player"
	"github.com/diamondburned/kotone/internal/session"
)

type PlayParams struct {
	Dir string `pos:"true" optional:"true" help:"Directory to play. Defaults to the last session's, then KOTONE_MUSIC_DIR."`
}

func PlayCmd() *cobra.Command {
	return boa.CmdT[PlayParams]{
		Use:         "play",
		Short:       "Play a directory, reading commands from standard input",
		ParamEnrich: defaultParamEnricher(),
		RunFunc: func(params *PlayParams, cmd *cobra.Command, args []string) {
			runPlay(params, config.Load())
		},
	}.ToCobra()
}

func runPlay(params *PlayParams, cfg *config.Config) {
	sessions := session.NewStore(cfg.SessionFile)

	s, err := muse.NewSession(muse.Options{
		Binary: cfg.MPV,
		Volume: cfg.Volume,
	})
	if err != nil {
		log.Fatalln("Failed to create mpv session:", err)
	}
	defer s.Close()

	s.Start()

	ctrl := player.New(s, player.Options{
		Volume: cfg.Volume,
		Watch:  cfg.Watch,
	}, newStatusLine(os.Stdout))

	if err := openInitial(ctrl, params.Dir, sessions.Load(), cfg.MusicDir); err != nil {
		log.Println("failed to open directory:", err)
	}

	if cfg.MPRIS {
		conn, err := mpris.New(ctrl)
		if err != nil {
			log.Println("failed to start MPRIS:", err)
		} else {
			defer conn.Close()
			ctrl.AddPresenter(conn)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go readCommands(os.Stdin, os.Stderr, ctrl, cancel)

	ctrl.Run(ctx, s.Events())

	sessions.Save(ctrl.Snapshot())
}

// openInitial opens dir if given, else restores the last session, else opens
// the default music directory.
func openInitial(ctrl *player.Controller, dir string, last session.Session, musicDir string) error {
	switch {
	case dir != "":
		return ctrl.OpenDirectory(dir)
	case last.Dir != "":
		return ctrl.Restore(last)
	default:
		return ctrl.OpenDirectory(musicDir)
	}
}
