package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/diamondburned/kotone/internal/durafmt"
	"github.com/diamondburned/kotone/internal/player"
	"github.com/diamondburned/kotone/internal/state"
)

const volumeStep = 5

var errQuit = errors.New("quit")

// command is run on the controller's goroutine.
type command func(c *player.Controller) error

type doer interface {
	Do(func(*player.Controller))
}

// readCommands reads one command per line until quit or EOF. Errors are
// printed to errOut.
func readCommands(r io.Reader, errOut io.Writer, ctrl doer, quit func()) {
	defer quit()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		cmd, err := parseCommand(scanner.Text())
		if err != nil {
			if errors.Is(err, errQuit) {
				return
			}
			fmt.Fprintln(errOut, err)
			continue
		}

		ctrl.Do(func(c *player.Controller) {
			if err := cmd(c); err != nil {
				fmt.Fprintln(errOut, err)
			}
		})
	}
}

func parseCommand(line string) (command, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "", "t":
		return noError((*player.Controller).PlayPause), nil
	case "n":
		return noError((*player.Controller).Next), nil
	case "p":
		return noError((*player.Controller).Previous), nil
	case "s":
		return noError((*player.Controller).Stop), nil
	case "m":
		return noError((*player.Controller).ToggleMute), nil
	case "+":
		return func(c *player.Controller) error { c.StepVolume(volumeStep); return nil }, nil
	case "-":
		return func(c *player.Controller) error { c.StepVolume(-volumeStep); return nil }, nil
	case "q":
		return nil, errQuit

	case "l":
		if arg == "" {
			return func(c *player.Controller) error { c.CycleLoopMode(); return nil }, nil
		}
		mode, ok := state.ParseLoopMode(arg)
		if !ok {
			return nil, errors.Errorf("unknown loop mode %q", arg)
		}
		return func(c *player.Controller) error { c.SetLoopMode(mode); return nil }, nil

	case "v":
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.Wrap(err, "invalid volume")
		}
		return func(c *player.Controller) error { return c.SetVolume(v) }, nil

	case "seek":
		pos, err := durafmt.ParseClock(arg)
		if err != nil {
			return nil, errors.Wrap(err, "invalid position")
		}
		return func(c *player.Controller) error { c.Seek(pos); return nil }, nil

	case "g":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.Wrap(err, "invalid track number")
		}
		// Tracks are listed from 1.
		return func(c *player.Controller) error { return c.PlayIndex(n - 1) }, nil

	case "f":
		if arg == "" {
			return nil, errors.New("missing query")
		}
		return func(c *player.Controller) error { return c.PlayMatch(arg) }, nil

	case "o":
		if arg == "" {
			return nil, errors.New("missing directory")
		}
		return func(c *player.Controller) error { return c.OpenDirectory(arg) }, nil
	}

	return nil, errors.Errorf("unknown command %q", name)
}

func noError(fn func(*player.Controller)) command {
	return func(c *player.Controller) error {
		fn(c)
		return nil
	}
}
