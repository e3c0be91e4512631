// Package muse drives an mpv process over its JSON IPC socket and reports what
// it does as Events.
package muse

import (
	"log"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/DexterLB/mpvipc"
	"github.com/samber/lo"
)

// Session is a running mpv process.
type Session struct {
	Playback *mpvipc.Connection
	Command  *exec.Cmd
	mpvRead  *mpvReader

	// ipc is Playback, narrowed down to the calls that control playback.
	ipc mpvConn

	socketPath string
	connected  bool

	loads     loadQueue
	events    chan Event
	stop      chan struct{}
	closeOnce sync.Once
}

type mpvConn interface {
	Call(arguments ...interface{}) (interface{}, error)
	Set(property string, value interface{}) error
}

// NewSession starts mpv and connects to it. Start must be called afterwards to
// receive events.
func NewSession(opts Options) (*Session, error) {
	return newMpv(opts)
}

// Events returns the channel that all engine events are sent into. It is
// never closed; stop reading once Close is called.
func (s *Session) Events() <-chan Event {
	return s.events
}

func (s *Session) loadedPath(load uint64) string {
	return s.loads.get(load)
}

// Play replaces whatever is loaded with the file at path and unpauses. An
// error means nothing was loaded; once mpv has taken the file, it counts as a
// load even if unpausing fails.
func (s *Session) Play(path string) error {
	s.loads.push(path)

	if _, err := s.ipc.Call("loadfile", path, "replace"); err != nil {
		s.loads.pop()
		return err
	}

	if err := s.Resume(); err != nil {
		log.Printf("loaded %q but failed to unpause: %v", path, err)
	}

	return nil
}

// Resume unpauses playback.
func (s *Session) Resume() error {
	return s.ipc.Set("pause", false)
}

// Pause pauses playback.
func (s *Session) Pause() error {
	return s.ipc.Set("pause", true)
}

// Stop unloads the current file. mpv stays idle afterwards.
func (s *Session) Stop() error {
	_, err := s.ipc.Call("stop")
	return err
}

// SetPosition seeks to the given position in the current file.
func (s *Session) SetPosition(pos time.Duration) error {
	return s.ipc.Set("time-pos", pos.Seconds())
}

// SetOutputVolume sets the volume from a gain in [0, 1]. mpv is also muted when
// the gain is zero.
func (s *Session) SetOutputVolume(gain float64) error {
	gain = lo.Clamp(gain, 0, 1)

	return makeBatchErrors(
		s.ipc.Set("volume", gain*100),
		s.ipc.Set("mute", gain == 0),
	)
}

type batchErrors []error

func makeBatchErrors(errs ...error) error {
	var nonNils = errs[:0]
	for _, err := range errs {
		if err != nil {
			nonNils = append(nonNils, err)
		}
	}

	if len(nonNils) == 0 {
		return nil
	}

	return batchErrors(nonNils)
}

func (b batchErrors) Error() string {
	var errors = make([]string, len(b))
	for i, err := range b {
		errors[i] = err.Error()
	}

	// English moment.
	return strings.Join(errors, ", and ")
}
