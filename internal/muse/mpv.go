package muse

import (
	"context"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/DexterLB/mpvipc"
	"github.com/pkg/errors"
)

type mpvEvent uint

const (
	allEvent mpvEvent = iota
	pauseEvent
	timePositionEvent
	durationEvent
	idleEvent
)

var events = []string{
	"start-file",
	"file-loaded",
	"end-file",
}

var propertyMap = map[mpvEvent]string{
	pauseEvent:        "pause",
	timePositionEvent: "time-pos",
	durationEvent:     "duration",
	idleEvent:         "idle-active",
}

var tmpdir = filepath.Join(os.TempDir(), "kotone")

// Options configures the mpv process.
type Options struct {
	// Binary is the mpv executable. It defaults to "mpv".
	Binary string
	// Volume is the initial output volume in [0, 100].
	Volume int
}

func newMpv(opts Options) (*Session, error) {
	if opts.Binary == "" {
		opts.Binary = "mpv"
	}

	sockPath := filepath.Join(tmpdir, "mpv", "mpv-"+strconv.Itoa(os.Getpid())+".sock")

	if err := os.MkdirAll(filepath.Dir(sockPath), os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "failed to make socket directory")
	}

	if err := os.RemoveAll(sockPath); err != nil {
		return nil, errors.Wrap(err, "failed to clean up socket")
	}

	args := []string{
		"--idle",
		"--quiet",
		"--pause",
		"--no-input-terminal",
		"--loop-playlist=no",
		"--loop-file=no",
		"--gapless-audio=weak",
		"--replaygain=track",
		"--replaygain-clip=no",
		"--input-ipc-server=" + sockPath,
		"--volume=" + strconv.Itoa(opts.Volume),
		"--volume-max=100",
		"--no-video",
	}

	// Try and support MPV_MPRIS.
	if scripts := os.Getenv("MPV_SCRIPTS"); scripts != "" {
		for _, script := range strings.Split(scripts, ":") {
			args = append(args, "--script="+script)
		}
	}

	mpvRead := newMpvReader(log.Writer())
	mpvRead.Start()

	cmd := exec.Command(opts.Binary, args...)
	cmd.Env = os.Environ()
	cmd.Stderr = mpvRead

	conn := mpvipc.NewConnection(sockPath)

	if err := cmd.Start(); err != nil {
		mpvRead.Close()
		return nil, errors.Wrapf(err, "failed to start %s", opts.Binary)
	}

	// Give us a 5-second period timeout.
	ctx, cancel := context.WithTimeout(context.TODO(), 5*time.Second)
	defer cancel()

	// Spin until we can connect.
	var err error
RetryOpen:
	for {
		err = conn.Open()
		if err == nil {
			cancel()
			break RetryOpen
		}
		select {
		case <-ctx.Done():
			break RetryOpen
		default:
			runtime.Gosched()
			continue RetryOpen
		}
	}

	s := &Session{
		Playback:   conn,
		ipc:        conn,
		Command:    cmd,
		mpvRead:    mpvRead,
		socketPath: sockPath,
		events:     make(chan Event, 64),
		stop:       make(chan struct{}),
	}

	if err != nil {
		s.Close()
		return nil, errors.Wrap(err, "failed to open connection")
	}

	s.connected = true

	for _, event := range events {
		_, err := conn.Call("enable_event", event)
		if err != nil {
			s.Close()
			return nil, errors.Wrapf(err, "failed to enable event %q", event)
		}
	}

	for id, property := range propertyMap {
		_, err := conn.Call("observe_property", id, property)
		if err != nil {
			s.Close()
			return nil, errors.Wrapf(err, "failed to observe property %q", property)
		}
	}

	return s, nil
}

// Start starts the event listener in a background goroutine. As such, it is
// non-blocking. Events are delivered through the Events channel.
func (s *Session) Start() {
	var tr translator

	s.Playback.ListenForEvents(func(event *mpvipc.Event) {
		if event.Error != "" {
			log.Println("Error in event:", event.Error)
		}

		for _, ev := range tr.translate(event) {
			s.send(ev)
		}

		// Tags are read off the listener so that slow disks do not hold up
		// position updates.
		if event.Name == "file-loaded" {
			load := tr.loads
			path := s.loadedPath(load)
			if path == "" {
				return
			}

			go func() {
				s.send(MetadataChanged{
					Metadata: ReadMetadata(path),
					Load:     load,
				})
			}()
		}
	})
}

func (s *Session) send(ev Event) {
	select {
	case s.events <- ev:
	case <-s.stop:
	}
}

// Close stops the mpv process. It does nothing if it's called more than once.
// A closed session cannot be reused.
func (s *Session) Close() {
	s.closeOnce.Do(s.close)
}

func (s *Session) close() {
	close(s.stop)

	if s.connected {
		s.Playback.Close()
	}

	if err := s.Command.Process.Signal(os.Interrupt); err != nil {
		log.Println("Attempted to send SIGINT failed, error occured:", err)
		log.Println("Killing anyway.")

		if err = s.Command.Process.Kill(); err != nil {
			log.Println("Failed to kill mpv:", err)
		}
	} else {
		// Wait for mpv to finish up.
		s.Command.Wait()
	}

	s.mpvRead.Close()

	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		log.Println("Failed to clean up socket:", err)
	}
}

// translator turns raw mpv events into engine events. It is only used from the
// event listener goroutine.
type translator struct {
	loads  uint64 // number of start-file events seen
	loaded bool   // file-loaded seen for the current load
	paused bool
	idle   bool
	state  PlaybackState
}

func (tr *translator) translate(event *mpvipc.Event) []Event {
	if mpvEvent(event.ID) != allEvent {
		return tr.translateProperty(mpvEvent(event.ID), event.Data)
	}

	switch event.Name {
	case "start-file":
		tr.loads++
		tr.loaded = false
		return []Event{
			MediaStatusChanged{Status: Loading, Load: tr.loads},
			PositionChanged{},
		}

	case "file-loaded":
		tr.loaded = true
		return []Event{MediaStatusChanged{Status: Loaded, Load: tr.loads}}

	case "end-file":
		switch event.Reason {
		case "eof":
			return []Event{MediaStatusChanged{Status: EndOfMedia, Load: tr.loads}}
		case "error":
			return []Event{MediaStatusChanged{Status: InvalidMedia, Load: tr.loads}}
		}
	}

	return nil
}

func (tr *translator) translateProperty(id mpvEvent, data interface{}) []Event {
	var evs []Event

	switch id {
	case pauseEvent:
		b, ok := data.(bool)
		if !ok {
			return nil
		}
		tr.paused = b

	case idleEvent:
		b, ok := data.(bool)
		if !ok {
			return nil
		}
		tr.idle = b
		if b {
			evs = append(evs, MediaStatusChanged{Status: NoMedia, Load: tr.loads})
		}

	case timePositionEvent:
		if f, ok := data.(float64); ok {
			return []Event{PositionChanged{Position: seconds(f)}}
		}
		return nil

	case durationEvent:
		if f, ok := data.(float64); ok {
			return []Event{DurationChanged{Duration: seconds(f)}}
		}
		return nil

	default:
		return nil
	}

	var state PlaybackState
	switch {
	case tr.idle:
		state = Stopped
	case tr.paused:
		state = Paused
	default:
		state = Playing
	}

	if state != tr.state {
		tr.state = state
		evs = append(evs, PlaybackStateChanged{State: state})
	}

	return evs
}

func seconds(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second)).Round(time.Millisecond)
}

// loadQueue remembers the paths given to Play so that the n-th start-file can
// be matched to its path.
type loadQueue struct {
	mu    sync.Mutex
	paths map[uint64]string
	next  uint64
}

func (q *loadQueue) push(path string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.paths == nil {
		q.paths = make(map[uint64]string)
	}

	q.next++
	q.paths[q.next] = path

	// Only the latest few loads can still be pending.
	delete(q.paths, q.next-8)
}

// pop forgets the latest push, for when mpv rejected the load.
func (q *loadQueue) pop() {
	q.mu.Lock()
	delete(q.paths, q.next)
	q.next--
	q.mu.Unlock()
}

func (q *loadQueue) get(n uint64) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.paths[n]
}
