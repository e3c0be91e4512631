package state

import (
	"encoding/binary"
	"math/rand"
	"time"

	cryptorand "crypto/rand"

	"github.com/pkg/errors"
)

// ErrInvalidIndex is returned when selecting an index outside the playlist.
var ErrInvalidIndex = errors.New("track index out of range")

// Counter is anything that knows how many tracks there are. The playlist store
// implements it.
type Counter interface {
	Count() int
}

// Navigator holds the selected track index and the loop mode, and computes
// transitions between tracks. It holds no reference to the tracks themselves;
// after the playlist is replaced, Reset must be called.
type Navigator struct {
	tracks  Counter
	current int
	loop    LoopMode
	random  *rand.Rand
}

// NewNavigator creates a navigator with no selected track in Sequential mode.
func NewNavigator(tracks Counter) *Navigator {
	return &Navigator{
		tracks:  tracks,
		current: -1,
		loop:    Sequential,
		random:  rand.New(rand.NewSource(trueRandSeed())),
	}
}

// Meme.
func trueRandSeed() (seed int64) {
	err := binary.Read(cryptorand.Reader, binary.LittleEndian, &seed)
	if err == nil {
		return
	}
	return time.Now().UnixNano()
}

// Current returns the selected index, or -1 if nothing is selected.
func (n *Navigator) Current() int {
	return n.current
}

// IsIdle returns true if no track is selected.
func (n *Navigator) IsIdle() bool {
	return n.current == -1
}

// Reset clears the selection.
func (n *Navigator) Reset() {
	n.current = -1
}

// LoopMode returns the current loop mode.
func (n *Navigator) LoopMode() LoopMode {
	return n.loop
}

// SetLoopMode sets the loop mode.
func (n *Navigator) SetLoopMode(mode LoopMode) {
	if mode.IsValid() {
		n.loop = mode
	}
}

// CycleLoopMode switches to the next loop mode and returns it.
func (n *Navigator) CycleLoopMode() LoopMode {
	n.loop = n.loop.Cycle()
	return n.loop
}

// Select selects the track at index i. The state is unchanged if i is out of
// bounds.
func (n *Navigator) Select(i int) error {
	if count := n.tracks.Count(); i < 0 || i >= count {
		return errors.Wrapf(ErrInvalidIndex, "index %d not in [0, %d)", i, count)
	}

	n.current = i
	return nil
}

// Next moves to the next track according to the loop mode. It returns false
// and does nothing if the playlist is empty.
func (n *Navigator) Next() (int, bool) {
	return n.move(true)
}

// Previous moves to the previous track according to the loop mode. RepeatOne
// and Shuffle behave exactly like Next.
func (n *Navigator) Previous() (int, bool) {
	return n.move(false)
}

// TrackEnded moves on after the selected track finished playing. It behaves
// like Next, except that false is returned when playback should halt instead:
// the playlist is empty or the computed index is out of range.
//
// Sequential wraps around to the first track after the last one, so playback
// only halts on an empty playlist or a stale selection.
func (n *Navigator) TrackEnded() (int, bool) {
	next, ok := n.peek(true)
	if !ok || next < 0 || next >= n.tracks.Count() {
		return n.current, false
	}

	n.current = next
	return next, true
}

func (n *Navigator) move(forward bool) (int, bool) {
	next, ok := n.peek(forward)
	if !ok {
		return n.current, false
	}

	n.current = next
	return next, true
}

// peek computes the index that a move would select without changing the
// state.
func (n *Navigator) peek(forward bool) (int, bool) {
	count := n.tracks.Count()
	if count == 0 {
		return -1, false
	}

	if n.current == -1 {
		if forward {
			return 0, true
		}
		return count - 1, true
	}

	switch n.loop {
	case RepeatOne:
		return n.current, true
	case Shuffle:
		return n.RandomIndex(), true
	default:
		return spinIndex(forward, n.current, count), true
	}
}

// RandomIndex draws a uniformly random index that differs from the selected
// one whenever there is more than one track. It returns -1 for an empty
// playlist.
func (n *Navigator) RandomIndex() int {
	count := n.tracks.Count()

	switch count {
	case 0:
		return -1
	case 1:
		return 0
	}

	for {
		if i := n.random.Intn(count); i != n.current {
			return i
		}
	}
}

// spinIndex spins the index around max in either direction.
func spinIndex(fwd bool, i, max int) int {
	if fwd {
		return (i + 1) % max
	}
	return (i - 1 + max) % max
}
