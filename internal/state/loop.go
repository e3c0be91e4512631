package state

import "strings"

// LoopMode decides how the next and previous tracks are picked.
type LoopMode uint8

const (
	// Sequential walks the playlist in order and wraps around at both ends.
	Sequential LoopMode = iota
	// RepeatOne keeps replaying the selected track.
	RepeatOne
	// Shuffle picks a random track that differs from the current one.
	Shuffle
	loopModeLen
)

// Cycle returns the next mode to be activated when the loop button is
// constantly pressed.
func (m LoopMode) Cycle() LoopMode {
	return (m + 1) % loopModeLen
}

// IsValid returns true if m is one of the known modes.
func (m LoopMode) IsValid() bool {
	return m < loopModeLen
}

func (m LoopMode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case RepeatOne:
		return "repeat-one"
	case Shuffle:
		return "shuffle"
	default:
		return "unknown"
	}
}

// ParseLoopMode parses the output of String. False is returned for unknown
// names.
func ParseLoopMode(s string) (LoopMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sequential":
		return Sequential, true
	case "repeat-one":
		return RepeatOne, true
	case "shuffle":
		return Shuffle, true
	default:
		return Sequential, false
	}
}
