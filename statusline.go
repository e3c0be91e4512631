package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/diamondburned/kotone/internal/player"
)

// statusLine prints a line for every view that differs from the last in more
// than the elapsed time.
type statusLine struct {
	w    io.Writer
	last string
}

func newStatusLine(w io.Writer) *statusLine {
	return &statusLine{w: w}
}

func (s *statusLine) Present(v player.View) {
	key := formatView(v, "")
	if key == s.last {
		return
	}

	s.last = key
	fmt.Fprintln(s.w, formatView(v, v.Elapsed))
}

func formatView(v player.View, elapsed string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] ", v.Playback)

	if v.Index < 0 {
		b.WriteString("nothing selected")
	} else {
		fmt.Fprintf(&b, "%d. %s", v.Index+1, v.DisplayName)
		if v.Artist != "" {
			fmt.Fprintf(&b, " (%s)", v.Artist)
		}
		fmt.Fprintf(&b, " %s/%s", elapsed, v.Total)
	}

	fmt.Fprintf(&b, " | %s", v.Lyric)

	if v.Muted {
		b.WriteString(" | muted")
	} else {
		fmt.Fprintf(&b, " | vol %d", v.Volume)
	}

	fmt.Fprintf(&b, " | %s", v.LoopMode)

	return b.String()
}
