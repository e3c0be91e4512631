// Package lyrics parses LRC sidecar files into timelines and answers which
// line is current at a playback position.
package lyrics

import (
	"bufio"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Markers shown in place of a lyric line. They must never be confused with
// each other.
const (
	NoLyricsText = "(no lyrics available)"
	NotYetText   = "(no lyrics here yet)"
)

// Result tells the outcome of a lookup.
type Result uint8

const (
	// Found means a line was found.
	Found Result = iota
	// NoLyrics means the timeline is empty.
	NoLyrics
	// NotYet means the position is before the first line.
	NotYet
)

// Line is a single timed lyric line.
type Line struct {
	Timestamp time.Duration
	Text      string
}

// Timeline is an immutable list of lines sorted by timestamp, with unique
// timestamps. The zero value is an empty timeline.
type Timeline struct {
	lines []Line
}

// Empty is the timeline used when there are no lyrics.
var Empty = &Timeline{}

// tagRegex matches a [minutes:seconds] or [minutes:seconds.fraction] tag.
var tagRegex = regexp.MustCompile(`\[(\d+):(\d+)(?:\.(\d{1,3}))?\]`)

// ParseString parses LRC text. See Parse.
func ParseString(text string) *Timeline {
	return Parse(strings.NewReader(text))
}

// Parse parses LRC text. Each line is searched for its first time tag; the text
// after the closing bracket becomes the lyric. Several tags stacked right next
// to each other share the same text. Lines without a tag or without any text
// are skipped, as are ID tags such as [ar:...].
//
// The fraction is read as tenths, hundredths or milliseconds for 1, 2 or 3
// digits respectively, so [00:01.5], [00:01.50] and [00:01.500] are the same
// instant. When two lines share a timestamp, the later one wins.
func Parse(r io.Reader) *Timeline {
	t, _ := parse(r)
	return t
}

// parse is Parse, but it also returns the read error, if any. The timeline
// holds whatever was read before the error.
func parse(r io.Reader) (*Timeline, error) {
	lines := map[time.Duration]string{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)

	for scanner.Scan() {
		parseLine(scanner.Text(), lines)
	}

	if len(lines) == 0 {
		return Empty, scanner.Err()
	}

	t := &Timeline{lines: make([]Line, 0, len(lines))}
	for ts, text := range lines {
		t.lines = append(t.lines, Line{Timestamp: ts, Text: text})
	}

	sort.Slice(t.lines, func(i, j int) bool {
		return t.lines[i].Timestamp < t.lines[j].Timestamp
	})

	return t, scanner.Err()
}

func parseLine(line string, dst map[time.Duration]string) {
	loc := tagRegex.FindStringSubmatchIndex(line)
	if loc == nil {
		return
	}

	var stamps []time.Duration

	for loc != nil {
		ts, ok := parseTag(line, loc)
		if ok {
			stamps = append(stamps, ts)
		}

		line = line[loc[1]:]

		// Only keep consuming tags that immediately follow.
		loc = tagRegex.FindStringSubmatchIndex(line)
		if loc != nil && loc[0] != 0 {
			break
		}
	}

	if line == "" {
		return
	}

	text := strings.TrimSpace(line)
	for _, ts := range stamps {
		dst[ts] = text
	}
}

// parseTag reads the timestamp out of the submatch indices of tagRegex.
func parseTag(line string, loc []int) (time.Duration, bool) {
	min, err := strconv.Atoi(line[loc[2]:loc[3]])
	if err != nil {
		return 0, false
	}

	sec, err := strconv.Atoi(line[loc[4]:loc[5]])
	if err != nil {
		return 0, false
	}

	// Leave a second of headroom for the fraction.
	const limit = math.MaxInt64 - int64(time.Second)
	if int64(min) > limit/int64(time.Minute) {
		return 0, false
	}
	ts := time.Duration(min) * time.Minute
	if int64(sec) > (limit-int64(ts))/int64(time.Second) {
		return 0, false
	}
	ts += time.Duration(sec) * time.Second

	if loc[6] >= 0 {
		ts += fractionMs(line[loc[6]:loc[7]]) * time.Millisecond
	}

	return ts, true
}

// fractionMs normalizes a 1 to 3 digit fraction of a second into
// milliseconds by right-padding it with zeros.
func fractionMs(frac string) time.Duration {
	for len(frac) < 3 {
		frac += "0"
	}

	ms, _ := strconv.Atoi(frac)
	return time.Duration(ms)
}

// Len returns the number of lines.
func (t *Timeline) Len() int {
	return len(t.lines)
}

// Lines returns a copy of all lines in order.
func (t *Timeline) Lines() []Line {
	lines := make([]Line, len(t.lines))
	copy(lines, t.lines)
	return lines
}

// Find returns the index of the line with the greatest timestamp at or before
// pos, or -1 if there is none.
func (t *Timeline) Find(pos time.Duration) int {
	// First line strictly after pos.
	i := sort.Search(len(t.lines), func(i int) bool {
		return t.lines[i].Timestamp > pos
	})
	return i - 1
}

// Lookup returns the text of the current line at pos.
func (t *Timeline) Lookup(pos time.Duration) (string, Result) {
	if len(t.lines) == 0 {
		return "", NoLyrics
	}

	i := t.Find(pos)
	if i < 0 {
		return "", NotYet
	}

	return t.lines[i].Text, Found
}

// Text is like Lookup, except the markers are returned in place of missing
// lines.
func (t *Timeline) Text(pos time.Duration) string {
	text, res := t.Lookup(pos)

	switch res {
	case NoLyrics:
		return NoLyricsText
	case NotYet:
		return NotYetText
	default:
		return text
	}
}
