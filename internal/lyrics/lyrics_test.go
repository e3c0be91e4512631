package lyrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-test/deep"
	"github.com/pkg/errors"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect []Line
	}{
		{
			name:  "basic",
			input: "[00:01.50]Hello\n[00:05]World",
			expect: []Line{
				{ms(1500), "Hello"},
				{ms(5000), "World"},
			},
		},
		{
			name:  "fraction widths",
			input: "[00:01.5]a\n[00:02.05]b\n[00:03.005]c\n[01:00]d",
			expect: []Line{
				{ms(1500), "a"},
				{ms(2050), "b"},
				{ms(3005), "c"},
				{ms(60000), "d"},
			},
		},
		{
			name:  "unsorted input",
			input: "[00:09]late\n[00:01]early",
			expect: []Line{
				{ms(1000), "early"},
				{ms(9000), "late"},
			},
		},
		{
			name:  "duplicates keep the last",
			input: "[00:01]first\n[00:01.000]second",
			expect: []Line{
				{ms(1000), "second"},
			},
		},
		{
			name:  "stacked tags",
			input: "[00:10][00:50.5]chorus",
			expect: []Line{
				{ms(10000), "chorus"},
				{ms(50500), "chorus"},
			},
		},
		{
			name:  "trimmed text",
			input: "[00:01]  spaced out \t\r\n",
			expect: []Line{
				{ms(1000), "spaced out"},
			},
		},
		{
			name:  "text after a tag mid-line",
			input: "prefix [00:02]tail [00:03]",
			expect: []Line{
				{ms(2000), "tail [00:03]"},
			},
		},
		{
			name: "skipped lines",
			input: "[ar:Aqours]\n[ti:Aozora Jumping Heart]\nno tag\n[00:01]\n" +
				"[00:02.1234]too precise\n[aa:bb]x",
		},
		{
			name:  "overflowing timestamps",
			input: "[9999999999999:00]huge\n[00:99999999999999]huger\n[00:01]ok",
			expect: []Line{
				{ms(1000), "ok"},
			},
		},
		{
			name:  "long minutes",
			input: "[123:45.6]x",
			expect: []Line{
				{123*time.Minute + 45*time.Second + ms(600), "x"},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ParseString(test.input)

			if len(test.expect) == 0 {
				if got.Len() != 0 {
					t.Fatalf("expected empty timeline, got %v", got.Lines())
				}
				return
			}

			if ineqs := deep.Equal(got.Lines(), test.expect); ineqs != nil {
				t.Error("lines mismatch:", ineqs)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	timeline := ParseString("[00:01.50]Hello\n[00:05]World")

	tests := []struct {
		pos    time.Duration
		text   string
		result Result
	}{
		{0, "", NotYet},
		{ms(1499), "", NotYet},
		{ms(1500), "Hello", Found},
		{ms(3000), "Hello", Found},
		{ms(5000), "World", Found},
		{ms(6000), "World", Found},
		{time.Hour, "World", Found},
	}

	for _, test := range tests {
		text, res := timeline.Lookup(test.pos)
		if text != test.text || res != test.result {
			t.Errorf("Lookup(%v) = %q, %v; expected %q, %v",
				test.pos, text, res, test.text, test.result)
		}
	}

	if text := timeline.Text(0); text != NotYetText {
		t.Errorf("Text(0) = %q, expected the not-yet marker", text)
	}
	if text := timeline.Text(ms(3000)); text != "Hello" {
		t.Errorf("Text(3000ms) = %q", text)
	}
}

func TestLookupEmpty(t *testing.T) {
	for _, timeline := range []*Timeline{Empty, {}, ParseString("")} {
		if _, res := timeline.Lookup(ms(1000)); res != NoLyrics {
			t.Errorf("Lookup on empty = %v, expected NoLyrics", res)
		}
		if text := timeline.Text(ms(1000)); text != NoLyricsText {
			t.Errorf("Text on empty = %q", text)
		}
	}

	if NoLyricsText == NotYetText {
		t.Fatal("markers are indistinguishable")
	}
}

func TestLookupMonotonic(t *testing.T) {
	timeline := ParseString("[00:00.5]a\n[00:01]b\n[00:01.01]c\n[00:07]d\n[02:00]e")

	last := -1
	for pos := time.Duration(0); pos < 3*time.Minute; pos += 7 * time.Millisecond {
		i := timeline.Find(pos)
		if i < last {
			t.Fatalf("Find(%v) = %d went backwards from %d", pos, i, last)
		}
		last = i
	}
}

func TestSidecarPath(t *testing.T) {
	tests := map[string]string{
		"/music/a.mp3":          "/music/a.lrc",
		"/music/a.FLAC":         "/music/a.lrc",
		"/music/a.Wav":          "/music/a.lrc",
		"/music/a.mp3.flac":     "/music/a.mp3.lrc",
		"/music/mp3s/track.ogg": "/music/mp3s/track.ogg.lrc",
	}

	for in, expect := range tests {
		if got := SidecarPath(in); got != expect {
			t.Errorf("SidecarPath(%q) = %q, expected %q", in, got, expect)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "song.flac")

	timeline, err := Load(audio)
	if err != nil {
		t.Fatal("missing sidecar returned an error:", err)
	}
	if timeline.Len() != 0 {
		t.Fatal("missing sidecar returned lines")
	}

	lrc := filepath.Join(dir, "song.lrc")
	if err := os.WriteFile(lrc, []byte("[00:01]line"), 0o644); err != nil {
		t.Fatal(err)
	}

	timeline, err = Load(audio)
	if err != nil {
		t.Fatal("failed to load:", err)
	}
	if text, _ := timeline.Lookup(time.Minute); text != "line" {
		t.Errorf("loaded text = %q", text)
	}
}

func TestLoadUnreadable(t *testing.T) {
	dir := t.TempDir()

	// A directory in place of the sidecar opens fine but cannot be read.
	if err := os.Mkdir(filepath.Join(dir, "song.lrc"), 0o755); err != nil {
		t.Fatal(err)
	}

	timeline, err := Load(filepath.Join(dir, "song.mp3"))
	if !errors.Is(err, ErrIO) {
		t.Fatalf("error = %v, expected ErrIO", err)
	}
	if timeline.Text(0) != NoLyricsText {
		t.Error("unreadable sidecar did not yield the empty timeline")
	}
}
