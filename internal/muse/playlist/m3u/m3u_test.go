package m3u

import (
	"path/filepath"
	"testing"

	"github.com/diamondburned/kotone/internal/muse/playlist"
	"github.com/go-test/deep"
)

func TestWriteParse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Road to Rainbow.m3u")

	pl := playlist.FromPaths("ignored", []string{
		"/music/a.mp3",
		"/music/b.flac",
	})

	if err := playlist.WriteFile(pl, path); err != nil {
		t.Fatal("failed to write:", err)
	}

	got, err := playlist.ParseFile(path)
	if err != nil {
		t.Fatal("failed to parse:", err)
	}

	if got.Name != "Road to Rainbow" {
		t.Errorf("name = %q", got.Name)
	}

	if ineqs := deep.Equal(got.Tracks, pl.Tracks); ineqs != nil {
		t.Error("tracks mismatch:", ineqs)
	}
}
