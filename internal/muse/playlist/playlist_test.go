package playlist

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/go-test/deep"
	"github.com/pkg/errors"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()

	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal("failed to create file:", err)
		}
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.mp3", "b.FLAC", "c.Wav", "cover.jpg", "d.lrc", "e.mp3.txt")

	if err := os.Mkdir(filepath.Join(dir, "sub.mp3"), 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(dir, "sub.mp3"), "nested.mp3")

	pl, err := Scan(dir)
	if err != nil {
		t.Fatal("unexpected scan error:", err)
	}

	expect := []Track{
		{0, filepath.Join(dir, "a.mp3"), "a.mp3"},
		{1, filepath.Join(dir, "b.FLAC"), "b.FLAC"},
		{2, filepath.Join(dir, "c.Wav"), "c.Wav"},
	}

	if ineqs := deep.Equal(pl.Tracks, expect); ineqs != nil {
		t.Error("tracks mismatch:", ineqs)
	}

	if pl.Name != filepath.Base(dir) {
		t.Errorf("name = %q, expected %q", pl.Name, filepath.Base(dir))
	}
}

func TestScanEmpty(t *testing.T) {
	tests := []struct {
		name string
		dir  string
	}{
		{"empty directory", t.TempDir()},
		{"missing directory", filepath.Join(t.TempDir(), "nope")},
		{"no directory", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			pl, err := Scan(test.dir)
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if len(pl.Tracks) != 0 {
				t.Errorf("expected no tracks, got %d", len(pl.Tracks))
			}
		})
	}
}

func TestScanNotDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "file.mp3")

	_, err := Scan(filepath.Join(dir, "file.mp3"))

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %v", err)
	}

	if !errors.Is(err, ErrIO) {
		t.Error("IOError does not match ErrIO")
	}
}

func TestScanUnreadable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permissions are not enforced")
	}

	dir := filepath.Join(t.TempDir(), "locked")
	if err := os.Mkdir(dir, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	_, err := Scan(dir)

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %v", err)
	}
}

func TestStore(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "1.mp3", "2.mp3")

	s := NewStore()
	if s.Count() != 0 {
		t.Fatal("new store is not empty")
	}

	if err := s.Open(dir); err != nil {
		t.Fatal("failed to open:", err)
	}

	if s.Count() != 2 {
		t.Fatalf("count = %d, expected 2", s.Count())
	}

	for _, ix := range []int{-1, 2, 100} {
		if _, ok := s.Get(ix); ok {
			t.Errorf("Get(%d) returned a track", ix)
		}
	}

	track, ok := s.Get(1)
	if !ok || track.DisplayName != "2.mp3" || track.Index != 1 {
		t.Errorf("Get(1) = %#v, %v", track, ok)
	}

	// Reopening replaces everything.
	if err := s.Open(t.TempDir()); err != nil {
		t.Fatal("failed to reopen:", err)
	}
	if s.Count() != 0 {
		t.Errorf("count after reopen = %d, expected 0", s.Count())
	}
}

func TestStoreSearch(t *testing.T) {
	s := NewStore()
	s.Replace(FromPaths("test", []string{
		"/music/Aqours - Kimeta yo Hand in Hand.flac",
		"/music/Guilty Kiss - Strawberry Trapper.mp3",
		"/music/Aqours - Koi ni Naritai Aquarium.mp3",
	}))

	tests := []struct {
		query  string
		expect []int
	}{
		{"", nil},
		{"strawberry", []int{1}},
		{"AQUARIUM", []int{2}},
		{"zzz", []int{}},
	}

	for _, test := range tests {
		t.Run(test.query, func(t *testing.T) {
			var got []int
			for _, track := range s.Search(test.query) {
				got = append(got, track.Index)
			}

			if len(got) == 0 && len(test.expect) == 0 {
				return
			}

			if ineqs := deep.Equal(got, test.expect); ineqs != nil {
				t.Error("search mismatch:", ineqs)
			}
		})
	}
}

func TestReplaceReindexes(t *testing.T) {
	s := NewStore()
	s.Replace(&Playlist{
		Tracks: []Track{
			{Index: 5, Path: "/a.mp3", DisplayName: "a.mp3"},
			{Index: 9, Path: "/b.mp3", DisplayName: "b.mp3"},
		},
	})

	for i, track := range s.Tracks() {
		if track.Index != i {
			t.Errorf("track %d has index %d", i, track.Index)
		}
	}
}
