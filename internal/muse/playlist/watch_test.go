package playlist

import (
	"testing"
	"time"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()

	w, err := Watch(dir)
	if err != nil {
		t.Skip("watching is unsupported here:", err)
	}
	defer w.Close()

	touch(t, dir, "notes.txt")

	select {
	case <-w.Changes():
		t.Fatal("unexpected change for a non-audio file")
	case <-time.After(2 * watchDelay):
	}

	touch(t, dir, "1.mp3", "2.flac", "3.wav")

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a change")
	}

	// The burst should have been coalesced.
	select {
	case <-w.Changes():
		t.Fatal("burst was not coalesced")
	case <-time.After(2 * watchDelay):
	}
}
