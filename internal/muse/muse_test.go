package muse

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/pkg/errors"
)

type fakeIPC struct {
	calls   []string
	failing map[string]bool
}

func (f *fakeIPC) record(call string) error {
	f.calls = append(f.calls, call)
	if f.failing[call] {
		return errors.New("ipc failure")
	}
	return nil
}

func (f *fakeIPC) Call(args ...interface{}) (interface{}, error) {
	return nil, f.record(strings.TrimSpace(fmt.Sprintln(args...)))
}

func (f *fakeIPC) Set(property string, value interface{}) error {
	return f.record(fmt.Sprintf("set %s %v", property, value))
}

func TestPlay(t *testing.T) {
	tests := []struct {
		name    string
		failing string
		err     bool
		loads   map[uint64]string
	}{
		{
			name:  "success",
			loads: map[uint64]string{1: "/a.mp3"},
		},
		{
			name:    "rejected load",
			failing: "loadfile /a.mp3 replace",
			err:     true,
			loads:   map[uint64]string{1: ""},
		},
		{
			// mpv already took the file, so it still counts as a load.
			name:    "failed unpause",
			failing: "set pause false",
			loads:   map[uint64]string{1: "/a.mp3"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			conn := &fakeIPC{failing: map[string]bool{test.failing: true}}
			s := &Session{ipc: conn}

			if err := s.Play("/a.mp3"); (err != nil) != test.err {
				t.Fatalf("Play error = %v, expected error: %v", err, test.err)
			}

			expect := []string{"loadfile /a.mp3 replace", "set pause false"}
			if test.err {
				expect = expect[:1]
			}
			if ineqs := deep.Equal(conn.calls, expect); ineqs != nil {
				t.Error("calls mismatch:", ineqs)
			}

			for load, path := range test.loads {
				if got := s.loadedPath(load); got != path {
					t.Errorf("load %d = %q, expected %q", load, got, path)
				}
			}
		})
	}
}
