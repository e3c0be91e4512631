package muse

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DexterLB/mpvipc"
	"github.com/go-test/deep"
	"github.com/pkg/errors"
)

func TestTranslate(t *testing.T) {
	var tr translator

	steps := []struct {
		name   string
		event  string // as sent over the socket
		expect []Event
	}{
		{
			name:   "idle at startup",
			event:  `{"event":"property-change","id":4,"data":true}`,
			expect: []Event{MediaStatusChanged{Status: NoMedia, Load: 0}},
		},
		{
			name:  "start file",
			event: `{"event":"start-file"}`,
			expect: []Event{
				MediaStatusChanged{Status: Loading, Load: 1},
				PositionChanged{},
			},
		},
		{
			name:   "no longer idle",
			event:  `{"event":"property-change","id":4,"data":false}`,
			expect: []Event{PlaybackStateChanged{State: Playing}},
		},
		{
			name:   "file loaded",
			event:  `{"event":"file-loaded"}`,
			expect: []Event{MediaStatusChanged{Status: Loaded, Load: 1}},
		},
		{
			name:   "duration",
			event:  `{"event":"property-change","id":3,"data":200.5}`,
			expect: []Event{DurationChanged{Duration: 200500 * time.Millisecond}},
		},
		{
			name:   "position",
			event:  `{"event":"property-change","id":2,"data":12.3456}`,
			expect: []Event{PositionChanged{Position: 12346 * time.Millisecond}},
		},
		{
			name:   "unavailable position",
			event:  `{"event":"property-change","id":2,"data":null}`,
			expect: nil,
		},
		{
			name:   "paused",
			event:  `{"event":"property-change","id":1,"data":true}`,
			expect: []Event{PlaybackStateChanged{State: Paused}},
		},
		{
			name:   "paused again",
			event:  `{"event":"property-change","id":1,"data":true}`,
			expect: nil,
		},
		{
			name:   "replaced",
			event:  `{"event":"end-file","reason":"stop"}`,
			expect: nil,
		},
		{
			name:  "next file",
			event: `{"event":"start-file"}`,
			expect: []Event{
				MediaStatusChanged{Status: Loading, Load: 2},
				PositionChanged{},
			},
		},
		{
			name:   "broken file",
			event:  `{"event":"end-file","reason":"error"}`,
			expect: []Event{MediaStatusChanged{Status: InvalidMedia, Load: 2}},
		},
		{
			name:  "idle after error",
			event: `{"event":"property-change","id":4,"data":true}`,
			expect: []Event{
				MediaStatusChanged{Status: NoMedia, Load: 2},
				PlaybackStateChanged{State: Stopped},
			},
		},
		{
			name:  "third file",
			event: `{"event":"start-file"}`,
			expect: []Event{
				MediaStatusChanged{Status: Loading, Load: 3},
				PositionChanged{},
			},
		},
		{
			name:   "finished",
			event:  `{"event":"end-file","reason":"eof"}`,
			expect: []Event{MediaStatusChanged{Status: EndOfMedia, Load: 3}},
		},
	}

	// Steps share the translator, so they cannot be run in isolation.
	for _, step := range steps {
		var event mpvipc.Event
		if err := json.Unmarshal([]byte(step.event), &event); err != nil {
			t.Fatalf("%s: invalid event: %v", step.name, err)
		}

		got := tr.translate(&event)
		if ineqs := deep.Equal(got, step.expect); ineqs != nil {
			t.Fatalf("%s: event mismatch: %v", step.name, ineqs)
		}
	}
}

func TestLoadQueue(t *testing.T) {
	var q loadQueue

	q.push("/a.mp3")
	q.push("/b.mp3")
	q.pop()
	q.push("/c.mp3")

	if got := q.get(1); got != "/a.mp3" {
		t.Errorf("load 1 = %q, expected /a.mp3", got)
	}
	if got := q.get(2); got != "/c.mp3" {
		t.Errorf("load 2 = %q, expected /c.mp3", got)
	}
	if got := q.get(3); got != "" {
		t.Errorf("load 3 = %q, expected nothing", got)
	}
}

func TestBatchErrors(t *testing.T) {
	if err := makeBatchErrors(nil, nil); err != nil {
		t.Fatal("unexpected error from nils:", err)
	}

	err := makeBatchErrors(errors.New("a"), nil, errors.New("b"))
	if err == nil {
		t.Fatal("expected error")
	}

	if s := err.Error(); s != "a, and b" {
		t.Errorf("unexpected error string %q", s)
	}
}
