package store

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"grove-cli/internal/model"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	got := Normalize(model.Seed{Ghost: "hello"})
	if got.ID == "" {
		t.Fatal("missing id should be generated")
	}
	if got.Class != model.ClassYellow {
		t.Fatalf("missing class = %q; want yellow", got.Class)
	}
	if got.At == "" {
		t.Fatal("missing timestamp should be filled")
	}
	if got.Threads == nil {
		t.Fatal("threads must be non-nil after normalization")
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once := Normalize(model.Seed{
		ID:    "seed-x",
		Class: model.ClassGreen,
		At:    "2024-01-01T00:00:00Z",
		Threads: []model.Thread{
			{Class: model.ClassGreen, Messages: []model.Message{{By: "you", Text: "hi", At: "2024-01-01T00:00:00Z"}}},
		},
	})
	twice := Normalize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalization not idempotent:\n once: %+v\ntwice: %+v", once, twice)
	}
}

func TestNormalizeDedupesThreads(t *testing.T) {
	got := Normalize(model.Seed{
		ID:    "seed-x",
		Class: model.ClassGreen,
		At:    "2024-01-01T00:00:00Z",
		Threads: []model.Thread{
			{Class: model.ClassGreen, Messages: []model.Message{{By: "a", Text: "one"}}},
			{Class: model.ClassRed},
			{Class: model.ClassGreen, Messages: []model.Message{{By: "b", Text: "two"}}},
		},
	})
	if len(got.Threads) != 2 {
		t.Fatalf("expected 2 threads after dedupe, got %d", len(got.Threads))
	}
	green := got.Threads[0]
	if green.Class != model.ClassGreen || len(green.Messages) != 2 {
		t.Fatalf("duplicate green threads should merge messages: %+v", green)
	}
	if green.Messages[0].Text != "one" || green.Messages[1].Text != "two" {
		t.Fatalf("merged messages out of order: %+v", green.Messages)
	}
}

func TestNormalizeRawNumericIDs(t *testing.T) {
	// Older exports stored ids and timestamps as epoch-milli numbers.
	raw := json.RawMessage(`{"id":1714689000123,"ghost":"old","class":"green","at":1714689000123}`)
	got := NormalizeRaw(raw)
	if got.ID != "1714689000123" {
		t.Fatalf("numeric id coerced to %q; want \"1714689000123\"", got.ID)
	}
	if got.At != "1714689000123" {
		t.Fatalf("numeric timestamp coerced to %q", got.At)
	}
	if got.Class != model.ClassGreen {
		t.Fatalf("class lost in coercion: %q", got.Class)
	}
}

func TestNormalizeRawGarbageRecord(t *testing.T) {
	got := NormalizeRaw(json.RawMessage(`42`))
	if got.ID == "" || got.Class != model.ClassYellow || got.At == "" {
		t.Fatalf("garbage record should become a defaulted seed, got %+v", got)
	}
}

func TestNormalizeRawDropsUnknownThreadClasses(t *testing.T) {
	raw := json.RawMessage(`{"id":"seed-x","threads":[{"class":"purple","messages":[{"by":"a","text":"x"}]},{"class":"red","messages":[]}]}`)
	got := NormalizeRaw(raw)
	if len(got.Threads) != 1 || got.Threads[0].Class != model.ClassRed {
		t.Fatalf("unknown thread class should be dropped: %+v", got.Threads)
	}
}

func TestNewSeedIDShape(t *testing.T) {
	id := NewSeedID()
	if !strings.HasPrefix(id, "seed-") {
		t.Fatalf("id %q missing seed- prefix", id)
	}
	if len(id) != len("seed-")+8 {
		t.Fatalf("id %q has unexpected length", id)
	}
	if id == NewSeedID() {
		t.Fatal("two generated ids collided")
	}
}
