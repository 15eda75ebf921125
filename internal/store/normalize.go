package store

import (
	"encoding/json"
	"strconv"
	"strings"

	"grove-cli/internal/model"
)

// flexString accepts a JSON string or number. Older exports stored seed ids and
// timestamps as raw epoch millis; ids are formalized to strings once, here at
// the store boundary, so the rest of the code compares plain strings.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = []byte(strings.TrimSpace(string(b)))
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil // tolerate; treated as absent
		}
		*f = flexString(s)
		return nil
	}
	// Number: keep integer form when possible (epoch millis).
	if n, err := strconv.ParseFloat(string(b), 64); err == nil {
		*f = flexString(strconv.FormatInt(int64(n), 10))
		return nil
	}
	*f = ""
	return nil
}

type rawMessage struct {
	By   string     `json:"by"`
	Text string     `json:"text"`
	At   flexString `json:"at"`
}

type rawThread struct {
	Class    string       `json:"class"`
	Messages []rawMessage `json:"messages"`
}

type rawSeed struct {
	ID      flexString  `json:"id"`
	Ghost   string      `json:"ghost"`
	Note    string      `json:"note"`
	Class   string      `json:"class"`
	At      flexString  `json:"at"`
	Threads []rawThread `json:"threads"`
}

// NormalizeRaw decodes one stored record and fills defaults for every missing
// or invalid field. A record that fails to decode at all becomes an empty seed
// with fresh id/timestamp rather than an error.
func NormalizeRaw(b json.RawMessage) model.Seed {
	var r rawSeed
	_ = json.Unmarshal(b, &r)

	seed := model.Seed{
		ID:    strings.TrimSpace(string(r.ID)),
		Ghost: r.Ghost,
		Note:  r.Note,
		Class: model.Class(r.Class).OrDefault(),
		At:    strings.TrimSpace(string(r.At)),
	}
	for _, t := range r.Threads {
		cls, ok := model.ParseClass(t.Class)
		if !ok {
			continue
		}
		msgs := make([]model.Message, 0, len(t.Messages))
		for _, m := range t.Messages {
			msgs = append(msgs, model.Message{By: m.By, Text: m.Text, At: string(m.At)})
		}
		seed.Threads = append(seed.Threads, model.Thread{Class: cls, Messages: msgs})
	}
	return Normalize(seed)
}

// Normalize fills defaults per the data-model rules and is idempotent:
// normalizing an already-normalized seed returns an equal seed.
func Normalize(s model.Seed) model.Seed {
	s.ID = strings.TrimSpace(s.ID)
	if s.ID == "" {
		s.ID = EpochID()
	}
	if !s.Class.Valid() {
		s.Class = model.ClassDefault
	}
	if strings.TrimSpace(s.At) == "" {
		s.At = model.Now()
	}
	if s.Threads == nil {
		s.Threads = []model.Thread{}
	}
	s.Threads = dedupeThreads(s.Threads)
	return s
}

// dedupeThreads enforces the at-most-one-thread-per-class invariant. Duplicate
// tags fold their messages into the first occurrence so no annotation is lost.
func dedupeThreads(threads []model.Thread) []model.Thread {
	out := make([]model.Thread, 0, len(threads))
	index := map[model.Class]int{}
	for _, t := range threads {
		if !t.Class.Valid() {
			continue
		}
		if t.Messages == nil {
			t.Messages = []model.Message{}
		}
		if i, ok := index[t.Class]; ok {
			out[i].Messages = append(out[i].Messages, t.Messages...)
			continue
		}
		index[t.Class] = len(out)
		out = append(out, t)
	}
	return out
}
