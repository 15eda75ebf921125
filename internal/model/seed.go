package model

import (
	"strings"
	"time"
)

// Class is the user's verdict on a ghost reply.
type Class string

const (
	ClassGreen  Class = "green"  // resonates
	ClassYellow Class = "yellow" // partial / nuanced
	ClassRed    Class = "red"    // counter-memory
)

// ClassDefault is applied whenever a stored class is missing or unrecognized.
const ClassDefault = ClassYellow

func Classes() []Class {
	return []Class{ClassGreen, ClassYellow, ClassRed}
}

func (c Class) Valid() bool {
	switch c {
	case ClassGreen, ClassYellow, ClassRed:
		return true
	}
	return false
}

// OrDefault returns c if it is one of the three known tags, ClassDefault otherwise.
func (c Class) OrDefault() Class {
	if c.Valid() {
		return c
	}
	return ClassDefault
}

func ParseClass(s string) (Class, bool) {
	c := Class(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c, true
	}
	return "", false
}

func (c Class) Title() string {
	switch c {
	case ClassGreen:
		return "Resonates"
	case ClassRed:
		return "Counter-memory"
	default:
		return "Partial / Nuanced"
	}
}

// Seed pairs one captured ghost reply with the user's classification and notes.
type Seed struct {
	ID    string `json:"id"`
	Ghost string `json:"ghost"`
	Note  string `json:"note"`
	Class Class  `json:"class"`
	// At is the creation timestamp. Stored values may be RFC3339 text or raw
	// epoch millis from older exports; the store coerces both to a string on load.
	At      string   `json:"at"`
	Threads []Thread `json:"threads"`
}

// Thread is the per-class conversation attached to a seed. A seed holds at most
// one thread per class tag.
type Thread struct {
	Class    Class     `json:"class"`
	Messages []Message `json:"messages"`
}

type Message struct {
	By   string `json:"by"`
	Text string `json:"text"`
	At   string `json:"at"`
}

// Now returns the canonical timestamp representation for new records.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Thread returns the thread for cls, or nil. With create set, a missing thread is
// appended to the seed (in memory only; the caller persists). The second create
// call for the same tag always finds the thread made by the first.
func (s *Seed) Thread(cls Class, create bool) *Thread {
	for i := range s.Threads {
		if s.Threads[i].Class == cls {
			return &s.Threads[i]
		}
	}
	if !create {
		return nil
	}
	s.Threads = append(s.Threads, Thread{Class: cls, Messages: []Message{}})
	return &s.Threads[len(s.Threads)-1]
}

// Append adds a message with a fresh timestamp. Messages with empty trimmed text
// are rejected; threads are append-only and never reordered.
func (t *Thread) Append(by, text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	t.Messages = append(t.Messages, Message{By: by, Text: text, At: Now()})
	return true
}

// MessageCount is the total across all threads, used for the note badge.
func (s *Seed) MessageCount(cls Class) int {
	t := s.Thread(cls, false)
	if t == nil {
		return 0
	}
	return len(t.Messages)
}
