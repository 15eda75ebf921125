package tui

import "grove-cli/internal/model"

type view int

const (
	viewAsk view = iota
	viewGrove
)

func viewToString(v view) string {
	if v == viewGrove {
		return "grove"
	}
	return "ask"
}

func viewFromString(s string) view {
	if s == "grove" {
		return viewGrove
	}
	return viewAsk
}

// modalKind: the editor is an explicit state machine. Closed (modalNone) or
// open for exactly one seed, either on the whole seed or on one class thread.
// Opening a second modal closes the first.
type modalKind int

const (
	modalNone modalKind = iota
	modalSeedEdit
	modalThread
	modalConfirmDelete
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type askFocus int

const (
	askFocusQuestion askFocus = iota
	askFocusClassify
	askFocusNote
)

// ghostReplyMsg carries one completed endpoint call. seq is the request
// generation: a reply whose seq is older than the model's current one was
// superseded by a newer question and is discarded.
type ghostReplyMsg struct {
	seq     int
	text    string
	errText string
}

type resizeDoneMsg struct{ seq int }

type toastDoneMsg struct{ seq int }

func classDigit(s string) (model.Class, bool) {
	switch s {
	case "1":
		return model.ClassGreen, true
	case "2":
		return model.ClassYellow, true
	case "3":
		return model.ClassRed, true
	}
	return "", false
}
