package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rs/zerolog"

	"grove-cli/internal/config"
	"grove-cli/internal/ghost"
	"grove-cli/internal/grove"
	"grove-cli/internal/logging"
	"grove-cli/internal/model"
	"grove-cli/internal/store"
)

type appModel struct {
	dir   string
	store store.Store
	log   zerolog.Logger

	width  int
	height int
	// The very first WindowSizeMsg is initial sizing, not a user-driven resize;
	// without this we'd briefly show the resize overlay on startup.
	seenWindowSize bool
	resizing       bool
	resizeSeq      int

	view view

	// seeds is a display cache only. Every mutation path re-fetches from the
	// store by id first, so a stale cache can never corrupt saved data.
	seeds  []model.Seed
	filter string
	selIdx int

	// Ask flow.
	question      textinput.Model
	noteInput     textarea.Model
	askFocus      askFocus
	asking        bool
	askSeq        int
	ghostText     string
	ghostShown    bool
	askErr        string
	selectedClass model.Class

	// Seed editor / thread modal state machine.
	modal        modalKind
	modalSeedID  string
	modalClass   model.Class
	editorNote   textarea.Model
	replyInput   textarea.Model
	confirmFocus confirmModalFocus

	toastText string
	toastSeq  int
}

func newAppModel(dir string) appModel {
	s := store.Store{Dir: dir}
	m := appModel{
		dir:    dir,
		store:  s,
		log:    logging.New(config.LogFile()),
		view:   viewAsk,
		filter: grove.FilterAll,
	}

	m.question = textinput.New()
	m.question.Placeholder = "Ask the ghost…"
	m.question.CharLimit = ghost.MaxQuestionChars
	m.question.Width = 60
	m.question.Focus()

	m.noteInput = textarea.New()
	m.noteInput.Placeholder = "Leave a note on the grave (optional)…"
	m.noteInput.CharLimit = 0
	m.noteInput.SetWidth(60)
	m.noteInput.SetHeight(3)
	m.noteInput.ShowLineNumbers = false

	m.editorNote = textarea.New()
	m.editorNote.Placeholder = "Write a note…"
	m.editorNote.CharLimit = 0
	m.editorNote.SetWidth(56)
	m.editorNote.SetHeight(4)
	m.editorNote.ShowLineNumbers = false

	m.replyInput = textarea.New()
	m.replyInput.Placeholder = "Write a reply…"
	m.replyInput.CharLimit = 0
	m.replyInput.SetWidth(56)
	m.replyInput.SetHeight(3)
	m.replyInput.ShowLineNumbers = false

	if config.DemoEnabled() {
		if planted, _ := s.EnsureDemo(); planted {
			m.log.Info().Msg("planted demo seeds into empty grove")
		}
	}
	m.refreshSeeds()

	// Best-effort: restore last view/filter/selection.
	if st, err := s.LoadTUIState(); err == nil {
		m.applySavedTUIState(st)
	}
	return m
}

// refreshSeeds reloads the display cache and clamps the selection.
func (m *appModel) refreshSeeds() {
	m.seeds = grove.Filter(m.store.LoadAll(), m.filter)
	if m.selIdx >= len(m.seeds) {
		m.selIdx = len(m.seeds) - 1
	}
	if m.selIdx < 0 {
		m.selIdx = 0
	}
}

func (m *appModel) selectedSeedID() string {
	if m.selIdx < 0 || m.selIdx >= len(m.seeds) {
		return ""
	}
	return m.seeds[m.selIdx].ID
}

func (m *appModel) applySavedTUIState(st *store.TUIState) {
	if st == nil {
		return
	}
	m.view = viewFromString(st.View)
	if f := strings.TrimSpace(st.Filter); f != "" {
		if _, ok := model.ParseClass(f); ok || f == grove.FilterAll {
			m.filter = f
		}
	}
	m.refreshSeeds()
	if id := strings.TrimSpace(st.SelectedSeedID); id != "" {
		for i := range m.seeds {
			if m.seeds[i].ID == id {
				m.selIdx = i
				break
			}
		}
	}
}

func (m *appModel) saveTUIState() {
	_ = m.store.SaveTUIState(&store.TUIState{
		Version:        1,
		View:           viewToString(m.view),
		Filter:         m.filter,
		SelectedSeedID: m.selectedSeedID(),
	})
}
