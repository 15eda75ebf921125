package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"grove-cli/internal/config"
	"grove-cli/internal/ghost"
	"grove-cli/internal/grove"
	"grove-cli/internal/model"
	"grove-cli/internal/store"
)

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Don't show the resize overlay on startup; only after the initial size.
		if !m.seenWindowSize {
			m.seenWindowSize = true
			m.resizing = false
			return m, nil
		}
		// Coalesce resize bursts: the grove re-layout only happens after a
		// quiet period, keyed by seq so stale ticks are ignored.
		m.resizing = true
		m.resizeSeq++
		seq := m.resizeSeq
		return m, tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg { return resizeDoneMsg{seq: seq} })

	case resizeDoneMsg:
		if msg.seq == m.resizeSeq {
			m.resizing = false
		}
		return m, nil

	case toastDoneMsg:
		if msg.seq == m.toastSeq {
			m.toastText = ""
		}
		return m, nil

	case ghostReplyMsg:
		// A newer question superseded this reply: drop it.
		if msg.seq != m.askSeq {
			return m, nil
		}
		m.asking = false
		m.ghostShown = true
		m.ghostText = msg.text
		m.askErr = msg.errText
		m.selectedClass = ""
		if msg.errText == "" {
			m.askFocus = askFocusClassify
			m.question.Blur()
		} else {
			m.askFocus = askFocusQuestion
			m.showToast("Could not get a reply.")
			return m, m.toastTick()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.saveTUIState()
			return m, tea.Quit
		}
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		switch m.view {
		case viewAsk:
			return m.updateAsk(msg)
		default:
			return m.updateGrove(msg)
		}
	}
	return m, nil
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalConfirmDelete:
		switch msg.String() {
		case "tab", "left", "right":
			if m.confirmFocus == confirmFocusConfirm {
				m.confirmFocus = confirmFocusCancel
			} else {
				m.confirmFocus = confirmFocusConfirm
			}
			return m, nil
		case "enter":
			if m.confirmFocus == confirmFocusConfirm {
				m.deleteOpenSeed()
				return m, m.toastTick()
			}
			id := m.modalSeedID
			m.openSeedEditor(id)
			return m, nil
		case "esc", "ctrl+g":
			id := m.modalSeedID
			m.openSeedEditor(id)
			return m, nil
		}
		return m, nil

	case modalSeedEdit:
		switch msg.String() {
		case "esc", "ctrl+g":
			m.closeModal()
			return m, nil
		case "ctrl+s":
			m.saveSeedEdit()
			return m, m.toastTick()
		case "ctrl+d":
			m.modal = modalConfirmDelete
			m.confirmFocus = confirmFocusCancel
			return m, nil
		case "ctrl+t":
			// Jump to the thread for the currently selected class.
			id, cls := m.modalSeedID, m.modalClass
			m.openThreadEditor(id, cls)
			return m, nil
		case "tab":
			if m.editorNote.Focused() {
				m.editorNote.Blur()
			} else {
				m.editorNote.Focus()
			}
			return m, nil
		}
		if !m.editorNote.Focused() {
			if cls, ok := classDigit(msg.String()); ok {
				m.modalClass = cls
				return m, nil
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.editorNote, cmd = m.editorNote.Update(msg)
		return m, cmd

	case modalThread:
		switch msg.String() {
		case "esc", "ctrl+g":
			m.closeModal()
			return m, nil
		case "ctrl+s":
			if m.postThreadMessage() {
				m.showToast("Posted")
			} else {
				m.showToast("Write something first.")
			}
			return m, m.toastTick()
		}
		var cmd tea.Cmd
		m.replyInput, cmd = m.replyInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateAsk(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.askFocus {
	case askFocusQuestion:
		switch msg.String() {
		case "tab":
			m.switchView(viewGrove)
			return m, nil
		case "enter":
			q := strings.TrimSpace(m.question.Value())
			if len(q) < 3 {
				m.showToast("Type a longer question.")
				return m, m.toastTick()
			}
			return m.submitQuestion(q)
		}
		var cmd tea.Cmd
		m.question, cmd = m.question.Update(msg)
		return m, cmd

	case askFocusClassify:
		switch msg.String() {
		case "esc":
			m.askFocus = askFocusQuestion
			m.question.Focus()
			return m, nil
		case "tab":
			m.askFocus = askFocusNote
			m.noteInput.Focus()
			return m, nil
		case "enter", "ctrl+s":
			return m.plantSeed()
		}
		if cls, ok := classDigit(msg.String()); ok {
			m.selectedClass = cls
			return m, nil
		}
		return m, nil

	default: // askFocusNote
		switch msg.String() {
		case "esc", "tab":
			m.askFocus = askFocusClassify
			m.noteInput.Blur()
			return m, nil
		case "ctrl+s":
			return m.plantSeed()
		}
		var cmd tea.Cmd
		m.noteInput, cmd = m.noteInput.Update(msg)
		return m, cmd
	}
}

func (m appModel) updateGrove(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.saveTUIState()
		return m, tea.Quit
	case "a", "tab":
		m.switchView(viewAsk)
		return m, nil
	case "left", "h":
		m.moveSelection(-1)
		return m, nil
	case "right", "l":
		m.moveSelection(1)
		return m, nil
	case "up", "k":
		m.moveSelection(-m.groveCols())
		return m, nil
	case "down", "j":
		m.moveSelection(m.groveCols())
		return m, nil
	case "enter":
		m.openSeedEditor(m.selectedSeedID())
		return m, nil
	case "n":
		if id := m.selectedSeedID(); id != "" {
			cls := m.seeds[m.selIdx].Class.OrDefault()
			m.openThreadEditor(id, cls)
		}
		return m, nil
	case "0":
		m.setFilter(grove.FilterAll)
		return m, nil
	case "1", "2", "3":
		if cls, ok := classDigit(msg.String()); ok {
			m.setFilter(string(cls))
		}
		return m, nil
	case "r":
		// Reload from disk so CLI commands in another terminal are reflected.
		m.refreshSeeds()
		return m, nil
	case "x":
		return m.exportSeeds()
	case "D":
		if planted, _ := m.store.EnsureDemo(); planted {
			m.refreshSeeds()
			m.showToast("Demo seeds planted")
		} else {
			m.showToast("Grove is not empty")
		}
		return m, m.toastTick()
	}
	return m, nil
}

func (m *appModel) submitQuestion(q string) (tea.Model, tea.Cmd) {
	q = ghost.TruncateQuestion(q)
	m.asking = true
	m.ghostShown = false
	m.ghostText = ""
	m.askErr = ""
	m.selectedClass = ""
	m.noteInput.SetValue("")
	m.askSeq++
	seq := m.askSeq
	url := config.APIURL()
	log := m.log
	return *m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		text, err := ghost.NewClient(url).Ask(ctx, q)
		if err != nil {
			log.Err(err).Msg("ghost ask")
			return ghostReplyMsg{seq: seq, errText: ghost.Friendly(err)}
		}
		return ghostReplyMsg{seq: seq, text: text}
	}
}

// plantSeed creates a new seed from the current reply, newest-first, with a
// thread for the chosen class (the note, when present, becomes its first
// message), then jumps to the grove.
func (m *appModel) plantSeed() (tea.Model, tea.Cmd) {
	if !m.ghostShown {
		m.showToast("Ask the ghost first.")
		return *m, m.toastTick()
	}
	if m.selectedClass == "" {
		m.showToast("Choose how it felt.")
		return *m, m.toastTick()
	}
	seed := m.newSeed(m.ghostText, m.selectedClass, strings.TrimSpace(m.noteInput.Value()))
	if err := m.store.UpsertNewest(seed); err != nil {
		m.log.Err(err).Msg("plant seed")
	}

	m.question.SetValue("")
	m.noteInput.SetValue("")
	m.ghostShown = false
	m.ghostText = ""
	m.selectedClass = ""
	m.askFocus = askFocusQuestion

	m.switchView(viewGrove)
	m.refreshSeeds()
	m.selIdx = 0
	m.showToast("Seed planted")
	return *m, m.toastTick()
}

func (m *appModel) exportSeeds() (tea.Model, tea.Cmd) {
	name := fmt.Sprintf("memory-grove-seeds-%d.json", time.Now().UnixMilli())
	path := filepath.Join(m.dir, name)
	if err := os.WriteFile(path, m.store.RawSlot(), 0o644); err != nil {
		m.log.Err(err).Msg("export seeds")
		m.showToast("Export failed")
	} else {
		m.showToast("Exported " + name)
	}
	return *m, m.toastTick()
}

func (m *appModel) switchView(v view) {
	m.view = v
	if v == viewAsk {
		if m.askFocus == askFocusQuestion {
			m.question.Focus()
		}
	} else {
		m.question.Blur()
		m.refreshSeeds()
	}
	m.saveTUIState()
}

func (m *appModel) setFilter(tag string) {
	m.filter = tag
	m.selIdx = 0
	m.refreshSeeds()
	m.saveTUIState()
}

func (m *appModel) moveSelection(delta int) {
	if len(m.seeds) == 0 {
		return
	}
	idx := m.selIdx + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.seeds) {
		idx = len(m.seeds) - 1
	}
	m.selIdx = idx
}

// groveCols mirrors the layout engine's column count for the current view so
// up/down selection moves one visual row.
func (m *appModel) groveCols() int {
	w, h := m.canvasSize()
	slots := grove.Layout(len(m.seeds), w, h)
	if len(slots) == 0 {
		return 1
	}
	cols := 0
	for _, s := range slots {
		if s.Y != slots[0].Y {
			break
		}
		cols++
	}
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (m *appModel) showToast(s string) {
	m.toastText = s
	m.toastSeq++
}

func (m appModel) toastTick() tea.Cmd {
	seq := m.toastSeq
	return tea.Tick(1800*time.Millisecond, func(time.Time) tea.Msg { return toastDoneMsg{seq: seq} })
}

func (m *appModel) newSeed(ghostText string, cls model.Class, note string) model.Seed {
	seed := model.Seed{
		ID:      store.NewSeedID(),
		Ghost:   ghostText,
		Note:    note,
		Class:   cls,
		At:      model.Now(),
		Threads: []model.Thread{},
	}
	t := seed.Thread(cls, true)
	if note != "" {
		t.Append(config.AuthorLabel(), note)
	}
	return seed
}
