package tui

import (
	"strings"

	"grove-cli/internal/config"
	"grove-cli/internal/model"
	"grove-cli/internal/store"
)

// Modal controller. The store is the authority for everything displayed or
// saved: every operation here re-resolves the target seed by id before
// mutating, and a seed that vanished underneath an open modal (import, delete
// from another terminal) makes the operation a silent no-op that closes the
// modal instead of an error.

func (m *appModel) openSeedEditor(seedID string) {
	m.closeModal()
	seeds := m.store.LoadAll()
	seed, ok := store.FindByID(seeds, seedID)
	if !ok {
		return
	}
	m.modal = modalSeedEdit
	m.modalSeedID = seed.ID
	m.modalClass = seed.Class.OrDefault()
	m.editorNote.SetValue(seed.Note)
	m.editorNote.Focus()
}

func (m *appModel) openThreadEditor(seedID string, cls model.Class) {
	m.closeModal()
	seeds := m.store.LoadAll()
	seed, ok := store.FindByID(seeds, seedID)
	if !ok {
		return
	}
	m.modal = modalThread
	m.modalSeedID = seed.ID
	m.modalClass = cls.OrDefault()
	m.replyInput.SetValue("")
	m.replyInput.Focus()
}

// saveSeedEdit applies the editor's class/note to the freshly-fetched seed,
// makes sure a thread exists for the (possibly new) class, appends the note as
// a message when non-empty, persists, and closes.
func (m *appModel) saveSeedEdit() {
	if m.modal != modalSeedEdit || m.modalSeedID == "" {
		return
	}
	seeds := m.store.LoadAll()
	seed, ok := store.FindByID(seeds, m.modalSeedID)
	if !ok {
		m.closeModal()
		return
	}

	cls := m.modalClass.OrDefault()
	note := strings.TrimSpace(m.editorNote.Value())

	seed.Class = cls
	seed.Note = note

	t := seed.Thread(cls, true)
	if note != "" {
		t.Append(config.AuthorLabel(), note)
	}

	if err := m.store.SaveAll(seeds); err != nil {
		m.log.Err(err).Str("seed", seed.ID).Msg("save seed edit")
	}
	m.refreshSeeds()
	m.closeModal()
	m.showToast("Saved")
}

func (m *appModel) deleteOpenSeed() {
	id := m.modalSeedID
	m.closeModal()
	if id == "" {
		return
	}
	if err := m.store.DeleteByID(id); err != nil {
		m.log.Err(err).Str("seed", id).Msg("delete seed")
	}
	m.refreshSeeds()
	m.showToast("Deleted")
}

// postThreadMessage appends the reply textarea's content to the open thread.
// Empty trimmed text is rejected and the modal stays open. Persisting goes
// through the store; only the message list and the count badge re-render, not
// the whole grove layout.
func (m *appModel) postThreadMessage() bool {
	if m.modal != modalThread || m.modalSeedID == "" {
		return false
	}
	text := strings.TrimSpace(m.replyInput.Value())
	if text == "" {
		return false
	}
	seeds := m.store.LoadAll()
	seed, ok := store.FindByID(seeds, m.modalSeedID)
	if !ok {
		m.closeModal()
		return false
	}
	t := seed.Thread(m.modalClass.OrDefault(), true)
	if !t.Append(config.AuthorLabel(), text) {
		return false
	}
	if err := m.store.SaveAll(seeds); err != nil {
		m.log.Err(err).Str("seed", seed.ID).Msg("post thread message")
	}
	m.replyInput.SetValue("")
	m.refreshSeeds()
	return true
}

// openThreadMessages returns the open thread's messages fresh from the store.
func (m *appModel) openThreadMessages() []model.Message {
	if m.modal != modalThread || m.modalSeedID == "" {
		return nil
	}
	seeds := m.store.LoadAll()
	seed, ok := store.FindByID(seeds, m.modalSeedID)
	if !ok {
		return nil
	}
	t := seed.Thread(m.modalClass.OrDefault(), false)
	if t == nil {
		return nil
	}
	return t.Messages
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalSeedID = ""
	m.modalClass = ""
	m.confirmFocus = confirmFocusConfirm

	m.editorNote.SetValue("")
	m.editorNote.Blur()
	m.replyInput.SetValue("")
	m.replyInput.Blur()
}
