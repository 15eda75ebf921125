package tui

import (
	"testing"

	"grove-cli/internal/config"
	"grove-cli/internal/model"
	"grove-cli/internal/store"
)

func newTestModel(t *testing.T) *appModel {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("GROVE_DEMO_ENABLED", "false")
	config.Init(dir)
	m := newAppModel(dir)
	m.width, m.height = 120, 40
	return &m
}

func plant(t *testing.T, s store.Store, id string, cls model.Class, ghost string) {
	t.Helper()
	if err := s.UpsertNewest(store.Normalize(model.Seed{ID: id, Class: cls, Ghost: ghost})); err != nil {
		t.Fatalf("plant %s: %v", id, err)
	}
}

func TestOpenSeedEditorPopulatesFromStore(t *testing.T) {
	m := newTestModel(t)
	plant(t, m.store, "seed-a", model.ClassGreen, "hello")
	m.refreshSeeds()

	m.openSeedEditor("seed-a")
	if m.modal != modalSeedEdit {
		t.Fatalf("modal = %v; want seed editor", m.modal)
	}
	if m.modalSeedID != "seed-a" || m.modalClass != model.ClassGreen {
		t.Fatalf("editor state = (%q, %q)", m.modalSeedID, m.modalClass)
	}
}

func TestOpenSeedEditorMissingIDStaysClosed(t *testing.T) {
	m := newTestModel(t)
	m.openSeedEditor("seed-ghost")
	if m.modal != modalNone {
		t.Fatalf("modal = %v; want closed for missing seed", m.modal)
	}
}

func TestOpeningSecondModalClosesFirst(t *testing.T) {
	m := newTestModel(t)
	plant(t, m.store, "seed-a", model.ClassGreen, "one")
	plant(t, m.store, "seed-b", model.ClassRed, "two")

	m.openSeedEditor("seed-a")
	m.openThreadEditor("seed-b", model.ClassRed)
	if m.modal != modalThread || m.modalSeedID != "seed-b" {
		t.Fatalf("second open should win: modal=%v id=%q", m.modal, m.modalSeedID)
	}
}

func TestSaveSeedEditReclassifies(t *testing.T) {
	m := newTestModel(t)
	plant(t, m.store, "seed-a", model.ClassYellow, "half right")

	m.openSeedEditor("seed-a")
	m.modalClass = model.ClassGreen
	m.editorNote.SetValue("actually good")
	m.saveSeedEdit()

	if m.modal != modalNone {
		t.Fatal("save should close the editor")
	}
	seed, ok := store.FindByID(m.store.LoadAll(), "seed-a")
	if !ok {
		t.Fatal("seed vanished after save")
	}
	if seed.Class != model.ClassGreen {
		t.Fatalf("class = %q; want green", seed.Class)
	}
	if seed.Note != "actually good" {
		t.Fatalf("note = %q", seed.Note)
	}
	th := seed.Thread(model.ClassGreen, false)
	if th == nil || len(th.Messages) != 1 || th.Messages[0].Text != "actually good" {
		t.Fatalf("green thread should hold the note: %+v", th)
	}
}

func TestSaveSeedEditStaleIDSilentlyCloses(t *testing.T) {
	m := newTestModel(t)
	plant(t, m.store, "seed-a", model.ClassYellow, "x")

	m.openSeedEditor("seed-a")
	// Seed deleted underneath the open modal (another terminal, an import).
	if err := m.store.DeleteByID("seed-a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	m.saveSeedEdit()

	if m.modal != modalNone {
		t.Fatal("stale save should close the modal")
	}
	if m.store.Count() != 0 {
		t.Fatal("stale save must not resurrect the seed")
	}
}

func TestDeleteOpenSeed(t *testing.T) {
	m := newTestModel(t)
	plant(t, m.store, "seed-a", model.ClassYellow, "x")
	m.refreshSeeds()

	m.openSeedEditor("seed-a")
	m.deleteOpenSeed()

	if m.modal != modalNone {
		t.Fatal("delete should close the modal")
	}
	if m.store.Count() != 0 {
		t.Fatal("seed not deleted")
	}
	if len(m.seeds) != 0 {
		t.Fatal("display cache not refreshed after delete")
	}
}

func TestPostThreadMessageRoundTrip(t *testing.T) {
	m := newTestModel(t)
	plant(t, m.store, "seed-a", model.ClassGreen, "x")

	m.openThreadEditor("seed-a", model.ClassGreen)
	m.replyInput.SetValue("a reply from the living")
	if !m.postThreadMessage() {
		t.Fatal("post should succeed")
	}
	if m.modal != modalThread {
		t.Fatal("modal should stay open after a post")
	}
	if m.replyInput.Value() != "" {
		t.Fatal("reply input should clear after a post")
	}

	seed, _ := store.FindByID(m.store.LoadAll(), "seed-a")
	th := seed.Thread(model.ClassGreen, false)
	if th == nil || len(th.Messages) != 1 {
		t.Fatalf("thread should hold exactly one message: %+v", th)
	}
	if th.Messages[0].Text != "a reply from the living" {
		t.Fatalf("message text = %q", th.Messages[0].Text)
	}
	if th.Messages[0].By != config.AuthorLabel() {
		t.Fatalf("message author = %q; want %q", th.Messages[0].By, config.AuthorLabel())
	}
}

func TestPostThreadMessageRejectsEmpty(t *testing.T) {
	m := newTestModel(t)
	plant(t, m.store, "seed-a", model.ClassGreen, "x")

	m.openThreadEditor("seed-a", model.ClassGreen)
	m.replyInput.SetValue("   ")
	if m.postThreadMessage() {
		t.Fatal("whitespace-only post should be rejected")
	}
	if m.modal != modalThread {
		t.Fatal("rejected post must leave the modal open")
	}
	seed, _ := store.FindByID(m.store.LoadAll(), "seed-a")
	if seed.MessageCount(model.ClassGreen) != 0 {
		t.Fatal("rejected post still persisted a message")
	}
}

func TestThreadCreatedLazilyAtPostTime(t *testing.T) {
	m := newTestModel(t)
	plant(t, m.store, "seed-a", model.ClassGreen, "x")

	// Opening a thread view for a class with no thread must not persist one.
	m.openThreadEditor("seed-a", model.ClassRed)
	seed, _ := store.FindByID(m.store.LoadAll(), "seed-a")
	if seed.Thread(model.ClassRed, false) != nil {
		t.Fatal("opening the view should not create the thread")
	}

	m.replyInput.SetValue("now it exists")
	if !m.postThreadMessage() {
		t.Fatal("post should succeed")
	}
	seed, _ = store.FindByID(m.store.LoadAll(), "seed-a")
	th := seed.Thread(model.ClassRed, false)
	if th == nil || len(th.Messages) != 1 {
		t.Fatalf("post should create the thread: %+v", th)
	}
}

func TestOpenThreadMessagesReadsFreshFromStore(t *testing.T) {
	m := newTestModel(t)
	plant(t, m.store, "seed-a", model.ClassGreen, "x")

	m.openThreadEditor("seed-a", model.ClassGreen)
	if msgs := m.openThreadMessages(); len(msgs) != 0 {
		t.Fatalf("expected no messages yet, got %d", len(msgs))
	}

	// Another writer appends behind the modal's back.
	seeds := m.store.LoadAll()
	seed, _ := store.FindByID(seeds, "seed-a")
	seed.Thread(model.ClassGreen, true).Append("elsewhere", "outside write")
	if err := m.store.SaveAll(seeds); err != nil {
		t.Fatalf("outside save: %v", err)
	}

	msgs := m.openThreadMessages()
	if len(msgs) != 1 || msgs[0].By != "elsewhere" {
		t.Fatalf("modal should see the outside write: %+v", msgs)
	}
}
