package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"grove-cli/internal/model"
	"grove-cli/internal/store"
)

// modalBodyWidth is the usable content width inside a modal of outer width w.
func modalBodyWidth(w int) int {
	bw := w - 6 // border + padding
	if bw < 20 {
		bw = 20
	}
	return bw
}

// renderModalBox wraps content in the shared modal chrome: rounded border,
// bold title row, fixed width.
func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)
	header := styleHeader().Width(bodyW).Render(title)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Width(bodyW + 4)
	return box.Render(header + "\n\n" + content)
}

func (m *appModel) modalWidth() int {
	w := m.width - 8
	if w > 72 {
		w = 72
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (m *appModel) renderModal() string {
	switch m.modal {
	case modalSeedEdit:
		return m.renderSeedEditor()
	case modalThread:
		return m.renderThreadModal()
	case modalConfirmDelete:
		return renderConfirmModal(m.modalWidth(), "Remove this seed?",
			"The stone and all its notes will be gone from the grove.",
			"Remove", "Keep", m.confirmFocus)
	}
	return ""
}

func (m *appModel) renderSeedEditor() string {
	width := m.modalWidth()
	bodyW := modalBodyWidth(width)

	seeds := m.store.LoadAll()
	seed, ok := store.FindByID(seeds, m.modalSeedID)
	if !ok {
		return renderModalBox(width, "Seed", styleMuted().Render("This seed is gone."))
	}

	var b strings.Builder
	b.WriteString(renderMarkdown(seed.Ghost, bodyW))
	b.WriteString("\n\n")
	b.WriteString(renderClassPicker(m.modalClass, seed, bodyW))
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Render("Note"))
	b.WriteString("\n")
	b.WriteString(m.editorNote.View())
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Width(bodyW).Render(
		"tab: note focus   1/2/3: class   ctrl+s: save   ctrl+t: thread   ctrl+d: remove   esc: close"))

	return renderModalBox(width, "Seed", b.String())
}

// renderClassPicker shows the three classes with the active one highlighted
// and each thread's message count next to its label.
func renderClassPicker(active model.Class, seed *model.Seed, width int) string {
	base := lipgloss.NewStyle().Padding(0, 1)
	sel := base.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	items := make([]string, 0, 3)
	for i, cls := range []model.Class{model.ClassGreen, model.ClassYellow, model.ClassRed} {
		count := 0
		if t := seed.Thread(cls, false); t != nil {
			count = len(t.Messages)
		}
		label := fmt.Sprintf("%d %s %s", i+1, classGlyph(cls), cls.Title())
		if count > 0 {
			label += fmt.Sprintf(" (%d)", count)
		}
		st := base.Foreground(classColor(cls))
		if cls == active.OrDefault() {
			st = sel
		}
		items = append(items, st.Render(label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, items...)
	return normalizePane(row, width, 1)
}

func (m *appModel) renderThreadModal() string {
	width := m.modalWidth()
	bodyW := modalBodyWidth(width)

	cls := m.modalClass.OrDefault()
	title := classGlyph(cls) + " " + cls.Title() + " thread"

	msgs := m.openThreadMessages()
	var b strings.Builder
	if len(msgs) == 0 {
		b.WriteString(styleMuted().Width(bodyW).Render("No notes yet — be the first to reply."))
	} else {
		for i, msg := range msgs {
			if i > 0 {
				b.WriteString("\n")
			}
			by := lipgloss.NewStyle().Bold(true).Foreground(classColor(cls)).Render(msg.By)
			at := styleMuted().Render(shortTime(msg.At))
			b.WriteString(by + "  " + at + "\n")
			b.WriteString(normalizePane(msg.Text, bodyW, 0) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.replyInput.View())
	b.WriteString("\n\n")
	b.WriteString(styleMuted().Width(bodyW).Render("ctrl+s: post   esc: close"))

	return renderModalBox(width, title, b.String())
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	// Avoid borders here: some terminals show background artifacts when
	// nesting bordered components inside a modal.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: back")

	content := strings.Join([]string{
		normalizePane(body, bodyW, 0),
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

// shortTime trims an RFC3339 timestamp for inline display.
func shortTime(at string) string {
	if len(at) >= 16 {
		return strings.Replace(at[:16], "T", " ", 1)
	}
	return at
}
