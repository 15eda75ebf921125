package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"grove-cli/internal/model"
)

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.resizing {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styleMuted().Render("Resizing…"))
	}
	if m.modal != modalNone {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderModal())
	}

	var body string
	if m.view == viewAsk {
		body = m.renderAskBody()
	} else {
		body = m.renderGroveBody()
	}

	out := strings.Join([]string{
		m.renderHeader(),
		body,
		m.renderFooter(),
	}, "\n")
	return normalizePane(out, m.width, m.height)
}

// renderHeader is two rows: title with view tabs, then filter + count.
func (m *appModel) renderHeader() string {
	title := styleHeader().Render("Memory Grove")

	tab := func(label string, active bool) string {
		st := styleMuted()
		if active {
			st = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
		}
		return st.Render(label)
	}
	tabs := tab("Ask", m.view == viewAsk) + styleMuted().Render(" · ") + tab("Grove", m.view == viewGrove)

	count := m.store.Count()
	badge := styleMuted().Render(fmt.Sprintf("%d seed(s)", count))

	filter := ""
	if m.view == viewGrove {
		label := "all"
		if cls, ok := model.ParseClass(m.filter); ok {
			label = string(cls)
		}
		filter = styleMuted().Render("filter: ") +
			lipgloss.NewStyle().Foreground(classColorForFilter(m.filter)).Render(label)
	}

	top := title + "   " + tabs
	bottom := badge
	if filter != "" {
		bottom += "   " + filter
	}
	return normalizePane(top+"\n"+bottom, m.width, 2)
}

func classColorForFilter(tag string) lipgloss.TerminalColor {
	if cls, ok := model.ParseClass(tag); ok {
		return classColor(cls)
	}
	return colorChromeMutedFg
}

func (m *appModel) renderFooter() string {
	help := ""
	if m.view == viewAsk {
		switch m.askFocus {
		case askFocusQuestion:
			help = "enter: ask   tab: grove   ctrl+c: quit"
		case askFocusClassify:
			help = "1/2/3: how it felt   tab: note   enter: plant   esc: ask again"
		default:
			help = "ctrl+s: plant   tab: back   esc: back"
		}
	} else {
		help = "arrows: move   enter: open   n: thread   0-3: filter   x: export   a/tab: ask   q: quit"
	}

	line := styleMuted().Render(help)
	toast := ""
	if m.toastText != "" {
		toast = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(m.toastText)
	}
	return normalizePane(toast+"\n"+line, m.width, 2)
}

// renderAskBody stacks the question input, the ghost's reply panel, and the
// classify/note controls that appear once a reply is shown.
func (m *appModel) renderAskBody() string {
	rows := m.height - groveChromeRows
	if rows < 1 {
		rows = 1
	}
	innerW := m.width - 4
	if innerW < 20 {
		innerW = 20
	}

	var b strings.Builder
	b.WriteString(styleMuted().Render("Ask the ghost in the machine:"))
	b.WriteString("\n")
	b.WriteString(m.question.View())
	b.WriteString("\n\n")

	switch {
	case m.asking:
		b.WriteString(styleMuted().Render("The ghost is thinking…"))
	case m.askErr != "":
		b.WriteString(styleError().Render(m.askErr))
	case m.ghostShown:
		b.WriteString(m.renderTombPanel(innerW))
		b.WriteString("\n\n")
		b.WriteString(styleMuted().Render("How did it feel?"))
		b.WriteString("\n")
		b.WriteString(askClassRow(m.selectedClass, innerW))
		if m.askFocus == askFocusNote {
			b.WriteString("\n\n")
			b.WriteString(styleMuted().Render("Note for the grave (optional):"))
			b.WriteString("\n")
			b.WriteString(m.noteInput.View())
		}
	}

	pad := lipgloss.NewStyle().Padding(0, 2)
	return normalizePane(pad.Render(b.String()), m.width, rows)
}

// renderTombPanel frames the reply the way a fresh stone will show it.
func (m *appModel) renderTombPanel(width int) string {
	text := m.ghostText
	if strings.TrimSpace(text) == "" {
		text = "The ghost is silent for now…"
	}
	inner := width - 4
	if inner < 16 {
		inner = 16
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorStoneBorder).
		Padding(0, 1)
	return box.Render(renderMarkdown(text, inner))
}

func askClassRow(active model.Class, width int) string {
	base := lipgloss.NewStyle().Padding(0, 1)
	sel := base.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	items := make([]string, 0, 3)
	for i, cls := range model.Classes() {
		label := fmt.Sprintf("%d %s %s", i+1, classGlyph(cls), cls.Title())
		st := base.Foreground(classColor(cls))
		if active != "" && cls == active {
			st = sel
		}
		items = append(items, st.Render(label))
	}
	return normalizePane(lipgloss.JoinHorizontal(lipgloss.Top, items...), width, 1)
}
