// Package ui renders the interactive task list.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aitodo/internal/task"
	"aitodo/internal/theme"
)

// Run starts the TUI on the given store. The store makes every
// business decision (ordering, filtering, remaining count); the TUI
// only projects its state and forwards key presses as store calls.
func Run(ctx context.Context, store *task.Store) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newModel(store)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type model struct {
	store  *task.Store
	input  textinput.Model
	styles styles

	cursor   int
	adding   bool
	showHelp bool
	width    int
	height   int
}

func newModel(store *task.Store) *model {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 200
	ti.Width = 48

	m := &model{
		store:  store,
		input:  ti,
		styles: newStyles(store.Theme()),
	}
	store.OnThemeChange(func(t theme.Theme) {
		m.styles = newStyles(t)
	})
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m *model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	case "enter":
		m.store.Add(m.input.Value())
		m.adding = false
		m.input.Blur()
		m.input.SetValue("")
		m.cursor = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "a", "i":
		m.adding = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case " ", "x", "enter":
		if t, ok := m.selected(); ok {
			m.store.Toggle(t.ID)
		}
	case "d", "backspace":
		if t, ok := m.selected(); ok {
			m.store.Delete(t.ID)
			m.clampCursor()
		}
	case "c":
		m.store.ClearCompleted()
		m.clampCursor()
	case "1":
		m.store.SetFilter(task.FilterAll)
		m.clampCursor()
	case "2":
		m.store.SetFilter(task.FilterActive)
		m.clampCursor()
	case "3":
		m.store.SetFilter(task.FilterCompleted)
		m.clampCursor()
	case "t":
		m.store.ToggleTheme()
	case "h", "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *model) selected() (task.Task, bool) {
	visible := m.store.Filtered()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return task.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *model) clampCursor() {
	max := len(m.store.Filtered()) - 1
	if m.cursor > max {
		m.cursor = max
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("aitodo"))
	b.WriteString("\n\n")

	if m.showHelp {
		m.writeHelp(&b)
		return b.String()
	}

	m.writeFilterTabs(&b)
	b.WriteString("\n\n")

	if m.adding {
		b.WriteString(m.styles.inputFrame.Render(m.input.View()))
		b.WriteString("\n\n")
	}

	visible := m.store.Filtered()
	if len(visible) == 0 {
		b.WriteString(m.styles.empty.Render("  Nothing here. Press a to add a task."))
		b.WriteString("\n")
	}
	for i, t := range visible {
		b.WriteString(m.renderTask(t, i == m.cursor && !m.adding))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.count.Render(remainingLabel(m.store.Remaining())))
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("a add · space toggle · d delete · c clear done · 1/2/3 filter · t theme · h help · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *model) renderTask(t task.Task, selected bool) string {
	marker := "  "
	if selected {
		marker = m.styles.cursor.Render("> ")
	}
	label := truncateLabel(t.Text, m.width-8)
	box := "[ ]"
	text := m.styles.item.Render(label)
	if t.Done {
		box = "[x]"
		text = m.styles.done.Render(label)
	}
	return marker + m.styles.checkbox.Render(box) + " " + text
}

func (m *model) writeFilterTabs(b *strings.Builder) {
	current := m.store.Filter()
	tabs := make([]string, 0, 3)
	for i, f := range []task.Filter{task.FilterAll, task.FilterActive, task.FilterCompleted} {
		label := fmt.Sprintf("%d:%s", i+1, f)
		if f == current {
			tabs = append(tabs, m.styles.tabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.tabIdle.Render(label))
		}
	}
	b.WriteString("  " + strings.Join(tabs, "  "))
}

func (m *model) writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  a, i          Add a task\n")
	b.WriteString("  j/k, arrows   Move cursor\n")
	b.WriteString("  space, x      Toggle done\n")
	b.WriteString("  d, backspace  Delete task\n")
	b.WriteString("  c             Clear completed\n")
	b.WriteString("  1, 2, 3       Filter all/active/completed\n")
	b.WriteString("  t             Toggle light/dark theme\n")
	b.WriteString("  h, ?          Toggle this help screen\n")
	b.WriteString("  q, ctrl+c     Quit\n")
}

// truncateLabel shortens s to at most max display cells, appending
// "..." when cut. Widths too small to show anything useful (including
// the negative values seen before the first WindowSizeMsg) leave s
// untouched. Measures cells, not bytes, so wide runes count properly.
func truncateLabel(s string, max int) string {
	if max < 4 || lipgloss.Width(s) <= max {
		return s
	}
	var b strings.Builder
	cells := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if cells+w > max-3 {
			break
		}
		b.WriteRune(r)
		cells += w
	}
	return b.String() + "..."
}

func remainingLabel(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
