package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	borderStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder())
	titleStyle     = lipgloss.NewStyle().Bold(true)
	checkboxStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	linkInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle  = lipgloss.NewStyle().Background(lipgloss.Color("8")).Bold(true)
	inputStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	derivedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	buttonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dangerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	sectionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	worktreeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	listTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// rect is a hit-test region in terminal cells. Regions are outputs of the
// frame layout, recomputed from the current size on every use.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

const bottomBarHeight = 3

// layoutRegions computes the list and button rectangles for the Normal
// frame at the model's current size.
func (m model) layoutRegions() (list rect, button rect) {
	if m.width <= 0 || m.height <= 0 {
		return rect{}, rect{}
	}
	listH := m.height - bottomBarHeight
	if listH < 0 {
		listH = 0
	}
	helpW := m.width * 4 / 5
	list = rect{x: 0, y: 0, w: m.width, h: listH}
	button = rect{x: helpW, y: listH, w: m.width - helpW, h: bottomBarHeight}
	return list, button
}

// listScrollOffset picks the first visible row so the selection never
// falls outside the viewport. Recomputed every frame, like the regions.
func listScrollOffset(selected, count, visible int) int {
	if visible <= 0 || count <= visible || selected < 0 {
		return 0
	}
	offset := selected - visible + 1
	if offset < 0 {
		offset = 0
	}
	if max := count - visible; offset > max {
		offset = max
	}
	return offset
}

// listRowAt maps a click inside the list region to a todo index. The first
// row sits below the border and the title line; offset is the scroll
// position the frame was rendered with.
func listRowAt(list rect, x, y, offset, count int) (int, bool) {
	if !list.contains(x, y) {
		return 0, false
	}
	row := y - (list.y + 2)
	if row < 0 || row >= list.h-3 {
		return 0, false
	}
	idx := offset + row
	if idx >= count {
		return 0, false
	}
	return idx, true
}

func (m model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	switch m.mode {
	case modeCreating:
		return m.viewCreating()
	case modeHelp:
		return m.viewHelp()
	case modeConfirmDelete:
		return m.viewConfirmDelete()
	default:
		return m.viewNormal()
	}
}

func (m model) viewNormal() string {
	list, button := m.layoutRegions()
	listBox := m.renderList(list.w, list.h)
	helpBox := renderHelpBar(button.x, bottomBarHeight)
	buttonBox := renderNewButton(button.w, bottomBarHeight, m.buttonFocused)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, helpBox, buttonBox)
	return lipgloss.JoinVertical(lipgloss.Left, listBox, bottom)
}

func (m model) renderList(w, h int) string {
	innerW := w - 2
	innerH := h - 2
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}

	lines := make([]string, 0, innerH)
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	} else {
		lines = append(lines, listTitleStyle.Render("Todos & Worktrees"))
	}

	known := make(map[string]Worktree, len(m.worktrees))
	for _, wt := range m.worktrees {
		known[wt.Name] = wt
	}

	visible := innerH - 1
	if visible < 0 {
		visible = 0
	}
	offset := listScrollOffset(m.listIndex, len(m.store.Todos), visible)

	for i := offset; i < len(m.store.Todos); i++ {
		todo := m.store.Todos[i]
		if len(lines) >= innerH {
			break
		}
		checkbox := "[ ] "
		textStyle := pendingStyle
		if todo.Status == TodoStatusDone {
			checkbox = "[✓] "
			textStyle = doneStyle
		}

		info := ""
		if todo.Worktree != "" {
			if wt, ok := known[todo.Worktree]; ok {
				label := fmt.Sprintf(" (%s)", todo.Worktree)
				info = linkInfoStyle.Render(termenv.Hyperlink("file://"+wt.Path, label))
			} else {
				info = linkInfoStyle.Render(fmt.Sprintf(" (%s) [deleted]", todo.Worktree))
			}
		}

		cursor := "   "
		line := cursor + checkboxStyle.Render(checkbox) + textStyle.Render(todo.Description) + info
		if i == m.listIndex && !m.buttonFocused {
			line = selectedStyle.Render(">> ") + checkboxStyle.Render(checkbox) + textStyle.Bold(true).Render(todo.Description) + info
		}
		lines = append(lines, line)
	}

	if len(m.store.Todos) == 0 && innerH > 1 {
		lines = append(lines, helpStyle.Render("No todos yet. Press n to start something."))
	}

	content := strings.Join(lines, "\n")
	return borderStyle.Width(innerW).Height(innerH).Render(content)
}

// renderHelpBar adapts verbosity to the available width.
func renderHelpBar(w, h int) string {
	var text string
	switch {
	case w >= 90:
		text = "q: Quit | n: New | d: Delete | r: Refresh | Tab: Toggle | Enter: Select | ?: Help"
	case w >= 70:
		text = "q: Quit | n: New | d: Delete | r: Refresh | Tab: Toggle | ?: Help"
	case w >= 50:
		text = "q: Quit | n: New | d: Del | r: Refresh | ?: Help"
	default:
		text = "q: Quit | n: New | d: Del | ?: Help"
	}
	return borderStyle.Width(w - 2).Height(h - 2).Render(helpStyle.Render(text))
}

func renderNewButton(w, h int, focused bool) string {
	label := buttonStyle.Render("[ New ]")
	box := borderStyle.Width(w - 2).Height(h - 2).Align(lipgloss.Center)
	if focused {
		box = box.BorderForeground(lipgloss.Color("2"))
	}
	return box.Render(label)
}

func (m model) viewCreating() string {
	innerW := m.width - 2
	if innerW < 0 {
		innerW = 0
	}

	descBox := borderStyle.Width(innerW).Render(
		titleStyle.Render("Description") + "\n" + inputStyle.Render(m.descInput.View()))
	nameBox := borderStyle.Width(innerW).Render(
		titleStyle.Render("Worktree Name (auto-generated)") + "\n" + derivedStyle.Render(m.derivedName))

	sections := []string{descBox, nameBox}
	if m.errMsg != "" {
		sections = append(sections, borderStyle.Width(innerW).Render(errorStyle.Render(m.errMsg)))
	}

	footerText := "Type a description to continue | Esc: Cancel"
	if m.canCreate() {
		footerText = "Enter: Create | Esc: Cancel"
	}
	sections = append(sections, borderStyle.Width(innerW).Render(helpStyle.Render(footerText)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m model) viewHelp() string {
	innerW := m.width - 2
	if innerW < 0 {
		innerW = 0
	}

	row := func(key, desc string) string {
		return "  " + keyStyle.Render(fmt.Sprintf("%-11s", key)) + desc
	}
	lines := []string{
		sectionStyle.Render("Navigation"),
		"",
		row("↑/k", "Move selection up"),
		row("↓/j", "Move selection down"),
		row("Tab", "Toggle between list and New button"),
		row("Enter", "Open tmux session or activate button"),
		"",
		sectionStyle.Render("Actions"),
		"",
		row("n/c", "Create new worktree with a linked todo"),
		row("d", "Delete selected worktree"),
		row("r", "Refresh worktrees and todos"),
		row("?", "Toggle this help screen"),
		row("q/Esc", "Quit"),
	}

	body := borderStyle.Width(innerW).Height(m.height - 2 - bottomBarHeight).Render(strings.Join(lines, "\n"))
	footer := borderStyle.Width(innerW).Render(helpStyle.Render("Press ? or Esc to close"))
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (m model) viewConfirmDelete() string {
	list, _ := m.layoutRegions()
	listBox := m.renderList(list.w, m.height-8)

	lines := make([]string, 0, 4)
	if m.deleteDirty {
		lines = append(lines,
			dangerStyle.Render("WARNING: ")+warnStyle.Render("This worktree has uncommitted changes!"),
			"")
	}
	lines = append(lines,
		"Delete worktree '"+worktreeStyle.Render(m.deleteTarget.Name)+"'?",
		"")
	yes := "es | "
	if m.deleteDirty {
		yes = "es (force delete) | "
	}
	lines = append(lines,
		buttonStyle.Render("Y")+yes+dangerStyle.Render("N")+"o / Esc")

	confirm := borderStyle.Width(m.width - 2).Render(
		titleStyle.Render("Confirm Delete") + "\n" + strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, listBox, confirm)
}
