package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/homed-tools/hddl/internal/catalog"
)

// ============================================================================
// Device Item
// ============================================================================

// deviceItem is one catalogue entry with display metadata
type deviceItem struct {
	section string
	file    string
	name    string
	line    int
	link    string
}

// buildItems flattens sections in render order
func buildItems(sections []catalog.Section, r *catalog.Renderer) []deviceItem {
	var items []deviceItem
	for _, s := range sections {
		for _, e := range s.Entries {
			items = append(items, deviceItem{
				section: s.Title,
				file:    s.File,
				name:    e.Name,
				line:    e.Line,
				link:    r.Link(s.File, e.Line),
			})
		}
	}
	return items
}

// matchesQuery checks if the item matches all search words
func (item *deviceItem) matchesQuery(words []string) bool {
	for _, word := range words {
		if !containsIgnoreCase(item.name, word) &&
			!containsIgnoreCase(item.section, word) &&
			!containsIgnoreCase(item.file, word) {
			return false
		}
	}
	return true
}

// containsIgnoreCase expects substr to be lower-cased already
func containsIgnoreCase(s, substr string) bool {
	if len(substr) > len(s) {
		return false
	}
	return strings.Contains(strings.ToLower(s), substr)
}

// ============================================================================
// Debounce
// ============================================================================

// filterMsg triggers filtering after debounce
type filterMsg struct{}

// debounceFilter returns a command that triggers filtering after a delay
func debounceFilter() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return filterMsg{}
	})
}

// ============================================================================
// Browse Model
// ============================================================================

// browseModel is the Bubble Tea model for browsing the device catalogue
type browseModel struct {
	width     int
	height    int
	textInput textinput.Model
	quitting  bool

	items    []deviceItem
	filtered []deviceItem
	cursor   int
	offset   int // viewport scroll offset
	selected *deviceItem
}

func newBrowseModel(items []deviceItem) browseModel {
	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return browseModel{
		items:     items,
		filtered:  items,
		textInput: ti,
	}
}

// Init implements tea.Model
func (m browseModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 4
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
	case filterMsg:
		m.filter()
		return m, nil
	}

	prevQuery := m.textInput.Value()
	var tiCmd tea.Cmd
	m.textInput, tiCmd = m.textInput.Update(msg)
	cmds = append(cmds, tiCmd)

	// Only trigger debounced filter if query changed
	if m.textInput.Value() != prevQuery {
		cmds = append(cmds, debounceFilter())
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes navigation keys; other keys go to the text input
func (m *browseModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return tea.Quit
	case "enter":
		if m.cursor < len(m.filtered) {
			item := m.filtered[m.cursor]
			m.selected = &item
			return tea.Quit
		}
	case "up", "ctrl+p":
		m.moveCursor(-1)
	case "down", "ctrl+n":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-10)
	case "pgdown":
		m.moveCursor(10)
	case "home", "ctrl+a":
		m.cursor = 0
		m.adjustOffset()
	case "end", "ctrl+e":
		m.cursor = max(0, len(m.filtered)-1)
		m.adjustOffset()
	}
	return nil
}

// moveCursor moves the cursor by delta, clamping to valid range
func (m *browseModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(0, len(m.filtered)-1))
	m.adjustOffset()
}

// listHeight is the number of rows available to the list
func (m *browseModel) listHeight() int {
	return max(m.height-previewLines-inputLines, 3)
}

// adjustOffset ensures cursor is visible within viewport
func (m *browseModel) adjustOffset() {
	viewHeight := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+viewHeight {
		m.offset = m.cursor - viewHeight + 1
	}
	m.offset = clamp(m.offset, 0, max(0, len(m.filtered)-viewHeight))
}

// filter narrows the list to items matching every word of the query
func (m *browseModel) filter() {
	query := strings.TrimSpace(m.textInput.Value())

	if query == "" {
		m.filtered = m.items
	} else {
		words := strings.Fields(strings.ToLower(query))
		m.filtered = make([]deviceItem, 0, len(m.items))
		for i := range m.items {
			if m.items[i].matchesQuery(words) {
				m.filtered = append(m.filtered, m.items[i])
			}
		}
	}

	m.cursor = clamp(m.cursor, 0, max(0, len(m.filtered)-1))
	m.adjustOffset()
}

// ============================================================================
// Rendering
// ============================================================================

const (
	previewLines = 4 // section + name + link + divider
	inputLines   = 3 // divider + info + input
)

// View implements tea.Model
func (m browseModel) View() string {
	if m.quitting {
		return ""
	}

	width := max(m.width, 80)
	height := max(m.height, 24)

	var b strings.Builder
	b.WriteString(m.renderPreview(width))

	list := m.renderList(m.listHeight())
	b.WriteString(list)
	padding := max(height-previewLines-inputLines-strings.Count(list, "\n"), 0)
	b.WriteString(strings.Repeat("\n", padding))

	b.WriteString(m.renderInput(width))
	return b.String()
}

// renderPreview shows the item under the cursor
func (m browseModel) renderPreview(width int) string {
	var b strings.Builder
	if m.cursor < len(m.filtered) {
		item := m.filtered[m.cursor]
		b.WriteString(styles.PreviewSection.Render(item.section))
		b.WriteString("\n")
		b.WriteString(styles.PreviewName.Render(item.name))
		b.WriteString("\n")
		b.WriteString(styles.PreviewLink.Render(item.link))
		b.WriteString("\n")
	} else {
		b.WriteString("\n\n\n")
	}
	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	return b.String()
}

// renderList renders the visible window of the filtered list
func (m browseModel) renderList(maxHeight int) string {
	if len(m.filtered) == 0 {
		return ""
	}

	start := m.offset
	end := min(start+maxHeight, len(m.filtered))

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderListItem(m.filtered[i], i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

// renderListItem renders one "section  name" row
func (m browseModel) renderListItem(item deviceItem, selected bool) string {
	sectionStyle, nameStyle := styles.Section, styles.Name
	if selected {
		sectionStyle = styles.WithSelection(sectionStyle)
		nameStyle = styles.WithSelection(nameStyle)
	}

	section := fmt.Sprintf("%-20s", truncateString(item.section, 20))
	line := sectionStyle.Render(section) + nameStyle.Render("  "+item.name)
	if selected {
		return styles.Cursor.Render("▶ ") + line
	}
	return "  " + line
}

// renderInput renders the input section at the bottom
func (m browseModel) renderInput(width int) string {
	var b strings.Builder
	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(styles.Dim.Render(fmt.Sprintf("  %d/%d", len(m.filtered), len(m.items))))
	b.WriteString(" • ")
	b.WriteString(styles.Dim.Render("Enter print link"))
	b.WriteString(" • ")
	b.WriteString(styles.Dim.Render("ESC exit"))
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	return b.String()
}

// ============================================================================
// Run
// ============================================================================

// getTTY returns file handles for TUI input/output
// Uses /dev/tty so the selected link can be captured with $(hddl browse)
func getTTY() (in *os.File, out *os.File, cleanup func()) {
	var closers []func()

	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) == 0 {
		out, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			out = os.Stderr
		} else {
			closers = append(closers, func() { out.Close() })
		}

		in, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
		if err != nil {
			in = os.Stdin
		} else {
			closers = append(closers, func() { in.Close() })
		}

		// Tell lipgloss to use the TTY for color detection
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(out))

		return in, out, func() {
			for _, c := range closers {
				c()
			}
		}
	}

	return os.Stdin, os.Stdout, func() {}
}

// Browse shows the catalogue in an interactive list and writes the link of
// the chosen entry to w.
func Browse(sections []catalog.Section, r *catalog.Renderer, w io.Writer) error {
	items := buildItems(sections, r)
	if len(items) == 0 {
		return fmt.Errorf("no devices found")
	}

	ttyIn, ttyOut, cleanup := getTTY()
	p := tea.NewProgram(newBrowseModel(items), tea.WithAltScreen(), tea.WithOutput(ttyOut), tea.WithInput(ttyIn))
	finalModel, err := p.Run()
	cleanup()
	if err != nil {
		return err
	}

	result := finalModel.(browseModel)
	if result.selected == nil {
		return nil
	}
	_, err = fmt.Fprintln(w, result.selected.link)
	return err
}

// ============================================================================
// Helpers
// ============================================================================

func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}
