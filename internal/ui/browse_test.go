package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/homed-tools/hddl/internal/catalog"
)

func testItems() []deviceItem {
	sections := []catalog.Section{
		{File: "ikea.json", Title: "IKEA", Entries: []catalog.Entry{
			{Name: "TRADFRI bulb", Line: 4},
			{Name: "STYRBAR remote", Line: 20},
		}},
		{File: "other.json", Title: "...", Entries: []catalog.Entry{
			{Name: "Generic plug", Line: 7},
		}},
	}
	return buildItems(sections, catalog.NewRenderer("https://example.com/lib"))
}

func TestBuildItems(t *testing.T) {
	items := testItems()

	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	if items[1].link != "https://example.com/lib/ikea.json#L20" {
		t.Errorf("link = %q", items[1].link)
	}
	if items[2].section != "..." || items[2].name != "Generic plug" {
		t.Errorf("last item = %+v", items[2])
	}
}

func TestBrowseFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query", "", []string{"TRADFRI bulb", "STYRBAR remote", "Generic plug"}},
		{"by name", "bulb", []string{"TRADFRI bulb"}},
		{"by section", "ikea", []string{"TRADFRI bulb", "STYRBAR remote"}},
		{"by file", "other.json", []string{"Generic plug"}},
		{"all words", "ikea remote", []string{"STYRBAR remote"}},
		{"case insensitive", "PLUG", []string{"Generic plug"}},
		{"no match", "zigbee", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newBrowseModel(testItems())
			m.textInput.SetValue(tt.query)
			m.filter()

			var got []string
			for _, item := range m.filtered {
				got = append(got, item.name)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("filtered = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBrowseNavigationAndSelect(t *testing.T) {
	var model tea.Model = newBrowseModel(testItems())

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	if c := model.(browseModel).cursor; c != 2 {
		t.Fatalf("cursor = %d, want 2 (clamped)", c)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should return a quit command")
	}
	m := model.(browseModel)
	if m.selected == nil || m.selected.name != "STYRBAR remote" {
		t.Errorf("selected = %+v, want STYRBAR remote", m.selected)
	}
}

func TestBrowseEscQuitsWithoutSelection(t *testing.T) {
	model, cmd := newBrowseModel(testItems()).Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should return a quit command")
	}
	m := model.(browseModel)
	if !m.quitting || m.selected != nil {
		t.Errorf("quitting = %v, selected = %v", m.quitting, m.selected)
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestBrowseView(t *testing.T) {
	model, _ := newBrowseModel(testItems()).Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := model.View()

	for _, want := range []string{"TRADFRI bulb", "https://example.com/lib/ikea.json#L4", "3/3", "ESC exit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestBrowseNoItems(t *testing.T) {
	if err := Browse(nil, catalog.NewRenderer(""), &strings.Builder{}); err == nil {
		t.Error("expected error for empty catalogue")
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("Aqara/Xiaomi", 20); got != "Aqara/Xiaomi" {
		t.Errorf("short string changed: %q", got)
	}
	if got := truncateString("Поддерживаемые устройства", 5); got != "Подд…" {
		t.Errorf("truncateString() = %q", got)
	}
}
