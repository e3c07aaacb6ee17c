package catalog

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	// FallbackFile holds uncategorized devices; its section always renders last.
	FallbackFile = "other.json"
	// FallbackLabel is the heading used for FallbackFile.
	FallbackLabel = "..."
)

// Alias maps a device library file name to a section title
type Alias struct {
	File    string
	Display string
}

var defaultAliases = []Alias{
	{"lumi.json", "Aqara/Xiaomi"},
	{"hue.json", "Philips"},
	{"gledopto.json", "GLEDOPTO"},
	{"gs.json", "GS"},
	{"konke.json", "Konke"},
	{"lifecontrol.json", "Life Control"},
	{"orvibo.json", "ORVIBO"},
	{"perenio.json", "Perenio"},
	{"yandex.json", "Yandex"},
	{"sonoff.json", "Sonoff"},
	{"ikea.json", "IKEA"},
	{"tuya.json", "TUYA"},
	{"efekta.json", "Efekta"},
	{"modkam.json", "Modkam"},
	{"pushok.json", "PushOk"},
	{"bacchus.json", "Bacchus"},
	{"homed.json", "HOMEd"},
	{"slacky.json", "Slacky"},
	{FallbackFile, FallbackLabel},
}

// AliasTable is an insertion-ordered set of aliases with unique file names
type AliasTable struct {
	aliases []Alias
	index   map[string]int
}

// NewAliasTable creates a table seeded with the known device library files
func NewAliasTable() *AliasTable {
	t := NewEmptyAliasTable()
	for _, a := range defaultAliases {
		t.Add(a.File, a.Display)
	}
	return t
}

// NewEmptyAliasTable creates a table with no aliases
func NewEmptyAliasTable() *AliasTable {
	return &AliasTable{index: make(map[string]int)}
}

// Add appends an alias unless the file is already known.
func (t *AliasTable) Add(file, display string) bool {
	if _, ok := t.index[file]; ok {
		return false
	}
	t.index[file] = len(t.aliases)
	t.aliases = append(t.aliases, Alias{File: file, Display: display})
	return true
}

// Set replaces the display name of a known file or appends a new alias.
func (t *AliasTable) Set(file, display string) {
	if i, ok := t.index[file]; ok {
		t.aliases[i].Display = display
		return
	}
	t.Add(file, display)
}

// Ensure adds file under its default display name if it is not known yet.
func (t *AliasTable) Ensure(file string) {
	t.Add(file, DefaultDisplayName(file))
}

// Lookup returns the display name for file
func (t *AliasTable) Lookup(file string) (string, bool) {
	i, ok := t.index[file]
	if !ok {
		return "", false
	}
	return t.aliases[i].Display, true
}

func (t *AliasTable) Has(file string) bool {
	_, ok := t.index[file]
	return ok
}

func (t *AliasTable) Len() int {
	return len(t.aliases)
}

// Aliases returns a copy of the aliases in insertion order
func (t *AliasTable) Aliases() []Alias {
	return append([]Alias(nil), t.aliases...)
}

// Sorted returns the aliases stable-sorted by display name (byte order)
func (t *AliasTable) Sorted() []Alias {
	sorted := t.Aliases()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Display < sorted[j].Display
	})
	return sorted
}

// DefaultDisplayName is the base name of file without its extension
func DefaultDisplayName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
