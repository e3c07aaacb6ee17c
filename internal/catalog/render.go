package catalog

import (
	"fmt"
	"io"
	"strings"
)

// DefaultLinkBase points at the device library directory of the upstream
// repository; entries link to <base>/<file>#L<line>.
const DefaultLinkBase = "https://github.com/u236/homed-service-zigbee/blob/master/deploy/data/usr/share/homed-zigbee"

// Header is written at the top of every rendered document.
const Header = "# ZigBee: Поддерживаемые устройства\n" +
	"\n" +
	"## Общие сведения\n" +
	"\n" +
	"Список поддерживаемых устройств невелик, но он периодически пополняется. " +
	"Для добавления поддержки новых устройств можно создать запрос на " +
	"[GitHub](https://github.com/u236/homed-service-zigbee/issues) или заглянуть в " +
	"[чат проекта](https://t.me/homed_chat) в Telegram.\n" +
	"\n" +
	"Представленный ниже список поддерживаемых устройств формируется из файлов " +
	"библиотеки устройств, в полу-автоматическом режиме, поэтому он может быть " +
	"не совсем актуальным.\n" +
	"\n"

// Section is one rendered group of entries
type Section struct {
	File    string
	Title   string
	Entries []Entry
}

// Sections orders the collected files for output: files known to the alias
// table sorted by display name, skipping files that were never collected,
// then the fallback file, which is always present.
func Sections(cat *Catalog, aliases *AliasTable) []Section {
	var sections []Section
	for _, a := range aliases.Sorted() {
		if a.File == FallbackFile {
			continue
		}
		entries, ok := cat.Entries(a.File)
		if !ok {
			continue
		}
		sections = append(sections, Section{File: a.File, Title: a.Display, Entries: entries})
	}

	fallback, _ := cat.Entries(FallbackFile)
	return append(sections, Section{File: FallbackFile, Title: FallbackLabel, Entries: fallback})
}

// Renderer writes a catalog as Markdown
type Renderer struct {
	LinkBase string
	Header   string
}

// NewRenderer creates a renderer with the default header
func NewRenderer(linkBase string) *Renderer {
	if linkBase == "" {
		linkBase = DefaultLinkBase
	}
	return &Renderer{
		LinkBase: strings.TrimSuffix(linkBase, "/"),
		Header:   Header,
	}
}

// Link returns the URL of line in file
func (r *Renderer) Link(file string, line int) string {
	return fmt.Sprintf("%s/%s#L%d", r.LinkBase, file, line)
}

// Render writes the header and one section per collected file
func (r *Renderer) Render(w io.Writer, cat *Catalog, aliases *AliasTable) error {
	var b strings.Builder
	b.WriteString(r.Header)

	for _, s := range Sections(cat, aliases) {
		b.WriteString("## ")
		b.WriteString(s.Title)
		b.WriteString("\n\n")
		for _, e := range s.Entries {
			fmt.Fprintf(&b, "* [%s](%s)\n", e.Name, r.Link(s.File, e.Line))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
