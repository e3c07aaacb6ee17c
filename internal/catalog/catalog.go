// Package catalog collects device descriptions from device library files and
// renders them as a Markdown list of supported devices.
package catalog

// Entry is one device description and the line its "description" key is on
type Entry struct {
	Name string
	Line int
}

// Catalog holds collected entries per device library file. Files keep the
// order they were first seen in, entries keep document order.
type Catalog struct {
	files   []string
	entries map[string][]Entry
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		entries: make(map[string][]Entry),
	}
}

// Ensure registers file with an empty entry list if it is not present.
func (c *Catalog) Ensure(file string) {
	if _, ok := c.entries[file]; ok {
		return
	}
	c.files = append(c.files, file)
	c.entries[file] = []Entry{}
}

// Add appends an entry to file's list
func (c *Catalog) Add(file string, e Entry) {
	c.Ensure(file)
	c.entries[file] = append(c.entries[file], e)
}

// Entries returns file's entries and whether the file was collected at all
func (c *Catalog) Entries(file string) ([]Entry, bool) {
	e, ok := c.entries[file]
	return e, ok
}

// Files returns collected file names in first-seen order
func (c *Catalog) Files() []string {
	return append([]string(nil), c.files...)
}

// Count returns the total number of entries across all files
func (c *Catalog) Count() int {
	n := 0
	for _, e := range c.entries {
		n += len(e)
	}
	return n
}
