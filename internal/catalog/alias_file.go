package catalog

import (
	"fmt"
	"os"
	"sort"

	toml "github.com/pelletier/go-toml/v2"
)

// aliasFile is the TOML layout of an alias override file:
//
//	[aliases]
//	"lumi.json" = "Aqara"
//	"acme.json" = "ACME"
type aliasFile struct {
	Aliases map[string]string `toml:"aliases"`
}

// LoadAliasFile applies the aliases in a TOML file to t. Known files get the
// new display name; unknown files are appended in file name order.
func (t *AliasTable) LoadAliasFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading alias file: %w", err)
	}

	var f aliasFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing alias file %s: %w", path, err)
	}

	files := make([]string, 0, len(f.Aliases))
	for file := range f.Aliases {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		t.Set(file, f.Aliases[file])
	}
	return nil
}
