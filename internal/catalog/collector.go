package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/homed-tools/hddl/internal/linejson"
)

// Errors reported for a single device library file.
var (
	ErrRead      = errors.New("couldn't open file")
	ErrParse     = errors.New("failed to parse JSON file")
	ErrEmpty     = errors.New("the JSON is empty")
	ErrNotObject = errors.New("top-level value is not an object")
)

const descriptionKey = "description"

// FileRef identifies one device library file in a Source. Path is whatever
// the source needs to read it (a filesystem path or a URL) and doubles as
// the label in diagnostics.
type FileRef struct {
	Name string
	Path string
}

// Source lists and reads device library files.
type Source interface {
	List(ctx context.Context) ([]FileRef, error)
	Read(ctx context.Context, ref FileRef) (string, error)
}

// Skip records a file that was left out of the catalog
type Skip struct {
	Ref FileRef
	Err error
}

// Result summarizes a CollectFrom run
type Result struct {
	Collected int
	Skipped   []Skip
}

// Collector parses device library files into a Catalog, registering unknown
// files in the alias table as it goes.
type Collector struct {
	catalog  *Catalog
	aliases  *AliasTable
	parse    []linejson.Option
	failFast bool
}

// CollectorOption configures a Collector
type CollectorOption func(*Collector)

// WithStrictJSON rejects files with trailing data after the top-level value.
func WithStrictJSON() CollectorOption {
	return func(c *Collector) { c.parse = append(c.parse, linejson.Strict()) }
}

// WithFailFast makes CollectFrom stop at the first file that cannot be read,
// parsed, or is empty. By default such files are skipped.
func WithFailFast() CollectorOption {
	return func(c *Collector) { c.failFast = true }
}

// NewCollector creates a collector filling cat and aliases
func NewCollector(cat *Catalog, aliases *AliasTable, opts ...CollectorOption) *Collector {
	c := &Collector{catalog: cat, aliases: aliases}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect extracts description entries from one file's content. Errors wrap
// ErrParse, ErrEmpty or ErrNotObject; on error nothing is added.
func (c *Collector) Collect(fileName, label, content string) error {
	doc := linejson.Parse(content, c.parse...)
	if doc.IsError() {
		return fmt.Errorf("%w %s: %v", ErrParse, label, doc.Err())
	}

	if (doc.Kind() == linejson.KindObject || doc.Kind() == linejson.KindArray) && doc.Len() == 0 {
		return fmt.Errorf("%w. %s", ErrEmpty, label)
	}

	root, err := doc.Object()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotObject, label)
	}

	c.aliases.Ensure(fileName)
	c.catalog.Ensure(fileName)

	for i := 0; i < root.Len(); i++ {
		devices, err := root.ValueAt(i).Array()
		if err != nil {
			continue
		}
		for _, device := range devices {
			obj, err := device.Object()
			if err != nil {
				continue
			}
			key, v, ok := obj.Lookup(descriptionKey)
			if !ok {
				continue
			}
			name, err := v.Str()
			if err != nil {
				continue
			}
			c.catalog.Add(fileName, Entry{Name: name, Line: key.Line})
		}
	}
	return nil
}

// CollectFrom reads every file the source lists and collects it. Files that
// fail are recorded in Result.Skipped, or abort the run under WithFailFast.
// Files whose top-level value is not an object are ignored silently.
func (c *Collector) CollectFrom(ctx context.Context, src Source) (Result, error) {
	var res Result

	refs, err := src.List(ctx)
	if err != nil {
		return res, err
	}

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		err := c.collectRef(ctx, src, ref)
		switch {
		case err == nil:
			res.Collected++
		case errors.Is(err, ErrNotObject):
		case c.failFast:
			return res, err
		default:
			res.Skipped = append(res.Skipped, Skip{Ref: ref, Err: err})
		}
	}
	return res, nil
}

func (c *Collector) collectRef(ctx context.Context, src Source, ref FileRef) error {
	content, err := src.Read(ctx, ref)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrRead, ref.Path, err)
	}
	return c.Collect(ref.Name, ref.Path, content)
}
