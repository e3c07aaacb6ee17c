package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/homed-tools/hddl/internal/catalog"
)

func TestPrinterLevels(t *testing.T) {
	var quiet, verbose strings.Builder

	NewPrinter(&quiet, false).Info("collected %d", 3)
	NewPrinter(&verbose, true).Info("collected %d", 3)

	if quiet.Len() != 0 {
		t.Errorf("Info() printed without verbose: %q", quiet.String())
	}
	if !strings.Contains(verbose.String(), "collected 3") {
		t.Errorf("Info() = %q", verbose.String())
	}

	var b strings.Builder
	p := NewPrinter(&b, false)
	p.Warn("skipping %s", "a.json")
	p.Error("boom")
	out := b.String()
	for _, want := range []string{"warning:", "skipping a.json", "error:", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestPrinterResult(t *testing.T) {
	cat := catalog.NewCatalog()
	cat.Add("hue.json", catalog.Entry{Name: "Bulb", Line: 3})
	res := catalog.Result{
		Collected: 1,
		Skipped: []catalog.Skip{{
			Ref: catalog.FileRef{Name: "bad.json", Path: "/lib/bad.json"},
			Err: errors.New("failed to parse JSON file /lib/bad.json: line 1: missing string"),
		}},
	}

	var b strings.Builder
	NewPrinter(&b, true).Result(res, cat)
	out := b.String()

	if !strings.Contains(out, "/lib/bad.json") {
		t.Errorf("skip not reported: %q", out)
	}
	if !strings.Contains(out, "collected 1 file(s), 1 device(s), skipped 1") {
		t.Errorf("summary missing: %q", out)
	}
}
