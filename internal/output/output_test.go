package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeClipboard struct {
	copied string
}

func (c *fakeClipboard) Copy(text string) error {
	c.copied = text
	return nil
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"print", ModePrint, false},
		{"file", ModeFile, false},
		{"copy", ModeCopy, false},
		{"exec", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDestinationPrint(t *testing.T) {
	var b strings.Builder
	d := NewDestination(ModePrint, "").WithStdout(&b)

	if err := d.Write("# doc\n"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if b.String() != "# doc\n" {
		t.Errorf("stdout = %q", b.String())
	}
}

func TestDestinationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devs.md")
	d := NewDestination(ModeFile, path)

	if err := d.Check(); err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if err := d.Write("# doc\n"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# doc\n" {
		t.Errorf("file = %q", data)
	}
}

func TestDestinationFileCheckFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "devs.md")
	if err := NewDestination(ModeFile, path).Check(); err == nil {
		t.Error("expected error for uncreatable file")
	}
}

func TestDestinationCopy(t *testing.T) {
	clip := &fakeClipboard{}
	d := NewDestination(ModeCopy, "").WithClipboard(clip)

	if err := d.Write("# doc\n"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if clip.copied != "# doc\n" {
		t.Errorf("copied = %q", clip.copied)
	}
}
