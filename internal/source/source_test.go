package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDirList(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "hue.json"), `{}`)
	writeFile(t, filepath.Join(root, "vendor", "ikea.json"), `{}`)
	writeFile(t, filepath.Join(root, "README.md"), `# readme`)
	writeFile(t, filepath.Join(root, "upper.JSON"), `{}`)

	refs, err := NewDir(root).List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	var names []string
	for _, r := range refs {
		names = append(names, r.Name)
		if !strings.HasPrefix(r.Path, root) {
			t.Errorf("path %q outside root", r.Path)
		}
	}
	if got := strings.Join(names, ","); got != "hue.json,ikea.json" {
		t.Errorf("names = %s, want hue.json,ikea.json", got)
	}
}

func TestDirListErrors(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.json")
	writeFile(t, file, `{}`)

	tests := []struct {
		name string
		root string
	}{
		{"missing", filepath.Join(root, "nope")},
		{"not a directory", file},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDir(tt.root).List(context.Background()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDirRead(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.json"), `{"a":[]}`)

	d := NewDir(root)
	refs, err := d.List(context.Background())
	if err != nil || len(refs) != 1 {
		t.Fatalf("List() = %v, %v", refs, err)
	}
	got, err := d.Read(context.Background(), refs[0])
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got != `{"a":[]}` {
		t.Errorf("Read() = %q", got)
	}
}

func newGitHubServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/contents", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[
			{"name": "hue.json", "type": "file", "download_url": "%[1]s/raw/hue.json"},
			{"name": "notes.txt", "type": "file", "download_url": "%[1]s/raw/notes.txt"},
			{"name": "sub", "type": "dir", "download_url": null},
			{"name": "gone.json", "type": "file", "download_url": "%[1]s/raw/gone.json"}
		]`, srv.URL)
	})
	mux.HandleFunc("/raw/hue.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hue":[{"description":"Bulb"}]}`)
	})
	mux.HandleFunc("/raw/gone.json", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGitHubListAndRead(t *testing.T) {
	srv := newGitHubServer(t)
	g := NewGitHub(srv.URL+"/contents", 0)

	refs, err := g.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(refs) != 2 || refs[0].Name != "hue.json" || refs[1].Name != "gone.json" {
		t.Fatalf("refs = %+v", refs)
	}

	got, err := g.Read(context.Background(), refs[0])
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if !strings.Contains(got, "Bulb") {
		t.Errorf("Read() = %q", got)
	}

	if _, err := g.Read(context.Background(), refs[1]); err == nil {
		t.Error("expected error for 404")
	}
}

func TestGitHubListErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			fmt.Fprint(w, `{"message": "not a list"}`)
			return
		}
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	for _, path := range []string{"/broken", "/forbidden"} {
		if _, err := NewGitHub(srv.URL+path, 0).List(context.Background()); err == nil {
			t.Errorf("List(%s) expected error", path)
		}
	}
}
