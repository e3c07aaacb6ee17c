package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/homed-tools/hddl/internal/catalog"
)

// DefaultListingURL is the GitHub contents API endpoint for the upstream
// device library directory.
const DefaultListingURL = "https://api.github.com/repos/u236/homed-service-zigbee/contents/deploy/data/usr/share/homed-zigbee"

// contentEntry is the subset of a GitHub contents API item we use
type contentEntry struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// GitHub lists device library files through the contents API and downloads
// each one from its raw URL.
type GitHub struct {
	ListingURL string
	Client     *http.Client
}

// NewGitHub creates a GitHub source. A zero timeout means no timeout.
func NewGitHub(listingURL string, timeout time.Duration) *GitHub {
	if listingURL == "" {
		listingURL = DefaultListingURL
	}
	return &GitHub{
		ListingURL: listingURL,
		Client:     &http.Client{Timeout: timeout},
	}
}

// List fetches the directory listing and keeps *.json files
func (g *GitHub) List(ctx context.Context) ([]catalog.FileRef, error) {
	body, err := g.get(ctx, g.ListingURL, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}

	var entries []contentEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decoding listing %s: %w", g.ListingURL, err)
	}

	var refs []catalog.FileRef
	for _, e := range entries {
		if e.Type != "file" || !strings.HasSuffix(e.Name, ".json") || e.DownloadURL == "" {
			continue
		}
		refs = append(refs, catalog.FileRef{Name: e.Name, Path: e.DownloadURL})
	}
	return refs, nil
}

// Read downloads ref.Path
func (g *GitHub) Read(ctx context.Context, ref catalog.FileRef) (string, error) {
	body, err := g.get(ctx, ref.Path, "")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (g *GitHub) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
