package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Source fetches the ordered entries of a named catalog.
type Source interface {
	Fetch(ctx context.Context, name string) ([]Entry, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, name string) ([]Entry, error)

func (f SourceFunc) Fetch(ctx context.Context, name string) ([]Entry, error) { return f(ctx, name) }

// DirSource reads <Dir>/<name>.json.
type DirSource struct {
	Dir string
}

func (s DirSource) Fetch(_ context.Context, name string) ([]Entry, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid catalog name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, name+".json"))
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return decodeEntries(data)
}

// HTTPSource fetches <BaseURL>/<name>.json.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	Timeout time.Duration
}

func (s HTTPSource) Fetch(ctx context.Context, name string) ([]Entry, error) {
	u, err := url.JoinPath(s.BaseURL, url.PathEscape(name)+".json")
	if err != nil {
		return nil, fmt.Errorf("building catalog url: %w", err)
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching catalog: HTTP %d", resp.StatusCode)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return entries, nil
}

func decodeEntries(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return entries, nil
}
