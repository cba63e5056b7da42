package githubapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v53/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repovet/repovet/internal/domain"
)

// newTestFetcher points a Fetcher at a local server standing in for
// api.github.com.
func newTestFetcher(t *testing.T, mux *http.ServeMux) *Fetcher {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := github.NewClient(nil)
	base, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base

	return NewWithClient(client, 1000)
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

func TestFetch_AssemblesBundle(t *testing.T) {
	readme := "# Example\n\nA Solana program with an Anchor workspace."
	encoded := base64.StdEncoding.EncodeToString([]byte(readme))

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/example", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{
			"name": "example",
			"stargazers_count": 42,
			"forks_count": 7,
			"subscribers_count": 5,
			"open_issues_count": 3,
			"created_at": "2020-01-01T00:00:00Z",
			"pushed_at": "2024-04-01T00:00:00Z",
			"license": {"name": "MIT License"},
			"fork": false,
			"description": "On-chain example program",
			"language": "Rust"
		}`)
	})
	mux.HandleFunc("/repos/octo/example/commits", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[
			{"sha": "c3", "commit": {"author": {"date": "2024-05-01T00:00:00Z"}}},
			{"sha": "c2", "commit": {"author": {"date": "2024-03-01T00:00:00Z"}}},
			{"sha": "c1", "commit": {"author": {"date": "2024-01-01T00:00:00Z"}}}
		]`)
	})
	mux.HandleFunc("/repos/octo/example/contributors", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[
			{"login": "alice", "contributions": 2},
			{"login": "bob", "contributions": 1}
		]`)
	})
	mux.HandleFunc("/repos/octo/example/languages", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"Rust": 1200, "Shell": 300}`)
	})
	mux.HandleFunc("/repos/octo/example/readme", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, fmt.Sprintf(`{"type": "file", "encoding": "base64", "content": %q}`, encoded))
	})
	mux.HandleFunc("/repos/octo/example/contents/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[
			{"name": "Anchor.toml", "type": "file"},
			{"name": "src", "type": "dir"}
		]`)
	})

	f := newTestFetcher(t, mux)
	bundle, err := f.Fetch(context.Background(), domain.RepoRef{Owner: "octo", Name: "example"})
	require.NoError(t, err)

	assert.Equal(t, 42, bundle.Stars)
	assert.Equal(t, 7, bundle.Forks)
	assert.Equal(t, 5, bundle.Watchers)
	assert.Equal(t, 3, bundle.OpenIssues)
	assert.Equal(t, "MIT License", bundle.License)
	assert.False(t, bundle.IsFork)
	assert.Equal(t, "On-chain example program", bundle.DescriptionText)
	assert.Equal(t, "Rust", bundle.Language)

	assert.Equal(t, 3, bundle.CommitCount)
	// The newest commit's date beats the repository's pushed_at.
	assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), bundle.LastCommitAt)

	assert.Equal(t, 2, bundle.ContributorCount)
	assert.InDelta(t, 2.0/3.0, bundle.TopContributorCommitShare, 1e-9)

	assert.Equal(t, 1500, bundle.LinesOfCode)
	assert.Equal(t, readme, bundle.ReadmeText)
	assert.True(t, bundle.HasSolanaMarkers)
	assert.True(t, bundle.ClaimsSolanaAffiliation)
}

func TestFetch_EmptyRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/blank", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"name": "blank", "created_at": "2024-01-01T00:00:00Z"}`)
	})
	mux.HandleFunc("/repos/octo/blank/commits", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		writeJSON(w, `{"message": "Git Repository is empty."}`)
	})
	mux.HandleFunc("/repos/octo/blank/contributors", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		writeJSON(w, `{"message": "Git Repository is empty."}`)
	})
	mux.HandleFunc("/repos/octo/blank/languages", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{}`)
	})
	mux.HandleFunc("/repos/octo/blank/readme", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, `{"message": "Not Found"}`)
	})
	mux.HandleFunc("/repos/octo/blank/contents/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, `{"message": "Not Found"}`)
	})

	f := newTestFetcher(t, mux)
	bundle, err := f.Fetch(context.Background(), domain.RepoRef{Owner: "octo", Name: "blank"})
	require.NoError(t, err)

	assert.Equal(t, 0, bundle.CommitCount)
	assert.Equal(t, 0, bundle.ContributorCount)
	assert.Equal(t, 0, bundle.LinesOfCode)
	assert.Empty(t, bundle.ReadmeText)
	assert.False(t, bundle.HasSolanaMarkers)
	assert.False(t, bundle.ClaimsSolanaAffiliation)
}

func TestFetch_CommitCapBoundsCount(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/busy", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"name": "busy", "created_at": "2020-01-01T00:00:00Z"}`)
	})
	mux.HandleFunc("/repos/octo/busy/commits", func(w http.ResponseWriter, r *http.Request) {
		// Every page claims another one follows; the cap must stop the walk.
		base, _ := url.Parse("http://" + r.Host + r.URL.Path)
		w.Header().Set("Link", fmt.Sprintf(`<%s?page=2&per_page=100>; rel="next"`, base))
		body := "["
		for i := 0; i < 100; i++ {
			if i > 0 {
				body += ","
			}
			body += fmt.Sprintf(`{"sha": "s%d", "commit": {"author": {"date": "2024-05-01T00:00:00Z"}}}`, i)
		}
		body += "]"
		writeJSON(w, body)
	})
	mux.HandleFunc("/repos/octo/busy/contributors", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[{"login": "alice", "contributions": 300}]`)
	})
	mux.HandleFunc("/repos/octo/busy/languages", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"Go": 5000}`)
	})
	mux.HandleFunc("/repos/octo/busy/readme", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, `{"message": "Not Found"}`)
	})
	mux.HandleFunc("/repos/octo/busy/contents/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[]`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client := github.NewClient(nil)
	base, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base

	f := NewWithClient(client, 250)
	bundle, err := f.Fetch(context.Background(), domain.RepoRef{Owner: "octo", Name: "busy"})
	require.NoError(t, err)

	assert.Equal(t, 250, bundle.CommitCount)
	// 300 recorded contributions against a capped count still reads as 1.
	assert.Equal(t, 1.0, bundle.TopContributorCommitShare)
}

func TestFetch_RepositoryMissing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, `{"message": "Not Found"}`)
	})

	f := newTestFetcher(t, mux)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	bundle, err := f.Fetch(ctx, domain.RepoRef{Owner: "octo", Name: "gone"})
	assert.Nil(t, bundle)
	assert.ErrorIs(t, err, domain.ErrBundleUnavailable)
}
