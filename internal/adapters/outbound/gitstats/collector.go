// Package gitstats refines a signal bundle with exact figures from a full
// clone, escaping the REST API's pagination cap and byte-count proxies.
package gitstats

import (
	"context"
	"fmt"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/repovet/repovet/internal/domain"
)

// Collector implements domain.DeepScanner by cloning the repository into
// memory with go-git.
type Collector struct {
	urlFor func(ref domain.RepoRef) string
}

// New builds a Collector that clones from github.com.
func New() *Collector {
	return &Collector{
		urlFor: func(ref domain.RepoRef) string {
			return fmt.Sprintf("https://github.com/%s/%s.git", ref.Owner, ref.Name)
		},
	}
}

// NewWithSource overrides the clone URL resolution; tests point it at a local
// repository.
func NewWithSource(urlFor func(ref domain.RepoRef) string) *Collector {
	return &Collector{urlFor: urlFor}
}

// Refine replaces the bundle's commit count, contributor stats, last-commit
// time, and code volume with values read from the clone. Metadata fields
// (stars, forks, license, fork flag, texts) are left untouched.
func (c *Collector) Refine(ctx context.Context, ref domain.RepoRef, bundle *domain.SignalBundle) error {
	repo, err := git.CloneContext(ctx, memory.NewStorage(), nil, &git.CloneOptions{
		URL: c.urlFor(ref),
	})
	if err != nil {
		return fmt.Errorf("cloning %s: %w", ref, err)
	}

	if _, err := repo.Head(); err != nil {
		return fmt.Errorf("resolving HEAD of %s: %w", ref, err)
	}

	if err := c.collectCommitStats(repo, bundle); err != nil {
		return err
	}
	return c.countLines(repo, bundle)
}

func (c *Collector) collectCommitStats(repo *git.Repository, bundle *domain.SignalBundle) error {
	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		return fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()

	byAuthor := make(map[string]int)
	count := 0
	first := true

	err = iter.ForEach(func(commit *object.Commit) error {
		if first {
			bundle.LastCommitAt = commit.Author.When
			first = false
		}
		count++
		key := strings.ToLower(commit.Author.Email)
		if key == "" {
			key = commit.Author.Name
		}
		byAuthor[key]++
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking commits: %w", err)
	}

	bundle.CommitCount = count
	bundle.ContributorCount = len(byAuthor)

	top := 0
	for _, n := range byAuthor {
		if n > top {
			top = n
		}
	}
	if count > 0 {
		bundle.TopContributorCommitShare = float64(top) / float64(count)
	} else {
		bundle.TopContributorCommitShare = 0
	}
	return nil
}

// countLines sums the line counts of every non-binary file in the HEAD tree,
// skipping vendored dependency directories.
func (c *Collector) countLines(repo *git.Repository, bundle *domain.SignalBundle) error {
	ref, err := repo.Head()
	if err != nil {
		return fmt.Errorf("resolving HEAD: %w", err)
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return fmt.Errorf("loading HEAD commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return fmt.Errorf("loading HEAD tree: %w", err)
	}

	total := 0
	err = tree.Files().ForEach(func(f *object.File) error {
		if isVendored(f.Name) {
			return nil
		}
		if bin, berr := f.IsBinary(); berr != nil || bin {
			return nil
		}
		lines, lerr := f.Lines()
		if lerr != nil {
			return nil
		}
		total += len(lines)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking tree: %w", err)
	}

	bundle.LinesOfCode = total
	return nil
}

func isVendored(path string) bool {
	for _, part := range strings.Split(path, "/") {
		switch part {
		case "vendor", "node_modules", "dist", "build", ".git":
			return true
		}
	}
	return false
}
