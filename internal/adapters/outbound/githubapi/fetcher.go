// Package githubapi builds signal bundles from the GitHub REST API.
package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v53/github"
	"golang.org/x/oauth2"

	"github.com/repovet/repovet/internal/common"
	"github.com/repovet/repovet/internal/domain"
)

// solanaManifests are the manifest filenames whose presence at the repository
// root counts as real Solana tooling.
var solanaManifests = map[string]bool{
	"Anchor.toml": true,
	"Cargo.toml":  true,
	"Xargo.toml":  true,
}

// solanaKeywords mark a textual claim of Solana affiliation.
var solanaKeywords = []string{"solana", "spl-token", "anchor framework"}

const perPage = 100

// Fetcher implements domain.BundleFetcher against api.github.com.
type Fetcher struct {
	client    *github.Client
	commitCap int
}

// New builds a Fetcher. An empty token means unauthenticated requests with
// GitHub's lower rate limits.
func New(token string, commitCap int) *Fetcher {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
	}
	return NewWithClient(github.NewClient(hc), commitCap)
}

// NewWithClient wraps an existing client; tests point it at a local server.
func NewWithClient(client *github.Client, commitCap int) *Fetcher {
	if commitCap <= 0 {
		commitCap = 1000
	}
	return &Fetcher{client: client, commitCap: commitCap}
}

// Fetch assembles the full signal bundle for one repository. Any failure on a
// required call is wrapped in domain.ErrBundleUnavailable; optional lookups
// (README, root listing) degrade to their absent values on 404.
func (f *Fetcher) Fetch(ctx context.Context, ref domain.RepoRef) (*domain.SignalBundle, error) {
	repo, err := f.getRepository(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: repository %s: %w", domain.ErrBundleUnavailable, ref, err)
	}

	bundle := &domain.SignalBundle{
		Stars:           repo.GetStargazersCount(),
		Forks:           repo.GetForksCount(),
		Watchers:        repo.GetSubscribersCount(),
		OpenIssues:      repo.GetOpenIssuesCount(),
		CreatedAt:       repo.GetCreatedAt().Time,
		LastCommitAt:    repo.GetPushedAt().Time,
		License:         repo.GetLicense().GetName(),
		IsFork:          repo.GetFork(),
		DescriptionText: repo.GetDescription(),
		Language:        repo.GetLanguage(),
	}

	if err := f.countCommits(ctx, ref, bundle); err != nil {
		return nil, fmt.Errorf("%w: commits of %s: %w", domain.ErrBundleUnavailable, ref, err)
	}
	if err := f.countContributors(ctx, ref, bundle); err != nil {
		return nil, fmt.Errorf("%w: contributors of %s: %w", domain.ErrBundleUnavailable, ref, err)
	}
	if err := f.sumLanguageVolume(ctx, ref, bundle); err != nil {
		return nil, fmt.Errorf("%w: languages of %s: %w", domain.ErrBundleUnavailable, ref, err)
	}

	bundle.ReadmeText = f.fetchReadme(ctx, ref)
	bundle.HasSolanaMarkers = f.hasRootManifest(ctx, ref)
	bundle.ClaimsSolanaAffiliation = claimsSolana(bundle.DescriptionText + " " + bundle.ReadmeText)

	return bundle, nil
}

func (f *Fetcher) getRepository(ctx context.Context, ref domain.RepoRef) (*github.Repository, error) {
	var repo *github.Repository
	err := common.Retry(ctx, func() error {
		var apiErr error
		repo, _, apiErr = f.client.Repositories.Get(ctx, ref.Owner, ref.Name)
		return apiErr
	})
	return repo, err
}

// countCommits walks the commit list newest-first, stopping at the configured
// cap. The first commit seen fixes LastCommitAt more precisely than the
// repository's pushed_at.
func (f *Fetcher) countCommits(ctx context.Context, ref domain.RepoRef, bundle *domain.SignalBundle) error {
	opts := &github.CommitsListOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	count := 0
	first := true

	for {
		var (
			commits  []*github.RepositoryCommit
			resp     *github.Response
			conflict bool
		)
		err := common.Retry(ctx, func() error {
			var apiErr error
			commits, resp, apiErr = f.client.Repositories.ListCommits(ctx, ref.Owner, ref.Name, opts)
			// An empty repository answers 409 to the commits endpoint.
			if isConflict(apiErr) {
				conflict = true
				return nil
			}
			return apiErr
		})
		if err != nil {
			return err
		}
		if conflict {
			bundle.CommitCount = 0
			return nil
		}

		if first && len(commits) > 0 {
			if d := commits[0].GetCommit().GetAuthor().GetDate(); !d.Time.IsZero() {
				bundle.LastCommitAt = d.Time
			}
			first = false
		}

		count += len(commits)
		if count >= f.commitCap || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if count > f.commitCap {
		count = f.commitCap
	}
	bundle.CommitCount = count
	return nil
}

func (f *Fetcher) countContributors(ctx context.Context, ref domain.RepoRef, bundle *domain.SignalBundle) error {
	opts := &github.ListContributorsOptions{ListOptions: github.ListOptions{PerPage: perPage}}
	var top, count int

	for {
		var (
			contribs []*github.Contributor
			resp     *github.Response
			conflict bool
		)
		err := common.Retry(ctx, func() error {
			var apiErr error
			contribs, resp, apiErr = f.client.Repositories.ListContributors(ctx, ref.Owner, ref.Name, opts)
			if isConflict(apiErr) {
				conflict = true
				return nil
			}
			return apiErr
		})
		if err != nil {
			return err
		}
		if conflict {
			return nil
		}

		for _, c := range contribs {
			count++
			if c.GetContributions() > top {
				top = c.GetContributions()
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	bundle.ContributorCount = count
	if bundle.CommitCount > 0 && top > 0 {
		share := float64(top) / float64(bundle.CommitCount)
		if share > 1 {
			share = 1 // commit count may be capped below the true total
		}
		bundle.TopContributorCommitShare = share
	}
	return nil
}

// sumLanguageVolume uses the languages endpoint's byte counts as the
// code-volume figure. A deep scan replaces it with real line counts.
func (f *Fetcher) sumLanguageVolume(ctx context.Context, ref domain.RepoRef, bundle *domain.SignalBundle) error {
	var langs map[string]int
	err := common.Retry(ctx, func() error {
		var apiErr error
		langs, _, apiErr = f.client.Repositories.ListLanguages(ctx, ref.Owner, ref.Name)
		return apiErr
	})
	if err != nil {
		return err
	}
	total := 0
	for _, bytes := range langs {
		total += bytes
	}
	bundle.LinesOfCode = total
	return nil
}

func (f *Fetcher) fetchReadme(ctx context.Context, ref domain.RepoRef) string {
	readme, _, err := f.client.Repositories.GetReadme(ctx, ref.Owner, ref.Name, nil)
	if err != nil {
		return ""
	}
	content, err := readme.GetContent()
	if err != nil {
		return ""
	}
	return content
}

func (f *Fetcher) hasRootManifest(ctx context.Context, ref domain.RepoRef) bool {
	_, entries, _, err := f.client.Repositories.GetContents(ctx, ref.Owner, ref.Name, "", nil)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if solanaManifests[entry.GetName()] {
			return true
		}
	}
	return false
}

func claimsSolana(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range solanaKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isConflict(err error) bool {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) {
		return false
	}
	return ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusConflict
}
