package scoring

import (
	"fmt"
	"strings"

	"github.com/repovet/repovet/internal/domain"
)

// facts is the derived, read-only view of one bundle that rules match
// against. Ratios and day counts are computed once so every rule sees the
// same numbers.
type facts struct {
	bundle *domain.SignalBundle

	// ratio is linesOfCode / commitCount, valid only when hasRatio is true.
	ratio    int
	hasRatio bool

	daysSinceLastCommit int

	// Normalized text, ready for vocabulary matching.
	readmeAndDesc string
	descOnly      string
}

// Tier group keys. At most one rule per group fires: the highest-penalty
// match wins, so the same underlying signal is never double-penalized.
const (
	groupCommitVolume = "commit_volume"
	groupCodeRatio    = "code_ratio"
	groupInactivity   = "inactivity"
	groupFunding      = "funding"
	groupMarketing    = "marketing"
)

// rule is one entry of the declarative table: a pure predicate that either
// produces a finding message or declines.
type rule struct {
	group   string // empty means the rule stands alone
	penalty int
	match   func(f *facts) (string, bool)
}

// ruleTable returns the fixed, ordered rule set. Findings are emitted in this
// order. The vocabulary and the single-maintainer commit threshold are
// injected so the table itself stays pure data.
func ruleTable(vocab domain.Vocabulary, manyCommits int) []rule {
	return []rule{
		// Commit volume tiers.
		{group: groupCommitVolume, penalty: 35, match: func(f *facts) (string, bool) {
			n := f.bundle.CommitCount
			if n < 1 || n > 2 {
				return "", false
			}
			return fmt.Sprintf("Only %d commits - effectively no development history", n), true
		}},
		{group: groupCommitVolume, penalty: 25, match: func(f *facts) (string, bool) {
			n := f.bundle.CommitCount
			if n < 3 || n > 9 {
				return "", false
			}
			return fmt.Sprintf("Only %d commits - suspiciously low", n), true
		}},
		{group: groupCommitVolume, penalty: 15, match: func(f *facts) (string, bool) {
			n := f.bundle.CommitCount
			if n < 10 || n > 24 {
				return "", false
			}
			return fmt.Sprintf("%d commits - below average for a published project", n), true
		}},

		// Code-volume-to-commit ratio tiers. Skipped entirely when the
		// bundle has zero commits, so a division guard never misfires.
		{group: groupCodeRatio, penalty: 40, match: func(f *facts) (string, bool) {
			if !f.hasRatio || f.ratio <= 50000 {
				return "", false
			}
			return ratioMessage("Extreme", f), true
		}},
		{group: groupCodeRatio, penalty: 25, match: func(f *facts) (string, bool) {
			if !f.hasRatio || f.ratio <= 10000 {
				return "", false
			}
			return ratioMessage("Very high", f), true
		}},
		{group: groupCodeRatio, penalty: 15, match: func(f *facts) (string, bool) {
			if !f.hasRatio || f.ratio <= 5000 {
				return "", false
			}
			return ratioMessage("High", f), true
		}},

		// Inactivity tiers, strict lower bounds.
		{group: groupInactivity, penalty: 30, match: func(f *facts) (string, bool) {
			if f.daysSinceLastCommit <= 365 {
				return "", false
			}
			return fmt.Sprintf("No commits in %d days - likely abandoned", f.daysSinceLastCommit), true
		}},
		{group: groupInactivity, penalty: 20, match: func(f *facts) (string, bool) {
			if f.daysSinceLastCommit <= 180 {
				return "", false
			}
			return fmt.Sprintf("No commits in %d days - going stale", f.daysSinceLastCommit), true
		}},
		{group: groupInactivity, penalty: 10, match: func(f *facts) (string, bool) {
			if f.daysSinceLastCommit <= 90 {
				return "", false
			}
			return fmt.Sprintf("No commits in %d days", f.daysSinceLastCommit), true
		}},

		// Community signals.
		{penalty: 20, match: func(f *facts) (string, bool) {
			if f.bundle.Stars != 0 {
				return "", false
			}
			return "0 stars - no community interest", true
		}},
		{penalty: 15, match: func(f *facts) (string, bool) {
			if f.bundle.Forks != 0 {
				return "", false
			}
			return "0 forks - no community contribution", true
		}},

		// Documentation and licensing.
		{penalty: 15, match: func(f *facts) (string, bool) {
			if f.bundle.ReadmeText != "" {
				return "", false
			}
			return "No README - nothing documents what this project does", true
		}},
		{penalty: 10, match: func(f *facts) (string, bool) {
			n := len(f.bundle.ReadmeText)
			if n == 0 || n >= 200 {
				return "", false
			}
			return fmt.Sprintf("README is only %d characters - minimal documentation", n), true
		}},
		{penalty: 10, match: func(f *facts) (string, bool) {
			if f.bundle.License != "" {
				return "", false
			}
			return "No license declared", true
		}},

		// Provenance.
		{penalty: 10, match: func(f *facts) (string, bool) {
			if !f.bundle.IsFork {
				return "", false
			}
			return "Repository is a fork, not original work", true
		}},
		{penalty: 20, match: func(f *facts) (string, bool) {
			if !f.bundle.ClaimsSolanaAffiliation || f.bundle.HasSolanaMarkers {
				return "", false
			}
			return "Claims Solana affiliation but no Anchor/Cargo manifests at the repository root", true
		}},
		{penalty: 15, match: func(f *facts) (string, bool) {
			if f.bundle.ContributorCount != 1 || f.bundle.CommitCount < manyCommits {
				return "", false
			}
			return fmt.Sprintf("Single contributor across %d commits", f.bundle.CommitCount), true
		}},

		// Text analysis: token-sale vocabulary fires at any hit.
		{penalty: 25, match: func(f *facts) (string, bool) {
			hits := distinctMatches(f.readmeAndDesc, vocab.TokenSale)
			if len(hits) == 0 {
				return "", false
			}
			return fmt.Sprintf("Token-sale language detected: %s", strings.Join(hits, ", ")), true
		}},

		// Funding-seeking vocabulary, heavy then light.
		{group: groupFunding, penalty: 20, match: func(f *facts) (string, bool) {
			hits := distinctMatches(f.readmeAndDesc, vocab.Funding)
			if len(hits) < heavyMatchCount {
				return "", false
			}
			return fmt.Sprintf("Heavy funding-seeking language: %d distinct phrases (%s)",
				len(hits), strings.Join(hits, ", ")), true
		}},
		{group: groupFunding, penalty: 12, match: func(f *facts) (string, bool) {
			hits := distinctMatches(f.readmeAndDesc, vocab.Funding)
			if len(hits) == 0 {
				return "", false
			}
			return fmt.Sprintf("Funding-seeking language detected: %s", strings.Join(hits, ", ")), true
		}},

		// Marketing buzzwords, heavy (README + description) then light
		// (description only).
		{group: groupMarketing, penalty: 15, match: func(f *facts) (string, bool) {
			hits := distinctMatches(f.readmeAndDesc, vocab.Marketing)
			if len(hits) < heavyMatchCount {
				return "", false
			}
			return fmt.Sprintf("Heavy marketing language: %d distinct buzzwords (%s)",
				len(hits), strings.Join(hits, ", ")), true
		}},
		{group: groupMarketing, penalty: 8, match: func(f *facts) (string, bool) {
			hits := distinctMatches(f.descOnly, vocab.Marketing)
			if len(hits) == 0 {
				return "", false
			}
			return fmt.Sprintf("Marketing buzzwords in description: %s", strings.Join(hits, ", ")), true
		}},
	}
}

// heavyMatchCount is the distinct-match threshold separating the heavy text
// tiers from the light ones.
const heavyMatchCount = 3

func ratioMessage(grade string, f *facts) string {
	return fmt.Sprintf("%s code-to-commit ratio: %d lines across %d commits (%d lines/commit)",
		grade, f.bundle.LinesOfCode, f.bundle.CommitCount, f.ratio)
}
