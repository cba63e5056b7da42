package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedBundle marks a signal bundle that fails validation. The engine
// refuses to run any rule against such a bundle.
var ErrMalformedBundle = errors.New("malformed signal bundle")

// ErrBundleUnavailable marks a failed attempt to build a signal bundle from a
// remote repository (network errors, rate limits, missing repo). The engine is
// never invoked when this is returned.
var ErrBundleUnavailable = errors.New("could not build signal bundle")

// SignalBundle is a normalized snapshot of the facts known about one
// repository. It is built fresh per scan by an outbound adapter and treated
// as read-only by the scoring engine.
type SignalBundle struct {
	Stars            int `json:"stars"`
	Forks            int `json:"forks"`
	Watchers         int `json:"watchers"`
	OpenIssues       int `json:"open_issues"`
	CommitCount      int `json:"commit_count"`
	LinesOfCode      int `json:"lines_of_code"`
	ContributorCount int `json:"contributor_count"`

	// Fraction of all commits authored by the single largest contributor.
	// Zero when CommitCount is zero.
	TopContributorCommitShare float64 `json:"top_contributor_commit_share"`

	CreatedAt    time.Time `json:"created_at"`
	LastCommitAt time.Time `json:"last_commit_at"`

	License         string `json:"license,omitempty"`
	IsFork          bool   `json:"is_fork"`
	ReadmeText      string `json:"readme_text,omitempty"`
	DescriptionText string `json:"description_text,omitempty"`
	Language        string `json:"language,omitempty"`

	HasSolanaMarkers        bool `json:"has_solana_markers"`
	ClaimsSolanaAffiliation bool `json:"claims_solana_affiliation"`
}

// Validate checks the bundle invariants: every count is non-negative and the
// top-contributor share is a fraction. It fails fast so a broken collaborator
// can never produce a partial report.
func (b *SignalBundle) Validate() error {
	counts := []struct {
		name  string
		value int
	}{
		{"stars", b.Stars},
		{"forks", b.Forks},
		{"watchers", b.Watchers},
		{"open_issues", b.OpenIssues},
		{"commit_count", b.CommitCount},
		{"lines_of_code", b.LinesOfCode},
		{"contributor_count", b.ContributorCount},
	}
	for _, c := range counts {
		if c.value < 0 {
			return fmt.Errorf("%w: %s is negative (%d)", ErrMalformedBundle, c.name, c.value)
		}
	}
	if b.TopContributorCommitShare < 0 || b.TopContributorCommitShare > 1 {
		return fmt.Errorf("%w: top_contributor_commit_share %.3f outside [0,1]",
			ErrMalformedBundle, b.TopContributorCommitShare)
	}
	return nil
}

// Finding is one fired rule: a human-readable message plus the penalty it
// subtracted from the baseline score.
type Finding struct {
	Message string `json:"message"`
	Penalty int    `json:"penalty"`
}

// RiskLevel is one of five ordered categories derived from the final score.
type RiskLevel string

const (
	RiskCritical   RiskLevel = "CRITICAL"
	RiskHigh       RiskLevel = "HIGH"
	RiskMediumHigh RiskLevel = "MEDIUM_HIGH"
	RiskMediumLow  RiskLevel = "MEDIUM_LOW"
	RiskLow        RiskLevel = "LOW"
)

// LevelFor maps a score in [0,100] to a risk level. Bands are inclusive on
// their lower bound and cover every integer exactly once.
func LevelFor(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskLow
	case score >= 60:
		return RiskMediumLow
	case score >= 40:
		return RiskMediumHigh
	case score >= 20:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// LevelColor returns a shields.io color name for a risk level, used by
// renderers and the badge output.
func LevelColor(level RiskLevel) string {
	switch level {
	case RiskLow:
		return "brightgreen"
	case RiskMediumLow:
		return "yellow"
	case RiskMediumHigh:
		return "orange"
	case RiskHigh:
		return "red"
	default:
		return "critical"
	}
}

// Report is the terminal artifact of one scan: the bounded score, its level,
// the findings in rule-table order, and the bundle they were derived from.
type Report struct {
	RepoName  string       `json:"repo"`
	Score     int          `json:"score"`
	Level     RiskLevel    `json:"level"`
	Findings  []Finding    `json:"findings"`
	Bundle    SignalBundle `json:"bundle"`
	Timestamp time.Time    `json:"timestamp"`
}

// ReportEntry is the compact history record kept per scan.
type ReportEntry struct {
	Timestamp string    `json:"timestamp"`
	Repo      string    `json:"repo"`
	Score     int       `json:"score"`
	Level     RiskLevel `json:"level"`
}
