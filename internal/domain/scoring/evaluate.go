package scoring

import (
	"strings"
	"time"

	"github.com/repovet/repovet/internal/domain"
)

const baselineScore = 100

// Evaluator runs the rule table against signal bundles. It holds only
// immutable configuration, so a single instance is safe for any number of
// evaluations and always produces the same report for the same bundle.
type Evaluator struct {
	vocab       domain.Vocabulary
	manyCommits int
	now         func() time.Time
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithVocabulary replaces the built-in keyword lists.
func WithVocabulary(v domain.Vocabulary) Option {
	return func(e *Evaluator) { e.vocab = v }
}

// WithManyCommitsThreshold sets the commit count above which a single-
// contributor repository is flagged.
func WithManyCommitsThreshold(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.manyCommits = n
		}
	}
}

// WithNow fixes the reference time used for inactivity calculations. Tests
// use this to make day counts exact.
func WithNow(now func() time.Time) Option {
	return func(e *Evaluator) {
		if now != nil {
			e.now = now
		}
	}
}

// New builds an Evaluator with defaults from the domain configuration.
func New(opts ...Option) *Evaluator {
	def := domain.DefaultConfig()
	e := &Evaluator{
		vocab:       def.Vocabulary,
		manyCommits: def.ManyCommitsThreshold,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate validates the bundle, runs every rule, and folds the fired
// penalties into a clamped 0-100 score with its risk level. Findings keep
// rule-table order; within each tier group only the highest-penalty match
// survives.
func (e *Evaluator) Evaluate(repoName string, bundle *domain.SignalBundle) (*domain.Report, error) {
	if err := bundle.Validate(); err != nil {
		return nil, err
	}

	f := e.deriveFacts(bundle)
	rules := ruleTable(e.vocab, e.manyCommits)

	type fired struct {
		index   int
		finding domain.Finding
	}
	var hits []fired
	bestInGroup := make(map[string]int) // group -> index into hits

	for i, r := range rules {
		msg, ok := r.match(f)
		if !ok {
			continue
		}
		hit := fired{index: i, finding: domain.Finding{Message: msg, Penalty: r.penalty}}

		if r.group == "" {
			hits = append(hits, hit)
			continue
		}
		if prev, seen := bestInGroup[r.group]; seen {
			if hit.finding.Penalty > hits[prev].finding.Penalty {
				hits[prev] = hit
			}
			continue
		}
		bestInGroup[r.group] = len(hits)
		hits = append(hits, hit)
	}

	findings := make([]domain.Finding, 0, len(hits))
	total := 0
	for _, h := range hits {
		findings = append(findings, h.finding)
		total += h.finding.Penalty
	}

	score := clamp(baselineScore-total, 0, baselineScore)

	return &domain.Report{
		RepoName:  repoName,
		Score:     score,
		Level:     domain.LevelFor(score),
		Findings:  findings,
		Bundle:    *bundle,
		Timestamp: e.now(),
	}, nil
}

func (e *Evaluator) deriveFacts(bundle *domain.SignalBundle) *facts {
	f := &facts{bundle: bundle}

	if bundle.CommitCount > 0 {
		f.ratio = bundle.LinesOfCode / bundle.CommitCount
		f.hasRatio = true
	}

	if !bundle.LastCommitAt.IsZero() {
		f.daysSinceLastCommit = int(e.now().Sub(bundle.LastCommitAt).Hours() / 24)
		if f.daysSinceLastCommit < 0 {
			f.daysSinceLastCommit = 0
		}
	}

	f.descOnly = normalizeText(bundle.DescriptionText)
	f.readmeAndDesc = strings.TrimSpace(f.descOnly + " " + normalizeText(bundle.ReadmeText))

	return f
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
