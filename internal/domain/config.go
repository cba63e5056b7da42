package domain

import "fmt"

// Vocabulary holds the keyword lists the text-matching rules search for.
// It is loaded once at startup and injected into the evaluator, so tests can
// substitute custom lists.
type Vocabulary struct {
	Marketing []string `yaml:"marketing" json:"marketing,omitempty"`
	Funding   []string `yaml:"funding"   json:"funding,omitempty"`
	TokenSale []string `yaml:"token_sale" json:"token_sale,omitempty"`
}

// DefaultVocabulary returns the built-in keyword lists.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Marketing: []string{
			"world's first", "revolutionary", "game-changing", "unprecedented",
			"groundbreaking", "next-generation", "cutting-edge", "disruptive",
			"state-of-the-art", "10x", "best-in-class",
		},
		Funding: []string{
			"seeking", "grant", "subsidy", "funding", "donate", "sponsor us",
			"investors", "raise", "backers",
		},
		TokenSale: []string{
			"ico", "token sale", "presale", "pre-sale", "airdrop", "whitelist",
			"tokenomics", "initial coin offering", "mint now",
		},
	}
}

// ScanConfig is the user-tunable configuration loaded from .repovet.yaml.
// Zero values mean "use the default".
type ScanConfig struct {
	// Vocabulary entries replace the corresponding default list wholesale.
	Vocabulary Vocabulary `yaml:"vocabulary" json:"vocabulary,omitempty"`

	// ManyCommitsThreshold is the commit count above which a single-
	// contributor repository is flagged.
	ManyCommitsThreshold int `yaml:"many_commits_threshold" json:"many_commits_threshold,omitempty"`

	// CommitCap bounds commit-list pagination against the REST API.
	CommitCap int `yaml:"commit_cap" json:"commit_cap,omitempty"`
}

const (
	defaultManyCommitsThreshold = 50
	defaultCommitCap            = 1000
)

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() ScanConfig {
	return ScanConfig{
		Vocabulary:           DefaultVocabulary(),
		ManyCommitsThreshold: defaultManyCommitsThreshold,
		CommitCap:            defaultCommitCap,
	}
}

// Validate catches nonsense values in user-supplied raw config.
func (c ScanConfig) Validate() error {
	if c.ManyCommitsThreshold < 0 {
		return fmt.Errorf("many_commits_threshold must be non-negative, got %d", c.ManyCommitsThreshold)
	}
	if c.CommitCap < 0 {
		return fmt.Errorf("commit_cap must be non-negative, got %d", c.CommitCap)
	}
	return nil
}

// WithDefaults overlays built-in defaults under any unset field.
func (c ScanConfig) WithDefaults() ScanConfig {
	out := c
	def := DefaultConfig()
	if len(out.Vocabulary.Marketing) == 0 {
		out.Vocabulary.Marketing = def.Vocabulary.Marketing
	}
	if len(out.Vocabulary.Funding) == 0 {
		out.Vocabulary.Funding = def.Vocabulary.Funding
	}
	if len(out.Vocabulary.TokenSale) == 0 {
		out.Vocabulary.TokenSale = def.Vocabulary.TokenSale
	}
	if out.ManyCommitsThreshold == 0 {
		out.ManyCommitsThreshold = def.ManyCommitsThreshold
	}
	if out.CommitCap == 0 {
		out.CommitCap = def.CommitCap
	}
	return out
}
