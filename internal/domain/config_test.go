package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repovet/repovet/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, 50, cfg.ManyCommitsThreshold)
	assert.Equal(t, 1000, cfg.CommitCap)
	assert.NotEmpty(t, cfg.Vocabulary.Marketing)
	assert.NotEmpty(t, cfg.Vocabulary.Funding)
	assert.NotEmpty(t, cfg.Vocabulary.TokenSale)
}

func TestScanConfig_WithDefaults(t *testing.T) {
	cfg := domain.ScanConfig{
		Vocabulary: domain.Vocabulary{Marketing: []string{"moon"}},
		CommitCap:  200,
	}.WithDefaults()

	// Explicit values survive.
	assert.Equal(t, []string{"moon"}, cfg.Vocabulary.Marketing)
	assert.Equal(t, 200, cfg.CommitCap)

	// Unset fields pick up defaults.
	assert.Equal(t, 50, cfg.ManyCommitsThreshold)
	assert.NotEmpty(t, cfg.Vocabulary.Funding)
	assert.NotEmpty(t, cfg.Vocabulary.TokenSale)
}

func TestScanConfig_Validate(t *testing.T) {
	require.NoError(t, domain.ScanConfig{}.Validate())
	assert.Error(t, domain.ScanConfig{ManyCommitsThreshold: -1}.Validate())
	assert.Error(t, domain.ScanConfig{CommitCap: -5}.Validate())
}
