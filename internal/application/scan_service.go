package application

import (
	"context"
	"fmt"

	"github.com/repovet/repovet/internal/domain"
	"github.com/repovet/repovet/internal/domain/scoring"
)

// ScanService orchestrates one analysis run:
// fetch signals → optional deep scan → evaluate rules → report.
// Each run builds a fresh bundle; nothing is reused between invocations.
type ScanService struct {
	fetcher   domain.BundleFetcher
	deep      domain.DeepScanner // nil disables the clone-based refinement
	evaluator *scoring.Evaluator
}

func NewScanService(fetcher domain.BundleFetcher, deep domain.DeepScanner, evaluator *scoring.Evaluator) *ScanService {
	return &ScanService{
		fetcher:   fetcher,
		deep:      deep,
		evaluator: evaluator,
	}
}

// Scan analyzes one repository. It is all-or-nothing: any collaborator
// failure aborts before the engine runs, and a malformed bundle never yields
// a partial report.
func (s *ScanService) Scan(ctx context.Context, ref domain.RepoRef) (*domain.Report, error) {
	bundle, err := s.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}

	if s.deep != nil {
		if err := s.deep.Refine(ctx, ref, bundle); err != nil {
			return nil, fmt.Errorf("%w: deep scan of %s: %w", domain.ErrBundleUnavailable, ref, err)
		}
	}

	report, err := s.evaluator.Evaluate(ref.String(), bundle)
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", ref, err)
	}
	return report, nil
}
