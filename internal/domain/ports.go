package domain

import "context"

// RepoRef identifies one GitHub repository.
type RepoRef struct {
	Owner string
	Name  string
}

func (r RepoRef) String() string { return r.Owner + "/" + r.Name }

// BundleFetcher builds a signal bundle for a repository. Implementations own
// all network concerns (timeouts, pagination, retries); failures are wrapped
// in ErrBundleUnavailable.
type BundleFetcher interface {
	Fetch(ctx context.Context, ref RepoRef) (*SignalBundle, error)
}

// DeepScanner refines a bundle with exact figures taken from a full clone of
// the repository, replacing values the REST API only approximates.
type DeepScanner interface {
	Refine(ctx context.Context, ref RepoRef, bundle *SignalBundle) error
}

// ConfigLoader reads the scan configuration, returning defaults when no
// config file exists.
type ConfigLoader interface {
	Load(path string) (ScanConfig, error)
}

// ReportHistory persists compact per-scan records.
type ReportHistory interface {
	Save(entry ReportEntry) error
	Load() ([]ReportEntry, error)
}
