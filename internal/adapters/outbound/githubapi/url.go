package githubapi

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/repovet/repovet/internal/domain"
)

var repoURLPattern = regexp.MustCompile(`github\.com[/:]([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)`)

// ParseURL extracts owner/name from a GitHub repository URL. Accepted forms
// include https URLs, protocol-less "github.com/owner/repo", SSH remotes,
// and a trailing ".git".
func ParseURL(raw string) (domain.RepoRef, error) {
	m := repoURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return domain.RepoRef{}, fmt.Errorf("not a GitHub repository URL: %q", raw)
	}
	name := strings.TrimSuffix(m[2], ".git")
	if name == "" {
		return domain.RepoRef{}, fmt.Errorf("not a GitHub repository URL: %q", raw)
	}
	return domain.RepoRef{Owner: m[1], Name: name}, nil
}
