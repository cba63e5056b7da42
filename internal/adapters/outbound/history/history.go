package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/repovet/repovet/internal/domain"
)

const historyFile = "history.json"

// FileHistory implements domain.ReportHistory using a JSON file under the
// repovet state directory. Only compact per-scan summaries are stored; signal
// bundles are never cached between runs.
type FileHistory struct {
	dir string
}

// New stores history under the user's home directory.
func New() *FileHistory {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return NewAt(filepath.Join(home, ".repovet"))
}

// NewAt stores history under an explicit directory.
func NewAt(dir string) *FileHistory {
	return &FileHistory{dir: dir}
}

func (h *FileHistory) Save(entry domain.ReportEntry) error {
	entries, err := h.Load()
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	if err := os.MkdirAll(h.dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(h.dir, historyFile), data, 0644)
}

func (h *FileHistory) Load() ([]domain.ReportEntry, error) {
	data, err := os.ReadFile(filepath.Join(h.dir, historyFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.ReportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
