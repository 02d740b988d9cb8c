package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tatianab/rover-rescue/internal/errs"
	"github.com/tatianab/rover-rescue/internal/models"
)

// ErrNoHistory is returned by a Medium that has never been saved to.
var ErrNoHistory = errors.New("no saved history")

// Medium is durable storage for a whole run history. SaveHistory must
// replace the previous snapshot entirely or leave it untouched.
type Medium interface {
	LoadHistory() (models.RunHistory, error)
	SaveHistory(models.RunHistory) error
}

// DefaultSaveDir is where history is kept when no directory is configured.
const DefaultSaveDir = ".saves"

const historyFile = "history.yaml"

// FileMedium keeps the history as a single YAML document.
type FileMedium struct {
	Dir string
}

func NewFileMedium(dir string) *FileMedium {
	if dir == "" {
		dir = DefaultSaveDir
	}
	return &FileMedium{Dir: dir}
}

// Path is the history file location.
func (f *FileMedium) Path() string {
	return filepath.Join(f.Dir, historyFile)
}

func (f *FileMedium) LoadHistory() (models.RunHistory, error) {
	data, err := os.ReadFile(f.Path())
	if errors.Is(err, os.ErrNotExist) {
		return models.RunHistory{}, ErrNoHistory
	}
	if err != nil {
		return models.RunHistory{}, err
	}

	var h models.RunHistory
	if err := yaml.Unmarshal(data, &h); err != nil {
		return models.RunHistory{}, errs.Wrap(errs.CodeStorageCorrupt, "parse "+f.Path(), err)
	}
	return h, nil
}

// SaveHistory writes to a temporary file and renames it over the old one,
// so a failed write never leaves a truncated history behind.
func (f *FileMedium) SaveHistory(h models.RunHistory) error {
	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(h)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.Dir, historyFile+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), f.Path()); err != nil {
		return fmt.Errorf("replace %s: %w", f.Path(), err)
	}
	return nil
}

// MemoryMedium keeps the last saved snapshot in memory only.
type MemoryMedium struct {
	saved *models.RunHistory
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{}
}

func (m *MemoryMedium) LoadHistory() (models.RunHistory, error) {
	if m.saved == nil {
		return models.RunHistory{}, ErrNoHistory
	}
	return m.saved.Clone(), nil
}

func (m *MemoryMedium) SaveHistory(h models.RunHistory) error {
	c := h.Clone()
	m.saved = &c
	return nil
}
