package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manager handles save/load for population snapshots
type Manager struct {
	basePath string
}

// NewManager creates a manager with the given base directory
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// FilePath returns the path for a named snapshot
func (m *Manager) FilePath(name string) string {
	return filepath.Join(m.basePath, name+".toml")
}

// Exists checks if a snapshot file exists
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.FilePath(name))
	return err == nil
}

// Save writes the snapshot to disk, replacing any previous one
func (m *Manager) Save(name string, dto PopulationDTO) error {
	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return err
	}

	path := m.FilePath(name)
	tmp, err := os.CreateTemp(m.basePath, name+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(dto); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// Load reads a snapshot from disk
func (m *Manager) Load(name string) (PopulationDTO, error) {
	var dto PopulationDTO

	path := m.FilePath(name)
	md, err := toml.DecodeFile(path, &dto)
	if err != nil {
		return dto, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return dto, fmt.Errorf("decode %s: unknown keys %v", path, undecoded)
	}

	return dto, nil
}
