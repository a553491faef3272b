package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZabehCruz/pybryt/pkg/reference"
	"github.com/ZabehCruz/pybryt/pkg/validation"
)

// referenceExt is the extension stored reference files carry.
const referenceExt = ".ref"

// FilesystemReferenceStore resolves reference identifiers to persisted
// reference implementations under a directory, by default
// ~/.pybryt/references. It implements reference.Loader, so stored names can
// be used directly as check targets.
type FilesystemReferenceStore struct {
	baseDir string
}

// NewFilesystemReferenceStore creates a store at the default location.
func NewFilesystemReferenceStore() (*FilesystemReferenceStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewFilesystemReferenceStoreWithPath(filepath.Join(homeDir, ".pybryt", "references"))
}

// NewFilesystemReferenceStoreWithPath creates a store with a custom base
// directory. Useful for testing or custom configurations.
func NewFilesystemReferenceStoreWithPath(baseDir string) (*FilesystemReferenceStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create references directory: %w", err)
	}
	return &FilesystemReferenceStore{baseDir: baseDir}, nil
}

// Save persists a reference under its name. The write is atomic: a temp
// file is renamed into place.
func (s *FilesystemReferenceStore) Save(ref *reference.Reference) error {
	if ref == nil {
		return fmt.Errorf("cannot save nil reference")
	}
	if err := validation.ValidateReferenceName(ref.Name); err != nil {
		return fmt.Errorf("cannot store reference: %w", err)
	}

	path := s.referencePath(ref.Name)
	tempPath := path + ".tmp"

	if err := ref.Dump(tempPath); err != nil {
		return err
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to store reference %q: %w", ref.Name, err)
	}
	return nil
}

// Load resolves an identifier: a stored name first, then a plain file path.
// It implements reference.Loader.
func (s *FilesystemReferenceStore) Load(identifier string) (*reference.Reference, error) {
	if validation.IsValidReferenceName(identifier) {
		stored := s.referencePath(identifier)
		if _, err := os.Stat(stored); err == nil {
			return reference.Load(stored)
		}
	}
	return reference.Load(identifier)
}

// List returns the names of stored references, sorted.
func (s *FilesystemReferenceStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read references directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), referenceExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), referenceExt))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a stored reference by name.
func (s *FilesystemReferenceStore) Delete(name string) error {
	if err := validation.ValidateReferenceName(name); err != nil {
		return err
	}
	if err := os.Remove(s.referencePath(name)); err != nil {
		return fmt.Errorf("failed to delete reference %q: %w", name, err)
	}
	return nil
}

func (s *FilesystemReferenceStore) referencePath(name string) string {
	return filepath.Join(s.baseDir, name+referenceExt)
}
