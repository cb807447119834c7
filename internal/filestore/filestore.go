// Package filestore persists assessments as indented JSON documents on disk.
// Writes are atomic and serialized across processes with a lock file next
// to each document.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/rob/internal/models"
	"github.com/harrison/rob/internal/rob2"
)

// Save writes fw to path as indented JSON. Raw provenance is not persisted.
func Save(path string, fw *models.Framework) error {
	data, err := fw.MarshalIndent()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	lock := NewFileLock(path)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	return atomicWrite(path, data)
}

// Load reads the assessment at path and re-binds domain kinds for documents
// written before they were persisted. A document without a manuscript takes
// its file name (without extension) as the manuscript.
func Load(path string) (*models.Framework, error) {
	lock := NewFileLock(path)
	if err := lock.RLock(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	lock.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	fw, err := models.UnmarshalFramework(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rob2.Bind(fw)

	if fw.Manuscript == "" {
		base := filepath.Base(path)
		fw.Manuscript = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return fw, nil
}

// Update loads the assessment at path, applies fn and saves the result while
// holding the exclusive lock for the whole read-modify-write cycle. Nothing
// is written when fn returns an error.
func Update(path string, fn func(fw *models.Framework) error) (*models.Framework, error) {
	lock := NewFileLock(path)
	if err := lock.Lock(); err != nil {
		return nil, err
	}
	defer lock.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	fw, err := models.UnmarshalFramework(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rob2.Bind(fw)

	if err := fn(fw); err != nil {
		return nil, err
	}

	out, err := fw.MarshalIndent()
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := atomicWrite(path, append(out, '\n')); err != nil {
		return nil, err
	}
	return fw, nil
}

// Assessment is one document loaded from a directory.
type Assessment struct {
	Path      string
	Framework *models.Framework
}

// LoadFailure records a document that could not be loaded.
type LoadFailure struct {
	Path string
	Err  error
}

// DirectoryResult is the outcome of LoadDirectory.
type DirectoryResult struct {
	Assessments []Assessment
	Failures    []LoadFailure
}

// LoadDirectory loads every JSON document in dir. Unparseable documents do
// not stop the load; they are reported in Failures.
func LoadDirectory(dir string, opts ScanOptions) (*DirectoryResult, error) {
	scan, err := Scan(dir, opts)
	if err != nil {
		return nil, err
	}

	result := &DirectoryResult{}
	for _, err := range scan.Errors {
		result.Failures = append(result.Failures, LoadFailure{Err: err})
	}
	for _, path := range scan.Files {
		fw, err := Load(path)
		if err != nil {
			result.Failures = append(result.Failures, LoadFailure{Path: path, Err: err})
			continue
		}
		result.Assessments = append(result.Assessments, Assessment{Path: path, Framework: fw})
	}
	return result, nil
}

// Frameworks returns the loaded frameworks in path order.
func (r *DirectoryResult) Frameworks() []*models.Framework {
	out := make([]*models.Framework, len(r.Assessments))
	for i, a := range r.Assessments {
		out[i] = a.Framework
	}
	return out
}
