// Package store owns the on-disk document layout: the generated-document
// directory and the bulk-upload drop area.
package store

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/letterforge/docgen-service/internal/core/ports"
)

// Store reads and writes below two fixed directories. Stored names are
// always flat; anything that looks like a path escape is rejected before it
// touches the filesystem.
type Store struct {
	outputDir string
	uploadDir string
}

// New creates both directories if needed.
func New(outputDir, uploadDir string) (*Store, error) {
	for _, dir := range []string{outputDir, uploadDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return &Store{outputDir: outputDir, uploadDir: uploadDir}, nil
}

// validName accepts flat file names only.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}

func (s *Store) WriteDocument(name string, data []byte) error {
	if !validName(name) {
		return fmt.Errorf("invalid document name %q", name)
	}
	if err := os.WriteFile(filepath.Join(s.outputDir, name), data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

func (s *Store) ReadDocument(name string) ([]byte, error) {
	path, err := s.DocumentPath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}

func (s *Store) DocumentExists(name string) bool {
	if !validName(name) {
		return false
	}
	_, err := os.Stat(filepath.Join(s.outputDir, name))
	return err == nil
}

// DocumentPath resolves a stored name to a path inside the output
// directory. Names with separators or dot-dot segments never resolve.
func (s *Store) DocumentPath(name string) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("invalid document name %q", name)
	}
	return filepath.Join(s.outputDir, name), nil
}

// SaveUpload stores an incoming bulk-import file under its original name
// and returns the full path.
func (s *Store) SaveUpload(name string, r io.Reader) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("invalid upload name %q", name)
	}
	path := filepath.Join(s.uploadDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return path, nil
}

// Archive zips the named documents into w. Entries missing on disk are
// skipped so one lost file never sinks the whole bundle.
func (s *Store) Archive(w io.Writer, entries []ports.ArchiveEntry) error {
	zw := zip.NewWriter(w)

	for _, entry := range entries {
		if !validName(entry.File) {
			continue
		}
		src := filepath.Join(s.outputDir, entry.File)
		f, err := os.Open(src)
		if err != nil {
			continue
		}

		dst, err := zw.Create(entry.Name)
		if err != nil {
			f.Close()
			return fmt.Errorf("add %s to archive: %w", entry.Name, err)
		}
		if _, err := io.Copy(dst, f); err != nil {
			f.Close()
			return fmt.Errorf("copy %s into archive: %w", entry.Name, err)
		}
		f.Close()
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}
