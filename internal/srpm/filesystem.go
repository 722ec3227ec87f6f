package srpm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileSystemScanner implements Scanner for a directory tree
type FileSystemScanner struct{}

// NewFileSystemScanner creates a new filesystem scanner
func NewFileSystemScanner() *FileSystemScanner {
	return &FileSystemScanner{}
}

// Scan recursively scans a directory for source packages. Binary RPMs are skipped.
func (s *FileSystemScanner) Scan(ctx context.Context, dir string) ([]ScannedPackage, error) {
	var packages []ScannedPackage

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info.IsDir() {
			return nil
		}

		kind, err := s.DetectKind(path)
		if err != nil {
			logrus.Warnf("Failed to detect type for %s: %v", path, err)
			return nil
		}

		switch kind {
		case KindSource:
			logrus.Debugf("Found source package: %s", path)
			packages = append(packages, ScannedPackage{
				Path: path,
				Kind: kind,
				Size: info.Size(),
			})
		case KindBinary:
			logrus.Debugf("Skipping binary package: %s", path)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	logrus.Infof("Found %d source packages in %s", len(packages), dir)
	return packages, nil
}

// DetectKind determines the kind of a file
func (s *FileSystemScanner) DetectKind(path string) (Kind, error) {
	return DetectKind(path)
}
