package srpm

import "context"

// Kind tells which sort of RPM a file is
type Kind int

const (
	KindUnknown Kind = iota
	KindBinary
	KindSource
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindBinary:
		return "rpm"
	case KindSource:
		return "srpm"
	default:
		return "unknown"
	}
}

// ScannedPackage represents a source package found during scanning
type ScannedPackage struct {
	Path string
	Kind Kind
	Size int64
}

// Scanner finds source packages
type Scanner interface {
	// Scan recursively scans a directory for source packages
	Scan(ctx context.Context, dir string) ([]ScannedPackage, error)

	// DetectKind determines the kind of a file
	DetectKind(path string) (Kind, error)
}
