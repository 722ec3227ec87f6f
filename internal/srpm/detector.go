package srpm

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"strings"
)

// The RPM lead is 96 bytes: magic, major, minor, then a big-endian type
// field that is 0 for binary and 1 for source packages.
var rpmMagic = []byte{0xED, 0xAB, 0xEE, 0xDB}

const (
	leadSize       = 96
	leadTypeOffset = 6
	leadTypeSource = 1
)

// DetectKind determines the RPM kind based on the lead and file name
func DetectKind(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	lead := make([]byte, leadSize)
	n, err := io.ReadFull(f, lead)
	if err != nil && n == 0 {
		if err == io.EOF {
			return KindUnknown, nil
		}
		return KindUnknown, err
	}
	lead = lead[:n]

	if !bytes.HasPrefix(lead, rpmMagic) {
		return KindUnknown, nil
	}

	// a truncated lead still says RPM; trust the file name for the rest
	if len(lead) < leadTypeOffset+2 {
		if strings.HasSuffix(path, ".src.rpm") {
			return KindSource, nil
		}
		return KindBinary, nil
	}

	if binary.BigEndian.Uint16(lead[leadTypeOffset:]) == leadTypeSource {
		return KindSource, nil
	}
	return KindBinary, nil
}

// DetectSourcePackage reports whether path is a source RPM.
func DetectSourcePackage(path string) (bool, error) {
	kind, err := DetectKind(path)
	if err != nil {
		return false, err
	}
	return kind == KindSource, nil
}
