package srpm

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ralt/pkgsync/internal/models"
	"github.com/sassoftware/go-rpmutils"
)

// Header holds the source package metadata packit cares about
type Header struct {
	Path    string
	Name    string
	Epoch   string
	Version string
	Release string
	Summary string
	License string
	URL     string
	Sources []string
	Patches []string
	SHA256  string
	Size    int64
}

// NVR returns name-version-release.
func (h *Header) NVR() string {
	return fmt.Sprintf("%s-%s-%s", h.Name, h.Version, h.Release)
}

// NEVRA returns the identity go-rpmutils compares versions with.
func (h *Header) NEVRA() rpmutils.NEVRA {
	return rpmutils.NEVRA{
		Name:    h.Name,
		Epoch:   h.Epoch,
		Version: h.Version,
		Release: h.Release,
		Arch:    "src",
	}
}

// ParseHeader reads the header of a source RPM
func ParseHeader(path string) (*Header, error) {
	sum, size, err := checksum(path)
	if err != nil {
		return nil, &models.ConfigError{Type: models.ErrFileOp, Field: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &models.ConfigError{Type: models.ErrFileOp, Field: path, Err: err}
	}
	defer f.Close()

	rpm, err := rpmutils.ReadRpm(f)
	if err != nil {
		return nil, models.NewConfigError(models.ErrPackageParse, path, "failed to read RPM: %v", err)
	}

	h := &Header{
		Path:    path,
		Name:    getStringTag(rpm, rpmutils.NAME),
		Epoch:   getEpoch(rpm),
		Version: getStringTag(rpm, rpmutils.VERSION),
		Release: getStringTag(rpm, rpmutils.RELEASE),
		Summary: getStringTag(rpm, rpmutils.SUMMARY),
		License: getStringTag(rpm, rpmutils.LICENSE),
		URL:     getStringTag(rpm, rpmutils.URL),
		Sources: getStringSliceTag(rpm, rpmutils.SOURCE),
		Patches: getStringSliceTag(rpm, rpmutils.PATCH),
		SHA256:  sum,
		Size:    size,
	}
	if h.Name == "" {
		return nil, models.NewConfigError(models.ErrPackageParse, path, "package has no name")
	}
	return h, nil
}

// Newest returns the header with the highest epoch:version-release, or nil.
func Newest(headers []*Header) *Header {
	var newest *Header
	for _, h := range headers {
		if newest == nil || rpmutils.NEVRAcmp(h.NEVRA(), newest.NEVRA()) > 0 {
			newest = h
		}
	}
	return newest
}

func checksum(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

// getStringTag safely gets a string tag from RPM
func getStringTag(rpm *rpmutils.Rpm, tag int) string {
	val, err := rpm.Header.Get(tag)
	if err != nil {
		return ""
	}

	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	default:
		return fmt.Sprintf("%v", v)
	}

	return ""
}

// getEpoch returns the epoch as a string, "" when the package has none
func getEpoch(rpm *rpmutils.Rpm) string {
	vals, err := rpm.Header.GetInts(rpmutils.EPOCH)
	if err != nil || len(vals) == 0 {
		return ""
	}
	return strconv.Itoa(vals[0])
}

// getStringSliceTag safely gets a string slice tag from RPM
func getStringSliceTag(rpm *rpmutils.Rpm, tag int) []string {
	val, err := rpm.Header.Get(tag)
	if err != nil {
		return nil
	}
	if slice, ok := val.([]string); ok {
		var result []string
		for _, s := range slice {
			s = strings.TrimSpace(s)
			if s != "" {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}
