package srpm

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ralt/pkgsync/internal/config"
	"github.com/ralt/pkgsync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lead(kind uint16) []byte {
	b := make([]byte, leadSize)
	copy(b, rpmMagic)
	b[4], b[5] = 3, 0
	b[6], b[7] = byte(kind>>8), byte(kind)
	return b
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDetectKind(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name     string
		data     []byte
		expected Kind
	}{
		{"foo-1.0-1.src.rpm", lead(1), KindSource},
		{"foo-1.0-1.x86_64.rpm", lead(0), KindBinary},
		{"renamed.rpm", lead(1), KindSource},
		{"short.src.rpm", rpmMagic, KindSource},
		{"short.rpm", rpmMagic, KindBinary},
		{"fake.src.rpm", []byte("not an rpm at all"), KindUnknown},
		{"empty.src.rpm", nil, KindUnknown},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, dir, tc.name, tc.data)
			kind, err := DetectKind(path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, kind)

			isSource, err := DetectSourcePackage(path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected == KindSource, isSource)
		})
	}

	_, err := DetectKind(filepath.Join(dir, "missing.src.rpm"))
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a/foo-1.0-1.src.rpm", lead(1))
	writeFile(t, dir, "a/foo-1.0-1.noarch.rpm", lead(0))
	writeFile(t, dir, "b/c/bar-2.0-1.src.rpm", lead(1))
	writeFile(t, dir, "README", []byte("hello"))

	packages, err := NewFileSystemScanner().Scan(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, packages, 2)

	for _, p := range packages {
		assert.Equal(t, KindSource, p.Kind)
		assert.Equal(t, int64(leadSize), p.Size)
	}
	assert.Equal(t, filepath.Join(dir, "a/foo-1.0-1.src.rpm"), packages[0].Path)
	assert.Equal(t, filepath.Join(dir, "b/c/bar-2.0-1.src.rpm"), packages[1].Path)
}

func TestScanCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "foo.src.rpm", lead(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileSystemScanner().Scan(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseHeaderErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ParseHeader(filepath.Join(dir, "missing.src.rpm"))
	assert.True(t, models.IsType(err, models.ErrFileOp))

	// a valid lead followed by nothing
	truncated := writeFile(t, dir, "truncated.src.rpm", lead(1))
	_, err = ParseHeader(truncated)
	assert.True(t, models.IsType(err, models.ErrPackageParse))
}

func TestNewest(t *testing.T) {
	headers := []*Header{
		{Name: "foo", Version: "1.2", Release: "1"},
		{Name: "foo", Version: "1.10", Release: "1"},
		{Name: "foo", Version: "1.10", Release: "0.1"},
	}
	assert.Same(t, headers[1], Newest(headers))
	assert.Nil(t, Newest(nil))

	withEpoch := append(headers, &Header{Name: "foo", Epoch: "1", Version: "0.1", Release: "1"})
	assert.Same(t, withEpoch[3], Newest(withEpoch))
	assert.Equal(t, "foo-0.1-1", withEpoch[3].NVR())
}

func TestApplyToConfig(t *testing.T) {
	noEnv := func(string) (string, bool) { return "", false }
	h := &Header{Name: "python-foo", Version: "1.0", Release: "1"}

	cfg, err := config.NewWithEnv(config.Options{}, noEnv)
	require.NoError(t, err)
	set, err := ApplyToConfig(config.SinglePackage("foo", cfg), h)
	require.NoError(t, err)
	assert.True(t, set)
	assert.Equal(t, "python-foo", cfg.DownstreamPackageName)

	url, ok := cfg.DistGitPackageURL()
	require.True(t, ok)
	assert.Equal(t, "https://src.fedoraproject.org/rpms/python-foo.git", url)

	named, err := config.NewWithEnv(config.Options{DownstreamPackageName: "foo"}, noEnv)
	require.NoError(t, err)
	set, err = ApplyToConfig(named.View(), h)
	require.NoError(t, err)
	assert.False(t, set)
	assert.Equal(t, "foo", named.DownstreamPackageName)

	c, err := config.NewCollection(
		config.NamedPackage{Name: "a", Config: cfg},
		config.NamedPackage{Name: "b", Config: named},
	)
	require.NoError(t, err)
	_, err = ApplyToConfig(c, h)
	assert.True(t, models.IsType(err, models.ErrAmbiguous))
}
