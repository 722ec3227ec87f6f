package config

import (
	"testing"

	"github.com/ralt/pkgsync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPackages(t *testing.T) *Collection {
	t.Helper()
	c, err := NewCollection(
		NamedPackage{Name: "pkg-a", Config: mustNew(t, Options{DownstreamPackageName: "a", SpecfilePath: "a.spec"})},
		NamedPackage{Name: "pkg-b", Config: mustNew(t, Options{DownstreamPackageName: "b", SpecfilePath: "b.spec"})},
	)
	require.NoError(t, err)
	return c
}

func TestNewCollectionRejectsDuplicates(t *testing.T) {
	cfg := mustNew(t, Options{})
	_, err := NewCollection(
		NamedPackage{Name: "foo", Config: cfg},
		NamedPackage{Name: "foo", Config: cfg},
	)
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrInvalidConfig))

	_, err = NewCollection(NamedPackage{Name: "foo"})
	assert.True(t, models.IsType(err, models.ErrInvalidConfig))
}

func TestCollectionKeepsOrder(t *testing.T) {
	c := twoPackages(t)
	assert.Equal(t, []string{"pkg-a", "pkg-b"}, c.Names())
	assert.Equal(t, "pkg-a", c.FirstName())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "Collection[pkg-a pkg-b]", c.String())

	b, ok := c.Package("pkg-b")
	require.True(t, ok)
	assert.Equal(t, "b", b.DownstreamPackageName)

	_, ok = c.Package("pkg-c")
	assert.False(t, ok)
	assert.Len(t, c.Packages(), 2)
}

func TestSinglePackageForwards(t *testing.T) {
	cfg := mustNew(t, Options{
		SpecfilePath:          "foo.spec",
		UpstreamPackageName:   "foo-up",
		DownstreamPackageName: "foo",
		SpecSourceID:          ptr("Source2"),
		Targets:               TargetsFromNames("fedora-rawhide"),
		DistGitBranches:       []string{"rawhide"},
	})
	c := SinglePackage("foo", cfg)

	var view ConfigurationView = c

	spec, err := view.SpecfilePath()
	require.NoError(t, err)
	assert.Equal(t, "foo.spec", spec)

	url, ok, err := view.DistGitPackageURL()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://src.fedoraproject.org/rpms/foo.git", url)

	n, err := view.SpecSourceIDNumber()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	targets, err := view.Targets()
	require.NoError(t, err)
	assert.Equal(t, []string{"fedora-rawhide"}, targets)

	branches, err := view.DistGitBranches()
	require.NoError(t, err)
	assert.Equal(t, []string{"rawhide"}, branches)

	files, err := view.AllFilesToSync()
	require.NoError(t, err)
	assert.Equal(t, cfg.AllFilesToSync(), files)

	require.NoError(t, view.SetDownstreamPackageName("bar"))
	assert.Equal(t, "bar", cfg.DownstreamPackageName)

	require.NoError(t, view.Set("upstream_ref", "v1.0"))
	got, err := view.Get("upstream_ref")
	require.NoError(t, err)
	assert.Equal(t, "v1.0", got)
	assert.Equal(t, "v1.0", cfg.UpstreamRef)
}

func TestViewServesDefaults(t *testing.T) {
	c := SinglePackage("foo", mustNew(t, Options{Scratch: true, Timeout: ptr(60)}))
	var view ConfigurationView = c

	get := func(fn func() (bool, error)) bool {
		v, err := fn()
		require.NoError(t, err)
		return v
	}
	assert.True(t, get(view.CreatePR))
	assert.False(t, get(view.SyncChangelog))
	assert.True(t, get(view.CreateSyncNote))
	assert.True(t, get(view.MergePRInCI))
	assert.True(t, get(view.UpdateRelease))
	assert.True(t, get(view.UploadSources))
	assert.True(t, get(view.Scratch))
	assert.False(t, get(view.ListOnHomepage))
	assert.False(t, get(view.PreserveProject))
	assert.False(t, get(view.UseInternalTF))
	assert.False(t, get(view.SkipBuild))
	assert.False(t, get(view.EnableNet))
	assert.False(t, get(view.ModuleHotfixes))

	timeout, err := view.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 60, timeout)

	digits, err := view.PatchGenerationPatchIDDigits()
	require.NoError(t, err)
	assert.Equal(t, DefaultPatchIDDigits, digits)

	paths, err := view.Paths()
	require.NoError(t, err)
	assert.Equal(t, []string{"./"}, paths)

	strs := []struct {
		fn       func() (string, error)
		expected string
	}{
		{view.SpecSourceID, DefaultSpecSourceID},
		{view.UpstreamTagTemplate, DefaultUpstreamTagTemplate},
		{view.ArchiveRootDirTemplate, DefaultArchiveRootDirTemplate},
		{view.PrereleaseSuffixPattern, DefaultPrereleaseSuffixPattern},
	}
	for _, s := range strs {
		got, err := s.fn()
		require.NoError(t, err)
		assert.Equal(t, s.expected, got)
	}

	authors, err := view.AllowedPRAuthors()
	require.NoError(t, err)
	assert.Equal(t, []string{"packit"}, authors)

	instances, err := view.PackitInstances()
	require.NoError(t, err)
	assert.Equal(t, []models.Deployment{models.DeploymentProd}, instances)
}

func TestCollectionIsAmbiguousWithSeveralPackages(t *testing.T) {
	c := twoPackages(t)

	calls := map[string]func() error{
		"Get": func() error { _, err := c.Get("specfile_path"); return err },
		"Set": func() error { return c.Set("specfile_path", "x.spec") },
		"SpecfilePath": func() error { _, err := c.SpecfilePath(); return err },
		"DistGitPackageURL": func() error { _, _, err := c.DistGitPackageURL(); return err },
		"FilesToSync": func() error { _, err := c.FilesToSync(); return err },
		"SetDownstreamPackageName": func() error { return c.SetDownstreamPackageName("x") },
		"SpecSourceIDNumber": func() error { _, err := c.SpecSourceIDNumber(); return err },
		"Timeout": func() error { _, err := c.Timeout(); return err },
		"Scratch": func() error { _, err := c.Scratch(); return err },
		"PackitInstances": func() error { _, err := c.PackitInstances(); return err },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			require.Error(t, err)
			assert.True(t, models.IsType(err, models.ErrAmbiguous))
			assert.Contains(t, err.Error(), "there are 2 packages in the config")
		})
	}

	// nothing was written
	a, _ := c.Package("pkg-a")
	assert.Equal(t, "a.spec", a.SpecfilePath)
	assert.Equal(t, "a", a.DownstreamPackageName)
}

func TestEmptyCollectionIsAmbiguous(t *testing.T) {
	c, err := NewCollection()
	require.NoError(t, err)

	_, err = c.SpecfilePath()
	assert.True(t, models.IsType(err, models.ErrAmbiguous))
	assert.Equal(t, "", c.FirstName())
}

func TestPackageNamesAsEnv(t *testing.T) {
	cfg := mustNew(t, Options{UpstreamPackageName: "up"})
	env, err := SinglePackage("pkg", cfg).PackageNamesAsEnv()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"PACKIT_CONFIG_PACKAGE_NAME":     "pkg",
		"PACKIT_UPSTREAM_PACKAGE_NAME":   "up",
		"PACKIT_DOWNSTREAM_PACKAGE_NAME": "",
	}, env)

	_, err = twoPackages(t).PackageNamesAsEnv()
	assert.True(t, models.IsType(err, models.ErrMultiplePackages))

	empty, err := NewCollection()
	require.NoError(t, err)
	_, err = empty.PackageNamesAsEnv()
	assert.True(t, models.IsType(err, models.ErrNoPackages))
}
