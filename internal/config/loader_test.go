package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ralt/pkgsync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoader = Loader{Env: noEnv}

const singleConfig = `
specfile_path: fedora/python-foo.spec
upstream_package_name: foo
downstream_package_name: python-foo
upstream_tag_template: v{version}
targets:
  - fedora-rawhide-x86_64
dist_git_branches: [rawhide, f40]
files_to_sync:
  - packit.yaml
  - src: [a, b]
    dest: dir/
    mkpath: true
actions:
  post-upstream-clone: make prep
  create-archive:
    - make archive
    - ls *.tar.gz
notifications:
  pull_request:
    successful_build: true
jobs:
  - job: copr_build
    trigger: pull_request
`

func TestParseSinglePackage(t *testing.T) {
	c, err := testLoader.Parse([]byte(singleConfig), ".packit.yaml")
	require.NoError(t, err)
	require.Equal(t, []string{"python-foo"}, c.Names())

	cfg, _ := c.Package("python-foo")
	assert.Equal(t, ".packit.yaml", cfg.ConfigFilePath)
	assert.Equal(t, "fedora/python-foo.spec", cfg.SpecfilePath)
	assert.Equal(t, "v{version}", cfg.UpstreamTagTemplate)
	assert.Equal(t, []string{"fedora-rawhide-x86_64"}, cfg.Targets())
	assert.Equal(t, []string{"f40", "rawhide"}, cfg.DistGitBranches.Sorted())
	assert.Equal(t, SyncModern, cfg.SyncSource().Kind())
	assert.Equal(t, []models.SyncFilesItem{
		{Src: []string{"packit.yaml"}, Dest: "packit.yaml"},
		{Src: []string{"a", "b"}, Dest: "dir/", Mkpath: true},
	}, cfg.FilesToSync())
	assert.Equal(t, models.StringOrList{"make prep"}, cfg.Actions[models.ActionPostUpstreamClone])
	assert.Equal(t, models.StringOrList{"make archive", "ls *.tar.gz"}, cfg.Actions[models.ActionCreateArchive])
	assert.True(t, cfg.Notifications.PullRequest.SuccessfulBuild)
	assert.True(t, cfg.Notifications.FailureIssue.Create)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestParsePackageNameFallback(t *testing.T) {
	testCases := []struct {
		desc     string
		doc      string
		expected string
	}{
		{"downstream name", "downstream_package_name: a\nupstream_package_name: b\n", "a"},
		{"upstream name", "upstream_package_name: b\n", "b"},
		{"no name", "specfile_path: x.spec\n", DefaultPackageName},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			c, err := testLoader.Parse([]byte(tc.doc), "packit.yaml")
			require.NoError(t, err)
			assert.Equal(t, []string{tc.expected}, c.Names())
		})
	}
}

const monorepoConfig = `
upstream_project_url: https://github.com/example/monorepo
downstream_package_name: shared
create_pr: false
packages:
  second:
    specfile_path: b/b.spec
    downstream_package_name: b
    create_pr: true
  first:
    specfile_path: a/a.spec
  third:
`

func TestParsePackagesInheritDefaults(t *testing.T) {
	c, err := testLoader.Parse([]byte(monorepoConfig), ".packit.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first", "third"}, c.Names())

	second, _ := c.Package("second")
	assert.Equal(t, "b", second.DownstreamPackageName)
	assert.True(t, second.CreatePR)
	assert.Equal(t, "https://github.com/example/monorepo", second.UpstreamProjectURL)

	first, _ := c.Package("first")
	assert.Equal(t, "shared", first.DownstreamPackageName)
	assert.False(t, first.CreatePR)
	assert.Equal(t, "a/a.spec", first.SpecfilePath)

	third, _ := c.Package("third")
	assert.Equal(t, "", third.SpecfilePath)
	assert.Equal(t, ".packit.yaml", third.ConfigFilePath)

	_, err = c.SpecfilePath()
	assert.True(t, models.IsType(err, models.ErrAmbiguous))
}

func TestParsePackagesSharingAnchors(t *testing.T) {
	doc := `
packages:
  a: &a
    downstream_package_name: a
    dist_git_branches: [rawhide]
    targets: &targets [fedora-rawhide]
  b:
    <<: *a
    downstream_package_name: b
  c:
    <<: [{specfile_path: c.spec}, *a]
    targets: *targets
    create_pr: false
`
	c, err := testLoader.Parse([]byte(doc), ".packit.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, c.Names())

	b, _ := c.Package("b")
	assert.Equal(t, "b", b.DownstreamPackageName)
	assert.Equal(t, []string{"rawhide"}, b.DistGitBranches.Sorted())
	assert.Equal(t, []string{"fedora-rawhide"}, b.Targets())

	pc, _ := c.Package("c")
	assert.Equal(t, "a", pc.DownstreamPackageName)
	assert.Equal(t, "c.spec", pc.SpecfilePath)
	assert.Equal(t, []string{"fedora-rawhide"}, pc.Targets())
	assert.False(t, pc.CreatePR)
}

func TestParseTopLevelAnchor(t *testing.T) {
	doc := `
upstream_project_url: &url https://github.com/example/foo
packages:
  foo:
    issue_repository: *url
`
	c, err := testLoader.Parse([]byte(doc), ".packit.yaml")
	require.NoError(t, err)
	foo, _ := c.Package("foo")
	assert.Equal(t, "https://github.com/example/foo", foo.IssueRepository)
	assert.Equal(t, "https://github.com/example/foo", foo.UpstreamProjectURL)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		desc  string
		doc   string
		typ   models.ErrorType
		field string
	}{
		{"not yaml", "a: [", models.ErrInvalidConfig, "packit.yaml"},
		{"recursive alias", "a: &x\n  b: *x\n", models.ErrInvalidConfig, "packit.yaml"},
		{"bad merge", "<<: 1\nspecfile_path: x\n", models.ErrInvalidConfig, "packit.yaml"},
		{"empty", "", models.ErrInvalidConfig, "packit.yaml"},
		{"not a mapping", "- a\n- b\n", models.ErrInvalidConfig, "packit.yaml"},
		{"unknown key", "specfile_path: x\nno_such_option: 1\n", models.ErrInvalidConfig, ""},
		{"wrong type", "timeout: soon\n", models.ErrInvalidConfig, ""},
		{"bad deployment", "packit_instances: [qa]\n", models.ErrInvalidConfig, "packit_instances"},
		{"unknown pkg tool", "pkg_tool: nope\n", models.ErrUnknownPkgTool, "pkg_tool"},
		{"packages not a mapping", "packages: [a]\n", models.ErrInvalidConfig, "packages"},
		{"package not a mapping", "packages:\n  a: 1\n", models.ErrInvalidConfig, "packages.a"},
		{"bad package key", "packages:\n  a:\n    bogus: 1\n", models.ErrInvalidConfig, "packages.a"},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := testLoader.Parse([]byte(tc.doc), "packit.yaml")
			require.Error(t, err)
			assert.True(t, models.IsType(err, tc.typ), "got %v", err)

			var cfgErr *models.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestParseLegacySyncedFiles(t *testing.T) {
	doc := "specfile_path: foo.spec\nsynced_files:\n  - README.md\n"
	c, err := testLoader.Parse([]byte(doc), ".packit.yaml")
	require.NoError(t, err)

	cfg, _ := c.Package(DefaultPackageName)
	assert.Equal(t, SyncLegacy, cfg.SyncSource().Kind())
	assert.Equal(t, []models.SyncFilesItem{
		models.SyncPath("README.md"),
		models.SyncPath("foo.spec"),
		models.SyncPath(".packit.yaml"),
	}, cfg.AllFilesToSync())
	require.Len(t, cfg.Notices(), 1)
}

func TestFindAndLoadFile(t *testing.T) {
	dir := t.TempDir()

	_, err := FindConfigFile(dir)
	assert.True(t, models.IsType(err, models.ErrFileOp))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "packit.yaml"), []byte("upstream_package_name: late\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".packit.yml"), []byte("upstream_package_name: early\n"), 0o644))

	path, err := FindConfigFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".packit.yml"), path)

	c, err := testLoader.LoadFile(path)
	require.NoError(t, err)
	cfg, ok := c.Package("early")
	require.True(t, ok)
	assert.Equal(t, ".packit.yml", cfg.ConfigFilePath)

	_, err = testLoader.LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.True(t, models.IsType(err, models.ErrFileOp))
}

func TestParseJSON(t *testing.T) {
	doc := `{"specfile_path": "foo.spec", "downstream_package_name": "foo", "targets": {"epel-9": {"distros": ["rhel-9"]}}}`
	c, err := testLoader.Parse([]byte(doc), ".packit.json")
	require.NoError(t, err)

	cfg, _ := c.Package("foo")
	assert.Equal(t, TargetsDict{"epel-9": {"distros": []any{"rhel-9"}}}, cfg.TargetsDict())
}
