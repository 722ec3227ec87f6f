package config

import (
	"fmt"

	"github.com/ralt/pkgsync/internal/models"
)

// Environment variables exported for actions run on behalf of a package.
const (
	EnvConfigPackageName     = "PACKIT_CONFIG_PACKAGE_NAME"
	EnvUpstreamPackageName   = "PACKIT_UPSTREAM_PACKAGE_NAME"
	EnvDownstreamPackageName = "PACKIT_DOWNSTREAM_PACKAGE_NAME"
)

// NamedPackage is one entry of a collection, in config file order.
type NamedPackage struct {
	Name   string
	Config *PackageConfig
}

// Collection holds the packages defined in one config file. Code written
// for single-package configs can keep using it as a ConfigurationView:
// calls go to the only package, and fail when there are several.
type Collection struct {
	packages map[string]*PackageConfig
	names    []string
}

var _ ConfigurationView = (*Collection)(nil)

// NewCollection builds a collection; package names must be unique.
func NewCollection(packages ...NamedPackage) (*Collection, error) {
	c := &Collection{
		packages: make(map[string]*PackageConfig, len(packages)),
		names:    make([]string, 0, len(packages)),
	}
	for _, p := range packages {
		if p.Config == nil {
			return nil, models.NewConfigError(models.ErrInvalidConfig, "packages", "package %q has no configuration", p.Name)
		}
		if _, dup := c.packages[p.Name]; dup {
			return nil, models.NewConfigError(models.ErrInvalidConfig, "packages", "duplicate package %q", p.Name)
		}
		c.packages[p.Name] = p.Config
		c.names = append(c.names, p.Name)
	}
	return c, nil
}

// SinglePackage wraps one config in a collection.
func SinglePackage(name string, cfg *PackageConfig) *Collection {
	return &Collection{
		packages: map[string]*PackageConfig{name: cfg},
		names:    []string{name},
	}
}

// Names returns the package names in config file order.
func (c *Collection) Names() []string {
	return append([]string(nil), c.names...)
}

// FirstName returns the name of the first package, or "" for an empty collection.
func (c *Collection) FirstName() string {
	if len(c.names) == 0 {
		return ""
	}
	return c.names[0]
}

// Len returns the number of packages.
func (c *Collection) Len() int {
	return len(c.names)
}

// Package returns the config of a package by name.
func (c *Collection) Package(name string) (*PackageConfig, bool) {
	p, ok := c.packages[name]
	return p, ok
}

// Packages returns the configs keyed by package name.
func (c *Collection) Packages() map[string]*PackageConfig {
	out := make(map[string]*PackageConfig, len(c.packages))
	for name, p := range c.packages {
		out[name] = p
	}
	return out
}

// String lists the package names, for log lines.
func (c *Collection) String() string {
	return fmt.Sprintf("Collection%v", c.names)
}

// sole returns the only package, or an ambiguity error naming the field.
func (c *Collection) sole(verb, field string) (*PackageConfig, error) {
	if len(c.names) == 1 {
		return c.packages[c.names[0]], nil
	}
	return nil, models.NewConfigError(models.ErrAmbiguous, field,
		"it is ambiguous to %s %s: there are %d packages in the config", verb, field, len(c.names))
}

func delegate[T any](c *Collection, field string, fn func(v ConfigurationView) (T, error)) (T, error) {
	p, err := c.sole("get", field)
	if err != nil {
		var zero T
		return zero, err
	}
	return fn(p.View())
}

// Get forwards to the only package.
func (c *Collection) Get(field string) (any, error) {
	return delegate(c, field, func(v ConfigurationView) (any, error) { return v.Get(field) })
}

// Set forwards to the only package.
func (c *Collection) Set(field string, value any) error {
	p, err := c.sole("set", field)
	if err != nil {
		return err
	}
	return p.Set(field, value)
}

func (c *Collection) ConfigFilePath() (string, error) {
	return delegate(c, "config_file_path", ConfigurationView.ConfigFilePath)
}

func (c *Collection) SpecfilePath() (string, error) {
	return delegate(c, "specfile_path", ConfigurationView.SpecfilePath)
}

func (c *Collection) UpstreamProjectURL() (string, error) {
	return delegate(c, "upstream_project_url", ConfigurationView.UpstreamProjectURL)
}

func (c *Collection) UpstreamPackageName() (string, error) {
	return delegate(c, "upstream_package_name", ConfigurationView.UpstreamPackageName)
}

func (c *Collection) DownstreamPackageName() (string, error) {
	return delegate(c, "downstream_package_name", ConfigurationView.DownstreamPackageName)
}

func (c *Collection) AllowedGPGKeys() ([]string, error) {
	return delegate(c, "allowed_gpg_keys", ConfigurationView.AllowedGPGKeys)
}

func (c *Collection) SetDownstreamPackageName(name string) error {
	p, err := c.sole("set", "downstream_package_name")
	if err != nil {
		return err
	}
	p.DownstreamPackageName = name
	return nil
}

func (c *Collection) DistGitBaseURL() (string, error) {
	return delegate(c, "dist_git_base_url", ConfigurationView.DistGitBaseURL)
}

func (c *Collection) DistGitNamespace() (string, error) {
	return delegate(c, "dist_git_namespace", ConfigurationView.DistGitNamespace)
}

func (c *Collection) DistGitPackageURL() (string, bool, error) {
	p, err := c.sole("get", "dist_git_package_url")
	if err != nil {
		return "", false, err
	}
	url, ok := p.DistGitPackageURL()
	return url, ok, nil
}

func (c *Collection) DownstreamProjectURL() (string, error) {
	return delegate(c, "downstream_project_url", ConfigurationView.DownstreamProjectURL)
}

func (c *Collection) FilesToSync() ([]models.SyncFilesItem, error) {
	return delegate(c, "files_to_sync", ConfigurationView.FilesToSync)
}

func (c *Collection) AllFilesToSync() ([]models.SyncFilesItem, error) {
	return delegate(c, "files_to_sync", ConfigurationView.AllFilesToSync)
}

func (c *Collection) SpecfileSyncFilesItem(fromDownstream bool) (models.SyncFilesItem, error) {
	return delegate(c, "specfile_path", func(v ConfigurationView) (models.SyncFilesItem, error) {
		return v.SpecfileSyncFilesItem(fromDownstream)
	})
}

func (c *Collection) Targets() ([]string, error) {
	return delegate(c, "targets", ConfigurationView.Targets)
}

func (c *Collection) TargetsDict() (TargetsDict, error) {
	return delegate(c, "targets", ConfigurationView.TargetsDict)
}

func (c *Collection) DistGitBranches() ([]string, error) {
	return delegate(c, "dist_git_branches", ConfigurationView.DistGitBranches)
}

func (c *Collection) SpecSourceIDNumber() (int, error) {
	return delegate(c, "spec_source_id_number", ConfigurationView.SpecSourceIDNumber)
}

func (c *Collection) SpecSourceID() (string, error) {
	return delegate(c, "spec_source_id", ConfigurationView.SpecSourceID)
}

func (c *Collection) Paths() ([]string, error) {
	return delegate(c, "paths", ConfigurationView.Paths)
}

func (c *Collection) UpstreamTagTemplate() (string, error) {
	return delegate(c, "upstream_tag_template", ConfigurationView.UpstreamTagTemplate)
}

func (c *Collection) ArchiveRootDirTemplate() (string, error) {
	return delegate(c, "archive_root_dir_template", ConfigurationView.ArchiveRootDirTemplate)
}

func (c *Collection) PatchGenerationPatchIDDigits() (int, error) {
	return delegate(c, "patch_generation_patch_id_digits", ConfigurationView.PatchGenerationPatchIDDigits)
}

func (c *Collection) PrereleaseSuffixPattern() (string, error) {
	return delegate(c, "prerelease_suffix_pattern", ConfigurationView.PrereleaseSuffixPattern)
}

func (c *Collection) CreatePR() (bool, error) {
	return delegate(c, "create_pr", ConfigurationView.CreatePR)
}

func (c *Collection) SyncChangelog() (bool, error) {
	return delegate(c, "sync_changelog", ConfigurationView.SyncChangelog)
}

func (c *Collection) CreateSyncNote() (bool, error) {
	return delegate(c, "create_sync_note", ConfigurationView.CreateSyncNote)
}

func (c *Collection) MergePRInCI() (bool, error) {
	return delegate(c, "merge_pr_in_ci", ConfigurationView.MergePRInCI)
}

func (c *Collection) UpdateRelease() (bool, error) {
	return delegate(c, "update_release", ConfigurationView.UpdateRelease)
}

func (c *Collection) UploadSources() (bool, error) {
	return delegate(c, "upload_sources", ConfigurationView.UploadSources)
}

func (c *Collection) Timeout() (int, error) {
	return delegate(c, "timeout", ConfigurationView.Timeout)
}

func (c *Collection) Scratch() (bool, error) {
	return delegate(c, "scratch", ConfigurationView.Scratch)
}

func (c *Collection) ListOnHomepage() (bool, error) {
	return delegate(c, "list_on_homepage", ConfigurationView.ListOnHomepage)
}

func (c *Collection) PreserveProject() (bool, error) {
	return delegate(c, "preserve_project", ConfigurationView.PreserveProject)
}

func (c *Collection) UseInternalTF() (bool, error) {
	return delegate(c, "use_internal_tf", ConfigurationView.UseInternalTF)
}

func (c *Collection) SkipBuild() (bool, error) {
	return delegate(c, "skip_build", ConfigurationView.SkipBuild)
}

func (c *Collection) EnableNet() (bool, error) {
	return delegate(c, "enable_net", ConfigurationView.EnableNet)
}

func (c *Collection) ModuleHotfixes() (bool, error) {
	return delegate(c, "module_hotfixes", ConfigurationView.ModuleHotfixes)
}

func (c *Collection) AllowedPRAuthors() ([]string, error) {
	return delegate(c, "allowed_pr_authors", ConfigurationView.AllowedPRAuthors)
}

func (c *Collection) PackitInstances() ([]models.Deployment, error) {
	return delegate(c, "packit_instances", ConfigurationView.PackitInstances)
}

// PackageNamesAsEnv returns the package, upstream and downstream names as
// environment variables. It requires exactly one package.
func (c *Collection) PackageNamesAsEnv() (map[string]string, error) {
	switch len(c.names) {
	case 0:
		return nil, models.NewConfigError(models.ErrNoPackages, "packages", "no packages in config")
	case 1:
	default:
		return nil, models.NewConfigError(models.ErrMultiplePackages, "packages", "multiple packages in config")
	}
	name := c.names[0]
	p := c.packages[name]
	return map[string]string{
		EnvConfigPackageName:     name,
		EnvUpstreamPackageName:   p.UpstreamPackageName,
		EnvDownstreamPackageName: p.DownstreamPackageName,
	}, nil
}
