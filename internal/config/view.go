package config

import (
	"slices"

	"github.com/ralt/pkgsync/internal/models"
)

// ConfigurationView is the read/write surface shared by a single package
// config and a collection of them. A collection answers only when it holds
// exactly one package; otherwise every method fails with ErrAmbiguous.
type ConfigurationView interface {
	Get(field string) (any, error)
	Set(field string, value any) error

	ConfigFilePath() (string, error)
	SpecfilePath() (string, error)
	UpstreamProjectURL() (string, error)
	UpstreamPackageName() (string, error)
	DownstreamPackageName() (string, error)
	SetDownstreamPackageName(name string) error
	AllowedGPGKeys() ([]string, error)

	DistGitBaseURL() (string, error)
	DistGitNamespace() (string, error)
	DistGitPackageURL() (string, bool, error)
	DownstreamProjectURL() (string, error)

	FilesToSync() ([]models.SyncFilesItem, error)
	AllFilesToSync() ([]models.SyncFilesItem, error)
	SpecfileSyncFilesItem(fromDownstream bool) (models.SyncFilesItem, error)

	Targets() ([]string, error)
	TargetsDict() (TargetsDict, error)
	DistGitBranches() ([]string, error)
	SpecSourceID() (string, error)
	SpecSourceIDNumber() (int, error)

	Paths() ([]string, error)
	UpstreamTagTemplate() (string, error)
	ArchiveRootDirTemplate() (string, error)
	PatchGenerationPatchIDDigits() (int, error)
	PrereleaseSuffixPattern() (string, error)

	CreatePR() (bool, error)
	SyncChangelog() (bool, error)
	CreateSyncNote() (bool, error)
	MergePRInCI() (bool, error)
	UpdateRelease() (bool, error)
	UploadSources() (bool, error)

	Timeout() (int, error)
	Scratch() (bool, error)
	ListOnHomepage() (bool, error)
	PreserveProject() (bool, error)
	UseInternalTF() (bool, error)
	SkipBuild() (bool, error)
	EnableNet() (bool, error)
	ModuleHotfixes() (bool, error)

	AllowedPRAuthors() ([]string, error)
	PackitInstances() ([]models.Deployment, error)
}

// packageView serves a ConfigurationView straight from one package; it never fails.
type packageView struct {
	c *PackageConfig
}

var _ ConfigurationView = packageView{}

func (v packageView) Get(field string) (any, error)    { return v.c.Get(field) }
func (v packageView) Set(field string, value any) error { return v.c.Set(field, value) }

func (v packageView) ConfigFilePath() (string, error)        { return v.c.ConfigFilePath, nil }
func (v packageView) SpecfilePath() (string, error)          { return v.c.SpecfilePath, nil }
func (v packageView) UpstreamProjectURL() (string, error)    { return v.c.UpstreamProjectURL, nil }
func (v packageView) UpstreamPackageName() (string, error)   { return v.c.UpstreamPackageName, nil }
func (v packageView) DownstreamPackageName() (string, error) { return v.c.DownstreamPackageName, nil }
func (v packageView) AllowedGPGKeys() ([]string, error)      { return slices.Clone(v.c.AllowedGPGKeys), nil }

func (v packageView) SetDownstreamPackageName(name string) error {
	v.c.DownstreamPackageName = name
	return nil
}

func (v packageView) DistGitBaseURL() (string, error)       { return v.c.DistGitBaseURL(), nil }
func (v packageView) DistGitNamespace() (string, error)     { return v.c.DistGitNamespace(), nil }
func (v packageView) DownstreamProjectURL() (string, error) { return v.c.DownstreamProjectURL(), nil }

func (v packageView) DistGitPackageURL() (string, bool, error) {
	url, ok := v.c.DistGitPackageURL()
	return url, ok, nil
}

func (v packageView) FilesToSync() ([]models.SyncFilesItem, error)    { return v.c.FilesToSync(), nil }
func (v packageView) AllFilesToSync() ([]models.SyncFilesItem, error) { return v.c.AllFilesToSync(), nil }

func (v packageView) SpecfileSyncFilesItem(fromDownstream bool) (models.SyncFilesItem, error) {
	return v.c.SpecfileSyncFilesItem(fromDownstream), nil
}

func (v packageView) Targets() ([]string, error)         { return v.c.Targets(), nil }
func (v packageView) TargetsDict() (TargetsDict, error)  { return v.c.TargetsDict(), nil }
func (v packageView) DistGitBranches() ([]string, error) { return v.c.DistGitBranches.Sorted(), nil }
func (v packageView) SpecSourceIDNumber() (int, error)   { return v.c.SpecSourceIDNumber(), nil }
func (v packageView) SpecSourceID() (string, error)         { return v.c.SpecSourceID, nil }

func (v packageView) Paths() ([]string, error)                { return slices.Clone(v.c.Paths), nil }
func (v packageView) UpstreamTagTemplate() (string, error)    { return v.c.UpstreamTagTemplate, nil }
func (v packageView) ArchiveRootDirTemplate() (string, error) { return v.c.ArchiveRootDirTemplate, nil }
func (v packageView) PatchGenerationPatchIDDigits() (int, error) {
	return v.c.PatchGenerationPatchIDDigits, nil
}
func (v packageView) PrereleaseSuffixPattern() (string, error) { return v.c.PrereleaseSuffixPattern, nil }

func (v packageView) CreatePR() (bool, error)       { return v.c.CreatePR, nil }
func (v packageView) SyncChangelog() (bool, error)  { return v.c.SyncChangelog, nil }
func (v packageView) CreateSyncNote() (bool, error) { return v.c.CreateSyncNote, nil }
func (v packageView) MergePRInCI() (bool, error)    { return v.c.MergePRInCI, nil }
func (v packageView) UpdateRelease() (bool, error)  { return v.c.UpdateRelease, nil }
func (v packageView) UploadSources() (bool, error)  { return v.c.UploadSources, nil }

func (v packageView) Timeout() (int, error)          { return v.c.Timeout, nil }
func (v packageView) Scratch() (bool, error)         { return v.c.Scratch, nil }
func (v packageView) ListOnHomepage() (bool, error)  { return v.c.ListOnHomepage, nil }
func (v packageView) PreserveProject() (bool, error) { return v.c.PreserveProject, nil }
func (v packageView) UseInternalTF() (bool, error)   { return v.c.UseInternalTF, nil }
func (v packageView) SkipBuild() (bool, error)       { return v.c.SkipBuild, nil }
func (v packageView) EnableNet() (bool, error)       { return v.c.EnableNet, nil }
func (v packageView) ModuleHotfixes() (bool, error)  { return v.c.ModuleHotfixes, nil }

func (v packageView) AllowedPRAuthors() ([]string, error) { return slices.Clone(v.c.AllowedPRAuthors), nil }
func (v packageView) PackitInstances() ([]models.Deployment, error) {
	return slices.Clone(v.c.PackitInstances), nil
}
