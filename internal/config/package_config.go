package config

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ralt/pkgsync/internal/distgit"
	"github.com/ralt/pkgsync/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	DefaultSpecSourceID            = "Source0"
	DefaultUpstreamTagTemplate     = "{version}"
	DefaultArchiveRootDirTemplate  = "{upstream_pkg_name}-{version}"
	DefaultPatchIDDigits           = 4
	DefaultTimeout                 = 7200
	DefaultPrereleaseSuffixPattern = `([.\-_~^]?)(alpha|beta|rc|pre(view)?)([.\-_]?\d+)?`
	DefaultAllowedPRAuthor         = "packit"
)

// DefaultPaths is used when a package does not restrict itself to subdirectories.
var DefaultPaths = []string{"./"}

// PackageConfig holds every configuration knob for one package.
//
// Plain fields may be changed by later pipeline stages. The dist-git
// instance, the sync source and the targets are normalized once in New and
// only reachable through methods.
type PackageConfig struct {
	ConfigFilePath        string
	SpecfilePath          string
	UpstreamProjectURL    string
	UpstreamPackageName   string
	DownstreamPackageName string
	Paths                 []string
	PkgTool               string

	PatchGenerationIgnorePaths   []string
	PatchGenerationPatchIDDigits int

	Actions        map[models.ActionName]models.StringOrList
	UpstreamRef    string
	AllowedGPGKeys []string // nil allows any key

	CreatePR       bool
	SyncChangelog  bool
	CreateSyncNote bool
	SpecSourceID   string

	UpstreamTagTemplate     string
	ArchiveRootDirTemplate  string
	UpstreamTagInclude      string
	UpstreamTagExclude      string
	PrereleaseSuffixPattern string
	PrereleaseSuffixMacro   string
	VersionUpdateMask       string

	Notifications                  NotificationsConfig
	Identifier                     string
	PackitInstances                []models.Deployment
	CopyUpstreamReleaseDescription bool
	Sources                        []SourcesItem
	MergePRInCI                    bool
	SRPMBuildDeps                  []string
	IssueRepository                string
	ReleaseSuffix                  *string
	UpdateRelease                  bool

	Timeout               int
	Owner                 string
	Project               string
	DistGitBranches       BranchSet
	Branch                string
	Scratch               bool
	ListOnHomepage        bool
	PreserveProject       bool
	AdditionalPackages    []string
	AdditionalRepos       []string
	ModuleHotfixes        bool
	EnableNet             bool
	FollowFedoraBranching bool
	UploadSources         bool
	CoprChroot            string
	ParseTimeMacros       MacroMap

	FMFURL              string
	FMFRef              string
	FMFPath             string
	UseInternalTF       bool
	SkipBuild           bool
	Env                 map[string]any
	TMTPlan             string
	TFPostInstallScript string
	TFExtraParams       map[string]any

	AllowedPRAuthors  []string
	AllowedCommitters []string

	ImageDistribution   string
	ImageRequest        map[string]any
	ImageCustomizations map[string]any

	TestCommand TestCommandConfig
	Require     RequirementsConfig

	distGit    distgit.Instance
	syncSource SyncSource
	targets    TargetsDict

	// downstreamURL is either the configured override or the first
	// non-empty dist-git package URL read; once filled it never changes.
	downstreamURL       string
	downstreamURLFilled bool

	notices []Notice
}

// New builds a package config from parsed options, resolving the dist-git
// instance from the process environment when the options do not pin it.
func New(opts Options) (*PackageConfig, error) {
	return NewWithEnv(opts, nil)
}

// NewWithEnv is New with an explicit environment lookup.
func NewWithEnv(opts Options, env distgit.LookupEnv) (*PackageConfig, error) {
	inst, err := distgit.Resolve(opts.DistGitBaseURL, opts.DistGitNamespace, opts.PkgTool, env)
	if err != nil {
		return nil, err
	}

	c := &PackageConfig{
		ConfigFilePath:        opts.ConfigFilePath,
		SpecfilePath:          opts.SpecfilePath,
		UpstreamProjectURL:    opts.UpstreamProjectURL,
		UpstreamPackageName:   opts.UpstreamPackageName,
		DownstreamPackageName: opts.DownstreamPackageName,
		Paths:                 orDefault(opts.Paths, DefaultPaths),
		PkgTool:               opts.PkgTool,

		PatchGenerationIgnorePaths:   orEmpty(opts.PatchGenerationIgnorePaths),
		PatchGenerationPatchIDDigits: intOr(opts.PatchGenerationPatchIDDigits, DefaultPatchIDDigits),

		Actions:     opts.Actions,
		UpstreamRef: opts.UpstreamRef,

		CreatePR:       boolOr(opts.CreatePR, true),
		SyncChangelog:  opts.SyncChangelog,
		CreateSyncNote: boolOr(opts.CreateSyncNote, true),
		SpecSourceID:   stringOr(opts.SpecSourceID, DefaultSpecSourceID),

		UpstreamTagTemplate:     stringOr(opts.UpstreamTagTemplate, DefaultUpstreamTagTemplate),
		ArchiveRootDirTemplate:  stringOr(opts.ArchiveRootDirTemplate, DefaultArchiveRootDirTemplate),
		UpstreamTagInclude:      opts.UpstreamTagInclude,
		UpstreamTagExclude:      opts.UpstreamTagExclude,
		PrereleaseSuffixPattern: stringOr(opts.PrereleaseSuffixPattern, DefaultPrereleaseSuffixPattern),
		PrereleaseSuffixMacro:   opts.PrereleaseSuffixMacro,
		VersionUpdateMask:       opts.VersionUpdateMask,

		Notifications:                  DefaultNotifications(),
		Identifier:                     opts.Identifier,
		PackitInstances:                []models.Deployment{models.DeploymentProd},
		CopyUpstreamReleaseDescription: opts.CopyUpstreamReleaseDescription,
		Sources:                        opts.Sources,
		MergePRInCI:                    boolOr(opts.MergePRInCI, true),
		SRPMBuildDeps:                  opts.SRPMBuildDeps,
		IssueRepository:                opts.IssueRepository,
		ReleaseSuffix:                  opts.ReleaseSuffix,
		UpdateRelease:                  boolOr(opts.UpdateRelease, true),

		Timeout:               intOr(opts.Timeout, DefaultTimeout),
		Owner:                 opts.Owner,
		Project:               opts.Project,
		DistGitBranches:       NewBranchSet(opts.DistGitBranches...),
		Branch:                opts.Branch,
		Scratch:               opts.Scratch,
		ListOnHomepage:        opts.ListOnHomepage,
		PreserveProject:       opts.PreserveProject,
		AdditionalPackages:    orEmpty(opts.AdditionalPackages),
		AdditionalRepos:       orEmpty(opts.AdditionalRepos),
		ModuleHotfixes:        opts.ModuleHotfixes,
		EnableNet:             opts.EnableNet,
		FollowFedoraBranching: opts.FollowFedoraBranching,
		UploadSources:         boolOr(opts.UploadSources, true),
		CoprChroot:            opts.CoprChroot,
		ParseTimeMacros:       opts.ParseTimeMacros,

		FMFURL:              opts.FMFURL,
		FMFRef:              opts.FMFRef,
		FMFPath:             opts.FMFPath,
		UseInternalTF:       opts.UseInternalTF,
		SkipBuild:           opts.SkipBuild,
		Env:                 opts.Env,
		TMTPlan:             opts.TMTPlan,
		TFPostInstallScript: opts.TFPostInstallScript,
		TFExtraParams:       opts.TFExtraParams,

		AllowedPRAuthors:  []string{DefaultAllowedPRAuthor},
		AllowedCommitters: orEmpty(opts.AllowedCommitters),

		ImageDistribution:   opts.ImageDistribution,
		ImageRequest:        opts.ImageRequest,
		ImageCustomizations: opts.ImageCustomizations,

		distGit:    inst,
		syncSource: syncSourceFrom(opts.SyncedFiles, opts.FilesToSync),
		targets:    opts.Targets.normalized(),
	}

	if c.Actions == nil {
		c.Actions = map[models.ActionName]models.StringOrList{}
	}
	if opts.AllowedGPGKeys != nil {
		c.AllowedGPGKeys = append([]string{}, *opts.AllowedGPGKeys...)
	}
	if opts.Notifications != nil {
		c.Notifications = *opts.Notifications
	}
	if opts.PackitInstances != nil {
		c.PackitInstances = append([]models.Deployment{}, *opts.PackitInstances...)
	}
	if opts.AllowedPRAuthors != nil {
		c.AllowedPRAuthors = append([]string{}, *opts.AllowedPRAuthors...)
	}
	if c.Env == nil {
		c.Env = map[string]any{}
	}
	if c.TFExtraParams == nil {
		c.TFExtraParams = map[string]any{}
	}
	if c.ParseTimeMacros == nil {
		c.ParseTimeMacros = MacroMap{}
	}
	if c.Sources == nil {
		c.Sources = []SourcesItem{}
	}
	if opts.TestCommand != nil {
		c.TestCommand = *opts.TestCommand
	}
	if opts.Require != nil {
		c.Require = *opts.Require
	}
	if opts.DownstreamProjectURL != "" {
		c.downstreamURL = opts.DownstreamProjectURL
		c.downstreamURLFilled = true
		c.warnDeprecated("downstream_project_url")
	}

	if opts.SyncedFiles != nil {
		c.warnDeprecated("synced_files")
		if opts.FilesToSync != nil {
			c.warn("synced_files", "You are setting both files_to_sync and synced_files."+
				" Packit will use files_to_sync. You should remove synced_files since it is deprecated.")
		}
	}

	logrus.WithFields(logrus.Fields{
		"specfile":  c.SpecfilePath,
		"upstream":  c.UpstreamPackageName,
		"dist_git":  c.distGit.URL(),
		"namespace": c.distGit.Namespace,
	}).Debug("Package config created")

	return c, nil
}

// DistGitInstance returns the dist-git instance resolved at construction.
func (c *PackageConfig) DistGitInstance() distgit.Instance {
	return c.distGit
}

// DistGitBaseURL returns the base URL of the dist-git forge, with a trailing slash.
func (c *PackageConfig) DistGitBaseURL() string {
	return c.distGit.URL()
}

// DistGitNamespace returns the namespace packages live in on the forge.
func (c *PackageConfig) DistGitNamespace() string {
	return c.distGit.Namespace
}

// DistGitPackageURL returns the git URL of the downstream package, if it has a name.
func (c *PackageConfig) DistGitPackageURL() (string, bool) {
	if c.DownstreamPackageName == "" {
		return "", false
	}
	return distgit.PackageURL(c.distGit, c.DownstreamPackageName), true
}

// DownstreamProjectURL returns the configured downstream URL, or computes
// the dist-git package URL and keeps it. Later changes to the downstream
// package name do not affect a filled value.
func (c *PackageConfig) DownstreamProjectURL() string {
	if !c.downstreamURLFilled {
		if url, ok := c.DistGitPackageURL(); ok {
			c.downstreamURL = url
			c.downstreamURLFilled = true
		}
	}
	return c.downstreamURL
}

// TargetsDict returns a copy of the build targets with their options.
func (c *PackageConfig) TargetsDict() TargetsDict {
	return c.targets.normalized()
}

// Targets returns the target names, sorted.
func (c *PackageConfig) Targets() []string {
	return c.targets.Names()
}

// SetTargets replaces the build targets.
func (c *PackageConfig) SetTargets(t TargetsDict) {
	c.targets = t.normalized()
}

// SyncSource returns which file-sync option is in effect.
func (c *PackageConfig) SyncSource() SyncSource {
	return c.syncSource
}

// FilesToSync returns the files to sync. files_to_sync wins over
// synced_files whenever it was given, even as an empty list.
func (c *PackageConfig) FilesToSync() []models.SyncFilesItem {
	return c.syncSource.Items()
}

// SetFilesToSync switches the package to files_to_sync.
func (c *PackageConfig) SetFilesToSync(items []models.SyncFilesItem) {
	c.syncSource = ModernSync(items)
}

// AllFilesToSync returns FilesToSync, plus the specfile and the config file
// when the deprecated synced_files behaviour is in effect. Paths already
// listed as a source are not added twice.
func (c *PackageConfig) AllFilesToSync() []models.SyncFilesItem {
	files := c.FilesToSync()
	if !c.syncSource.autoIncludes() {
		return files
	}

	if c.SpecfilePath != "" && !models.ContainsSrc(files, c.SpecfilePath) {
		files = append(files, c.SpecfileSyncFilesItem(false))
	}
	// relative, globbing rejects absolute patterns
	if c.ConfigFilePath != "" && !models.ContainsSrc(files, c.ConfigFilePath) {
		files = append(files, models.SyncPath(c.ConfigFilePath))
	}
	return files
}

// SpecfileSyncFilesItem syncs the upstream specfile with its dist-git
// counterpart, named after the downstream package when one is set.
func (c *PackageConfig) SpecfileSyncFilesItem(fromDownstream bool) models.SyncFilesItem {
	upstream := c.SpecfilePath
	downstream := baseName(upstream)
	if c.DownstreamPackageName != "" {
		downstream = c.DownstreamPackageName + ".spec"
	}
	if fromDownstream {
		return models.NewSyncFilesItem([]string{downstream}, upstream)
	}
	return models.NewSyncFilesItem([]string{upstream}, downstream)
}

var digitRun = regexp.MustCompile(`\d+`)

// SpecSourceIDNumber returns the number in the Source tag label, e.g. 17
// for "Source17", and 0 when the label has no digits. Numbers past the int
// range are clamped to math.MaxInt.
func (c *PackageConfig) SpecSourceIDNumber() int {
	digits := digitRun.FindString(c.SpecSourceID)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		// only a range error is possible on a digit run
		logrus.WithField("spec_source_id", c.SpecSourceID).Debugf("Source number out of range, clamping: %v", err)
		return math.MaxInt
	}
	return n
}

// View returns c as a ConfigurationView.
func (c *PackageConfig) View() ConfigurationView {
	return packageView{c}
}

func baseName(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return append([]string{}, def...)
	}
	return v
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
