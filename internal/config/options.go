package config

import (
	"github.com/ralt/pkgsync/internal/models"
)

// Options is the parsed form of one package section of a packit config file.
// Pointer fields distinguish "not supplied" from a supplied zero value.
type Options struct {
	ConfigFilePath string `yaml:"-"`
	SpecfilePath   string `yaml:"specfile_path"`

	SyncedFiles *[]models.SyncFilesItem `yaml:"synced_files"`
	FilesToSync *[]models.SyncFilesItem `yaml:"files_to_sync"`

	UpstreamProjectURL    string   `yaml:"upstream_project_url"`
	UpstreamPackageName   string   `yaml:"upstream_package_name"`
	Paths                 []string `yaml:"paths"`
	DownstreamProjectURL  string   `yaml:"downstream_project_url"`
	DownstreamPackageName string   `yaml:"downstream_package_name"`

	DistGitBaseURL   *string `yaml:"dist_git_base_url"`
	DistGitNamespace *string `yaml:"dist_git_namespace"`
	PkgTool          string  `yaml:"pkg_tool"`

	Actions map[models.ActionName]models.StringOrList `yaml:"actions"`

	UpstreamRef    string    `yaml:"upstream_ref"`
	AllowedGPGKeys *[]string `yaml:"allowed_gpg_keys"`

	CreatePR       *bool   `yaml:"create_pr"`
	SyncChangelog  bool    `yaml:"sync_changelog"`
	CreateSyncNote *bool   `yaml:"create_sync_note"`
	SpecSourceID   *string `yaml:"spec_source_id"`

	UpstreamTagTemplate     *string `yaml:"upstream_tag_template"`
	ArchiveRootDirTemplate  *string `yaml:"archive_root_dir_template"`
	UpstreamTagInclude      string  `yaml:"upstream_tag_include"`
	UpstreamTagExclude      string  `yaml:"upstream_tag_exclude"`
	PrereleaseSuffixPattern *string `yaml:"prerelease_suffix_pattern"`
	PrereleaseSuffixMacro   string  `yaml:"prerelease_suffix_macro"`

	PatchGenerationIgnorePaths   []string `yaml:"patch_generation_ignore_paths"`
	PatchGenerationPatchIDDigits *int     `yaml:"patch_generation_patch_id_digits"`

	Notifications                  *NotificationsConfig `yaml:"notifications"`
	CopyUpstreamReleaseDescription bool                 `yaml:"copy_upstream_release_description"`
	Sources                        []SourcesItem        `yaml:"sources"`
	MergePRInCI                    *bool                `yaml:"merge_pr_in_ci"`
	SRPMBuildDeps                  []string             `yaml:"srpm_build_deps"`
	Identifier                     string               `yaml:"identifier"`
	PackitInstances                *[]models.Deployment `yaml:"packit_instances"`
	IssueRepository                string               `yaml:"issue_repository"`
	ReleaseSuffix                  *string              `yaml:"release_suffix"`
	UpdateRelease                  *bool                `yaml:"update_release"`

	Targets               TargetsDict `yaml:"targets"`
	Timeout               *int        `yaml:"timeout"`
	Owner                 string      `yaml:"owner"`
	Project               string      `yaml:"project"`
	DistGitBranches       []string    `yaml:"dist_git_branches"`
	Branch                string      `yaml:"branch"`
	Scratch               bool        `yaml:"scratch"`
	ListOnHomepage        bool        `yaml:"list_on_homepage"`
	PreserveProject       bool        `yaml:"preserve_project"`
	AdditionalPackages    []string    `yaml:"additional_packages"`
	AdditionalRepos       []string    `yaml:"additional_repos"`
	ModuleHotfixes        bool        `yaml:"module_hotfixes"`
	EnableNet             bool        `yaml:"enable_net"`
	FollowFedoraBranching bool        `yaml:"follow_fedora_branching"`
	UploadSources         *bool       `yaml:"upload_sources"`
	CoprChroot            string      `yaml:"copr_chroot"`
	ParseTimeMacros       MacroMap    `yaml:"parse_time_macros"`
	VersionUpdateMask     string      `yaml:"version_update_mask"`

	FMFURL              string         `yaml:"fmf_url"`
	FMFRef              string         `yaml:"fmf_ref"`
	FMFPath             string         `yaml:"fmf_path"`
	UseInternalTF       bool           `yaml:"use_internal_tf"`
	SkipBuild           bool           `yaml:"skip_build"`
	Env                 map[string]any `yaml:"env"`
	TMTPlan             string         `yaml:"tmt_plan"`
	TFPostInstallScript string         `yaml:"tf_post_install_script"`
	TFExtraParams       map[string]any `yaml:"tf_extra_params"`

	AllowedPRAuthors  *[]string `yaml:"allowed_pr_authors"`
	AllowedCommitters []string  `yaml:"allowed_committers"`

	ImageDistribution   string         `yaml:"image_distribution"`
	ImageRequest        map[string]any `yaml:"image_request"`
	ImageCustomizations map[string]any `yaml:"image_customizations"`

	TestCommand *TestCommandConfig  `yaml:"test_command"`
	Require     *RequirementsConfig `yaml:"require"`
}
