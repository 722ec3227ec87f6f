package config

import (
	"errors"
	"sort"

	"github.com/ralt/pkgsync/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// fieldAccessor reads and writes one schema key of a PackageConfig.
type fieldAccessor struct {
	get  func(c *PackageConfig) any
	set  func(c *PackageConfig, value any) error
	dump bool
}

// convert accepts a value of the field's own type, or anything whose YAML
// form decodes into it (a []string for a TargetsDict, []any from a parsed
// document, ...).
func convert[T any](value any) (T, error) {
	if v, ok := value.(T); ok {
		return v, nil
	}
	var out T
	var node yaml.Node
	if err := node.Encode(value); err != nil {
		return out, err
	}
	if err := node.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

func plain[T any](ptr func(c *PackageConfig) *T) fieldAccessor {
	return fieldAccessor{
		dump: true,
		get:  func(c *PackageConfig) any { return *ptr(c) },
		set: func(c *PackageConfig, value any) error {
			v, err := convert[T](value)
			if err != nil {
				return err
			}
			*ptr(c) = v
			return nil
		},
	}
}

func derived(get func(c *PackageConfig) any, dump bool) fieldAccessor {
	return fieldAccessor{
		dump: dump,
		get:  get,
		set: func(c *PackageConfig, value any) error {
			return errReadOnly
		},
	}
}

var errReadOnly = errors.New("field is derived from the dist-git instance and cannot be set")

var fields = map[string]fieldAccessor{
	"config_file_path":        plain(func(c *PackageConfig) *string { return &c.ConfigFilePath }),
	"specfile_path":           plain(func(c *PackageConfig) *string { return &c.SpecfilePath }),
	"upstream_project_url":    plain(func(c *PackageConfig) *string { return &c.UpstreamProjectURL }),
	"upstream_package_name":   plain(func(c *PackageConfig) *string { return &c.UpstreamPackageName }),
	"downstream_package_name": plain(func(c *PackageConfig) *string { return &c.DownstreamPackageName }),
	"paths":                   plain(func(c *PackageConfig) *[]string { return &c.Paths }),
	"pkg_tool":                plain(func(c *PackageConfig) *string { return &c.PkgTool }),

	"patch_generation_ignore_paths":    plain(func(c *PackageConfig) *[]string { return &c.PatchGenerationIgnorePaths }),
	"patch_generation_patch_id_digits": plain(func(c *PackageConfig) *int { return &c.PatchGenerationPatchIDDigits }),

	"actions":          plain(func(c *PackageConfig) *map[models.ActionName]models.StringOrList { return &c.Actions }),
	"upstream_ref":     plain(func(c *PackageConfig) *string { return &c.UpstreamRef }),
	"allowed_gpg_keys": plain(func(c *PackageConfig) *[]string { return &c.AllowedGPGKeys }),
	"create_pr":        plain(func(c *PackageConfig) *bool { return &c.CreatePR }),
	"sync_changelog":   plain(func(c *PackageConfig) *bool { return &c.SyncChangelog }),
	"create_sync_note": plain(func(c *PackageConfig) *bool { return &c.CreateSyncNote }),
	"spec_source_id":   plain(func(c *PackageConfig) *string { return &c.SpecSourceID }),

	"upstream_tag_template":     plain(func(c *PackageConfig) *string { return &c.UpstreamTagTemplate }),
	"archive_root_dir_template": plain(func(c *PackageConfig) *string { return &c.ArchiveRootDirTemplate }),
	"upstream_tag_include":      plain(func(c *PackageConfig) *string { return &c.UpstreamTagInclude }),
	"upstream_tag_exclude":      plain(func(c *PackageConfig) *string { return &c.UpstreamTagExclude }),
	"prerelease_suffix_pattern": plain(func(c *PackageConfig) *string { return &c.PrereleaseSuffixPattern }),
	"prerelease_suffix_macro":   plain(func(c *PackageConfig) *string { return &c.PrereleaseSuffixMacro }),
	"version_update_mask":       plain(func(c *PackageConfig) *string { return &c.VersionUpdateMask }),

	"notifications":                     plain(func(c *PackageConfig) *NotificationsConfig { return &c.Notifications }),
	"identifier":                        plain(func(c *PackageConfig) *string { return &c.Identifier }),
	"packit_instances":                  plain(func(c *PackageConfig) *[]models.Deployment { return &c.PackitInstances }),
	"copy_upstream_release_description": plain(func(c *PackageConfig) *bool { return &c.CopyUpstreamReleaseDescription }),
	"sources":                           plain(func(c *PackageConfig) *[]SourcesItem { return &c.Sources }),
	"merge_pr_in_ci":                    plain(func(c *PackageConfig) *bool { return &c.MergePRInCI }),
	"srpm_build_deps":                   plain(func(c *PackageConfig) *[]string { return &c.SRPMBuildDeps }),
	"issue_repository":                  plain(func(c *PackageConfig) *string { return &c.IssueRepository }),
	"release_suffix":                    plain(func(c *PackageConfig) **string { return &c.ReleaseSuffix }),
	"update_release":                    plain(func(c *PackageConfig) *bool { return &c.UpdateRelease }),

	"timeout":                 plain(func(c *PackageConfig) *int { return &c.Timeout }),
	"owner":                   plain(func(c *PackageConfig) *string { return &c.Owner }),
	"project":                 plain(func(c *PackageConfig) *string { return &c.Project }),
	"dist_git_branches":       plain(func(c *PackageConfig) *BranchSet { return &c.DistGitBranches }),
	"branch":                  plain(func(c *PackageConfig) *string { return &c.Branch }),
	"scratch":                 plain(func(c *PackageConfig) *bool { return &c.Scratch }),
	"list_on_homepage":        plain(func(c *PackageConfig) *bool { return &c.ListOnHomepage }),
	"preserve_project":        plain(func(c *PackageConfig) *bool { return &c.PreserveProject }),
	"additional_packages":     plain(func(c *PackageConfig) *[]string { return &c.AdditionalPackages }),
	"additional_repos":        plain(func(c *PackageConfig) *[]string { return &c.AdditionalRepos }),
	"module_hotfixes":         plain(func(c *PackageConfig) *bool { return &c.ModuleHotfixes }),
	"enable_net":              plain(func(c *PackageConfig) *bool { return &c.EnableNet }),
	"follow_fedora_branching": plain(func(c *PackageConfig) *bool { return &c.FollowFedoraBranching }),
	"upload_sources":          plain(func(c *PackageConfig) *bool { return &c.UploadSources }),
	"copr_chroot":             plain(func(c *PackageConfig) *string { return &c.CoprChroot }),
	"parse_time_macros":       plain(func(c *PackageConfig) *MacroMap { return &c.ParseTimeMacros }),

	"fmf_url":                plain(func(c *PackageConfig) *string { return &c.FMFURL }),
	"fmf_ref":                plain(func(c *PackageConfig) *string { return &c.FMFRef }),
	"fmf_path":               plain(func(c *PackageConfig) *string { return &c.FMFPath }),
	"use_internal_tf":        plain(func(c *PackageConfig) *bool { return &c.UseInternalTF }),
	"skip_build":             plain(func(c *PackageConfig) *bool { return &c.SkipBuild }),
	"env":                    plain(func(c *PackageConfig) *map[string]any { return &c.Env }),
	"tmt_plan":               plain(func(c *PackageConfig) *string { return &c.TMTPlan }),
	"tf_post_install_script": plain(func(c *PackageConfig) *string { return &c.TFPostInstallScript }),
	"tf_extra_params":        plain(func(c *PackageConfig) *map[string]any { return &c.TFExtraParams }),

	"allowed_pr_authors": plain(func(c *PackageConfig) *[]string { return &c.AllowedPRAuthors }),
	"allowed_committers": plain(func(c *PackageConfig) *[]string { return &c.AllowedCommitters }),

	"image_distribution":   plain(func(c *PackageConfig) *string { return &c.ImageDistribution }),
	"image_request":        plain(func(c *PackageConfig) *map[string]any { return &c.ImageRequest }),
	"image_customizations": plain(func(c *PackageConfig) *map[string]any { return &c.ImageCustomizations }),

	"test_command": plain(func(c *PackageConfig) *TestCommandConfig { return &c.TestCommand }),
	"require":      plain(func(c *PackageConfig) *RequirementsConfig { return &c.Require }),

	"targets": {
		dump: true,
		get:  func(c *PackageConfig) any { return c.TargetsDict() },
		set: func(c *PackageConfig, value any) error {
			t, err := convert[TargetsDict](value)
			if err != nil {
				return err
			}
			c.SetTargets(t)
			return nil
		},
	},
	"files_to_sync": {
		dump: true,
		get:  func(c *PackageConfig) any { return c.FilesToSync() },
		set: func(c *PackageConfig, value any) error {
			items, err := convert[[]models.SyncFilesItem](value)
			if err != nil {
				return err
			}
			c.SetFilesToSync(items)
			return nil
		},
	},
	"synced_files": {
		get: func(c *PackageConfig) any {
			if c.syncSource.Kind() == SyncLegacy {
				return c.syncSource.Items()
			}
			return []models.SyncFilesItem{}
		},
		set: func(c *PackageConfig, value any) error {
			items, err := convert[[]models.SyncFilesItem](value)
			if err != nil {
				return err
			}
			c.warnDeprecated("synced_files")
			if c.syncSource.Kind() == SyncModern {
				logrus.Debug("files_to_sync is set, ignoring synced_files")
				return nil
			}
			c.syncSource = LegacySync(items)
			return nil
		},
	},
	"downstream_project_url": {
		dump: true,
		get:  func(c *PackageConfig) any { return c.DownstreamProjectURL() },
		set: func(c *PackageConfig, value any) error {
			url, err := convert[string](value)
			if err != nil {
				return err
			}
			c.downstreamURL = url
			c.downstreamURLFilled = url != ""
			return nil
		},
	},

	"dist_git_base_url":  derived(func(c *PackageConfig) any { return c.DistGitBaseURL() }, true),
	"dist_git_namespace": derived(func(c *PackageConfig) any { return c.DistGitNamespace() }, true),
	"dist_git_package_url": derived(func(c *PackageConfig) any {
		url, _ := c.DistGitPackageURL()
		return url
	}, false),
	"spec_source_id_number": derived(func(c *PackageConfig) any { return c.SpecSourceIDNumber() }, false),
}

// FieldNames returns every key accepted by Get.
func FieldNames() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get reads a field by its configuration key.
func (c *PackageConfig) Get(field string) (any, error) {
	f, ok := fields[field]
	if !ok {
		return nil, models.NewConfigError(models.ErrInvalidConfig, field, "unknown configuration field")
	}
	return f.get(c), nil
}

// Set writes a field by its configuration key. The value may be of the
// field's Go type or any value with the same YAML shape.
func (c *PackageConfig) Set(field string, value any) error {
	f, ok := fields[field]
	if !ok {
		return models.NewConfigError(models.ErrInvalidConfig, field, "unknown configuration field")
	}
	if err := f.set(c, value); err != nil {
		if errors.Is(err, errReadOnly) {
			return &models.ConfigError{Type: models.ErrInvalidConfig, Field: field, Err: err}
		}
		return &models.ConfigError{Type: models.ErrTypeMismatch, Field: field, Err: err}
	}
	return nil
}
