package config

import (
	"fmt"
	"slices"
	"sort"

	"github.com/ralt/pkgsync/internal/models"
	"gopkg.in/yaml.v3"
)

// TargetsDict maps a build target (chroot) to its per-target options.
type TargetsDict map[string]map[string]any

// UnmarshalYAML accepts the legacy list of target names as well as the mapping form.
func (t *TargetsDict) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode, yaml.SequenceNode:
		var names models.StringOrList
		if err := value.Decode(&names); err != nil {
			return err
		}
		*t = TargetsFromNames(names...)
		return nil
	case yaml.MappingNode:
		var raw map[string]map[string]any
		if err := value.Decode(&raw); err != nil {
			return fmt.Errorf("line %d: targets: %w", value.Line, err)
		}
		*t = TargetsDict(raw).normalized()
		return nil
	default:
		return fmt.Errorf("line %d: targets must be a list or a mapping", value.Line)
	}
}

// TargetsFromNames builds a dict with empty options for every name.
func TargetsFromNames(names ...string) TargetsDict {
	out := make(TargetsDict, len(names))
	for _, name := range names {
		out[name] = map[string]any{}
	}
	return out
}

// normalized returns a deep copy where targets without options get an empty map.
func (t TargetsDict) normalized() TargetsDict {
	out := make(TargetsDict, len(t))
	for name, opts := range t {
		copied := make(map[string]any, len(opts))
		for k, v := range opts {
			copied[k] = copyValue(v)
		}
		out[name] = copied
	}
	return out
}

// copyValue copies the maps and lists a decoded YAML value is made of.
func copyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = copyValue(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = copyValue(e)
		}
		return out
	case []string:
		return slices.Clone(v)
	default:
		return v
	}
}

// Names returns the target names, sorted.
func (t TargetsDict) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BranchSet is a deduplicated set of dist-git branch names.
type BranchSet map[string]struct{}

// NewBranchSet builds a set from a list that may contain duplicates.
func NewBranchSet(branches ...string) BranchSet {
	set := make(BranchSet, len(branches))
	for _, b := range branches {
		set[b] = struct{}{}
	}
	return set
}

// Has reports whether branch is in the set.
func (b BranchSet) Has(branch string) bool {
	_, ok := b[branch]
	return ok
}

// Sorted returns the branches in lexical order.
func (b BranchSet) Sorted() []string {
	out := make([]string, 0, len(b))
	for branch := range b {
		out = append(out, branch)
	}
	sort.Strings(out)
	return out
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *BranchSet) UnmarshalYAML(value *yaml.Node) error {
	var branches models.StringOrList
	if err := value.Decode(&branches); err != nil {
		return err
	}
	*b = NewBranchSet(branches...)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (b BranchSet) MarshalYAML() (any, error) {
	return b.Sorted(), nil
}

// MacroMap holds macros to define before parsing the specfile.
// A nil value undefines the macro.
type MacroMap map[string]*string

// NotificationsConfig controls what packit reports back to users.
type NotificationsConfig struct {
	PullRequest    PullRequestNotifications    `yaml:"pull_request"`
	FailureComment FailureCommentNotifications `yaml:"failure_comment"`
	FailureIssue   FailureIssueNotifications   `yaml:"failure_issue"`
}

type PullRequestNotifications struct {
	SuccessfulBuild bool `yaml:"successful_build"`
}

type FailureCommentNotifications struct {
	Message *string `yaml:"message"`
}

type FailureIssueNotifications struct {
	Create bool `yaml:"create"`
}

// DefaultNotifications returns the notification settings used when none are configured.
func DefaultNotifications() NotificationsConfig {
	return NotificationsConfig{
		FailureIssue: FailureIssueNotifications{Create: true},
	}
}

// UnmarshalYAML fills keys missing from the document with defaults.
func (n *NotificationsConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain NotificationsConfig
	p := plain(DefaultNotifications())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*n = NotificationsConfig(p)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *FailureIssueNotifications) UnmarshalYAML(value *yaml.Node) error {
	type plain FailureIssueNotifications
	p := plain{Create: true}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*f = FailureIssueNotifications(p)
	return nil
}

// TestCommandConfig configures the /packit test comment command.
type TestCommandConfig struct {
	DefaultLabels     []string `yaml:"default_labels"`
	DefaultIdentifier string   `yaml:"default_identifier"`
}

// RequirementsConfig gates jobs on pull-request labels.
type RequirementsConfig struct {
	Label LabelRequirements `yaml:"label"`
}

type LabelRequirements struct {
	Present []string `yaml:"present"`
	Absent  []string `yaml:"absent"`
}

// SourcesItem points at an extra source archive used in source-git SRPM builds.
type SourcesItem struct {
	Path string `yaml:"path"`
	URL  string `yaml:"url"`
}
