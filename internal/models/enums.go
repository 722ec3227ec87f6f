package models

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Deployment is a Packit-as-a-Service instance a package reacts to.
type Deployment string

const (
	DeploymentDev  Deployment = "dev"
	DeploymentStg  Deployment = "stg"
	DeploymentProd Deployment = "prod"
)

// ParseDeployment validates an instance name.
func ParseDeployment(s string) (Deployment, error) {
	switch d := Deployment(s); d {
	case DeploymentDev, DeploymentStg, DeploymentProd:
		return d, nil
	}
	return "", NewConfigError(ErrInvalidConfig, "packit_instances", "unknown deployment %q (expected dev, stg or prod)", s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Deployment) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDeployment(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ActionName names a lifecycle hook a user can override with commands.
type ActionName string

const (
	ActionPostUpstreamClone       ActionName = "post-upstream-clone"
	ActionPreSync                 ActionName = "pre-sync"
	ActionCreatePatches           ActionName = "create-patches"
	ActionPrepareFiles            ActionName = "prepare-files"
	ActionCreateArchive           ActionName = "create-archive"
	ActionGetCurrentVersion       ActionName = "get-current-version"
	ActionFixSpec                 ActionName = "fix-spec-file"
	ActionChangelogEntry          ActionName = "changelog-entry"
	ActionCommitMessage           ActionName = "commit-message"
	ActionPostModifications       ActionName = "post-modifications"
	ActionValidateUpstreamRelease ActionName = "validate-upstream-release"
)

var knownActions = map[ActionName]bool{
	ActionPostUpstreamClone:       true,
	ActionPreSync:                 true,
	ActionCreatePatches:           true,
	ActionPrepareFiles:            true,
	ActionCreateArchive:           true,
	ActionGetCurrentVersion:       true,
	ActionFixSpec:                 true,
	ActionChangelogEntry:          true,
	ActionCommitMessage:           true,
	ActionPostModifications:       true,
	ActionValidateUpstreamRelease: true,
}

// ParseActionName validates an action name.
func ParseActionName(s string) (ActionName, error) {
	if knownActions[ActionName(s)] {
		return ActionName(s), nil
	}
	return "", NewConfigError(ErrInvalidConfig, "actions", "unknown action %q", s)
}

// ActionNames returns every known action, sorted.
func ActionNames() []ActionName {
	names := make([]ActionName, 0, len(knownActions))
	for name := range knownActions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *ActionName) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseActionName(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*a = parsed
	return nil
}
