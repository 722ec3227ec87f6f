package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ralt/pkgsync/internal/distgit"
	"github.com/ralt/pkgsync/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ConfigFileNames are searched, in order, by FindConfigFile.
var ConfigFileNames = []string{
	".packit.yaml",
	".packit.yml",
	".packit.json",
	"packit.yaml",
	"packit.yml",
	"packit.json",
}

// keys handled by other subsystems and skipped here
var outOfScopeKeys = map[string]bool{
	"jobs": true,
}

// DefaultPackageName names the package of a config without a packages section
// and without any package name.
const DefaultPackageName = "default"

// Loader turns config documents into package collections.
type Loader struct {
	// Env resolves DISTGIT_URL/DISTGIT_NAMESPACE; nil means the process environment.
	Env distgit.LookupEnv
}

// FindConfigFile returns the first packit config file present in dir.
func FindConfigFile(dir string) (string, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", &models.ConfigError{Type: models.ErrFileOp, Field: path, Err: err}
		}
	}
	return "", models.NewConfigError(models.ErrFileOp, dir,
		"no config file found (looked for %s)", strings.Join(ConfigFileNames, ", "))
}

// LoadFile reads and parses a config file with the default loader.
func LoadFile(path string) (*Collection, error) {
	return Loader{}.LoadFile(path)
}

// Parse parses a config document with the default loader.
func Parse(data []byte, configFilePath string) (*Collection, error) {
	return Loader{}.Parse(data, configFilePath)
}

// LoadFile reads and parses a config file. The package configs record the
// file's base name as their config file path.
func (l Loader) LoadFile(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.ConfigError{Type: models.ErrFileOp, Field: path, Err: err}
	}
	logrus.Debugf("Loading config from %s", path)
	return l.Parse(data, filepath.Base(path))
}

// Parse parses a YAML (or JSON) document holding either one package at the
// top level or a packages mapping. Top-level keys are defaults that every
// entry of packages inherits and may override.
func (l Loader) Parse(data []byte, configFilePath string) (*Collection, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, models.NewConfigError(models.ErrInvalidConfig, configFilePath, "invalid YAML: %v", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, models.NewConfigError(models.ErrInvalidConfig, configFilePath, "config is empty")
	}
	root, err := expandAliases(doc.Content[0], nil)
	if err != nil {
		return nil, models.NewConfigError(models.ErrInvalidConfig, configFilePath, "%v", err)
	}
	if root.Kind != yaml.MappingNode {
		return nil, models.NewConfigError(models.ErrInvalidConfig, configFilePath, "config must be a mapping")
	}

	var packagesNode *yaml.Node
	defaults := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch {
		case key.Value == "packages":
			packagesNode = value
		case outOfScopeKeys[key.Value]:
			logrus.Debugf("Skipping %q section", key.Value)
		default:
			defaults.Content = append(defaults.Content, key, value)
		}
	}

	if packagesNode == nil {
		cfg, err := l.build(defaults, configFilePath)
		if err != nil {
			return nil, err
		}
		return SinglePackage(singlePackageName(cfg), cfg), nil
	}

	if packagesNode.Kind != yaml.MappingNode {
		return nil, models.NewConfigError(models.ErrInvalidConfig, "packages", "packages must be a mapping")
	}
	var entries []NamedPackage
	for i := 0; i+1 < len(packagesNode.Content); i += 2 {
		name := packagesNode.Content[i].Value
		body := packagesNode.Content[i+1]
		if body.Kind != yaml.MappingNode && !isNull(body) {
			return nil, models.NewConfigError(models.ErrInvalidConfig, "packages."+name, "package must be a mapping")
		}
		cfg, err := l.build(mergeMappings(defaults, body), configFilePath)
		if err != nil {
			var cfgErr *models.ConfigError
			if errors.As(err, &cfgErr) && cfgErr.Field == "" {
				cfgErr.Field = "packages." + name
			}
			return nil, err
		}
		entries = append(entries, NamedPackage{Name: name, Config: cfg})
	}
	logrus.Debugf("Loaded %d packages from %s", len(entries), configFilePath)
	return NewCollection(entries...)
}

func (l Loader) build(mapping *yaml.Node, configFilePath string) (*PackageConfig, error) {
	var opts Options
	if err := strictDecode(mapping, &opts); err != nil {
		return nil, err
	}
	opts.ConfigFilePath = configFilePath
	return NewWithEnv(opts, l.Env)
}

// strictDecode decodes a node, rejecting keys Options does not know.
// yaml.Node.Decode has no strict mode, hence the round trip. The node must
// be alias free (see expandAliases): anchors do not survive re-encoding a
// subtree on its own.
func strictDecode(node *yaml.Node, out any) error {
	b, err := yaml.Marshal(node)
	if err != nil {
		return models.NewConfigError(models.ErrInvalidConfig, "", "%v", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		var cfgErr *models.ConfigError
		if errors.As(err, &cfgErr) {
			return err
		}
		return models.NewConfigError(models.ErrInvalidConfig, "", "%v", err)
	}
	return nil
}

// mergeMappings returns base overridden key by key with override.
func mergeMappings(base, override *yaml.Node) *yaml.Node {
	merged := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	overridden := map[string]bool{}
	if override.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(override.Content); i += 2 {
			overridden[override.Content[i].Value] = true
		}
	}
	for i := 0; i+1 < len(base.Content); i += 2 {
		if !overridden[base.Content[i].Value] {
			merged.Content = append(merged.Content, base.Content[i], base.Content[i+1])
		}
	}
	if override.Kind == yaml.MappingNode {
		merged.Content = append(merged.Content, override.Content...)
	}
	return merged
}

// expandAliases returns a copy of n with every alias replaced by a copy of
// its anchored node and every merge key (<<) folded into its mapping.
// Keys written in the mapping win over merged ones; among merged mappings
// the first one listed wins.
func expandAliases(n *yaml.Node, resolving []*yaml.Node) (*yaml.Node, error) {
	if slices.Contains(resolving, n) {
		return nil, fmt.Errorf("line %d: recursive alias", n.Line)
	}
	resolving = append(resolving, n)

	if n.Kind == yaml.AliasNode {
		return expandAliases(n.Alias, resolving)
	}

	out := *n
	out.Anchor = ""
	out.Content = nil
	if n.Kind != yaml.MappingNode {
		for _, child := range n.Content {
			c, err := expandAliases(child, resolving)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, c)
		}
		return &out, nil
	}

	var explicit, merged []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, err := expandAliases(n.Content[i], resolving)
		if err != nil {
			return nil, err
		}
		v, err := expandAliases(n.Content[i+1], resolving)
		if err != nil {
			return nil, err
		}
		if !isMergeKey(key) {
			explicit = append(explicit, key, v)
			continue
		}
		sources := []*yaml.Node{v}
		if v.Kind == yaml.SequenceNode {
			sources = v.Content
		}
		for _, src := range sources {
			if src.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: merge key needs a mapping or a list of mappings", key.Line)
			}
			merged = append(merged, src.Content...)
		}
	}

	seen := map[string]bool{}
	for i := 0; i+1 < len(explicit); i += 2 {
		seen[explicit[i].Value] = true
	}
	for i := 0; i+1 < len(merged); i += 2 {
		if seen[merged[i].Value] {
			continue
		}
		seen[merged[i].Value] = true
		out.Content = append(out.Content, merged[i], merged[i+1])
	}
	out.Content = append(out.Content, explicit...)
	return &out, nil
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Value == "<<" && n.ShortTag() == "!!merge"
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func singlePackageName(cfg *PackageConfig) string {
	switch {
	case cfg.DownstreamPackageName != "":
		return cfg.DownstreamPackageName
	case cfg.UpstreamPackageName != "":
		return cfg.UpstreamPackageName
	default:
		return DefaultPackageName
	}
}
