package config

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/ralt/pkgsync/internal/models"
	"gopkg.in/yaml.v3"
)

// Dump returns the externally visible form of the config: one entry per
// configuration key, with values reduced to plain YAML types (string, int,
// bool, []any, map[string]any). Targets given as a list and as the
// equivalent mapping dump identically.
//
// Dump reads DownstreamProjectURL and therefore fills its cache.
func (c *PackageConfig) Dump() (map[string]any, error) {
	raw := make(map[string]any, len(fields))
	for name, f := range fields {
		if f.dump {
			raw[name] = f.get(c)
		}
	}

	var node yaml.Node
	if err := node.Encode(raw); err != nil {
		return nil, models.NewConfigError(models.ErrInvalidConfig, "", "failed to encode config: %v", err)
	}
	var out map[string]any
	if err := node.Decode(&out); err != nil {
		return nil, models.NewConfigError(models.ErrInvalidConfig, "", "failed to normalize config: %v", err)
	}
	return out, nil
}

// Dumps renders Dump as a YAML document with sorted keys.
func (c *PackageConfig) Dumps() (string, error) {
	d, err := c.Dump()
	if err != nil {
		return "", err
	}
	b, err := yaml.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// String renders the config on a single line.
func (c *PackageConfig) String() string {
	d, err := c.Dump()
	if err != nil {
		return fmt.Sprintf("PackageConfig: <%v>", err)
	}
	var node yaml.Node
	if err := node.Encode(d); err != nil {
		return fmt.Sprintf("PackageConfig: <%v>", err)
	}
	node.Style = yaml.FlowStyle
	b, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Sprintf("PackageConfig: <%v>", err)
	}
	return "PackageConfig: " + string(trimNewline(b))
}

// Equal reports whether other dumps to the same form as c. Comparing
// against anything that is not a package config is a caller error.
func (c *PackageConfig) Equal(other any) (bool, error) {
	var o *PackageConfig
	switch v := other.(type) {
	case *PackageConfig:
		o = v
	case PackageConfig:
		o = &v
	default:
		return false, models.NewConfigError(models.ErrTypeMismatch, "",
			"provided object is not a PackageConfig instance: %T", other)
	}
	if o == nil {
		return c == nil, nil
	}
	if c == nil {
		return false, nil
	}

	mine, err := c.Dump()
	if err != nil {
		return false, err
	}
	theirs, err := o.Dump()
	if err != nil {
		return false, err
	}
	return cmp.Equal(mine, theirs), nil
}

// Diff describes how other differs from c, in go-cmp notation; empty when equal.
func (c *PackageConfig) Diff(other *PackageConfig) (string, error) {
	mine, err := c.Dump()
	if err != nil {
		return "", err
	}
	theirs, err := other.Dump()
	if err != nil {
		return "", err
	}
	return cmp.Diff(mine, theirs), nil
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}
	return b
}
