package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SyncFilesItem describes files copied from one repository to the other.
// Src may hold several paths (or globs); Dest is a single path.
type SyncFilesItem struct {
	Src     []string `yaml:"src"`
	Dest    string   `yaml:"dest"`
	Mkpath  bool     `yaml:"mkpath,omitempty"`
	Delete  bool     `yaml:"delete,omitempty"`
	Filters []string `yaml:"filters,omitempty"`
}

// NewSyncFilesItem builds an item syncing src to dest.
func NewSyncFilesItem(src []string, dest string) SyncFilesItem {
	return SyncFilesItem{Src: src, Dest: dest}
}

// SyncPath is the item a bare path decodes to: the path synced onto itself.
func SyncPath(path string) SyncFilesItem {
	return NewSyncFilesItem([]string{path}, path)
}

// UnmarshalYAML accepts a bare path ("a" means src [a], dest a) or a mapping
// where src is either a string or a list of strings.
func (s *SyncFilesItem) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var path string
		if err := value.Decode(&path); err != nil {
			return err
		}
		*s = SyncPath(path)
		return nil
	case yaml.MappingNode:
		var raw struct {
			Src     yaml.Node `yaml:"src"`
			Dest    string    `yaml:"dest"`
			Mkpath  bool      `yaml:"mkpath"`
			Delete  bool      `yaml:"delete"`
			Filters []string  `yaml:"filters"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		src, err := decodeStringOrList(&raw.Src)
		if err != nil {
			return fmt.Errorf("line %d: src: %w", value.Line, err)
		}
		if len(src) == 0 {
			return fmt.Errorf("line %d: src is required", value.Line)
		}
		if raw.Dest == "" {
			return fmt.Errorf("line %d: dest is required", value.Line)
		}
		*s = SyncFilesItem{
			Src:     src,
			Dest:    raw.Dest,
			Mkpath:  raw.Mkpath,
			Delete:  raw.Delete,
			Filters: raw.Filters,
		}
		return nil
	default:
		return fmt.Errorf("line %d: expected a path or a mapping with src/dest", value.Line)
	}
}

// String renders the item the way log lines show it.
func (s SyncFilesItem) String() string {
	return fmt.Sprintf("%v -> %s", s.Src, s.Dest)
}

// IterSrcs flattens the sources of all items into one sequence.
func IterSrcs(items []SyncFilesItem) []string {
	var srcs []string
	for _, item := range items {
		srcs = append(srcs, item.Src...)
	}
	return srcs
}

// ContainsSrc reports whether path is a source of any item.
func ContainsSrc(items []SyncFilesItem, path string) bool {
	for _, src := range IterSrcs(items) {
		if src == path {
			return true
		}
	}
	return false
}

func decodeStringOrList(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		var one string
		if err := node.Decode(&one); err != nil {
			return nil, err
		}
		return []string{one}, nil
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return nil, err
		}
		return many, nil
	default:
		return nil, fmt.Errorf("expected a string or a list of strings")
	}
}

// StringOrList is a list of strings that also accepts a single scalar in YAML.
type StringOrList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringOrList) UnmarshalYAML(value *yaml.Node) error {
	items, err := decodeStringOrList(value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*l = items
	return nil
}
