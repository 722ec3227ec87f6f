package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Deprecation describes a configuration key scheduled for removal.
type Deprecation struct {
	OldField string
	NewField string
	Hint     string
}

var deprecationRegistry = map[string]Deprecation{
	"synced_files": {
		OldField: "synced_files",
		NewField: "files_to_sync",
		Hint:     "files_to_sync does not add the specfile and config file automatically",
	},
	"downstream_project_url": {
		OldField: "downstream_project_url",
		NewField: "dist_git_base_url",
		Hint:     "the URL is derived from dist_git_base_url, dist_git_namespace and downstream_package_name",
	},
}

// GetDeprecation looks up a deprecation by old field name
func GetDeprecation(oldField string) (Deprecation, bool) {
	dep, found := deprecationRegistry[oldField]
	return dep, found
}

// Notice is a non-fatal warning raised while building a package config.
type Notice struct {
	Field   string
	Message string
}

func (n Notice) String() string {
	return fmt.Sprintf("%s: %s", n.Field, n.Message)
}

// warnDeprecated logs and records the use of a deprecated key.
func (c *PackageConfig) warnDeprecated(field string) {
	dep, ok := GetDeprecation(field)
	if !ok {
		return
	}
	msg := fmt.Sprintf("%s option is deprecated. Use %s option instead.", dep.OldField, dep.NewField)
	logrus.WithFields(logrus.Fields{
		"old_field": dep.OldField,
		"new_field": dep.NewField,
		"hint":      dep.Hint,
	}).Warn(msg)
	c.notices = append(c.notices, Notice{Field: field, Message: msg})
}

func (c *PackageConfig) warn(field, msg string) {
	logrus.WithField("field", field).Warn(msg)
	c.notices = append(c.notices, Notice{Field: field, Message: msg})
}

// Notices returns the warnings raised during construction.
func (c *PackageConfig) Notices() []Notice {
	return append([]Notice(nil), c.notices...)
}
