package distgit

import (
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/ralt/pkgsync/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	// EnvURL overrides the dist-git base URL when nothing is configured.
	EnvURL = "DISTGIT_URL"
	// EnvNamespace accompanies EnvURL.
	EnvNamespace = "DISTGIT_NAMESPACE"
	// DefaultTool is used when neither config nor environment say otherwise.
	DefaultTool = "fedpkg"
)

// Instance identifies a dist-git forge and the namespace packages live in.
type Instance struct {
	Hostname            string
	AlternativeHostname string
	Namespace           string
}

// URL returns the base URL of the forge, always with a trailing slash.
func (i Instance) URL() string {
	return "https://" + i.Hostname + "/"
}

// FromURLAndNamespace builds an instance from a configured base URL.
// Only the hostname of the URL is kept.
func FromURLAndNamespace(baseURL, namespace string) Instance {
	return Instance{
		Hostname:  hostname(baseURL),
		Namespace: namespace,
	}
}

func hostname(raw string) string {
	raw = strings.TrimSpace(raw)
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Hostname()
	}
	// scheme-less values such as "src.example.org/" parse as a path
	if u, err := url.Parse("https://" + raw); err == nil {
		return u.Hostname()
	}
	return strings.Trim(raw, "/")
}

var registry = map[string]Instance{
	"fedpkg": {
		Hostname:            "src.fedoraproject.org",
		AlternativeHostname: "pkgs.fedoraproject.org",
		Namespace:           "rpms",
	},
	"fedpkg-stage": {
		Hostname:            "src.stg.fedoraproject.org",
		AlternativeHostname: "pkgs.stg.fedoraproject.org",
		Namespace:           "rpms",
	},
	"centpkg": {
		Hostname:  "gitlab.com",
		Namespace: "redhat/centos-stream/rpms",
	},
	"centpkg-sig": {
		Hostname:  "git.centos.org",
		Namespace: "rpms",
	},
}

// Lookup returns the registered instance for a packaging tool.
func Lookup(tool string) (Instance, error) {
	inst, ok := registry[tool]
	if !ok {
		return Instance{}, models.NewConfigError(models.ErrUnknownPkgTool, "pkg_tool",
			"unknown packaging tool %q (known: %s)", tool, strings.Join(Tools(), ", "))
	}
	return inst, nil
}

// Tools lists the registered packaging tools.
func Tools() []string {
	tools := make([]string, 0, len(registry))
	for name := range registry {
		tools = append(tools, name)
	}
	sort.Strings(tools)
	return tools
}

// LookupEnv has the signature of os.LookupEnv.
type LookupEnv func(key string) (string, bool)

// Resolve picks the dist-git instance for a package.
//
// An explicit base URL wins, then an explicit packaging tool, then the
// DISTGIT_URL/DISTGIT_NAMESPACE environment variables, then fedpkg.
func Resolve(baseURL, namespace *string, pkgTool string, env LookupEnv) (Instance, error) {
	if env == nil {
		env = os.LookupEnv
	}

	if baseURL != nil {
		logrus.Debugf("Using configured dist-git URL %s", *baseURL)
		return FromURLAndNamespace(*baseURL, deref(namespace)), nil
	}

	if pkgTool != "" {
		logrus.Debugf("Using dist-git instance of %s", pkgTool)
		return Lookup(pkgTool)
	}

	if envURL, ok := env(EnvURL); ok {
		envNamespace, _ := env(EnvNamespace)
		logrus.WithFields(logrus.Fields{
			"url":       envURL,
			"namespace": envNamespace,
		}).Debug("Using dist-git instance from environment")
		return FromURLAndNamespace(envURL, envNamespace), nil
	}

	return Lookup(DefaultTool)
}

// PackageURL returns the git URL of a package repository on the instance.
func PackageURL(inst Instance, name string) string {
	base := inst.URL()
	namespace := strings.Trim(inst.Namespace, "/")
	if namespace == "" {
		return base + name + ".git"
	}
	return base + namespace + "/" + name + ".git"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
