package cli

import (
	"github.com/ralt/pkgsync/internal/config"
	"github.com/ralt/pkgsync/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// loadCollection reads the config named by --config, or the first one found in --dir.
func loadCollection(v *viper.Viper) (*config.Collection, error) {
	path := v.GetString("config")
	if path == "" {
		found, err := config.FindConfigFile(v.GetString("dir"))
		if err != nil {
			return nil, err
		}
		path = found
	}

	c, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Loaded %s from %s", c, path)
	return c, nil
}

// selectPackages narrows the loaded collection to --package when given.
// The result serves as a ConfigurationView, which answers only when a
// single package is left.
func selectPackages(v *viper.Viper) (*config.Collection, error) {
	c, err := loadCollection(v)
	if err != nil {
		return nil, err
	}

	name := v.GetString("package")
	if name == "" {
		return c, nil
	}
	p, ok := c.Package(name)
	if !ok {
		return nil, models.NewConfigError(models.ErrInvalidConfig, "package",
			"package %q not found (have %v)", name, c.Names())
	}
	return config.SinglePackage(name, p), nil
}
