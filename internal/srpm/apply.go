package srpm

import (
	"github.com/ralt/pkgsync/internal/config"
	"github.com/sirupsen/logrus"
)

// ApplyToConfig names the downstream package after the source package when
// the config does not name it yet. It reports whether the name was set.
// A collection with several packages cannot take the name and fails.
func ApplyToConfig(view config.ConfigurationView, h *Header) (bool, error) {
	current, err := view.DownstreamPackageName()
	if err != nil {
		return false, err
	}
	if current != "" {
		if current != h.Name {
			logrus.WithFields(logrus.Fields{
				"configured": current,
				"srpm":       h.Name,
			}).Warn("Source package name differs from downstream_package_name, keeping the configured one")
		}
		return false, nil
	}

	if err := view.SetDownstreamPackageName(h.Name); err != nil {
		return false, err
	}
	logrus.Infof("Using downstream package name %s from %s", h.Name, h.NVR())
	return true, nil
}
