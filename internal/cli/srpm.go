package cli

import (
	"fmt"
	"os"

	"github.com/ralt/pkgsync/internal/models"
	"github.com/ralt/pkgsync/internal/srpm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewSRPMCmd creates the srpm command
func NewSRPMCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "srpm <path>",
		Short: "Name the downstream package after a source RPM",
		Long: `Reads a source RPM (or the newest one found under a directory) and,
when the config does not set downstream_package_name, uses the RPM name.
Prints the resulting dist-git package URL.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := selectPackages(v)
			if err != nil {
				return err
			}

			h, err := readSourcePackage(cmd, args[0])
			if err != nil {
				return err
			}

			if _, err := srpm.ApplyToConfig(c, h); err != nil {
				return err
			}
			url, ok, err := c.DistGitPackageURL()
			if err != nil {
				return err
			}
			if !ok {
				return models.NewConfigError(models.ErrPackageParse, args[0], "source package has no name")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", h.NVR(), url)
			return nil
		},
	}
}

func readSourcePackage(cmd *cobra.Command, path string) (*srpm.Header, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &models.ConfigError{Type: models.ErrFileOp, Field: path, Err: err}
	}
	if !info.IsDir() {
		return srpm.ParseHeader(path)
	}

	scanned, err := srpm.NewFileSystemScanner().Scan(cmd.Context(), path)
	if err != nil {
		return nil, err
	}
	var headers []*srpm.Header
	for _, pkg := range scanned {
		h, err := srpm.ParseHeader(pkg.Path)
		if err != nil {
			logrus.Warnf("Skipping %s: %v", pkg.Path, err)
			continue
		}
		headers = append(headers, h)
	}
	newest := srpm.Newest(headers)
	if newest == nil {
		return nil, models.NewConfigError(models.ErrFileOp, path, "no source package found")
	}
	logrus.Debugf("Using %s", newest.Path)
	return newest, nil
}
