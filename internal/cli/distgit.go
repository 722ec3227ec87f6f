package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewDistGitCmd creates the distgit command
func NewDistGitCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "distgit",
		Short: "Show the dist-git instance and package URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := selectPackages(v)
			if err != nil {
				return err
			}

			base, err := c.DistGitBaseURL()
			if err != nil {
				return err
			}
			namespace, err := c.DistGitNamespace()
			if err != nil {
				return err
			}
			url, ok, err := c.DistGitPackageURL()
			if err != nil {
				return err
			}
			if !ok {
				url = "(downstream_package_name is not set)"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "base_url: %s\n", base)
			fmt.Fprintf(out, "namespace: %s\n", namespace)
			fmt.Fprintf(out, "package_url: %s\n", url)
			return nil
		},
	}
}
