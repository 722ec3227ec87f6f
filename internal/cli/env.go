package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewEnvCmd creates the env command
func NewEnvCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the package name variables passed to actions",
		Long: `Prints PACKIT_CONFIG_PACKAGE_NAME, PACKIT_UPSTREAM_PACKAGE_NAME and
PACKIT_DOWNSTREAM_PACKAGE_NAME as KEY=value lines, suitable for eval.
Requires a single package, or --package.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := selectPackages(v)
			if err != nil {
				return err
			}
			env, err := c.PackageNamesAsEnv()
			if err != nil {
				return err
			}

			keys := make([]string, 0, len(env))
			for k := range env {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, env[k])
			}
			return nil
		},
	}
}
