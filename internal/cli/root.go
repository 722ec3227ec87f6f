package cli

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override flags, e.g. PKGSYNC_CONFIG.
const EnvPrefix = "PKGSYNC"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "pkgsync",
		Short: "Inspect packit package configurations",
		Long: `Pkgsync loads a packit configuration file (.packit.yaml and friends),
applies the defaults and shows what a sync to dist-git would use.

Every flag can also be set through the environment, e.g. PKGSYNC_DIR
or PKGSYNC_PACKAGE.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if v.GetBool("verbose") {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.StringP("config", "c", "", "Path to the packit config file (default: search --dir)")
	flags.StringP("dir", "d", ".", "Directory to search for a packit config file")
	flags.StringP("package", "p", "", "Package to use when the config defines several")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, name := range []string{"verbose", "config", "dir", "package"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(
		NewShowCmd(v),
		NewEnvCmd(v),
		NewFilesCmd(v),
		NewDistGitCmd(v),
		NewSRPMCmd(v),
		NewKeysCmd(v),
	)

	return rootCmd
}
