package cli

import (
	"fmt"

	"github.com/ralt/pkgsync/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewFilesCmd creates the files command
func NewFilesCmd(v *viper.Viper) *cobra.Command {
	var configured bool

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List the files synced to dist-git",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := selectPackages(v)
			if err != nil {
				return err
			}

			var items []models.SyncFilesItem
			if configured {
				items, err = c.FilesToSync()
			} else {
				items, err = c.AllFilesToSync()
			}
			if err != nil {
				return err
			}

			for _, item := range items {
				fmt.Fprintln(cmd.OutOrStdout(), item)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&configured, "configured", false, "Only list configured files, without the specfile and config file")

	return cmd
}
