package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewShowCmd creates the show command
func NewShowCmd(v *viper.Viper) *cobra.Command {
	var oneline bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print every package configuration with defaults applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := selectPackages(v)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range c.Names() {
				p, _ := c.Package(name)
				if oneline {
					fmt.Fprintf(out, "%s: %s\n", name, p)
					continue
				}
				text, err := p.Dumps()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "# %s\n%s", name, text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&oneline, "oneline", false, "Print each package on a single line")

	return cmd
}
