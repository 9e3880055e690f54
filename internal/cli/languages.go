package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/prettify/pkg/lang/languages"
)

// languagesCommand lists the supported languages.
func (c *CLI) languagesCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported languages and their file extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, l := range languages.All {
				names := strings.Join(append([]string{l.Name}, l.Aliases...), ", ")
				exts := strings.Join(l.Extensions, " ")
				if plain {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", names, exts)
					continue
				}
				printKeyValue(l.Name, exts)
				if len(l.Aliases) > 0 {
					printDetail("aliases: %s", strings.Join(l.Aliases, ", "))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "tab-separated output for scripts")

	return cmd
}
