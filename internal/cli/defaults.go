package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figmajson/pkg/errors"
	"github.com/matzehuels/figmajson/pkg/scene"
)

// defaultsCommand creates the defaults command.
func (c *CLI) defaultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults [TYPE]",
		Short: "Print the default layer of a node kind",
		Long: `Print the default layer of a node kind as JSON.

Without an argument the kinds that have a default layer are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Println(StyleTitle.Render("Default layers"))
				for _, t := range scene.DefaultTypes {
					printInfo("%s", t)
				}
				return nil
			}

			t := scene.NodeType(strings.ToUpper(args[0]))
			n, ok := scene.DefaultNode(t)
			if !ok {
				return errors.New(errors.ErrCodeUnsupportedNode, "no default layer for %s", t)
			}
			data, err := json.MarshalIndent(n, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}
