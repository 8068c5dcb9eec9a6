package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/salmonumbrella/ptree/internal/output"
	"github.com/salmonumbrella/ptree/internal/portabletext"
)

var (
	formatAllowEmpty bool
	formatPath       string
)

var formatCmd = &cobra.Command{
	Use:   "format [file|-]",
	Short: "Convert Portable Text blocks into a node tree",
	Long: `Read a JSON array of Portable Text blocks and print the nested node tree.

Input comes from the file argument, or from stdin when the argument is "-"
or omitted and data is piped. Use --path to pick the block array out of a
larger document with a gjson path.`,
	Example: `  ptree format post.json
  cat post.json | ptree format -o json
  ptree format response.json --path result.body --query '.[].type'
  ptree format post.json --allow-empty-blocks -o yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().BoolVar(&formatAllowEmpty, "allow-empty-blocks", false, "Keep blocks whose only span is blank (env: PTREE_ALLOW_EMPTY_BLOCKS)")
	formatCmd.Flags().StringVar(&formatPath, "path", "", "gjson path to the block array in the input (env: PTREE_BLOCK_PATH)")

	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	data, err := readBlocksInput(args, stdinFromContext(ctx))
	if err != nil {
		return err
	}

	cfg, err := resolveFormatterConfig(cmd, activeConfig)
	if err != nil {
		return err
	}
	path := resolveBlockPath(cmd, activeConfig)

	blocks, err := portabletext.DecodePath(data, path)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"blocks": len(blocks),
		"path":   path,
	}).Debug("decoded input")

	nodes := portabletext.NewFormatter(cfg, portabletext.WithLogger(logger)).Format(blocks)
	if len(nodes) == 0 && !output.QuietFromContext(ctx) && !structuredOutputRequested() {
		fmt.Fprintln(stderrFromContext(ctx), "empty document")
	}

	return printOutput(ctx, nodeTree(nodes))
}
