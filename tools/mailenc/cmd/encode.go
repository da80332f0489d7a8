package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mailenc/internal/config"
	"github.com/zostay/go-mailenc/internal/tree"
	"github.com/zostay/go-mailenc/message"
)

var (
	encodeCmd = &cobra.Command{
		Use:   "encode tree.yaml",
		Short: "Writes the encoded mail described by a tree file",
		Args:  cobra.ExactArgs(1),
		RunE:  RunEncode,
	}

	outputPath string
)

func init() {
	encodeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write to this file instead of standard output")
	rootCmd.AddCommand(encodeCmd)
}

// encodeTree loads, resolves and encodes the tree file at path.
func encodeTree(ctx context.Context, cfg *config.Config, path string) ([]byte, error) {
	opts, err := cfg.Options(logger)
	if err != nil {
		return nil, err
	}

	m, err := tree.LoadFile(path)
	if err != nil {
		return nil, err
	}

	if err := message.Resolve(ctx, m, opts...); err != nil {
		return nil, err
	}

	return message.Encode(m, opts...)
}

func RunEncode(cmd *cobra.Command, args []string) error {
	out, err := encodeTree(cmd.Context(), cfg, args[0])
	if err != nil {
		return err
	}

	logger.Debug().Str("tree", args[0]).Int("bytes", len(out)).Msg("mail encoded")

	if outputPath != "" {
		return os.WriteFile(outputPath, out, 0o644)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
