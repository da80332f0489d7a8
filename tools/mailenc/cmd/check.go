package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

// ErrOutputDiffers is returned by check when the encoded mail is not the
// expected one.
var ErrOutputDiffers = errors.New("encoded mail differs from the expected mail")

var checkCmd = &cobra.Command{
	Use:   "check tree.yaml expected.eml",
	Short: "Shows the diff between an encoded tree and the expected mail",
	Args:  cobra.ExactArgs(2),
	RunE:  RunCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// showLineEnds makes CR visible so that a lost CRLF shows up in a diff.
func showLineEnds(s string) string {
	return strings.ReplaceAll(s, "\r\n", "␍\n")
}

// Diff returns a readable diff from expected to got, or "" when they are the
// same.
func Diff(expected, got string) string {
	if expected == got {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(showLineEnds(expected), showLineEnds(got))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	return dmp.DiffPrettyText(diffs)
}

func RunCheck(cmd *cobra.Command, args []string) error {
	got, err := encodeTree(cmd.Context(), cfg, args[0])
	if err != nil {
		return err
	}

	expected, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}

	diff := Diff(string(expected), string(got))
	if diff == "" {
		logger.Info().Str("tree", args[0]).Msg("encoded mail matches")
		return nil
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tree     = %s\nexpected = %s\n\n%s", args[0], args[1], diff)
	return ErrOutputDiffers
}
