package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mailenc/internal/tree"
	"github.com/zostay/go-mailenc/message"
	"github.com/zostay/go-mailenc/message/walk"
)

var outlineCmd = &cobra.Command{
	Use:   "outline tree.yaml",
	Short: "Lists the parts of the mail described by a tree file",
	Args:  cobra.ExactArgs(1),
	RunE:  RunOutline,
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}

// outlinePart writes one line describing part, indented by its depth.
func outlinePart(w io.Writer, part *message.Mail, parents []*message.Mail) error {
	indent := strings.Repeat("  ", len(parents))

	if part.IsMultipart() {
		ct, err := part.Header.GetContentType()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s%s boundary=%s parts=%d\n",
			indent, ct.MediaType(), ct.Boundary(), len(part.Children()))
		return err
	}

	b := part.Body.(*message.SingleBody).Body
	mt := "unknown"
	if ct, err := part.Header.GetContentType(); err == nil {
		mt = ct.MediaType()
	} else if buf := b.Buffer(); buf != nil {
		mt = buf.MediaType.MediaType()
	}
	_, err := fmt.Fprintf(w, "%s%s (%s)\n", indent, mt, b.State())
	return err
}

func RunOutline(cmd *cobra.Command, args []string) error {
	m, err := tree.LoadFile(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	return walk.AndProcess(func(part *message.Mail, parents []*message.Mail) error {
		return outlinePart(w, part, parents)
	}, m)
}
