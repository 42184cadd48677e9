package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/sarmeta/pkg/codec"
	"github.com/ssargent/sarmeta/pkg/di"
	"github.com/ssargent/sarmeta/pkg/kwl"
	"github.com/ssargent/sarmeta/pkg/records"
)

// ErrIncompleteKeywords is returned in --strict mode when a keyword list
// did not populate every field.
var ErrIncompleteKeywords = errors.New("keyword list is incomplete")

type encodeOptions struct {
	recordType string
	input      string
	output     string
	order      string
	prefix     string
	append     bool
	strict     bool
}

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <record> <keyword-file> <output>",
	Short: "Encode a keyword list into a binary record",
	Long: `Load a record from an OSSIM keyword list and write its binary form.

Missing keywords are reported as warnings and leave the field at zero;
use --strict to fail instead.

Example:
  sarmeta encode sceneCoord scene.kwl scene.bin --order little`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := encodeOptions{recordType: args[0], input: args[1], output: args[2]}
		opts.order, _ = cmd.Flags().GetString("order")
		opts.prefix, _ = cmd.Flags().GetString("prefix")
		opts.append, _ = cmd.Flags().GetBool("append")
		opts.strict, _ = cmd.Flags().GetBool("strict")

		return runEncode(cmd.OutOrStdout(), cmd.ErrOrStderr(), container, opts)
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().String("order", "", "Byte order to write (big, little); defaults to the configured order")
	encodeCmd.Flags().String("prefix", "", "Keyword prefix (default: the record name)")
	encodeCmd.Flags().Bool("append", false, "Append to the output file instead of replacing it")
	encodeCmd.Flags().Bool("strict", false, "Fail when the keyword list does not populate every field")
}

// loadRecord populates a new record of recordType from k and reports any
// warnings to errw.
func loadRecord(errw io.Writer, c *di.Container, recordType, prefix string, k *kwl.Keywordlist, strict bool) (codec.Record, error) {
	rec, err := records.New(recordType)
	if err != nil {
		return nil, err
	}

	report := c.Codec().LoadStateReport(k, prefixOrName(prefix, rec), rec)
	for _, warning := range report.Warnings {
		fmt.Fprintf(errw, "warning: %v\n", warning)
	}
	if strict && !report.OK() {
		return nil, errors.Wrapf(ErrIncompleteKeywords, "%d warnings", len(report.Warnings))
	}
	return rec, nil
}

func runEncode(w, errw io.Writer, c *di.Container, opts encodeOptions) error {
	order, err := resolveOrder(c, opts.order)
	if err != nil {
		return err
	}

	k, err := kwl.ParseFile(opts.input)
	if err != nil {
		return err
	}

	rec, err := loadRecord(errw, c, opts.recordType, opts.prefix, k, opts.strict)
	if err != nil {
		return err
	}

	// a table that lost entries on load has no binary form; find out before
	// the output is replaced
	data, err := c.Codec().Encode(rec, order)
	if err != nil {
		return err
	}

	if !opts.append {
		if err := os.Remove(opts.output); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "replace %s", opts.output)
		}
	}

	f := c.Leader(opts.output, true)
	defer f.Close()

	offset, err := f.Append(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote %s (%d bytes, %s endian) to %s at offset %d\n",
		rec.RecordName(), len(data), order, opts.output, offset)
	return f.Close()
}
