package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/sarmeta/pkg/di"
	"github.com/ssargent/sarmeta/pkg/endian"
)

type convertOptions struct {
	recordType string
	input      string
	output     string
	offset     int64
	from       string
	to         string
}

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <record> <input> <output>",
	Short: "Re-encode a binary record in another byte order",
	Long: `Read one record and write it back with its binary fields in the other
byte order. Text and numeric-text fields are copied unchanged.

Example:
  sarmeta convert srgr_conversion_parameters srgr.be srgr.le --from big --to little`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := convertOptions{recordType: args[0], input: args[1], output: args[2]}
		opts.offset, _ = cmd.Flags().GetInt64("offset")
		opts.from, _ = cmd.Flags().GetString("from")
		opts.to, _ = cmd.Flags().GetString("to")

		return runConvert(cmd.OutOrStdout(), container, opts)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().Int64("offset", 0, "Byte offset of the record in the input")
	convertCmd.Flags().String("from", "", "Byte order of the input; defaults to the configured order")
	convertCmd.Flags().String("to", "", "Byte order of the output; defaults to the opposite of --from")
}

func runConvert(w io.Writer, c *di.Container, opts convertOptions) error {
	from, err := resolveOrder(c, opts.from)
	if err != nil {
		return err
	}

	to := endian.LittleEndian
	if from == endian.LittleEndian {
		to = endian.BigEndian
	}
	if opts.to != "" {
		if to, err = endian.ParseOrder(opts.to); err != nil {
			return errors.Wrap(err, "--to")
		}
	}

	rec, err := readRecord(c, opts.recordType, opts.input, opts.offset, from.String())
	if err != nil {
		return err
	}

	if err := os.Remove(opts.output); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "replace %s", opts.output)
	}
	f := c.Leader(opts.output, true)
	defer f.Close()

	if _, err := f.WriteRecord(to, rec); err != nil {
		return err
	}

	fmt.Fprintf(w, "Converted %s from %s to %s endian\n", rec.RecordName(), from, to)
	return f.Close()
}
