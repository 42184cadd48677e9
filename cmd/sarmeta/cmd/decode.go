package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/ssargent/sarmeta/pkg/codec"
	"github.com/ssargent/sarmeta/pkg/di"
	"github.com/ssargent/sarmeta/pkg/kwl"
	"github.com/ssargent/sarmeta/pkg/records"
)

type decodeOptions struct {
	recordType string
	path       string
	offset     int64
	order      string
	prefix     string
	out        string
}

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <record> <file>",
	Short: "Decode a binary record into a keyword list",
	Long: `Read one record from a leader or header file and print it as an OSSIM
keyword list.

Example:
  sarmeta decode srgr_conversion_parameters ASA_IMS.N1 --offset 3267 --prefix srgr`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := decodeOptions{recordType: args[0], path: args[1]}
		opts.offset, _ = cmd.Flags().GetInt64("offset")
		opts.order, _ = cmd.Flags().GetString("order")
		opts.prefix, _ = cmd.Flags().GetString("prefix")
		opts.out, _ = cmd.Flags().GetString("out")

		return runDecode(cmd.OutOrStdout(), container, opts)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().Int64("offset", 0, "Byte offset of the record in the file")
	decodeCmd.Flags().String("order", "", "Byte order of the file (big, little); defaults to the configured order")
	decodeCmd.Flags().String("prefix", "", "Keyword prefix (default: the record name)")
	decodeCmd.Flags().StringP("out", "o", "", "Write the keyword list to this file instead of stdout")
}

// readRecord reads one record of recordType from path.
func readRecord(c *di.Container, recordType, path string, offset int64, orderFlag string) (codec.Record, error) {
	order, err := resolveOrder(c, orderFlag)
	if err != nil {
		return nil, err
	}
	rec, err := records.New(recordType)
	if err != nil {
		return nil, err
	}

	f := c.Leader(path, false)
	defer f.Close()

	if _, err := f.ReadRecord(offset, order, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func prefixOrName(prefix string, rec codec.Record) string {
	if prefix == "" {
		return rec.RecordName()
	}
	return prefix
}

func runDecode(w io.Writer, c *di.Container, opts decodeOptions) error {
	rec, err := readRecord(c, opts.recordType, opts.path, opts.offset, opts.order)
	if err != nil {
		return err
	}

	k := kwl.New()
	c.Codec().SaveState(k, prefixOrName(opts.prefix, rec), rec)

	if opts.out != "" {
		return k.WriteFile(opts.out)
	}
	_, err = k.WriteTo(w)
	return err
}
