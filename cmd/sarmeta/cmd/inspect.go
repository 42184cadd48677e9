package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/sarmeta/pkg/codec"
	"github.com/ssargent/sarmeta/pkg/di"
)

type inspectOptions struct {
	recordType string
	path       string
	offset     int64
	order      string
	format     string
}

type fieldJSON struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Offset int    `json:"offset"`
	Width  int    `json:"width"`
	Value  string `json:"value"`
}

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <record> <file>",
	Short: "Show every field of a binary record with its offset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := inspectOptions{recordType: args[0], path: args[1]}
		opts.offset, _ = cmd.Flags().GetInt64("offset")
		opts.order, _ = cmd.Flags().GetString("order")
		opts.format, _ = cmd.Flags().GetString("format")

		return runInspect(cmd.OutOrStdout(), container, opts)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Int64("offset", 0, "Byte offset of the record in the file")
	inspectCmd.Flags().String("order", "", "Byte order of the file (big, little)")
	inspectCmd.Flags().String("format", "table", "Output format (table, json)")
}

func runInspect(w io.Writer, c *di.Container, opts inspectOptions) error {
	rec, err := readRecord(c, opts.recordType, opts.path, opts.offset, opts.order)
	if err != nil {
		return err
	}
	fields := codec.Describe(rec)

	switch opts.format {
	case "json":
		out := make([]fieldJSON, len(fields))
		for i, f := range fields {
			out[i] = fieldJSON{
				Name:   f.Name,
				Kind:   f.Kind.String(),
				Offset: f.Offset + int(opts.offset),
				Width:  f.Width,
				Value:  f.Value,
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "OFFSET\tWIDTH\tKIND\tFIELD\tVALUE")
		for _, f := range fields {
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%q\n", f.Offset+int(opts.offset), f.Width, f.Kind, f.Name, f.Value)
		}
		return tw.Flush()
	default:
		return errors.Newf("unknown format %q", opts.format)
	}
}
