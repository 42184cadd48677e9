package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/sarmeta/pkg/di"
	"github.com/ssargent/sarmeta/pkg/kwl"
	"github.com/ssargent/sarmeta/pkg/records"
	"github.com/ssargent/sarmeta/pkg/storage"
)

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Store and retrieve keyword lists in the local archive",
	Long: `Keep decoded keyword lists in the archive under the configured data
directory. Entries are identified by KSUIDs and listed oldest first.`,
}

var archivePutCmd = &cobra.Command{
	Use:   "put <record> <keyword-file>",
	Short: "Archive a keyword list",
	Long: `Archive a keyword list saved from a record of the given type. The list
is checked against the record layout first; warnings are printed but do not
prevent archiving unless --strict is given.

Example:
  sarmeta archive put sceneCoord scene.kwl`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix, _ := cmd.Flags().GetString("prefix")
		strict, _ := cmd.Flags().GetBool("strict")
		return runArchivePut(cmd.OutOrStdout(), cmd.ErrOrStderr(), container, args[0], args[1], prefix, strict)
	},
}

var archiveGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print an archived keyword list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		return runArchiveGet(cmd.OutOrStdout(), container, args[0], out)
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived keyword lists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return runArchiveList(cmd.OutOrStdout(), container, format)
	},
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an archived keyword list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runArchiveDelete(cmd.OutOrStdout(), container, args[0])
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archivePutCmd, archiveGetCmd, archiveListCmd, archiveDeleteCmd)

	archivePutCmd.Flags().String("prefix", "", "Keyword prefix (default: the record name)")
	archivePutCmd.Flags().Bool("strict", false, "Refuse lists that do not populate every field")
	archiveGetCmd.Flags().StringP("out", "o", "", "Write the keyword list to this file instead of stdout")
	archiveListCmd.Flags().String("format", "table", "Output format (table, json)")
}

func withArchive(c *di.Container, fn func(*storage.Archive) error) error {
	a, err := c.OpenArchive()
	if err != nil {
		return err
	}
	if err := fn(a); err != nil {
		_ = a.Close()
		return err
	}
	return a.Close()
}

func runArchivePut(w, errw io.Writer, c *di.Container, recordType, path, prefix string, strict bool) error {
	if _, err := records.New(recordType); err != nil {
		return err
	}

	k, err := kwl.ParseFile(path)
	if err != nil {
		return err
	}
	if _, err := loadRecord(errw, c, recordType, prefix, k, strict); err != nil {
		return err
	}

	return withArchive(c, func(a *storage.Archive) error {
		id, err := a.Put(recordType, k)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, id.String())
		return nil
	})
}

func runArchiveGet(w io.Writer, c *di.Container, rawID, out string) error {
	id, err := storage.ParseID(rawID)
	if err != nil {
		return err
	}

	return withArchive(c, func(a *storage.Archive) error {
		item, err := a.Get(id)
		if err != nil {
			return err
		}
		if out != "" {
			return item.Keywords.WriteFile(out)
		}
		_, err = item.Keywords.WriteTo(w)
		return err
	})
}

type summaryJSON struct {
	ID         string    `json:"id"`
	RecordType string    `json:"record_type"`
	Created    time.Time `json:"created"`
	Keys       int       `json:"keys"`
}

func runArchiveList(w io.Writer, c *di.Container, format string) error {
	return withArchive(c, func(a *storage.Archive) error {
		list, err := a.List()
		if err != nil {
			return err
		}

		switch format {
		case "json":
			out := make([]summaryJSON, len(list))
			for i, s := range list {
				out[i] = summaryJSON{ID: s.ID.String(), RecordType: s.RecordType, Created: s.Created, Keys: s.Keys}
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		case "table", "":
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tRECORD\tKEYS\tCREATED")
			for _, s := range list {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.ID, s.RecordType, s.Keys, s.Created.Format(time.RFC3339))
			}
			return tw.Flush()
		default:
			return errors.Newf("unknown format %q", format)
		}
	})
}

func runArchiveDelete(w io.Writer, c *di.Container, rawID string) error {
	id, err := storage.ParseID(rawID)
	if err != nil {
		return err
	}

	return withArchive(c, func(a *storage.Archive) error {
		if err := a.Delete(id); err != nil {
			return err
		}
		fmt.Fprintf(w, "Deleted %s\n", id)
		return nil
	})
}
