package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/user/video-trim-cli/db"
	"github.com/user/video-trim-cli/pkg/timeutil"
)

var historyCmd = &cobra.Command{
	Use:   "history [video-file]",
	Short: "List past exports",
	Long:  `List exports recorded in the history, newest first. Pass a video file to only show its exports.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		videoPath := ""
		if len(args) == 1 {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("failed to resolve path: %w", err)
			}
			videoPath = abs
		}

		database, err := db.Open()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		exports, err := db.SelectExports(database, videoPath, limit)
		if err != nil {
			return fmt.Errorf("failed to query exports: %w", err)
		}
		if len(exports) == 0 {
			fmt.Println("No exports found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tSTATUS\tRANGE\tSIZE\tOUTPUT")
		for _, e := range exports {
			size := "-"
			if e.Status == db.StatusComplete {
				size = humanize.Bytes(uint64(e.Filesize))
			}
			status := e.Status
			if e.Status == db.StatusError && e.Error != "" {
				status += ": " + e.Error
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s–%s\t%s\t%s\n",
				e.ID,
				humanize.Time(e.CreatedAt),
				status,
				timeutil.FormatTime(e.Start),
				timeutil.FormatTime(e.End),
				size,
				shortPath(e.OutputPath))
		}
		return w.Flush()
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an export from the history",
	Long:  `Remove an export record by its full ID. The exported file is left on disk.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		if err := db.DeleteExport(database, args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted export %s\n", args[0])
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of exports to list (0 for all)")
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
