package cmd

import (
	"fmt"

	"github.com/iksnae/chat-transcripts/internal"
	"github.com/spf13/cobra"
)

var exportAll bool

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [session-id...]",
	Short: "Save transcripts without prompting",
	Long: `Save transcripts to files without the interactive prompt.

Pass one or more session IDs (any unique prefix works), or --all to save the
latest --limit transcripts. Use 'chat-transcripts list' to see session IDs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && !exportAll {
			return fmt.Errorf("specify at least one session ID or use --all")
		}
		if len(args) > 0 && exportAll {
			return fmt.Errorf("session IDs and --all cannot be combined")
		}

		a, err := newApp(cmd, cmd.Flags())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		var records []*internal.Record
		if exportAll {
			records = a.latest(cmd)
		} else {
			seen := make(map[string]bool, len(args))
			for _, id := range args {
				rec, err := a.scanner.Find(a.cfg.SourceFilter(), id)
				if err != nil {
					return err
				}
				if seen[rec.Path] {
					continue
				}
				seen[rec.Path] = true
				records = append(records, rec)
			}
		}

		if len(records) == 0 {
			internal.PrintWarning(out, "No transcripts found.")
			return nil
		}

		return a.save(cmd, records)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addSaveFlags(exportCmd.Flags())
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Save the latest transcripts (see --limit)")
}
