package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ftcdoctor/logdoctor/internal/diagnosis"
	"github.com/ftcdoctor/logdoctor/internal/metrics"
	"github.com/ftcdoctor/logdoctor/internal/parser"
	"github.com/ftcdoctor/logdoctor/internal/report"
	"github.com/ftcdoctor/logdoctor/internal/utils/fileutil"
)

var (
	analyzeJSON        bool
	analyzeCSV         bool
	analyzeRecordsJSON bool
	analyzeName        string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <logfile>",
	Short: "Analyze a single match log",
	Long: `Parse a logcat capture (plain or gzip-compressed) and print the
diagnostic report. Default output is a markdown summary; --json emits the
full machine-readable verdict, --csv and --records-json dump the parsed
record stream.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		content, err := fileutil.ReadLogFile(args[0], cfg.Limits.MaxLogSizeMB*1024*1024)
		if err != nil {
			return err
		}
		if err := parser.Validate(content); err != nil {
			return err
		}
		records, err := parser.Parse(content)
		if err != nil {
			return err
		}

		if analyzeCSV {
			return report.WriteCSV(cmd.OutOrStdout(), records)
		}
		if analyzeRecordsJSON {
			return report.WriteRecordsJSON(cmd.OutOrStdout(), records)
		}

		engine, err := diagnosis.NewEngine(cfg.Analysis, cfg.Rules)
		if err != nil {
			return err
		}
		result := engine.Diagnose(records)
		metrics.ObserveAnalysis(len(records), result.HealthScore, len(result.HighCurrentEvents))

		name := analyzeName
		if name == "" {
			name = filepath.Base(args[0])
		}

		if analyzeJSON {
			return report.NewAnalysis(name, records, result).WriteJSON(cmd.OutOrStdout())
		}
		fmt.Fprint(cmd.OutOrStdout(), report.Summary(result))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Emit the full verdict as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeCSV, "csv", false, "Dump the parsed records as CSV (no diagnosis)")
	analyzeCmd.Flags().BoolVar(&analyzeRecordsJSON, "records-json", false, "Dump the parsed records as JSON (no diagnosis)")
	analyzeCmd.Flags().StringVar(&analyzeName, "name", "", "Match name for the report (default: file name)")
	RootCmd.AddCommand(analyzeCmd)
}
