package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ftcdoctor/logdoctor/internal/diagnosis"
	"github.com/ftcdoctor/logdoctor/internal/report"
	"github.com/ftcdoctor/logdoctor/internal/tournament"
	"github.com/ftcdoctor/logdoctor/internal/utils/fileutil"
	"github.com/ftcdoctor/logdoctor/internal/utils/logger"
)

var tournamentJSON bool

var tournamentCmd = &cobra.Command{
	Use:   "tournament <logfile>...",
	Short: "Analyze multiple match logs and track trends",
	Long: `Run the full diagnosis independently over each log file and aggregate
the verdicts: per-match health scores, averages, best/worst match and the
score trend across the tournament.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		log := logger.Get(cmd.Context())

		logs := make([]tournament.Log, 0, len(args))
		for _, path := range args {
			content, err := fileutil.ReadLogFile(path, cfg.Limits.MaxLogSizeMB*1024*1024)
			if err != nil {
				log.Warnf("⚠️ Skipping %s: %v", path, err)
				continue
			}
			logs = append(logs, tournament.Log{Name: filepath.Base(path), Content: content})
		}

		engine, err := diagnosis.NewEngine(cfg.Analysis, cfg.Rules)
		if err != nil {
			return err
		}
		rep, err := tournament.Analyze(engine, logs)
		if err != nil {
			return err
		}

		if tournamentJSON {
			return writeTournamentJSON(cmd, rep)
		}
		printTournament(cmd, rep)
		return nil
	},
}

func writeTournamentJSON(cmd *cobra.Command, rep *tournament.Report) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func printTournament(cmd *cobra.Command, rep *tournament.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "## Tournament Analysis\n\n")
	fmt.Fprintf(out, "- **Matches analyzed:** %d\n", len(rep.Matches))
	fmt.Fprintf(out, "- **Average health:** %.1f\n", rep.AverageHealth)
	fmt.Fprintf(out, "- **Best match:** %s\n", rep.BestMatch)
	fmt.Fprintf(out, "- **Worst match:** %s\n", rep.WorstMatch)
	fmt.Fprintf(out, "- **Trend:** %s\n", rep.Trend)
	fmt.Fprintf(out, "- **Total critical issues:** %d\n", rep.TotalCriticalIssues)
	fmt.Fprintf(out, "- **Total high-current events:** %d\n\n", rep.TotalHighCurrentEvents)

	fmt.Fprintf(out, "### Match-by-Match\n\n")
	for _, m := range rep.Matches {
		fmt.Fprintf(out, "%d. %s — health %d/100 (%s)", m.MatchNumber, m.Name, m.HealthScore, report.Banner(m.HealthScore))
		if m.StartingBattery != nil {
			fmt.Fprintf(out, ", start battery %.2fV", *m.StartingBattery)
		}
		if m.AvgLoopTime != nil {
			fmt.Fprintf(out, ", avg loop %.1fms", *m.AvgLoopTime)
		}
		fmt.Fprintln(out)
	}

	if len(rep.Skipped) > 0 {
		fmt.Fprintf(out, "\n### Skipped\n\n")
		for _, s := range rep.Skipped {
			fmt.Fprintf(out, "- %s: %s\n", s.Name, s.Reason)
		}
	}
	if len(rep.ProblemMatches) > 0 {
		fmt.Fprintf(out, "\n⚠️ %d match(es) had poor health scores (<50)\n", len(rep.ProblemMatches))
	}
}

func init() {
	tournamentCmd.Flags().BoolVar(&tournamentJSON, "json", false, "Emit the aggregate report as JSON")
	RootCmd.AddCommand(tournamentCmd)
}
