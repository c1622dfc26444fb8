package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"skidlogg/internal/bootstrap"
	"skidlogg/internal/modules/training/dto"
	"skidlogg/internal/platform/config"
	"skidlogg/internal/platform/format"
	"skidlogg/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dataDir    string
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "skidlogg",
		Short:         "Training log for cross-country skiing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath, opts.dataDir)
			if err != nil {
				return err
			}
			if flag := cmd.Flag("data-dir"); flag != nil && flag.Changed {
				if cfg, err = cfg.WithDataDir(opts.dataDir); err != nil {
					return err
				}
			}
			opts.cfg = cfg
			logging.Setup(logging.SetupParams{
				LogFileName:   cfg.LogFile,
				LogLevel:      cfg.LogLevel,
				LogFormatJSON: cfg.LogJSON,
				LogToStderr:   cfg.LogStderr,
				Quiet:         cmd.Name() == "tui",
			})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", defaultDataDir(), "directory holding the session log")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML or TOML config file")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newAddCmd(opts))
	root.AddCommand(newEditCmd(opts))
	root.AddCommand(newDeleteCmd(opts))
	root.AddCommand(newLogCmd(opts))
	root.AddCommand(newSummaryCmd(opts))
	root.AddCommand(newSeasonsCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newReindexCmd(opts))
	root.AddCommand(newDoctorCmd(opts))
	return root
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + string(os.PathSeparator) + "skidlogg"
	}
	return "."
}

// withApp builds the app for one command and closes it afterwards.
func withApp(ctx context.Context, opts *rootOptions, fn func(app *bootstrap.App) error) (err error) {
	app, err := bootstrap.New(ctx, opts.cfg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, app.Close()) }()
	return fn(app)
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, bootstrap.RunTUI)
		},
	}
}

type sessionFlags struct {
	style    string
	date     string
	distance string
	duration string
	climb    string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.style, "style", "", "style: classic|skate|roller|machine")
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.distance, "distance", "", "distance in km")
	cmd.Flags().StringVar(&f.duration, "duration", "", "duration as mm:ss or hh:mm:ss")
	cmd.Flags().StringVar(&f.climb, "climb", "0", "climb in meters")
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	flags := &sessionFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a training session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				date := flags.date
				if date == "" {
					date = app.Clock.Now().Format("2006-01-02")
				}
				out, err := app.TrainingCLI.Add(cmd.Context(), flags.style, date, flags.distance, flags.duration, flags.climb)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s %s %s (%s)\n", out.Date, out.StyleLabel, out.Season, out.ID)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	flags := &sessionFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace the fields of a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				current, err := app.TrainingCLI.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				merged := mergeFlags(cmd, flags, current)
				out, err := app.TrainingCLI.Edit(cmd.Context(), args[0], merged.style, merged.date, merged.distance, merged.duration, merged.climb)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s %s %s (%s)\n", out.Date, out.StyleLabel, out.Season, out.ID)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

// mergeFlags keeps the stored value of every flag the user did not set.
func mergeFlags(cmd *cobra.Command, flags *sessionFlags, current dto.SessionOutput) sessionFlags {
	merged := sessionFlags{
		style:    current.Style,
		date:     current.Date,
		distance: format.Plain(current.DistanceKM),
		duration: current.Duration,
		climb:    format.Plain(current.ClimbMeters),
	}
	changed := cmd.Flags().Changed
	if changed("style") {
		merged.style = flags.style
	}
	if changed("date") {
		merged.date = flags.date
	}
	if changed("distance") {
		merged.distance = flags.distance
	}
	if changed("duration") {
		merged.duration = flags.duration
	}
	if changed("climb") {
		merged.climb = flags.climb
	}
	return merged
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				if !yes {
					session, err := app.TrainingCLI.Get(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					prompt := fmt.Sprintf("Ta bort passet %s (%s, %s km)?", session.Date, session.StyleLabel, app.Formatter.Number(session.DistanceKM, 1))
					if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
						_, _ = fmt.Fprintln(cmd.OutOrStdout(), "aborted")
						return nil
					}
				}
				removed, err := app.TrainingCLI.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !removed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no session %s\n", args[0])
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	_, _ = fmt.Fprintf(out, "%s [y/N] ", prompt)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes" || answer == "j" || answer == "ja"
}

func newLogCmd(opts *rootOptions) *cobra.Command {
	var season string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "log",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				rows, err := app.TrainingCLI.Log(cmd.Context(), season)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), rows)
				}
				if len(rows) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Inga pass ännu.")
					return nil
				}
				f := app.Formatter
				for _, row := range rows {
					line := fmt.Sprintf("%s\t%s\t%s\t%s km\t%s\t%s",
						row.ID, row.Date, row.StyleLabel, f.Number(row.DistanceKM, 1), row.Duration, f.Pace(row.PaceSecPerKM))
					if row.TracksClimb {
						line += fmt.Sprintf("\t%s hm\tstifa %s", f.Number(row.ClimbMeters, 0), f.Ratio(row.Stifa, 1))
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", "current", "current, all or a season label like 24/25")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var season string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show season totals per style",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				summary, err := app.TrainingCLI.Summary(cmd.Context(), season)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), summary)
				}
				writeSummary(cmd.OutOrStdout(), app.Formatter, summary)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "season label like 24/25 (default current)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeSummary(w io.Writer, f format.Formatter, summary dto.SummaryOutput) {
	t := summary.Totals
	_, _ = fmt.Fprintf(w, "Säsong %s\n", summary.Season)
	_, _ = fmt.Fprintf(w, "  pass %d  distans %s km  tid %s  höjdmeter %s\n",
		t.Count, f.Number(t.TotalDistanceKM, 1), t.Duration, f.Number(t.TotalClimbMeters, 0))
	avgStifa := t.AvgStifa
	_, _ = fmt.Fprintf(w, "  snittempo %s  stifa %s\n", f.Pace(t.AvgPaceSecPerKM), f.Ratio(&avgStifa, 1))
	for _, row := range summary.ByStyle {
		_, _ = fmt.Fprintf(w, "  %-20s %3d pass %8s km %9s %14s %s\n",
			row.Label, row.Count, f.Number(row.DistanceKM, 1), row.Duration, f.Pace(row.PaceSecPerKM), f.Ratio(row.Stifa, 1))
	}
	if len(summary.Shares) == 0 {
		_, _ = fmt.Fprintln(w, "  Ingen distans")
		return
	}
	for _, share := range summary.Shares {
		_, _ = fmt.Fprintf(w, "  %-20s %s %%\n", share.Style, f.Number(share.Fraction*100, 0))
	}
}

func newSeasonsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seasons",
		Short: "List seasons with sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				seasons, err := app.TrainingCLI.Seasons(cmd.Context())
				if err != nil {
					return err
				}
				for _, season := range seasons.Options {
					marker := ""
					if season == seasons.Current {
						marker = "\t(innevarande)"
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), season+marker)
				}
				return nil
			})
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var season string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the season summary as a markdown note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				out, err := app.ReportCLI.Export(cmd.Context(), season)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s (%d sessions) to %s\n", out.Season, out.Sessions, out.Path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "season label like 24/25 (default current)")
	return cmd
}

func newReindexCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite session index from the log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				count, err := app.TrainingCLI.Reindex(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindex completed: %d sessions\n", count)
				return nil
			})
		},
	}
}

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Report records dropped or repaired while loading",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(app *bootstrap.App) error {
				report, err := app.TrainingCLI.Doctor(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), report)
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "source:     %s\n", report.Source)
				_, _ = fmt.Fprintf(w, "records:    %d\n", report.Total)
				_, _ = fmt.Fprintf(w, "kept:       %d\n", report.Kept)
				_, _ = fmt.Fprintf(w, "dropped:    %d\n", report.Dropped)
				_, _ = fmt.Fprintf(w, "backfilled: %d\n", report.Backfilled)
				_, _ = fmt.Fprintf(w, "reassigned: %d\n", report.Reassigned)
				switch {
				case report.ReadError != "":
					_, _ = fmt.Fprintf(w, "the stored log could not be read: %s\n", report.ReadError)
				case report.Corrupt:
					_, _ = fmt.Fprintln(w, "the stored log is not a JSON array; the next save replaces it")
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
