package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	reportinadapter "skidlogg/internal/modules/report/adapter/in"
	reportoutadapter "skidlogg/internal/modules/report/adapter/out"
	reportservice "skidlogg/internal/modules/report/service"
	reportusecase "skidlogg/internal/modules/report/usecase"
	traininginadapter "skidlogg/internal/modules/training/adapter/in"
	trainingoutadapter "skidlogg/internal/modules/training/adapter/out"
	trainingout "skidlogg/internal/modules/training/port/out"
	trainingservice "skidlogg/internal/modules/training/service"
	trainingusecase "skidlogg/internal/modules/training/usecase"
	"skidlogg/internal/platform/clock"
	"skidlogg/internal/platform/config"
	"skidlogg/internal/platform/format"
	"skidlogg/internal/platform/id"
	uiapp "skidlogg/internal/ui/app"
)

const watchDebounce = 150 * time.Millisecond

type App struct {
	TrainingCLI traininginadapter.CLIHandler
	ReportCLI   reportinadapter.CLIHandler
	Formatter   format.Formatter
	Clock       clock.Clock

	cfg config.Config
	db  *sql.DB
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	db, err := trainingoutadapter.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	projector, err := trainingoutadapter.NewSQLiteSessionProjector(ctx, db)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("new session projector: %w", err), db.Close())
	}

	var store trainingout.BlobStore
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err = trainingoutadapter.NewSQLiteBlobStore(ctx, db, config.BlobKey, clk)
		if err != nil {
			return nil, multierr.Append(fmt.Errorf("new sqlite blob store: %w", err), db.Close())
		}
	default:
		store = trainingoutadapter.NewFileBlobStore(cfg.BlobPath)
	}

	trainingUC := trainingusecase.NewInteractor(trainingservice.NewSessionService(clk, ids, store, projector))
	formatter := format.New(cfg.Locale)
	reportUC := reportusecase.NewInteractor(reportservice.NewExportService(
		clk,
		reportoutadapter.NewTrainingSummaryAdapter(trainingUC),
		reportoutadapter.NewFileNoteStore(cfg.ReportDir),
		formatter,
	))

	log.WithFields(log.Fields{
		"backend":  cfg.Backend,
		"location": store.Location(),
	}).Debug("skidlogg ready")

	return &App{
		TrainingCLI: traininginadapter.NewCLIHandler(trainingUC),
		ReportCLI:   reportinadapter.NewCLIHandler(reportUC),
		Formatter:   formatter,
		Clock:       clk,
		cfg:         cfg,
		db:          db,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// RunTUI blocks until the user quits. The blob file is watched for
// external edits when the file backend is active and watching is enabled.
func RunTUI(app *App) (err error) {
	var changes <-chan struct{}
	if app.cfg.Watch && app.cfg.Backend == config.BackendFile {
		watcher, watchErr := trainingoutadapter.NewFileBlobWatcher(app.cfg.BlobPath, watchDebounce)
		if watchErr != nil {
			log.WithError(watchErr).Warn("blob watcher disabled")
		} else {
			defer func() { err = multierr.Append(err, watcher.Close()) }()
			changes = watcher.Changes()
		}
	}

	model := uiapp.NewModel(app.TrainingCLI, app.ReportCLI, changes, app.Formatter, app.Clock)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
