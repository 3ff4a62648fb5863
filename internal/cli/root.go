// Package cli implements the leavectl command tree. Commands are thin:
// they parse flags, drive the intake/upload/export packages and print
// results; every failure path returns control to the shell with a
// human-readable message, never a panic.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hrmstack/leavectl/internal/config"
	"github.com/hrmstack/leavectl/internal/hrms"
	"github.com/hrmstack/leavectl/internal/session"
	"github.com/hrmstack/leavectl/internal/store"
	"github.com/hrmstack/leavectl/internal/upload"
	"github.com/hrmstack/leavectl/pkg/logging"
)

// App carries the wired dependencies for one CLI invocation
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	session  *session.Store
	api      *hrms.Client
	db       *store.DB
	drafts   *store.DraftRepository
	history  *store.HistoryRepository
	uploader *upload.Coordinator
}

// Execute runs the leavectl command tree
func Execute() int {
	app := &App{}
	root := newRootCommand(app)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func newRootCommand(app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "leavectl",
		Short:         "HRMS leave intake and reporting client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(configPath)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.leavectl/config.yaml)")

	root.AddCommand(
		newLoginCommand(app),
		newLogoutCommand(app),
		newWhoamiCommand(app),
		newPasswdCommand(app),
		newLeaveCommand(app),
		newEmployeesCommand(app),
		newTeamsCommand(app),
		newDepartmentsCommand(app),
		newReportCommand(app),
		newDraftCommand(app),
		newHistoryCommand(app),
	)
	return root
}

// init wires the application: config, logger, session, API client, local
// store, upload coordinator.
func (a *App) init(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	a.session = session.NewStore(cfg.Session.TokenPath, time.Now, logger)

	a.api = hrms.NewClient(hrms.Config{
		BaseURL:           cfg.Backend.BaseURL,
		Timeout:           cfg.Backend.Timeout,
		RequestsPerSecond: cfg.Backend.RequestsPerSecond,
		Burst:             cfg.Backend.Burst,
	}, a.session, logger)

	db, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		return err
	}
	a.db = db
	a.drafts = store.NewDraftRepository(db, logger)
	a.history = store.NewHistoryRepository(db, logger)

	a.uploader = upload.NewCoordinator(upload.Config{
		UploadBaseURL: cfg.Upload.BaseURL,
		Folder:        cfg.Upload.Folder,
		ResourceType:  cfg.Upload.ResourceType,
		Timeout:       cfg.Upload.Timeout,
	}, a.api, logger)

	return nil
}

func (a *App) close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.logger != nil {
		a.logger.Sync()
	}
}
