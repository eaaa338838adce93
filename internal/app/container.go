// Package app provides the dependency injection container for the application.
package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runoshun/worklog/internal/domain"
	"github.com/runoshun/worklog/internal/infra/api"
	"github.com/runoshun/worklog/internal/infra/config"
	"github.com/runoshun/worklog/internal/infra/localstore"
	"github.com/runoshun/worklog/internal/infra/logging"
	"github.com/runoshun/worklog/internal/usecase"
)

// Config holds the resolved application paths.
type Config struct {
	ConfigPath string // File given by --config, empty for the global file only
	StateDir   string // Directory holding state.json and logs
	StatePath  string // Path to state.json
}

// newConfig resolves paths from the loaded configuration.
func newConfig(configPath string, appConfig *domain.Config) Config {
	stateDir := appConfig.State.Dir
	if stateDir == "" {
		stateDir = defaultStateDir()
	}
	return Config{
		ConfigPath: configPath,
		StateDir:   stateDir,
		StatePath:  domain.StatePath(stateDir),
	}
}

// defaultStateDir returns $XDG_STATE_HOME/worklog or ~/.local/state/worklog.
func defaultStateDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return domain.DefaultStateDir(stateHome)
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks         domain.TaskRepository
	Catalog       domain.CatalogRepository
	Notes         domain.NoteRepository
	Batch         domain.BatchReorderer // nil unless api.batch_reorder is set
	State         domain.LocalStateStore
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Logger        domain.Logger

	// Pointer fields
	AppConfig *domain.Config

	// Configuration
	Config Config
}

// New loads the configuration and wires the backend client, the local state
// store and the logger. A missing api.base_url does not fail construction;
// backend calls fail with domain.ErrNoBaseURL instead, so config commands
// keep working.
func New(configPath string, stderr io.Writer) (*Container, error) {
	configLoader := config.NewLoader(configPath)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}
	cfg := newConfig(configPath, appConfig)

	level := logging.ParseLevel(appConfig.Log.Level)
	mirror := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: max(level, slog.LevelWarn),
	}))
	logger := logging.New(cfg.StateDir, level).WithMirror(mirror)

	c := &Container{
		State:         localstore.New(cfg.StatePath),
		Clock:         domain.RealClock{},
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(),
		Logger:        logger,
		AppConfig:     appConfig,
		Config:        cfg,
	}

	client, err := api.New(api.Config{
		BaseURL: appConfig.API.BaseURL,
		Token:   appConfig.API.Token,
		Timeout: appConfig.API.Timeout,
		Retries: appConfig.API.Retries,
		Logger:  mirror,
	})
	if err != nil {
		logger.Debug("app", "backend not configured: "+err.Error())
		c.bindBackend(unconfiguredBackend{err: err}, appConfig.API.BatchReorder)
		return c, nil
	}
	c.bindBackend(client, appConfig.API.BatchReorder)
	return c, nil
}

// backend is everything the API client provides.
type backend interface {
	domain.TaskRepository
	domain.CatalogRepository
	domain.NoteRepository
	domain.BatchReorderer
}

func (c *Container) bindBackend(b backend, batch bool) {
	c.Tasks = b
	c.Catalog = b
	c.Notes = b
	if batch {
		c.Batch = b
	}
}

// Deps holds the ports a test container is built from. Nil Clock and Logger
// fall back to the real clock and a discarding logger.
type Deps struct {
	Tasks         domain.TaskRepository
	Catalog       domain.CatalogRepository
	Notes         domain.NoteRepository
	Batch         domain.BatchReorderer
	State         domain.LocalStateStore
	Clock         domain.Clock
	ConfigManager domain.ConfigManager
	Logger        domain.Logger
	AppConfig     *domain.Config
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, deps Deps) *Container {
	if deps.Clock == nil {
		deps.Clock = domain.RealClock{}
	}
	if deps.Logger == nil {
		deps.Logger = domain.NopLogger{}
	}
	if deps.AppConfig == nil {
		deps.AppConfig = domain.NewDefaultConfig()
	}
	return &Container{
		Tasks:         deps.Tasks,
		Catalog:       deps.Catalog,
		Notes:         deps.Notes,
		Batch:         deps.Batch,
		State:         deps.State,
		Clock:         deps.Clock,
		ConfigManager: deps.ConfigManager,
		Logger:        deps.Logger,
		AppConfig:     deps.AppConfig,
		Config:        cfg,
	}
}

// Close releases the log file.
func (c *Container) Close() error {
	if l, ok := c.Logger.(*logging.Logger); ok {
		return l.Close()
	}
	return nil
}

func (c *Container) breakName() string {
	return c.AppConfig.Categories.BreakName
}

// UseCase factory methods

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks, c.Catalog, c.breakName(), c.Logger)
}

// CreateTaskUseCase returns a new CreateTask use case.
func (c *Container) CreateTaskUseCase() *usecase.CreateTask {
	return usecase.NewCreateTask(c.Tasks, c.Clock, c.Logger)
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.Tasks, c.Logger)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks, c.State, c.Logger)
}

// ShowSummaryUseCase returns a new ShowSummary use case.
func (c *Container) ShowSummaryUseCase() *usecase.ShowSummary {
	return usecase.NewShowSummary(c.Tasks, c.Catalog, c.State, c.AppConfig, c.Clock, c.Logger)
}

// ShowWeekUseCase returns a new ShowWeek use case.
func (c *Container) ShowWeekUseCase() *usecase.ShowWeek {
	return usecase.NewShowWeek(c.Tasks, c.Catalog, c.breakName(), c.Clock, c.Logger)
}

// ListGoalsUseCase returns a new ListGoals use case.
func (c *Container) ListGoalsUseCase() *usecase.ListGoals {
	return usecase.NewListGoals(c.Catalog, c.State, c.AppConfig, c.Logger)
}

// SetGoalUseCase returns a new SetGoal use case.
func (c *Container) SetGoalUseCase() *usecase.SetGoal {
	return usecase.NewSetGoal(c.Catalog, c.State, c.Logger)
}

// SyncGoalsUseCase returns a new SyncGoals use case.
func (c *Container) SyncGoalsUseCase() *usecase.SyncGoals {
	return usecase.NewSyncGoals(c.Catalog, c.State, c.AppConfig, c.Logger)
}

// ReorderTasksUseCase returns a new ReorderTasks use case.
func (c *Container) ReorderTasksUseCase() *usecase.ReorderTasks {
	return usecase.NewReorderTasks(c.Tasks, c.Batch, c.Logger)
}

// MoveTaskStatusUseCase returns a new MoveTaskStatus use case.
func (c *Container) MoveTaskStatusUseCase() *usecase.MoveTaskStatus {
	return usecase.NewMoveTaskStatus(c.Tasks, c.Logger)
}

// StartTimerUseCase returns a new StartTimer use case.
func (c *Container) StartTimerUseCase() *usecase.StartTimer {
	return usecase.NewStartTimer(c.Tasks, c.State, c.Clock, c.Logger)
}

// TickTimerUseCase returns a new TickTimer use case.
func (c *Container) TickTimerUseCase() *usecase.TickTimer {
	return usecase.NewTickTimer(c.Tasks, c.State, c.Clock, c.Logger)
}

// StopTimerUseCase returns a new StopTimer use case.
func (c *Container) StopTimerUseCase() *usecase.StopTimer {
	return usecase.NewStopTimer(c.Tasks, c.State, c.Clock, c.Logger)
}

// TimerStatusUseCase returns a new TimerStatus use case.
func (c *Container) TimerStatusUseCase() *usecase.TimerStatus {
	return usecase.NewTimerStatus(c.Tasks, c.State, c.Clock, c.Logger)
}

// ShowNoteUseCase returns a new ShowNote use case.
func (c *Container) ShowNoteUseCase() *usecase.ShowNote {
	return usecase.NewShowNote(c.Notes, c.Clock)
}

// SaveNoteUseCase returns a new SaveNote use case.
func (c *Container) SaveNoteUseCase() *usecase.SaveNote {
	return usecase.NewSaveNote(c.Notes, c.Clock, c.Logger)
}

// ShowCatalogUseCase returns a new ShowCatalog use case.
func (c *Container) ShowCatalogUseCase() *usecase.ShowCatalog {
	return usecase.NewShowCatalog(c.Catalog, c.breakName())
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.AppConfig)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
