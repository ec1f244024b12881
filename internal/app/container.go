// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kanban-board/kanban/internal/domain"
	"github.com/kanban-board/kanban/internal/infra/config"
	"github.com/kanban-board/kanban/internal/infra/gemini"
	"github.com/kanban-board/kanban/internal/infra/jsonstore"
	"github.com/kanban-board/kanban/internal/infra/logging"
	"github.com/kanban-board/kanban/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	ProjectRoot string // Directory containing .kanban (or the working directory)
	KanbanDir   string // Path to the .kanban directory
	StorePath   string // Path to board.json
}

// newConfig derives the paths for a project root.
func newConfig(root string) Config {
	kanbanDir := domain.ProjectKanbanDir(root)
	return Config{
		ProjectRoot: root,
		KanbanDir:   kanbanDir,
		StorePath:   domain.StorePath(kanbanDir),
	}
}

// FindProjectRoot returns the nearest directory at or above dir that contains
// a .kanban directory. If there is none, dir itself is returned so that
// `kanban init` creates the board there.
func FindProjectRoot(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	for cur := abs; ; {
		if info, err := os.Stat(domain.ProjectKanbanDir(cur)); err == nil && info.IsDir() {
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return abs
		}
		cur = parent
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store            domain.BoardStore
	StoreInitializer domain.StoreInitializer
	Clock            domain.Clock
	IDs              domain.IDGenerator
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager
	BoardLogger      domain.Logger
	Assistant        domain.AIAssistant // nil when the assistant could not be created

	// Pointer fields
	Logger     *slog.Logger   // Process diagnostics on stderr
	fileLogger *logging.Logger // Closed by Close

	// Configuration
	Config Config
}

// New creates a new Container for the project containing dir.
func New(ctx context.Context, dir string) (*Container, error) {
	cfg := newConfig(FindProjectRoot(dir))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	// A .env file beside the project may hold the assistant's API key.
	// Variables already set in the environment win.
	if err := godotenv.Load(filepath.Join(cfg.ProjectRoot, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load .env", "error", err)
	}

	configLoader := config.NewLoader(cfg.KanbanDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err)
		appConfig = domain.NewDefaultConfig()
	}

	store := jsonstore.New(cfg.StorePath)
	fileLogger := logging.New(cfg.KanbanDir, logging.ParseLevel(appConfig.Log.Level))

	var assistant domain.AIAssistant
	gem, err := gemini.New(ctx, os.Getenv(appConfig.AI.APIKeyEnv), appConfig.AI.Model)
	if err != nil {
		logger.Warn("AI assistant unavailable", "error", err)
	} else {
		assistant = gem
	}

	return &Container{
		Store:            store,
		StoreInitializer: store,
		Clock:            domain.RealClock{},
		IDs:              domain.UUIDGenerator{},
		ConfigLoader:     configLoader,
		ConfigManager:    config.NewManager(cfg.KanbanDir),
		BoardLogger:      fileLogger,
		Assistant:        assistant,
		Logger:           logger,
		fileLogger:       fileLogger,
		Config:           cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, store domain.BoardStore, storeInit domain.StoreInitializer, clock domain.Clock, ids domain.IDGenerator, logger *slog.Logger) *Container {
	return &Container{
		Store:            store,
		StoreInitializer: storeInit,
		Clock:            clock,
		IDs:              ids,
		BoardLogger:      domain.NopLogger{},
		Logger:           logger,
		Config:           cfg,
	}
}

// Close releases open log files.
func (c *Container) Close() error {
	if c.fileLogger == nil {
		return nil
	}
	return c.fileLogger.Close()
}

// boardDeps bundles the ports shared by board use cases.
func (c *Container) boardDeps() usecase.BoardDeps {
	return usecase.BoardDeps{
		Store:  c.Store,
		Config: c.ConfigLoader,
		Clock:  c.Clock,
		IDs:    c.IDs,
		Logger: c.BoardLogger,
	}
}

// UseCase factory methods

// InitBoardUseCase returns a new InitBoard use case.
func (c *Container) InitBoardUseCase() *usecase.InitBoard {
	return usecase.NewInitBoard(c.StoreInitializer)
}

// ShowBoardUseCase returns a new ShowBoard use case.
func (c *Container) ShowBoardUseCase() *usecase.ShowBoard {
	return usecase.NewShowBoard(c.boardDeps())
}

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.boardDeps())
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.boardDeps())
}

// MoveTaskUseCase returns a new MoveTask use case.
func (c *Container) MoveTaskUseCase() *usecase.MoveTask {
	return usecase.NewMoveTask(c.boardDeps())
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.boardDeps())
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.boardDeps())
}

// CreateTasksFromFileUseCase returns a new CreateTasksFromFile use case.
func (c *Container) CreateTasksFromFileUseCase() *usecase.CreateTasksFromFile {
	return usecase.NewCreateTasksFromFile(c.boardDeps())
}

// AddColumnUseCase returns a new AddColumn use case.
func (c *Container) AddColumnUseCase() *usecase.AddColumn {
	return usecase.NewAddColumn(c.boardDeps())
}

// RenameColumnUseCase returns a new RenameColumn use case.
func (c *Container) RenameColumnUseCase() *usecase.RenameColumn {
	return usecase.NewRenameColumn(c.boardDeps())
}

// DeleteColumnUseCase returns a new DeleteColumn use case.
func (c *Container) DeleteColumnUseCase() *usecase.DeleteColumn {
	return usecase.NewDeleteColumn(c.boardDeps())
}

// MoveColumnUseCase returns a new MoveColumn use case.
func (c *Container) MoveColumnUseCase() *usecase.MoveColumn {
	return usecase.NewMoveColumn(c.boardDeps())
}

// ArchiveTaskUseCase returns a new ArchiveTask use case.
func (c *Container) ArchiveTaskUseCase() *usecase.ArchiveTask {
	return usecase.NewArchiveTask(c.boardDeps())
}

// RestoreTaskUseCase returns a new RestoreTask use case.
func (c *Container) RestoreTaskUseCase() *usecase.RestoreTask {
	return usecase.NewRestoreTask(c.boardDeps())
}

// PurgeArchivedTaskUseCase returns a new PurgeArchivedTask use case.
func (c *Container) PurgeArchivedTaskUseCase() *usecase.PurgeArchivedTask {
	return usecase.NewPurgeArchivedTask(c.boardDeps())
}

// GenerateSubtasksUseCase returns a new GenerateSubtasks use case.
func (c *Container) GenerateSubtasksUseCase() *usecase.GenerateSubtasks {
	return usecase.NewGenerateSubtasks(c.Assistant, c.boardDeps())
}

// SuggestPriorityUseCase returns a new SuggestPriority use case.
func (c *Container) SuggestPriorityUseCase() *usecase.SuggestPriority {
	return usecase.NewSuggestPriority(c.Assistant, c.boardDeps())
}

// GenerateDescriptionUseCase returns a new GenerateDescription use case.
func (c *Container) GenerateDescriptionUseCase() *usecase.GenerateDescription {
	return usecase.NewGenerateDescription(c.Assistant, c.boardDeps())
}

// SuggestTagsUseCase returns a new SuggestTags use case.
func (c *Container) SuggestTagsUseCase() *usecase.SuggestTags {
	return usecase.NewSuggestTags(c.Assistant, c.boardDeps())
}

// ProjectInsightUseCase returns a new ProjectInsight use case.
func (c *Container) ProjectInsightUseCase() *usecase.ProjectInsight {
	return usecase.NewProjectInsight(c.Assistant, c.boardDeps())
}

// BoardStatsUseCase returns a new BoardStats use case.
func (c *Container) BoardStatsUseCase() *usecase.BoardStats {
	return usecase.NewBoardStats(c.boardDeps())
}

// ExportBoardUseCase returns a new ExportBoard use case.
func (c *Container) ExportBoardUseCase() *usecase.ExportBoard {
	return usecase.NewExportBoard(c.boardDeps())
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
