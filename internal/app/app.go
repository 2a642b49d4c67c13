package app

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"elelem/backend/internal/api"
	"elelem/backend/internal/config"
	"elelem/backend/internal/database"
	"elelem/backend/internal/llm"
	"elelem/backend/internal/repository"
	"elelem/backend/internal/service"
)

// App holds the composed application: the open database handle and the
// configured HTTP server. The generator client is constructed here, once,
// and passed down explicitly; nothing holds it as a process-wide global.
type App struct {
	DB     *sql.DB
	Server *http.Server
}

// NewApp builds the dependency graph from configuration.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	repo := repository.NewSQLiteRepository(db)
	provider := newProvider(cfg)

	userService := service.NewUserService(repo, []byte(cfg.JWTSecret), time.Duration(cfg.TokenTTLHours)*time.Hour)
	chatService := service.NewChatService(repo, provider, cfg.SystemPrompt)
	queryService := service.NewQueryService(repo, provider, cfg.SystemPrompt)

	authHandler := api.NewAuthHandler(userService)
	chatHandler := api.NewChatHandler(chatService)
	queryHandler := api.NewQueryHandler(queryService)
	router := api.NewRouter(authHandler, chatHandler, queryHandler, userService, cfg.Origins())

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for the streaming endpoint
		IdleTimeout:       120 * time.Second,
	}

	return &App{DB: db, Server: server}, nil
}

// newProvider selects the generator backend. Every supported provider speaks
// the OpenAI-compatible API; the choice only determines the default base URL.
func newProvider(cfg *config.Config) llm.Provider {
	baseURL := cfg.LLMBaseURL
	if baseURL == "" {
		switch strings.ToLower(cfg.LLMProvider) {
		case "deepseek":
			baseURL = "https://api.deepseek.com/v1"
		case "gemini":
			baseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
		default:
			// go-openai's own default base URL.
		}
	}
	return llm.NewOpenAIProvider(cfg.LLMAPIKey, baseURL, cfg.LLMModel)
}

// Run is the process entrypoint behind main: load config, compose, serve.
func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer func() {
		if err := app.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()
	slog.Info("Successfully connected to SQLite database.")

	slog.Info("Starting server", "port", cfg.AppPort)
	if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	if file := viper.ConfigFileUsed(); file != "" {
		slog.Info("Successfully loaded configuration from file.", "file", file)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
