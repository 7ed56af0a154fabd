package main

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	appmodules "backoffice/app"
	"backoffice/app/jobs"
	"backoffice/app/search"
	"backoffice/core/config"
	"backoffice/core/database"
	"backoffice/core/email"
	"backoffice/core/emitter"
	"backoffice/core/logger"
	"backoffice/core/metrics"
	"backoffice/core/module"
	"backoffice/core/router"
	"backoffice/core/router/middleware"
	"backoffice/core/scheduler"
	"backoffice/core/storage"
	"backoffice/core/websocket"

	"github.com/joho/godotenv"
)

// @title Back Office API
// @description Multi-tenant commerce back office: cross-entity search, history and suggestions
// @version 1.0.0
// @BasePath /api
// @schemes http https
// @accept json
// @produce json
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your token with the prefix "Bearer "

// App represents the application with simplified initialization
type App struct {
	config      *config.Config
	db          *database.Database
	router      *router.Router
	logger      logger.Logger
	emitter     *emitter.Emitter
	storage     *storage.ActiveStorage
	emailSender email.Sender
	metrics     *metrics.Metrics
	wsHub       *websocket.Hub
	scheduler   *scheduler.CronScheduler

	running bool
	verbose bool
}

// New creates a new application instance
func New() *App {
	verbose := false
	for _, arg := range os.Args {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
			break
		}
	}
	return &App{verbose: verbose}
}

// Start initializes and starts the application
func (app *App) Start() error {
	return app.
		loadEnvironment().
		initConfig().
		initLogger().
		initDatabase().
		initInfrastructure().
		initRouter().
		registerModules().
		startScheduler().
		setupRoutes().
		displayServerInfo().
		run()
}

func (app *App) loadEnvironment() *App {
	if err := godotenv.Load(); err != nil {
		// Non-fatal - continue without .env file
	}
	return app
}

func (app *App) initConfig() *App {
	app.config = config.NewConfig()
	return app
}

func (app *App) initLogger() *App {
	logConfig := logger.Config{
		Environment: app.config.Env,
		LogPath:     "logs",
		Level:       "debug",
	}

	log, err := logger.NewLogger(logConfig)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	app.logger = log
	return app
}

func (app *App) initDatabase() *App {
	db, err := database.InitDB(app.config)
	if err != nil {
		app.logger.Error("Failed to initialize database", logger.String("error", err.Error()))
		panic(fmt.Sprintf("Database initialization failed: %v", err))
	}

	app.db = db

	if app.verbose {
		app.logger.Info("Database connected", logger.String("driver", app.config.DBDriver))
	}
	return app
}

func (app *App) initInfrastructure() *App {
	app.emitter = emitter.New()

	storageConfig := storage.Config{
		Provider:  app.config.StorageProvider,
		Path:      app.config.StoragePath,
		BaseURL:   app.config.StorageBaseURL,
		APIKey:    app.config.StorageAPIKey,
		APISecret: app.config.StorageAPISecret,
		Endpoint:  app.config.StorageEndpoint,
		Bucket:    app.config.StorageBucket,
		Region:    app.config.StorageRegion,
	}

	activeStorage, err := storage.NewActiveStorage(app.db.DB, storageConfig)
	if err != nil {
		app.logger.Error("Failed to initialize storage", logger.String("error", err.Error()))
		panic(fmt.Sprintf("Storage initialization failed: %v", err))
	}
	app.storage = activeStorage

	emailSender, err := email.NewSender(app.config, app.logger)
	if err != nil {
		app.logger.Warn("Email sender unavailable", logger.String("error", err.Error()))
		app.emailSender = nil
	} else {
		app.emailSender = emailSender
	}

	if app.config.MetricsEnabled {
		app.metrics = metrics.New()
	}
	return app
}

func (app *App) initRouter() *App {
	app.router = router.New()

	app.router.Use(middleware.Recovery(app.logger))
	app.router.Use(middleware.RequestID())
	if app.metrics != nil {
		app.router.Use(app.metrics.Middleware())
	}
	if app.config.CORSEnabled {
		app.router.Use(middleware.CORS(app.config.CORSOrigins))
	}

	// Request logging
	app.router.Use(func(next router.HandlerFunc) router.HandlerFunc {
		return func(c *router.Context) error {
			start := time.Now()
			err := next(c)

			app.logger.Info("Request",
				logger.String("method", c.Request.Method),
				logger.String("path", c.Request.URL.Path),
				logger.Int("status", c.Writer.Status()),
				logger.Duration("duration", time.Since(start)),
				logger.String("ip", c.ClientIP()),
			)
			return err
		}
	})

	app.router.Static("/storage", "./storage")
	app.initWebSocket()

	if app.verbose {
		app.logger.Info("Router and middleware initialized")
	}
	return app
}

func (app *App) initWebSocket() {
	if !app.config.WebSocketEnabled {
		return
	}

	app.wsHub = websocket.InitWebSocketModule(app.router.Group("/api"), app.logger)

	// Bridge search events onto the hub for live back-office activity
	app.emitter.On(search.SearchExecutedEvent, func(data any) {
		app.wsHub.Broadcast(search.SearchExecutedEvent, data)
	})
	app.emitter.On(search.HistoryCreatedEvent, func(data any) {
		app.wsHub.Broadcast(search.HistoryCreatedEvent, data)
	})
}

func (app *App) registerModules() *App {
	apiGroup := app.router.Group("/api")
	apiGroup.Use(middleware.Auth(app.config.JWTSecret))

	deps := module.Dependencies{
		DB:          app.db.DB,
		Router:      apiGroup,
		Logger:      app.logger,
		Emitter:     app.emitter,
		Storage:     app.storage,
		EmailSender: app.emailSender,
		Metrics:     app.metrics,
		Config:      app.config,
	}

	provider := appmodules.NewAppModules()
	modules := provider.GetAppModules(deps)

	initializer := module.NewInitializer(app.logger)
	initialized := initializer.Initialize(modules, deps)

	if app.verbose {
		app.logger.Info("Modules initialized",
			logger.Int("total", len(modules)),
			logger.Int("initialized", len(initialized)))
	}
	return app
}

func (app *App) startScheduler() *App {
	searchService := search.NewSearchService(app.db.DB, app.emitter, app.storage, app.logger, app.metrics)
	app.scheduler = jobs.SetupScheduler(searchService, app.emailSender, app.config, app.logger)
	app.scheduler.Start()
	return app
}

func (app *App) setupRoutes() *App {
	app.router.GET("/health", func(c *router.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"version": app.config.Version,
		})
	})

	if app.metrics != nil {
		metricsHandler := app.metrics.Handler()
		app.router.GET("/metrics", func(c *router.Context) error {
			metricsHandler.ServeHTTP(c.Writer, c.Request)
			return nil
		})
	}

	app.router.GET("/", func(c *router.Context) error {
		return c.JSON(200, map[string]any{
			"message": "pong",
			"version": app.config.Version,
		})
	})
	return app
}

func (app *App) displayServerInfo() *App {
	localIP := app.getLocalIP()
	port := app.config.ServerPort

	fmt.Printf("\n\033[1;32mBack Office Ready!\033[0m\n\n")
	fmt.Printf("\033[36mServer URLs:\033[0m\n")
	fmt.Printf("  Local:   http://localhost%s\n", port)
	fmt.Printf("  Network: http://%s%s\n\n", localIP, port)

	return app
}

func (app *App) getLocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "localhost"
	}

	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	return "localhost"
}

func (app *App) run() error {
	app.running = true
	port := app.config.ServerPort

	if app.verbose {
		app.logger.Info("Server starting", logger.String("port", port))
	}

	err := app.router.Run(port)
	if err != nil {
		if strings.Contains(err.Error(), "bind: address already in use") {
			app.logger.Error("Server failed to start - Port already in use",
				logger.String("port", port),
				logger.String("error", err.Error()))
			return fmt.Errorf("port %s is already in use; stop the other server or change SERVER_PORT", port)
		}
		app.logger.Error("Server failed to start", logger.String("error", err.Error()))
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

// Stop shuts the application down
func (app *App) Stop() error {
	if !app.running {
		return nil
	}

	app.logger.Info("Shutting down gracefully...")
	if app.scheduler != nil {
		app.scheduler.Stop()
	}
	app.running = false
	return nil
}

func main() {
	app := New()

	if err := app.Start(); err != nil {
		fmt.Printf("\n\033[31mApplication failed to start:\033[0m\n%v\n\n", err)
		os.Exit(1)
	}
}
