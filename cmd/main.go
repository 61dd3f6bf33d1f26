package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mission_awareness/docs"
	"mission_awareness/internal/handlers"
	"mission_awareness/internal/logger"
	"mission_awareness/internal/observability"
	"mission_awareness/internal/server"
	"mission_awareness/internal/service"

	"github.com/spf13/viper"
)

const (
	defaultPort           = "8000"
	defaultServiceName    = "mas-imaging-window-builder"
	defaultServiceVersion = "1.0.0"
	defaultReportInterval = 60 * time.Second
)

// @title           Planet Labs Mission Awareness Service
// @version         1.0.0
// @description     Imaging Window Builder API for SkySat constellation management
// @BasePath        /
func main() {
	// load config.yml
	cfgErr := loadConfig()

	// init logger; level and format come from config, defaults apply when unset
	log := logger.Get(viper.GetString("log.level"), viper.GetString("log.format"))
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	// service identity for health, stats, and swagger
	info := serviceInfo()
	if title := viper.GetString("service.title"); title != "" {
		docs.SwaggerInfo.Title = title
	}
	docs.SwaggerInfo.Version = info.Version

	// wire dependencies
	metrics, err := observability.NewCollector(nil)
	if err != nil {
		log.Fatalw("failed to register metrics", "err", err)
	}
	services := service.NewService(info, log, metrics)
	apiHandler := handlers.NewHandler(services, log, metrics)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start usage reporter (via composed service)
	go services.Reporter.Run(ctx, reportInterval())

	// start HTTP server
	port := listenPort()
	srv := server.New(port, apiHandler.InitRoutes())
	runHTTPServer(srv, log)
	logStartup(log, info, port)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// serviceInfo reads the service identity from config, falling back to
// built-in defaults.
func serviceInfo() service.Info {
	info := service.Info{
		Name:    viper.GetString("service.name"),
		Version: viper.GetString("service.version"),
	}
	if info.Name == "" {
		info.Name = defaultServiceName
	}
	if info.Version == "" {
		info.Version = defaultServiceVersion
	}
	return info
}

func listenPort() string {
	if port := viper.GetString("port"); port != "" {
		return port
	}
	return defaultPort
}

func reportInterval() time.Duration {
	if d := viper.GetDuration("reporter.interval"); d > 0 {
		return d
	}
	return defaultReportInterval
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// logStartup announces the listen address and the available endpoints.
func logStartup(log *logger.Logger, info service.Info, port string) {
	log.Infow("service started",
		"service", info.Name,
		"version", info.Version,
		"port", port,
		"docs", "/swagger/index.html",
	)
	log.Infow("available endpoints",
		"chronological", "POST /imaging-windows/chronological",
		"streaming", "POST /imaging-windows/streaming",
		"stats", "GET /imaging-windows/stats",
		"ws", "GET /ws",
	)
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
