package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/imyashkale/kmsdash/internal/config"
	"github.com/imyashkale/kmsdash/internal/database"
	"github.com/imyashkale/kmsdash/internal/handlers"
	"github.com/imyashkale/kmsdash/internal/logger"
	"github.com/imyashkale/kmsdash/internal/metrics"
	"github.com/imyashkale/kmsdash/internal/repository"
	"github.com/imyashkale/kmsdash/internal/router"
	"github.com/imyashkale/kmsdash/internal/services"
	"github.com/imyashkale/kmsdash/internal/sink"
	"github.com/imyashkale/kmsdash/internal/state"
	"github.com/imyashkale/kmsdash/internal/supervisor"
)

func main() {

	// Load application configuration
	cfg := config.New()
	log.Println("Configuration loaded successfully")

	// Initialize structured logging
	logger.Init(cfg.GetLogLevel())

	// Shared log sink: the KMS server writes into it, the dashboard tails it
	logSink := sink.New(cfg.GetLogPath())

	// Advertised server configuration
	store := state.New(cfg.GetKMSBindIP(), cfg.GetKMSPort(), logSink)
	log.Println("Configuration store initialized")

	// Product database loader with change invalidation
	loader := database.NewLoader(cfg.GetDatabasePath())
	if err := loader.Watch(); err != nil {
		logger.WithField("error", err.Error()).Warn("Product database watch unavailable")
	}

	productDB := repository.NewProductDatabase(loader)
	catalog := services.NewCatalogService(productDB)
	log.Println("Product catalog initialized")

	// Initialize metrics collector
	collector := metrics.NewCollector()

	// Supervise the KMS server child process
	sup := supervisor.New(cfg.GetKMSBin(), cfg.ServerArgs(), cfg.GetKMSDir(), logSink)
	sup.OnStateChange(func(st supervisor.State) {
		store.SetStatus(st.Status())
		collector.ObserveProcessState(st)
	})

	if err := sup.Start(); err != nil {
		// The dashboard stays up even when the KMS server cannot start
		logger.WithField("error", err.Error()).Error("KMS server failed to start, continuing without it")
	} else {
		log.Printf("KMS server started with PID: %d", sup.PID())
		log.Printf("Logs will be written to: %s", cfg.GetLogPath())

		// Give server time to start
		time.Sleep(supervisor.StartupGrace)
	}

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(store, catalog, logSink, collector)
	logHandler := handlers.NewLogHandler(logSink, collector)
	configHandler := handlers.NewConfigHandler(store, collector)
	commandHandler := handlers.NewCommandHandler(logSink, collector)
	productHandler := handlers.NewProductHandler(store, catalog, collector)
	serverHandler := handlers.NewServerHandler(sup, store)
	healthHandler := handlers.NewHealthHandler(sup)
	log.Println("Handlers initialized")

	// Setup router
	r := router.Setup(
		dashboardHandler,
		logHandler,
		configHandler,
		commandHandler,
		productHandler,
		serverHandler,
		healthHandler,
		collector,
	)

	// Setup graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down server gracefully...")

		if err := sup.Stop(); err != nil {
			logger.WithField("error", err.Error()).Error("Failed to stop KMS server")
		}
		loader.Close()

		os.Exit(0)
	}()

	// Open the dashboard in the local browser once the server is up
	if cfg.OpenBrowser {
		go func() {
			time.Sleep(2 * time.Second)
			if err := openBrowser("http://localhost:" + cfg.GetPort()); err != nil {
				logger.WithField("error", err.Error()).Warn("Could not auto-open browser")
			}
		}()
	}

	// Start server
	log.Printf("Starting dashboard on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// openBrowser opens a URL in the default browser (platform-specific)
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("no browser opener for %s", runtime.GOOS)
	}

	return cmd.Start()
}
