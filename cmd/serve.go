package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdshowcase/gd-showcase/api/core"
	"github.com/gdshowcase/gd-showcase/config"
	"github.com/gdshowcase/gd-showcase/database"
	"github.com/gdshowcase/gd-showcase/database/repo/levels"
	"github.com/gdshowcase/gd-showcase/internal/services/auth"
	"github.com/gdshowcase/gd-showcase/storage"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the showcase HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer() {
	config.InitConfig()
	cfg := config.Get()

	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatalf("Fatal error: failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Fatal error: failed to migrate database: %v", err)
	}

	factory, err := storage.NewFactory(cfg)
	if err != nil {
		log.Fatalf("Fatal error: failed to initialize storage: %v", err)
	}
	provider := factory.GetDefault()
	log.Printf("Using storage provider: %s", provider.Name())

	gate, err := auth.NewGateService(cfg)
	if err != nil {
		log.Fatalf("Fatal error: failed to initialize gate service: %v", err)
	}
	if cfg.ModeratorSecret == "" {
		log.Println("Warning: moderator_secret is not set, the moderation dashboard cannot be unlocked")
	}

	router, stopLimiters := core.NewRouter(core.Dependencies{
		Repo:    levels.NewRepository(db),
		Storage: provider,
		Gate:    gate,
	})
	defer stopLimiters()
	server := core.NewServer(router)

	go func() {
		log.Printf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Fatal error: server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Warning: forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
