package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/kumul-digital/capdash/backend/pkg/config"
	"github.com/kumul-digital/capdash/backend/pkg/database"
	"github.com/kumul-digital/capdash/backend/pkg/httputil"
	"github.com/kumul-digital/capdash/backend/pkg/logger"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check API server and database health",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	// API server
	client := httputil.NewWithTimeout(cfg, log, 5*time.Second)
	url := fmt.Sprintf("http://localhost:%s/health", cfg.Port)

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, url)
	if err != nil {
		fmt.Printf("API server:  down (%v)\n", err)
	} else {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			fmt.Printf("API server:  ok %s\n", string(body))
		} else {
			fmt.Printf("API server:  status %d\n", resp.StatusCode)
		}
	}

	// Database
	db, err := database.New(cfg)
	if err != nil {
		fmt.Printf("Database:    down (%v)\n", err)
		return nil
	}
	defer db.Close()

	health, err := db.HealthCheck(ctx)
	if err != nil {
		fmt.Printf("Database:    unhealthy (%s)\n", health.Error)
		return nil
	}
	fmt.Printf("Database:    ok (ping %s)\n", health.ResponseTime)
	fmt.Printf("Pool:        %d/%d connections in use\n", health.Stats.AcquiredConns, health.Stats.TotalConns)

	return nil
}
