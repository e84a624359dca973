package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/momentum-screener/internal/api"
	"github.com/wonny/momentum-screener/internal/api/handlers"
	"github.com/wonny/momentum-screener/internal/audit"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `저장된 상태 파일을 읽기 전용으로 제공하는 REST API 서버를 시작합니다.

Endpoints:
  GET  /health                 - Health check
  GET  /api/snapshot           - 최신 스냅샷
  GET  /api/ranks              - 직전 순위 인덱스
  GET  /api/history            - 히스토리 원장
  GET  /api/history/{ticker}   - 종목별 순위 추이
  GET  /api/audit              - top-N 회전율/지속성

Example:
  go run ./cmd/screener api
  go run ./cmd/screener api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Momentum Screener API Server ===")

	d, err := bootstrap()
	if err != nil {
		return err
	}

	// Override port if flag is set
	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	d.log.WithFields(map[string]interface{}{
		"port":      d.cfg.Port,
		"env":       d.cfg.Env,
		"state_dir": d.cfg.State.Dir,
	}).Info("Initializing API server")

	screenerHandler := handlers.NewScreenerHandler(d.store, audit.NewAnalyzer(d.log), d.log)
	router := api.NewRouter(screenerHandler, d.log)
	server := api.New(d.cfg, d.log, router)

	// Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Fprintf(out, "\n✅ Server running on http://localhost:%s\n", d.cfg.Port)
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-quit:
	}

	d.log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	d.log.Info("Server stopped")
	return nil
}
