package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mautops/remotework-gin/internal/api"
	"github.com/mautops/remotework-gin/internal/config"
	"github.com/mautops/remotework-gin/internal/container"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the Remotework Gin API server.
The server listens on the configured host and port, serves the REST API
under /api/v1, pushes notifications over /ws/notifications, and reloads
the workflow policy when the config file changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, configPath, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("host") {
			cfg.Server.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}

		logger := newLogger(cfg)
		if config.IsProduction(cfg) {
			gin.SetMode(gin.ReleaseMode)
		}

		var tracing *api.Tracing
		if cfg.Tracing.Enabled {
			tracing, err = api.InitTracing(api.ServiceName, cfg.Tracing.JaegerEndpoint)
			if err != nil {
				logger.WithError(err).Warn("Failed to initialize tracing")
				cfg.Tracing.Enabled = false
			}
		}

		ctr, err := container.NewContainer(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		ctr.StartCollector()

		// 配置文件变化时热更新审批策略
		if configPath != "" {
			watcher := config.NewConfigWatcher(cfg, configPath, logger)
			watcher.OnConfigChange(func(newCfg *config.Config) {
				ctr.ApplyWorkflowConfig(newCfg.Workflow)
			})
			if err := watcher.Start(); err != nil {
				logger.WithError(err).Warn("Failed to watch config file")
			} else {
				defer watcher.Stop()
			}
		}

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:              addr,
			Handler:           ctr.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.WithField("addr", addr).Info("Server starting")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
		case err := <-errCh:
			return fmt.Errorf("failed to start server: %w", err)
		}

		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Error("Server forced to shutdown")
		}
		if err := tracing.Shutdown(ctx); err != nil {
			logger.WithError(err).Warn("Failed to flush traces")
		}

		logger.Info("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().String("host", "0.0.0.0", "Server host")
	serverCmd.Flags().Int("port", 8080, "Server port")
}
