package cmd

import (
	"fmt"
	"os"

	"github.com/mautops/remotework-gin/internal/api"
	"github.com/mautops/remotework-gin/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "remotework-gin",
	Short: "Remote work application and approval service",
	Long: `Remotework Gin is a REST API server for remote work requests.
Employees submit requests for a day or part of a day, approvers
approve or deny them, and requesters are notified of the outcome.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: search ./config.yaml, ./config, $HOME/.remotework-gin)")
}

// GetRootCmd 返回根命令(用于测试)
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// loadConfig 读取 --config 指定的配置
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, configPath, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, configPath, nil
}

// newLogger 根据配置创建日志记录器,配置无效时回退到默认 JSON 日志
func newLogger(cfg *config.Config) *logrus.Logger {
	logger, err := api.NewLoggerFromConfig(&cfg.Log)
	if err != nil {
		logger = api.NewLogger()
		logger.WithError(err).Warn("Failed to apply log config, using defaults")
	}
	return logger
}
