package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	configName = ".siteprobe"
	envPrefix  = "SITEPROBE"
	dotEnvFile = ".env"
)

var cfgFile string
var logger *zap.SugaredLogger = zap.NewNop().Sugar()

var rootCmd = &cobra.Command{
	Use:   "siteprobe",
	Short: "Website analysis toolkit: DNS, WHOIS, SSL, headers, security and performance",
	Long: `siteprobe analyzes a website from six angles: DNS records, WHOIS
registration data, SSL certificate, HTTP security headers, a basic security
score and response performance.

Run "siteprobe serve" to start the analysis API, then use the check commands
(or "siteprobe all") to query it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		applyConfigDefaults(cmd)

		l, err := newLogger(cliConfig.Log.Development)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l.Sugar()
		logger.Debugf("config=%s api_url=%s", configSource(), cliConfig.Client.APIURL)
		return nil
	},
}

// initConfig loads .env (local development only), then the config file, then
// SITEPROBE_* environment overrides.
func initConfig() error {
	if _, err := os.Stat(dotEnvFile); err == nil {
		if err := godotenv.Load(dotEnvFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", dotEnvFile, err)
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit --config must exist; the default file is optional.
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

func configSource() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return "(defaults)"
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, colorError("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.siteprobe.yaml)")
	rootCmd.PersistentFlags().StringVar(&cliConfig.Client.APIURL, "api-url", cliConfig.Client.APIURL, "Base URL of the analysis API")
	rootCmd.PersistentFlags().DurationVar(&cliConfig.Client.Timeout, "timeout", cliConfig.Client.Timeout, "Timeout for one API call")
	rootCmd.PersistentFlags().BoolVar(&cliConfig.Log.Development, "dev-log", cliConfig.Log.Development, "Human-readable debug logging")

	rootCmd.AddCommand(versionCmd)
}
