package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the effective configuration",
	Long: `Display the configuration siteprobe would run with, after merging
defaults, the config file, SITEPROBE_* environment variables and flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		body, err := yaml.Marshal(effectiveConfig(cliConfig))
		if err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}

		fmt.Fprintln(out, "siteprobe System Information")
		fmt.Fprintln(out, "============================")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Platform:             %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "Version:              %s\n", Version)
		fmt.Fprintf(out, "Configuration File:   %s\n", describeConfigFile())
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Effective configuration:")
		fmt.Fprint(out, string(body))
		return nil
	},
}

func describeConfigFile() string {
	if used := configSource(); used != "(defaults)" {
		return used + " ✓ (loaded)"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "✗ (using defaults)"
	}
	return filepath.Join(home, configName+".yaml") + " ✗ (using defaults)"
}

// effectiveConfig mirrors the viper key layout so the dump can be pasted
// into a config file.
func effectiveConfig(c *CLIConfig) map[string]any {
	return map[string]any{
		"server": map[string]any{
			"addr":             c.Server.Addr,
			"shutdown_timeout": c.Server.ShutdownTimeout.String(),
			"cors_origins":     c.Server.CORSOrigins,
			"rate_limit":       c.Server.RateLimit,
			"rate_burst":       c.Server.RateBurst,
			"coalesce":         c.Server.Coalesce,
		},
		"cache": map[string]any{
			"backend":   c.Cache.Backend,
			"redis_url": c.Cache.RedisURL,
		},
		"upstream": map[string]any{
			"timeout":         c.Upstream.Timeout.String(),
			"doh_url":         c.Upstream.DoHURL,
			"rdap_servers":    c.Upstream.RDAPServers,
			"ssl_grading_url": c.Upstream.SSLGradingURL,
		},
		"client": map[string]any{
			"api_url": c.Client.APIURL,
			"timeout": c.Client.Timeout.String(),
		},
		"log": map[string]any{
			"development": c.Log.Development,
		},
	}
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
