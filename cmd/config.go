package cmd

import (
	"time"

	"github.com/khanhnv2901/siteprobe/internal/cache"
	consts "github.com/khanhnv2901/siteprobe/internal/shared/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Server   ServerConfig
	Cache    CacheConfig
	Upstream UpstreamConfig
	Client   ClientConfig
	Log      LogConfig
}

// ServerConfig drives `serve`.
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	RateLimit       int
	RateBurst       int
	Coalesce        bool
}

type CacheConfig struct {
	Backend  string
	RedisURL string
}

// UpstreamConfig points the checks at their external services.
type UpstreamConfig struct {
	Timeout       time.Duration
	DoHURL        string
	RDAPServers   []string
	SSLGradingURL string
}

// ClientConfig drives the check commands.
type ClientConfig struct {
	APIURL  string
	Timeout time.Duration
}

type LogConfig struct {
	Development bool
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Server: ServerConfig{
			Addr:            consts.DefaultServerAddr,
			ShutdownTimeout: consts.DefaultShutdownTimeout,
			CORSOrigins:     []string{},
			RateLimit:       consts.DefaultRateLimitRequests,
			RateBurst:       consts.DefaultRateBurst,
		},
		Cache: CacheConfig{
			Backend: cache.BackendMemory,
		},
		Upstream: UpstreamConfig{
			Timeout:       consts.DefaultUpstreamTimeout,
			DoHURL:        consts.DefaultDoHURL,
			RDAPServers:   append([]string(nil), consts.DefaultRDAPServers...),
			SSLGradingURL: consts.DefaultSSLGradingURL,
		},
		Client: ClientConfig{
			APIURL:  consts.DefaultAPIURL,
			Timeout: consts.DefaultClientTimeout,
		},
	}
}

// applyConfigDefaults merges config file and environment values into the
// runtime config when the user did not explicitly set the corresponding flag.
func applyConfigDefaults(cmd *cobra.Command) {
	flags := cmd.Flags()

	applyStringDefault(flags, "addr", "server.addr", func(v string) { cliConfig.Server.Addr = v })
	applyDurationDefault(flags, "shutdown-timeout", "server.shutdown_timeout", func(v time.Duration) { cliConfig.Server.ShutdownTimeout = v })
	applyStringSliceDefault(flags, "cors-origins", "server.cors_origins", func(v []string) { cliConfig.Server.CORSOrigins = v })
	applyIntDefault(flags, "rate-limit", "server.rate_limit", func(v int) { cliConfig.Server.RateLimit = v })
	applyIntDefault(flags, "rate-burst", "server.rate_burst", func(v int) { cliConfig.Server.RateBurst = v })
	applyBoolDefault(flags, "coalesce", "server.coalesce", func(v bool) { cliConfig.Server.Coalesce = v })

	applyStringDefault(flags, "cache", "cache.backend", func(v string) { cliConfig.Cache.Backend = v })
	applyStringDefault(flags, "redis-url", "cache.redis_url", func(v string) { cliConfig.Cache.RedisURL = v })

	applyDurationDefault(flags, "upstream-timeout", "upstream.timeout", func(v time.Duration) { cliConfig.Upstream.Timeout = v })
	applyStringDefault(flags, "doh-url", "upstream.doh_url", func(v string) { cliConfig.Upstream.DoHURL = v })
	applyStringSliceDefault(flags, "rdap-server", "upstream.rdap_servers", func(v []string) { cliConfig.Upstream.RDAPServers = v })
	applyStringDefault(flags, "ssl-grading-url", "upstream.ssl_grading_url", func(v string) { cliConfig.Upstream.SSLGradingURL = v })

	applyStringDefault(flags, "api-url", "client.api_url", func(v string) { cliConfig.Client.APIURL = v })
	applyDurationDefault(flags, "timeout", "client.timeout", func(v time.Duration) { cliConfig.Client.Timeout = v })

	applyBoolDefault(flags, "dev-log", "log.development", func(v bool) { cliConfig.Log.Development = v })
}

// flagChanged reports whether the user set the flag on this invocation.
// Unknown flags count as unset so config still applies.
func flagChanged(flags *pflag.FlagSet, name string) bool {
	if flags == nil {
		return false
	}
	flag := flags.Lookup(name)
	return flag != nil && flag.Changed
}

func applyStringDefault(flags *pflag.FlagSet, name, key string, setter func(string)) {
	if setter == nil || !viper.IsSet(key) || flagChanged(flags, name) {
		return
	}
	setter(viper.GetString(key))
}

func applyStringSliceDefault(flags *pflag.FlagSet, name, key string, setter func([]string)) {
	if setter == nil || !viper.IsSet(key) || flagChanged(flags, name) {
		return
	}
	setter(viper.GetStringSlice(key))
}

func applyIntDefault(flags *pflag.FlagSet, name, key string, setter func(int)) {
	if setter == nil || !viper.IsSet(key) || flagChanged(flags, name) {
		return
	}
	setter(viper.GetInt(key))
}

func applyBoolDefault(flags *pflag.FlagSet, name, key string, setter func(bool)) {
	if setter == nil || !viper.IsSet(key) || flagChanged(flags, name) {
		return
	}
	setter(viper.GetBool(key))
}

func applyDurationDefault(flags *pflag.FlagSet, name, key string, setter func(time.Duration)) {
	if setter == nil || !viper.IsSet(key) || flagChanged(flags, name) {
		return
	}
	setter(viper.GetDuration(key))
}
