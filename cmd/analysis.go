package cmd

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/khanhnv2901/siteprobe/internal/checker"
	"github.com/khanhnv2901/siteprobe/internal/client"
	"github.com/khanhnv2901/siteprobe/internal/domain/analysis"
	"github.com/khanhnv2901/siteprobe/internal/validator"
	"github.com/spf13/cobra"
)

var outputJSON bool

var dnsRecordType string

// newAPIClient builds the client the check commands use; tests replace it.
var newAPIClient = func() *client.Client {
	return client.New(cliConfig.Client.APIURL,
		client.WithHTTPClient(&http.Client{Timeout: cliConfig.Client.Timeout}))
}

var dnsCmd = &cobra.Command{
	Use:   "dns <domain>",
	Short: "Look up DNS records for a domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, err := domainArg(args[0])
		if err != nil {
			return err
		}
		recordType := strings.ToUpper(strings.TrimSpace(dnsRecordType))
		env := newAPIClient().DNS(commandContext(cmd), domain, recordType)
		return emit(cmd, env, checker.MsgDNSFailed, renderDNS)
	},
}

var whoisCmd = &cobra.Command{
	Use:   "whois <domain>",
	Short: "Fetch registration data for a domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, err := domainArg(args[0])
		if err != nil {
			return err
		}
		env := newAPIClient().Whois(commandContext(cmd), validator.RegistrableDomain(domain))
		return emit(cmd, env, checker.MsgWhoisFailed, renderWhois)
	},
}

var sslCmd = &cobra.Command{
	Use:   "ssl <domain>",
	Short: "Inspect the SSL certificate of a domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, err := domainArg(args[0])
		if err != nil {
			return err
		}
		env := newAPIClient().SSL(commandContext(cmd), domain)
		return emit(cmd, env, checker.MsgSSLFailed, renderSSL)
	},
}

var headersCmd = &cobra.Command{
	Use:   "headers <url>",
	Short: "Analyze the HTTP response headers of a URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := urlArg(args[0])
		if err != nil {
			return err
		}
		env := newAPIClient().Headers(commandContext(cmd), target)
		return emit(cmd, env, checker.MsgHeadersFailed, renderHeaders)
	},
}

var securityCmd = &cobra.Command{
	Use:   "security <url>",
	Short: "Score the basic security posture of a URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := urlArg(args[0])
		if err != nil {
			return err
		}
		env := newAPIClient().Security(commandContext(cmd), target)
		return emit(cmd, env, checker.MsgSecurityFailed, renderSecurity)
	},
}

var performanceCmd = &cobra.Command{
	Use:   "performance <url>",
	Short: "Measure response timing and size of a URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := urlArg(args[0])
		if err != nil {
			return err
		}
		env := newAPIClient().Performance(commandContext(cmd), target)
		return emit(cmd, env, checker.MsgPerformanceFailed, renderPerformance)
	},
}

// domainArg normalizes raw to a bare host name and returns its ASCII form.
func domainArg(raw string) (string, error) {
	domain := validator.NormalizeDomain(raw)
	if !validator.IsValidDomain(domain) {
		return "", &ValidationError{Input: raw, Message: msgInvalidDomain}
	}
	ascii, err := validator.ToASCII(domain)
	if err != nil {
		return "", &ValidationError{Input: raw, Message: msgInvalidDomain}
	}
	return strings.ToLower(ascii), nil
}

func urlArg(raw string) (string, error) {
	target := validator.NormalizeURL(raw)
	if !validator.IsValidURL(target) {
		return "", &ValidationError{Input: raw, Message: msgInvalidURL}
	}
	return target, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

type renderFunc[T any] func(w io.Writer, data *T, cached bool)

// emit prints env either as indented JSON or through render, and returns the
// envelope's failure as an error so the exit status reflects it.
func emit[T any](cmd *cobra.Command, env analysis.Envelope[T], fallback string, render renderFunc[T]) error {
	out := cmd.OutOrStdout()
	if outputJSON {
		if err := writeJSON(out, env); err != nil {
			return err
		}
		_, err := client.Result(env, fallback)
		return err
	}

	data, err := client.Result(env, fallback)
	if err != nil {
		return err
	}
	render(out, data, isCached(env))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isCached[T any](env analysis.Envelope[T]) bool {
	return env.Meta != nil && env.Meta.Cached
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Print the raw response envelope as JSON")

	dnsCmd.Flags().StringVarP(&dnsRecordType, "type", "t", "A", "Record type: "+strings.Join(checker.SupportedRecordTypes(), ", "))

	rootCmd.AddCommand(dnsCmd, whoisCmd, sslCmd, headersCmd, securityCmd, performanceCmd)
}
