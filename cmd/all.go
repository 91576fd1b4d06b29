package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/khanhnv2901/siteprobe/internal/checker"
	"github.com/khanhnv2901/siteprobe/internal/client"
	"github.com/khanhnv2901/siteprobe/internal/domain/analysis"
	"github.com/khanhnv2901/siteprobe/internal/validator"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// dashboard holds one envelope per check, in display order.
type dashboard struct {
	DNS         analysis.Envelope[analysis.DNSResult]         `json:"dns"`
	Whois       analysis.Envelope[analysis.WhoisResult]       `json:"whois"`
	SSL         analysis.Envelope[analysis.SSLResult]         `json:"ssl"`
	Headers     analysis.Envelope[analysis.HeadersResult]     `json:"headers"`
	Security    analysis.Envelope[analysis.SecurityResult]    `json:"security"`
	Performance analysis.Envelope[analysis.PerformanceResult] `json:"performance"`
}

var allCmd = &cobra.Command{
	Use:   "all <url-or-domain>",
	Short: "Run every check against one site",
	Long: `Run the DNS, WHOIS, SSL, headers, security and performance checks
concurrently. The domain checks use the host of the target; the URL checks
use the target itself (https:// is assumed when no scheme is given).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := urlArg(args[0])
		if err != nil {
			return err
		}
		domain, err := domainArg(validator.ExtractDomain(target))
		if err != nil {
			return err
		}

		logger.Debugf("dashboard target=%s domain=%s", target, domain)
		api := newAPIClient()
		if err := api.Health(commandContext(cmd)); err != nil {
			return fmt.Errorf("API at %s is not reachable: %w", cliConfig.Client.APIURL, err)
		}
		board := runDashboard(cmd, api, domain, target)

		out := cmd.OutOrStdout()
		if outputJSON {
			if err := writeJSON(out, board); err != nil {
				return err
			}
		}

		failed := 0
		for _, ok := range renderDashboard(out, board, !outputJSON) {
			if !ok {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of 6 checks failed", failed)
		}
		return nil
	},
}

// runDashboard issues the six calls concurrently. Failures live in the
// envelopes, so the group never cancels early.
func runDashboard(cmd *cobra.Command, api *client.Client, domain, target string) dashboard {
	var board dashboard
	recordType := strings.ToUpper(strings.TrimSpace(dnsRecordType))
	g, ctx := errgroup.WithContext(commandContext(cmd))

	g.Go(func() error { board.DNS = api.DNS(ctx, domain, recordType); return nil })
	g.Go(func() error { board.Whois = api.Whois(ctx, validator.RegistrableDomain(domain)); return nil })
	g.Go(func() error { board.SSL = api.SSL(ctx, domain); return nil })
	g.Go(func() error { board.Headers = api.Headers(ctx, target); return nil })
	g.Go(func() error { board.Security = api.Security(ctx, target); return nil })
	g.Go(func() error { board.Performance = api.Performance(ctx, target); return nil })

	_ = g.Wait()
	return board
}

// renderDashboard writes each section when render is set and reports which
// checks succeeded.
func renderDashboard(w io.Writer, b dashboard, render bool) []bool {
	if !render {
		w = io.Discard
	}
	return []bool{
		section(w, b.DNS, checker.MsgDNSFailed, renderDNS),
		section(w, b.Whois, checker.MsgWhoisFailed, renderWhois),
		section(w, b.SSL, checker.MsgSSLFailed, renderSSL),
		section(w, b.Headers, checker.MsgHeadersFailed, renderHeaders),
		section(w, b.Security, checker.MsgSecurityFailed, renderSecurity),
		section(w, b.Performance, checker.MsgPerformanceFailed, renderPerformance),
	}
}

func section[T any](w io.Writer, env analysis.Envelope[T], fallback string, render renderFunc[T]) bool {
	data, err := client.Result(env, fallback)
	if err != nil {
		fmt.Fprintf(w, "%s %v\n\n", colorError("✗"), err)
		return false
	}
	render(w, data, isCached(env))
	fmt.Fprintln(w)
	return true
}

func init() {
	allCmd.Flags().StringVarP(&dnsRecordType, "type", "t", "A", "DNS record type to query")
	rootCmd.AddCommand(allCmd)
}
