package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fatih/color"
	"github.com/khanhnv2901/siteprobe/internal/client"
	"github.com/spf13/cobra"
)

func disableColor(t *testing.T) {
	t.Helper()
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })
}

// useTestAPI points the check commands at handler for the duration of the test.
func useTestAPI(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	original := newAPIClient
	newAPIClient = func() *client.Client {
		return client.New(srv.URL, client.WithHTTPClient(srv.Client()))
	}
	t.Cleanup(func() { newAPIClient = original })
}

func useJSONOutput(t *testing.T, enabled bool) {
	t.Helper()
	original := outputJSON
	outputJSON = enabled
	t.Cleanup(func() { outputJSON = original })
}

func runCommand(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetErr(&buf)
	t.Cleanup(func() {
		c.SetOut(nil)
		c.SetErr(nil)
	})
	err := c.RunE(c, args)
	return buf.String(), err
}

func writeTestJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
