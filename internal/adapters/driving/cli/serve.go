package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatdigest/internal/adapters/driving/web"
	"github.com/custodia-labs/chatdigest/internal/app"
	"github.com/custodia-labs/chatdigest/internal/config"
)

var (
	serveAddr   string
	serveSecure bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the viewer API over HTTP",
	Long: `Starts the HTTP API for browsing groups, summaries, topics and search
results.

When server.password_hash is set the API requires a session: POST the
password to /api/auth to receive a session cookie. Generate the hash with
"chatdigest passwd".

Endpoints:
  GET    /api/groups             published groups
  GET    /api/groups/{id}        group, summary, table of contents, topics
  GET    /api/search?q=          ranked summary sections
  GET    /api/topics?sort=       tracked topics (mentions or recent)
  GET    /api/highlights         saved excerpts
  POST   /api/highlights         save an excerpt
  DELETE /api/highlights/{id}    remove an excerpt`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from settings)")
	serveCmd.Flags().BoolVar(&serveSecure, "secure-cookie", false, "mark the session cookie Secure (HTTPS)")
	rootCmd.AddCommand(serveCmd)
}

func newWebServer(a *app.App) (*web.Server, error) {
	ports := &web.Ports{
		Groups: a.Groups,
		Search: a.Search,
		Topics: a.Topics,
		Auth:   a.Auth,
	}
	if a.Highlights != nil {
		ports.Highlights = a.Highlights
	}

	opts := web.DefaultOptions()
	opts.SecureCookie = serveSecure
	return web.NewServer(ports, opts)
}

// serveWarnings lists insecure settings the operator should fix.
func serveWarnings(a *app.App) []string {
	var warnings []string
	if !a.Auth.Enabled() {
		warnings = append(warnings, "no password configured, the viewer is open to anyone who can reach it.")
	}
	if a.Settings.Server.SessionSecret == config.DefaultSessionSecret {
		warnings = append(warnings, "server.session_secret is the built-in default, session cookies can be forged. Set a random secret.")
	}
	return warnings
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	server, err := newWebServer(a)
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = a.Settings.Server.Addr
	}
	if err := server.Start(addr); err != nil {
		return err
	}
	defer server.Stop()

	for _, w := range serveWarnings(a) {
		cmd.Println("Warning: " + w)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Viewer API listening on %s\n", server.URL())

	<-cmd.Context().Done()
	return nil
}
