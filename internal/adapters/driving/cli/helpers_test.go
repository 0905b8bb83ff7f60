package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatdigest/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chatdigest/internal/app"
	"github.com/custodia-labs/chatdigest/internal/config"
	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/services"
)

const testSummary = "## **Wyoming LLC**\nWe formed a wyoming llc and got an EIN from the IRS.\n\n" +
	"## **Paraguay**\nSomeone asked about paraguay residency and the cedula."

// llcID is the published ID of the test group.
var llcID = services.SafeID("g1")

// testApp is an application over in-memory stores with one group.
type testApp struct {
	*app.App
	summaries *memory.SummaryStore
}

// setupTestApp installs an in-memory application for the CLI and resets
// flag variables when the test ends. withHighlights controls whether the
// highlight store is wired.
func setupTestApp(t *testing.T, withHighlights bool) *testApp {
	t.Helper()

	dir := t.TempDir()
	settings := &config.Settings{
		Database:     filepath.Join(dir, "messages.db"),
		SummariesDir: dir,
		OutputDir:    filepath.Join(dir, "data"),
		GroupsFile:   filepath.Join(dir, "groups.toml"),
		DataDir:      dir,
		Server: config.ServerSettings{
			Addr:          "127.0.0.1:0",
			SessionSecret: "secret",
			SessionTTL:    config.DefaultSessionTTL,
		},
	}

	summaries := memory.NewSummaryStore()
	summaries.Put("summary_llcchat.md", testSummary)

	stores := app.Stores{
		Messages: memory.NewMessageStore(domain.GroupStats{
			ID: "g1", Name: "LLC Chat", MessageCount: 10,
			FirstTimestamp: 1700000000000, LastTimestamp: 1700500000000,
		}),
		Summaries: summaries,
		Artifacts: memory.NewArtifactStore(),
		Display:   memory.NewDisplayConfigStore(domain.DisplayConfig{}),
	}
	if withHighlights {
		stores.Highlights = memory.NewHighlightStore()
	}

	a, err := app.Assemble(settings, stores)
	require.NoError(t, err)

	application = a
	t.Cleanup(func() {
		application = nil
		resetFlags()
	})
	return &testApp{App: a, summaries: summaries}
}

// generate runs one generation so the read side has artifacts.
func (a *testApp) generate(t *testing.T) {
	t.Helper()
	_, err := a.Generator.Run(context.Background())
	require.NoError(t, err)
}

func resetFlags() {
	cfgFile = ""
	verbose = false
	searchLimit = services.DefaultSearchLimit
	searchGroups = nil
	searchJSON = false
	topicsSort = string(services.OrderMentions)
	topicsGroup = ""
	topicsJSON = false
	topicsSnippets = false
	highlightGroup = ""
	highlightJSON = false
	generateWatch = false
	serveAddr = ""
	serveSecure = false
}

// execute runs the root command with args and returns the combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), input, args...)
}

// executeContext runs the root command under ctx. Cobra keeps the first
// context a subcommand sees, so a command needing a special context must
// only run through here.
func executeContext(t *testing.T, ctx context.Context, input string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(bytes.NewBufferString(input))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}
