package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/services"
)

var (
	searchLimit  int
	searchGroups []string
	searchJSON   bool
)

var matchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search group summaries",
	Long: `Scores every summary section against the query terms. A term in the
section title weighs more than a term in the body; the body counts every
occurrence. Terms shorter than two characters are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", services.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().StringSliceVarP(&searchGroups, "group", "g", nil, "only search these group IDs")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	query := args[0]
	opts := domain.SearchOptions{
		Limit:    searchLimit,
		GroupIDs: searchGroups,
	}

	results, err := a.Search.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, results)
	}
	return outputSearchTable(cmd, query, results)
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, query string, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	terms := services.Tokenize(query)

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		r := &results[i]
		cmd.Printf("  [%d] %s (%d)\n", i+1, r.Title, r.Score)
		cmd.Printf("      Group: %s\n", r.GroupName)
		if snippet := oneLine(r.Snippet); snippet != "" {
			cmd.Printf("      %s\n", renderSegments(services.Highlight(snippet, terms)))
		}
		cmd.Println()
	}
	return nil
}

func renderSegments(segments []domain.Segment) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Matched {
			b.WriteString(matchStyle.Render(s.Text))
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// oneLine collapses whitespace runs so snippets print on a single line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
