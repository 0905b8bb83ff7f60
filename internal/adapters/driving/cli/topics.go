package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/services"
)

var (
	topicsSort     string
	topicsGroup    string
	topicsJSON     bool
	topicsSnippets bool
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Show tracked topics across groups",
	Long: `Lists every tracked topic mentioned in the published summaries with the
groups that mention it.

Sort orders:
  mentions - most mentions first (default)
  recent   - most recently active group first`,
	Args: cobra.NoArgs,
	RunE: runTopics,
}

func init() {
	topicsCmd.Flags().StringVarP(&topicsSort, "sort", "s", string(services.OrderMentions), "sort order: mentions or recent")
	topicsCmd.Flags().StringVarP(&topicsGroup, "group", "g", "", "show the topics of a single group")
	topicsCmd.Flags().BoolVar(&topicsJSON, "json", false, "output topics as JSON")
	topicsCmd.Flags().BoolVar(&topicsSnippets, "snippets", false, "print the matched snippets")
	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	if topicsGroup != "" {
		results, err := a.Topics.GroupTopics(cmd.Context(), topicsGroup)
		if err != nil {
			return fmt.Errorf("group topics: %w", err)
		}
		if topicsJSON {
			return outputJSON(cmd, results)
		}
		outputGroupTopics(cmd, results)
		return nil
	}

	topics, err := a.Topics.Topics(cmd.Context(), topicsSort)
	if err != nil {
		return fmt.Errorf("topics: %w", err)
	}
	if topicsJSON {
		return outputJSON(cmd, topics)
	}
	outputTopics(cmd, a.Dates, topics)
	return nil
}

func outputTopics(cmd *cobra.Command, dates services.DateFormatter, topics []domain.AggregatedTopic) {
	if len(topics) == 0 {
		cmd.Println("No tracked topics mentioned yet.")
		return
	}

	for i := range topics {
		t := &topics[i]
		cmd.Printf("%s %s  %d mentions in %d groups\n", t.Topic.Icon, t.Topic.Name, t.TotalMatches, len(t.Groups))
		for j := range t.Groups {
			g := &t.Groups[j]
			line := fmt.Sprintf("    %s (%d)", g.GroupName, g.MatchCount)
			if r := dates.ShortRange(g.DateRange); r != "" {
				line += "  " + r
			}
			cmd.Println(line)
			if topicsSnippets {
				printMatches(cmd, g.Matches)
			}
		}
		cmd.Println()
	}
}

func outputGroupTopics(cmd *cobra.Command, results []domain.TopicResult) {
	if len(results) == 0 {
		cmd.Println("No tracked topics in this group.")
		return
	}
	for i := range results {
		r := &results[i]
		cmd.Printf("%s %s  %d mentions\n", r.Topic.Icon, r.Topic.Name, len(r.Matches))
		printMatches(cmd, r.Matches)
		cmd.Println()
	}
}

func printMatches(cmd *cobra.Command, matches []domain.Match) {
	for _, m := range matches {
		snippet := oneLine(m.Snippet)
		cmd.Printf("      %s\n", renderSegments(services.Highlight(snippet, []string{m.Keyword})))
	}
}
