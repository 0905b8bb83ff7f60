package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatdigest/internal/app"
	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

var (
	highlightGroup string
	highlightJSON  bool
)

var highlightCmd = &cobra.Command{
	Use:   "highlight",
	Short: "Manage saved summary excerpts",
	Long:  `Save, list and remove excerpts bookmarked from group summaries.`,
}

var highlightAddCmd = &cobra.Command{
	Use:   "add [group-id] [text]",
	Short: "Save an excerpt of a group summary",
	Long: fmt.Sprintf(`Saves an excerpt of %d to %d characters for a published group.
The group ID is the one shown by "chatdigest serve" URLs and search --json.`,
		domain.MinHighlightLength, domain.MaxHighlightLength),
	Args: cobra.MinimumNArgs(2),
	RunE: runHighlightAdd,
}

var highlightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved excerpts, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHighlightList,
}

var highlightRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a saved excerpt",
	Args:  cobra.ExactArgs(1),
	RunE:  runHighlightRemove,
}

func init() {
	highlightListCmd.Flags().StringVarP(&highlightGroup, "group", "g", "", "only list excerpts of this group")
	highlightListCmd.Flags().BoolVar(&highlightJSON, "json", false, "output excerpts as JSON")
	highlightCmd.AddCommand(highlightAddCmd)
	highlightCmd.AddCommand(highlightListCmd)
	highlightCmd.AddCommand(highlightRemoveCmd)
	rootCmd.AddCommand(highlightCmd)
}

func highlightApp(cmd *cobra.Command) (*app.App, error) {
	a, err := loadApp(cmd)
	if err != nil {
		return nil, err
	}
	if a.Highlights == nil {
		return nil, errors.New("highlight store not configured")
	}
	return a, nil
}

func runHighlightAdd(cmd *cobra.Command, args []string) error {
	a, err := highlightApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	groupID := args[0]
	detail, err := a.Groups.Get(ctx, groupID)
	if err != nil {
		return err
	}

	h, err := a.Highlights.Add(ctx, groupID, detail.Group.Name, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	cmd.Printf("Saved highlight %s for %s.\n", h.ID, h.GroupName)
	return nil
}

func runHighlightList(cmd *cobra.Command, _ []string) error {
	a, err := highlightApp(cmd)
	if err != nil {
		return err
	}

	highlights, err := a.Highlights.List(cmd.Context(), highlightGroup)
	if err != nil {
		return fmt.Errorf("list highlights: %w", err)
	}
	if highlightJSON {
		return outputJSON(cmd, highlights)
	}

	if len(highlights) == 0 {
		cmd.Println("No highlights saved.")
		return nil
	}
	for i := range highlights {
		h := &highlights[i]
		cmd.Printf("%s  %s  %s\n", h.ID, a.Dates.Date(h.CreatedAt.UnixMilli()), h.GroupName)
		cmd.Printf("    %s\n\n", oneLine(h.Text))
	}
	return nil
}

func runHighlightRemove(cmd *cobra.Command, args []string) error {
	a, err := highlightApp(cmd)
	if err != nil {
		return err
	}

	if err := a.Highlights.Remove(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("highlight %s: %w", args[0], err)
		}
		return err
	}
	cmd.Printf("Removed highlight %s.\n", args[0])
	return nil
}
