package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatdigest/internal/adapters/driven/watcher"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driving"
	"github.com/custodia-labs/chatdigest/internal/logger"
)

var generateWatch bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Rebuild the viewer data from the chat database and summaries",
	Long: `Reads group statistics from the chat database, resolves each group's
summary document and writes the group list, the flat search index and the
topic index to the output directory. Every run is a full rebuild.

With --watch, generation reruns whenever a summary document or the group
display configuration changes.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "regenerate when summaries change")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := generateOnce(ctx, cmd, a.Generator); err != nil {
		return err
	}
	if !generateWatch {
		return nil
	}

	w, err := watcher.NewWatcher(watcher.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Stop() //nolint:errcheck // best effort on shutdown

	paths := a.WatchPaths()
	err = w.Watch(paths, func(changed []string) {
		cmd.Printf("Changed: %s\n", strings.Join(changed, ", "))
		if err := generateOnce(ctx, cmd, a.Generator); err != nil {
			logger.Error("generation failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("watching %s: %w", strings.Join(paths, ", "), err)
	}

	cmd.Printf("Watching %s for changes. Press Ctrl+C to stop.\n", strings.Join(paths, ", "))
	<-ctx.Done()
	return nil
}

func generateOnce(ctx context.Context, cmd *cobra.Command, gen driving.Generator) error {
	report, err := gen.Run(ctx)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	cmd.Printf("Generated %d groups (%d with summaries), %d search sections, %d topic groups.\n",
		report.Groups, report.WithSummary, report.Sections, report.TopicGroups)
	if len(report.Skipped) > 0 {
		cmd.Printf("Skipped unreadable summaries: %s\n", strings.Join(report.Skipped, ", "))
	}
	return nil
}
