package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driven"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driving"
	"github.com/custodia-labs/chatdigest/internal/logger"
)

// Ensure Generator implements the interface.
var _ driving.Generator = (*Generator)(nil)

// UnknownGroupName is shown for groups stored without a name.
const UnknownGroupName = "Unknown Group"

// partialKeyLength is how much of the normalised group name is used when
// scanning summary file names for a loose match.
const partialKeyLength = 10

// Generator rebuilds the viewer artifacts from the message store and the
// summary files. Every run is a full rebuild.
type Generator struct {
	messages  driven.MessageStore
	summaries driven.SummaryStore
	artifacts driven.ArtifactStore
	display   driven.DisplayConfigStore
	extractor *Extractor
	dates     DateFormatter
}

// NewGenerator creates a generator.
// messages may be nil when the database could not be opened; Run then
// publishes empty artifacts. display is optional.
func NewGenerator(
	messages driven.MessageStore,
	summaries driven.SummaryStore,
	artifacts driven.ArtifactStore,
	display driven.DisplayConfigStore,
	extractor *Extractor,
	dates DateFormatter,
) *Generator {
	return &Generator{
		messages:  messages,
		summaries: summaries,
		artifacts: artifacts,
		display:   display,
		extractor: extractor,
		dates:     dates,
	}
}

// SafeID hex-encodes a raw group identifier for use in file names and URLs.
func SafeID(groupID string) string {
	return hex.EncodeToString([]byte(groupID))
}

// Run performs one generation pass.
func (g *Generator) Run(ctx context.Context) (*domain.GenerationReport, error) {
	logger.Section("Generate")

	if g.messages == nil {
		logger.Warn("message store unavailable, publishing empty artifacts")
		if err := g.WriteEmpty(ctx); err != nil {
			return nil, err
		}
		return &domain.GenerationReport{}, nil
	}

	display := g.loadDisplay()

	stats, err := g.messages.GroupStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("read group stats: %w", err)
	}
	logger.Debug("Groups in store: %d", len(stats))

	files := g.summaryFiles(ctx)
	logger.Info("Found %d summary files: %s", len(files), strings.Join(files, ", "))

	report := &domain.GenerationReport{}
	groups := make([]domain.Group, 0, len(stats))
	var docs []domain.SummaryDocument

	for _, stat := range stats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		override, ok := display.Override(stat.ID, strings.ToLower(stat.Name))
		if display.Restrict && !ok {
			logger.Debug("Skipping group %q: not listed", stat.Name)
			continue
		}

		group := g.buildGroup(stat, override)

		text, file, skipped := g.resolveSummary(ctx, stat, override, files)
		report.Skipped = append(report.Skipped, skipped...)
		if file != "" {
			if err := g.artifacts.WriteSummary(ctx, group.ID, text); err != nil {
				logger.Warn("copy summary %s for %q: %v", file, group.Name, err)
				report.Skipped = append(report.Skipped, file)
			} else {
				group.HasSummary = true
				group.SummaryFile = file
				dr := group.DateRange
				docs = append(docs, domain.SummaryDocument{
					GroupID:       group.ID,
					GroupName:     group.Name,
					Text:          text,
					DateRange:     &dr,
					LastTimestamp: group.LastTimestamp,
					LastUpdated:   group.LastUpdated,
				})
				report.WithSummary++
			}
		}
		groups = append(groups, group)
	}

	if err := g.artifacts.WriteGroups(ctx, groups); err != nil {
		return nil, fmt.Errorf("write groups: %w", err)
	}
	report.Groups = len(groups)

	index := BuildIndex(docs)
	if index == nil {
		index = []domain.SearchSection{}
	}
	if err := g.artifacts.WriteSearchIndex(ctx, index); err != nil {
		return nil, fmt.Errorf("write search index: %w", err)
	}
	report.Sections = len(index)

	topics := g.TopicIndex(docs)
	if err := g.artifacts.WriteTopicIndex(ctx, topics); err != nil {
		return nil, fmt.Errorf("write topic index: %w", err)
	}
	report.TopicGroups = len(topics)

	logger.Info("Generated topic index for %d groups", report.TopicGroups)
	logger.Info("Generated data for %d groups", report.Groups)
	logger.Info("Generated search index with %d sections", report.Sections)
	for _, grp := range groups {
		suffix := ""
		if grp.HasSummary {
			suffix = " (has summary)"
		}
		logger.Debug("  - %s: %d messages%s", grp.Name, grp.MessageCount, suffix)
	}
	return report, nil
}

// WriteEmpty publishes empty artifacts so the viewer still starts.
func (g *Generator) WriteEmpty(ctx context.Context) error {
	if err := g.artifacts.WriteGroups(ctx, []domain.Group{}); err != nil {
		return fmt.Errorf("write groups: %w", err)
	}
	if err := g.artifacts.WriteSearchIndex(ctx, []domain.SearchSection{}); err != nil {
		return fmt.Errorf("write search index: %w", err)
	}
	if err := g.artifacts.WriteTopicIndex(ctx, domain.TopicIndex{}); err != nil {
		return fmt.Errorf("write topic index: %w", err)
	}
	return nil
}

// TopicIndex counts every tracked topic per summary. Topics within a group are
// ordered by count, highest first, ties in catalog order.
func (g *Generator) TopicIndex(docs []domain.SummaryDocument) domain.TopicIndex {
	index := make(domain.TopicIndex)
	catalog := g.extractor.Catalog()

	for i := range docs {
		doc := &docs[i]
		counts := g.extractor.Count(doc.Text)
		if len(counts) == 0 {
			continue
		}

		found := make([]domain.TopicSummary, 0, len(counts))
		for _, t := range catalog {
			n, ok := counts[t.ID]
			if !ok {
				continue
			}
			found = append(found, domain.TopicSummary{
				ID:         t.ID,
				Name:       t.Name,
				Icon:       t.Icon,
				Color:      t.Color,
				MatchCount: n,
			})
		}
		sort.SliceStable(found, func(a, b int) bool {
			return found[a].MatchCount > found[b].MatchCount
		})

		entry := domain.GroupTopics{
			Topics:        found,
			LastTimestamp: doc.LastTimestamp,
			LastUpdated:   doc.LastUpdated,
		}
		if doc.DateRange != nil {
			entry.DateRange = *doc.DateRange
		}
		index[doc.GroupID] = entry
	}
	return index
}

func (g *Generator) loadDisplay() domain.DisplayConfig {
	if g.display == nil {
		return domain.DisplayConfig{}
	}
	cfg, err := g.display.Load()
	if err != nil {
		logger.Warn("could not load %s, using defaults: %v", g.display.Path(), err)
		return domain.DisplayConfig{}
	}
	return cfg
}

// summaryFiles lists the summary*.md files available for loose matching.
func (g *Generator) summaryFiles(ctx context.Context) []string {
	names, err := g.summaries.List(ctx)
	if err != nil {
		logger.Warn("list summaries: %v", err)
		return nil
	}
	files := make([]string, 0, len(names))
	for _, n := range names {
		if strings.HasPrefix(n, "summary") && strings.HasSuffix(n, ".md") {
			files = append(files, n)
		}
	}
	return files
}

func (g *Generator) buildGroup(stat domain.GroupStats, override domain.GroupOverride) domain.Group {
	name := override.DisplayName
	if name == "" {
		name = stat.Name
	}
	if name == "" {
		name = UnknownGroupName
	}

	return domain.Group{
		ID:              SafeID(stat.ID),
		OriginalID:      stat.ID,
		Name:            name,
		Description:     override.Description,
		MessageCount:    stat.MessageCount,
		LastUpdated:     g.dates.Date(stat.LastTimestamp),
		LastUpdatedFull: g.dates.DateTime(stat.LastTimestamp),
		LastTimestamp:   stat.LastTimestamp,
		FirstTimestamp:  stat.FirstTimestamp,
		DateRange:       g.dates.Range(stat.FirstTimestamp, stat.LastTimestamp),
	}
}

// SummaryCandidates lists the file names tried for a group, most specific
// first, without duplicates.
func SummaryCandidates(stat domain.GroupStats, override domain.GroupOverride, files []string) []string {
	alnum := alnumLower(stat.Name)

	var candidates []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		candidates = append(candidates, name)
	}

	add(override.SummaryFile)
	add(override.OutputFile)
	add("summary_" + SafeID(stat.ID) + ".md")
	if stat.Name != "" {
		add("summary_" + stat.Name + ".md")
	}
	if alnum != "" {
		add("summary_" + alnum + ".md")
	}

	key := alnum
	if len(key) > partialKeyLength {
		key = key[:partialKeyLength]
	}
	if key == "" {
		key = "xxxx"
	}
	for _, f := range files {
		if strings.Contains(strings.ToLower(f), key) {
			add(f)
		}
	}
	return candidates
}

// resolveSummary returns the first readable candidate. Unreadable candidates
// are logged and reported as skipped.
func (g *Generator) resolveSummary(
	ctx context.Context, stat domain.GroupStats, override domain.GroupOverride, files []string,
) (text, file string, skipped []string) {
	for _, name := range SummaryCandidates(stat, override, files) {
		content, err := g.summaries.Read(ctx, name)
		if err == nil {
			return content, name, skipped
		}
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		logger.Warn("read summary %s: %v", name, err)
		skipped = append(skipped, name)
	}
	return "", "", skipped
}

// alnumLower lowercases s and drops everything outside [a-z0-9].
func alnumLower(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
