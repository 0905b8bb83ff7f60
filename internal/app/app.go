// Package app wires the stores and services of chatdigest together from the
// resolved settings.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/custodia-labs/chatdigest/internal/adapters/driven/config/file"
	artifactfile "github.com/custodia-labs/chatdigest/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/chatdigest/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/chatdigest/internal/config"
	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driven"
	"github.com/custodia-labs/chatdigest/internal/core/services"
	"github.com/custodia-labs/chatdigest/internal/logger"
)

// Stores are the driven adapters the services run on. Messages may be nil when
// the chat database is unavailable.
type Stores struct {
	Messages   driven.MessageStore
	Summaries  driven.SummaryStore
	Artifacts  driven.ArtifactStore
	Display    driven.DisplayConfigStore
	Highlights driven.HighlightStore
}

// App holds every service dependency of chatdigest.
type App struct {
	Settings *config.Settings
	Stores   Stores

	Extractor  *services.Extractor
	Dates      services.DateFormatter
	Search     *services.SearchService
	Topics     *services.TopicService
	Groups     *services.GroupService
	Highlights *services.HighlightService
	Auth       *services.AuthService
	Generator  *services.Generator

	closers []io.Closer
}

// Open creates the on-disk stores named by settings and assembles the app.
// A chat database that cannot be opened is logged and left out; generation
// then publishes empty artifacts.
func Open(ctx context.Context, settings *config.Settings) (*App, error) {
	var closers []io.Closer
	fail := func(err error) (*App, error) {
		for _, c := range closers {
			_ = c.Close()
		}
		return nil, err
	}

	stores := Stores{Summaries: artifactfile.NewSummaryStore(settings.SummariesDir)}

	ms, err := sqlite.OpenMessageStore(ctx, settings.Database)
	if err != nil {
		logger.Warn("message database unavailable: %v", err)
	} else {
		stores.Messages = ms
		closers = append(closers, ms)
	}

	artifacts, err := artifactfile.NewArtifactStore(settings.OutputDir)
	if err != nil {
		return fail(fmt.Errorf("output directory: %w", err))
	}
	stores.Artifacts = artifacts

	display, err := file.NewDisplayConfigStore(settings.GroupsFile)
	if err != nil {
		return fail(fmt.Errorf("display config: %w", err))
	}
	stores.Display = display

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return fail(fmt.Errorf("application database: %w", err))
	}
	closers = append(closers, store)
	stores.Highlights = store.HighlightStore()

	a, err := Assemble(settings, stores)
	if err != nil {
		return fail(err)
	}
	a.closers = closers
	return a, nil
}

// Assemble builds the services over already constructed stores.
func Assemble(settings *config.Settings, stores Stores) (*App, error) {
	if stores.Summaries == nil || stores.Artifacts == nil {
		return nil, fmt.Errorf("%w: summary and artifact stores are required", domain.ErrInvalidInput)
	}

	loc, err := settings.Location()
	if err != nil {
		return nil, err
	}

	a := &App{
		Settings:  settings,
		Stores:    stores,
		Extractor: services.NewExtractor(domain.DefaultCatalog(), services.DefaultExtractOptions()),
		Dates:     services.NewDateFormatter(loc),
	}
	a.Search = services.NewSearchService(stores.Artifacts, nil)
	a.Topics = services.NewTopicService(stores.Artifacts, a.Extractor, a.Dates)
	a.Groups = services.NewGroupService(stores.Artifacts, a.Extractor)
	a.Auth = services.NewAuthService(
		settings.Server.PasswordHash, settings.Server.SessionSecret, settings.Server.SessionTTL,
	)
	a.Generator = services.NewGenerator(
		stores.Messages, stores.Summaries, stores.Artifacts, stores.Display, a.Extractor, a.Dates,
	)
	if stores.Highlights != nil {
		a.Highlights = services.NewHighlightService(stores.Highlights)
	}
	return a, nil
}

// WatchPaths lists what generate --watch observes: the summaries directory and
// the display configuration file.
func (a *App) WatchPaths() []string {
	paths := []string{a.Settings.SummariesDir}
	if d, ok := a.Stores.Display.(*file.DisplayConfigStore); ok {
		paths = append(paths, filepath.Clean(d.Path()))
	}
	return paths
}

// Close releases the stores opened by Open.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
