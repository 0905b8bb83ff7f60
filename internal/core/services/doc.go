// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The pipeline runs in two phases. Generator reads group statistics and
// summary documents, then writes the group list, the flat search index and
// the per-group topic index through an ArtifactStore. SearchService,
// TopicService and GroupService answer queries against those artifacts.
//
// Services are pure Go with no CGO.
package services
