// Package interfaces documents the core abstractions used throughout the
// application.
//
// # Interface Categories
//
// ## Provider Access Interfaces
//
//   - session.Prober: one authenticated probe request (internal/session/validator.go)
//   - content.ContentSource: the provider's listing endpoints (internal/content/lister.go)
//   - imports.CharacterSource: character detail payloads (internal/imports/character.go)
//
// ## Persistence Interfaces
//
//   - imports.CompendiumGateway: compendium lifecycle (internal/imports/gateway.go)
//   - imports.ActorGateway: actor lifecycle (internal/imports/gateway.go)
//   - importer.RunRecorder: run history persistence (internal/importer/processor.go)
//   - importer.LastImportMarker: last-import timestamp (internal/importer/processor.go)
//
// ## Pipeline Interfaces
//
//   - importer.Handler: per-kind import of a single item (internal/importer/processor.go)
//   - imports.CharacterConverter: provider payload to host actor (internal/imports/character.go)
//   - tasks.CharacterRefresher: background re-import (internal/tasks/refresh_character.go)
//
// # Adding a New Content Kind
//
// To support importing a new kind of content:
//
//  1. Add the kind constant in internal/entities and extend Valid().
//
//  2. Implement importer.Handler in internal/imports:
//
//     type MapImporter struct {
//         gateway CompendiumGateway
//     }
//
//     func (i *MapImporter) Import(ctx context.Context, id string, overwrite bool) error {
//         // fetch, convert, persist
//     }
//
//  3. Register the handler in the processor's dispatch table in
//     entrypoint.go and internal/cli/import.go.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they
// satisfy their interfaces. This catches missing methods at compile time
// rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
