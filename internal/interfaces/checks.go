package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"beyondbridge/internal/content"
	"beyondbridge/internal/converters"
	"beyondbridge/internal/database/actors"
	"beyondbridge/internal/database/compendium"
	"beyondbridge/internal/database/runs"
	"beyondbridge/internal/dndbeyond"
	"beyondbridge/internal/importer"
	"beyondbridge/internal/imports"
	"beyondbridge/internal/session"
	"beyondbridge/internal/settingsstore"
	"beyondbridge/internal/tasks"
)

// =============================================================================
// Provider Access
// =============================================================================

// Prober implementations
var _ session.Prober = (*dndbeyond.Client)(nil)

// ContentSource implementations
var _ content.ContentSource = (*dndbeyond.Client)(nil)

// CharacterSource implementations
var _ imports.CharacterSource = (*dndbeyond.Client)(nil)

// =============================================================================
// Persistence
// =============================================================================

// Gateway implementations
var _ imports.CompendiumGateway = (*compendium.Repository)(nil)
var _ imports.ActorGateway = (*actors.Repository)(nil)

// Run history implementations
var _ importer.RunRecorder = (*runs.Repository)(nil)
var _ importer.LastImportMarker = (*settingsstore.SettingsStore)(nil)

// Credential source implementations
var _ imports.CredentialSource = (*settingsstore.SettingsStore)(nil)

// =============================================================================
// Import Pipeline
// =============================================================================

// Handler implementations
var _ importer.Handler = (*imports.AdventureImporter)(nil)
var _ importer.Handler = (*imports.SourcebookImporter)(nil)
var _ importer.Handler = (*imports.HomebrewImporter)(nil)
var _ importer.Handler = (*imports.CharacterImporter)(nil)

// Converter implementations
var _ imports.CharacterConverter = (*converters.CharacterConverter)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

// Refresh job dependencies
var _ tasks.ActorReader = (*actors.Repository)(nil)
var _ tasks.CharacterRefresher = (*imports.CharacterImporter)(nil)
var _ tasks.RunCleaner = (*runs.Repository)(nil)
