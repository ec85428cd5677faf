package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"beyondbridge/internal/config"
	"beyondbridge/internal/converters"
	"beyondbridge/internal/database"
	"beyondbridge/internal/database/actors"
	"beyondbridge/internal/database/compendium"
	"beyondbridge/internal/database/runs"
	"beyondbridge/internal/database/settings"
	"beyondbridge/internal/dndbeyond"
	"beyondbridge/internal/entities"
	"beyondbridge/internal/importer"
	"beyondbridge/internal/imports"
	"beyondbridge/internal/settingsstore"
)

// ImportCommand runs an import of selected content from the command line.
type ImportCommand struct {
	DatabasePath string
	Kind         string
	IDs          string
	Overwrite    bool
	Verbose      bool
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand() *ImportCommand {
	return &ImportCommand{}
}

// ParseFlags parses command line flags
func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the application database")
	fs.StringVar(&cmd.Kind, "kind", "", "Content kind: adventure, sourcebook, homebrew or character")
	fs.StringVar(&cmd.IDs, "ids", "", "Comma-separated content IDs to import")
	fs.BoolVar(&cmd.Overwrite, "overwrite", false, "Replace content that was imported before")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every progress event")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -kind <kind> -ids <id,id,...> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import content from D&D Beyond into the local library.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import -kind adventure -ids 1042\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import -kind character -ids 12345,67890 -overwrite\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Kind == "" || cmd.IDs == "" {
		fs.Usage()
		return fmt.Errorf("both -kind and -ids are required")
	}
	return nil
}

// Run executes the import command
func (cmd *ImportCommand) Run() error {
	kind := entities.ContentKind(cmd.Kind)
	if !kind.Valid() {
		return fmt.Errorf("unknown content kind %q", cmd.Kind)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	store := settingsstore.New(settings.NewRepository(db.DB))
	compendiumRepo := compendium.NewRepository(db.DB)
	actorRepo := actors.NewRepository(db.DB)
	runRepo := runs.NewRepository(db.DB)

	client := dndbeyond.NewClient()
	ctx := context.Background()

	// Probing first gives a clear error before any work is queued.
	if _, err := client.Probe(ctx, store.GetCobaltCookie()); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	processor := importer.NewProcessor(map[entities.ContentKind]importer.Handler{
		entities.ContentKindAdventure:  imports.NewAdventureImporter(compendiumRepo),
		entities.ContentKindSourcebook: imports.NewSourcebookImporter(compendiumRepo),
		entities.ContentKindHomebrew:   imports.NewHomebrewImporter(compendiumRepo),
		entities.ContentKindCharacter:  imports.NewCharacterImporter(client, store, converters.NewCharacterConverter(), actorRepo),
	})
	processor.SetRunRecorder(runRepo)
	processor.SetLastImportMarker(store)
	processor.SetProgressFunc(func(ev importer.Event) {
		if cmd.Verbose {
			fmt.Printf("[%3.0f%%] %s\n", ev.Fraction*100, ev.Message)
		}
	})

	var selections []importer.Selection
	for _, id := range strings.Split(cmd.IDs, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		selections = append(selections, importer.Selection{ID: id, Kind: kind})
	}

	queue, err := processor.Enqueue(selections, cmd.Overwrite)
	if err != nil {
		return err
	}

	result, err := processor.Start(ctx, queue)
	if err != nil {
		return err
	}

	fmt.Printf("\nImport finished: %d/%d imported, %d failed\n", result.Completed, result.Total, result.Failed)
	for _, task := range queue.Tasks {
		if task.Status == entities.TaskStatusFailed {
			fmt.Printf("  ❌ %s %s: %s\n", task.Kind, task.ID, task.Error)
		}
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d item(s) failed to import", result.Failed)
	}
	return nil
}
