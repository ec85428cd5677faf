package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"beyondbridge/internal/config"
	"beyondbridge/internal/content"
	"beyondbridge/internal/database"
	"beyondbridge/internal/database/settings"
	"beyondbridge/internal/dndbeyond"
	"beyondbridge/internal/session"
	"beyondbridge/internal/settingsstore"
)

// ListCommand prints the user's importable content.
type ListCommand struct {
	Cookie       string
	DatabasePath string
	Characters   bool
}

// NewListCommand creates a new ListCommand
func NewListCommand() *ListCommand {
	return &ListCommand{}
}

// ParseFlags parses command line flags
func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)

	fs.StringVar(&cmd.Cookie, "cookie", "", "Cobalt cookie (defaults to the stored setting)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the application database")
	fs.BoolVar(&cmd.Characters, "characters", false, "List characters instead of owned content")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List adventures, sourcebooks and homebrew content available for import.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s list\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s list -characters\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the list command
func (cmd *ListCommand) Run() error {
	cookie := cmd.Cookie
	if cookie == "" {
		db, err := database.NewDatabase(cmd.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		store := settingsstore.New(settings.NewRepository(db.DB))
		cookie = store.GetCobaltCookie()
	}

	client := dndbeyond.NewClient()
	validator := session.NewValidator(client, silentNotifier{})
	lister := content.NewLister(client)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	sess, err := validator.Validate(ctx, cookie)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if cmd.Characters {
		characters, err := lister.ListCharacters(ctx, sess)
		if err != nil {
			return err
		}
		fmt.Printf("Characters (%d):\n", len(characters))
		for _, c := range characters {
			fmt.Printf("  %-10s %s\n", c.ID, c.Name)
		}
		return nil
	}

	set, err := lister.ListContent(ctx, sess)
	if err != nil {
		return err
	}

	printSection("Adventures", set.Adventures)
	printSection("Sourcebooks", set.Sourcebooks)
	printSection("Homebrew", set.Homebrew)
	return nil
}

func printSection(title string, items []content.Item) {
	fmt.Printf("%s (%d):\n", title, len(items))
	for _, item := range items {
		fmt.Printf("  %-10s %s\n", item.ID, item.Name)
	}
	fmt.Println()
}
