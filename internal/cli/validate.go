package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"beyondbridge/internal/config"
	"beyondbridge/internal/database"
	"beyondbridge/internal/database/settings"
	"beyondbridge/internal/dndbeyond"
	"beyondbridge/internal/session"
	"beyondbridge/internal/settingsstore"
)

// ValidateCommand checks a Cobalt cookie against the provider.
type ValidateCommand struct {
	Cookie       string
	DatabasePath string
}

// NewValidateCommand creates a new ValidateCommand
func NewValidateCommand() *ValidateCommand {
	return &ValidateCommand{}
}

// ParseFlags parses command line flags
func (cmd *ValidateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)

	fs.StringVar(&cmd.Cookie, "cookie", "", "Cobalt cookie to validate (defaults to the stored setting)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the application database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s validate [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Validate a D&D Beyond Cobalt session cookie.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s validate\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s validate -cookie <value>\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run executes the validate command
func (cmd *ValidateCommand) Run() error {
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

	validator := session.NewValidator(dndbeyond.NewClient(), silentNotifier{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := validator.Validate(ctx, cookie); err != nil {
		fmt.Println("❌ Authentication failed")
		return err
	}

	fmt.Println("✅ Cookie is valid, authentication successful")
	return nil
}

// silentNotifier suppresses validation notifications; CLI commands print
// their own output.
type silentNotifier struct{}

func (silentNotifier) Info(string)  {}
func (silentNotifier) Error(string) {}
