package cli

import (
	"flag"
	"fmt"
	"os"

	"beyondbridge/internal/config"
	"beyondbridge/internal/database"
	"beyondbridge/internal/database/settings"
	"beyondbridge/internal/settingsstore"
	"beyondbridge/internal/webauth"
)

// SetPasswordCommand stores the admin password for the local web UI.
type SetPasswordCommand struct {
	DatabasePath string
	Password     string
	BcryptCost   int
}

// NewSetPasswordCommand creates a new SetPasswordCommand
func NewSetPasswordCommand() *SetPasswordCommand {
	return &SetPasswordCommand{}
}

// ParseFlags parses command line flags
func (cmd *SetPasswordCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("set-password", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the application database")
	fs.StringVar(&cmd.Password, "password", "", "New admin password (min 12 characters)")
	fs.IntVar(&cmd.BcryptCost, "bcrypt-cost", webauth.DefaultBcryptCost, "bcrypt cost factor")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s set-password -password <value> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Set the admin password used when AUTH_MODE=local.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Password == "" {
		fs.Usage()
		return fmt.Errorf("-password is required")
	}
	return nil
}

// Run executes the set-password command
func (cmd *SetPasswordCommand) Run() error {
	hash, err := webauth.HashPassword(cmd.Password, cmd.BcryptCost)
	if err != nil {
		return err
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	store := settingsstore.New(settings.NewRepository(db.DB))
	if err := store.SetAdminPasswordHash(hash); err != nil {
		return fmt.Errorf("failed to store password hash: %w", err)
	}

	fmt.Println("✅ Admin password updated")
	return nil
}
