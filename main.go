package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"beyondbridge/internal/cli"
	"beyondbridge/internal/config"
	"beyondbridge/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// Optional .env file for local development
	_ = godotenv.Load()

	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "validate":
		cmd := cli.NewValidateCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "list":
		cmd := cli.NewListCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "import":
		cmd := cli.NewImportCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "set-password":
		cmd := cli.NewSetPasswordCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve         Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  validate      Validate the configured Cobalt session cookie\n")
	fmt.Fprintf(os.Stderr, "  list          List content available for import\n")
	fmt.Fprintf(os.Stderr, "  import        Import content by kind and ID\n")
	fmt.Fprintf(os.Stderr, "  set-password  Set the admin password for the local web UI\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
