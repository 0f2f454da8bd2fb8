// ABOUTME: Entry point for the Dealflow MCP server and CLI
// ABOUTME: Routes to MCP server, CRM commands, sync, or TUI based on arguments
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/harperreed/dealflow/cli"
	"github.com/harperreed/dealflow/db"
)

const version = "0.1.0"

func main() {
	// Optional .env for Google OAuth credentials; absence is fine.
	_ = godotenv.Load()

	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/dealflow/dealflow.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("dealflow version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		database := mustOpenDatabase(*dbPath)
		defer database.Close()

		if err := cli.MCPCommand(database); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "tui":
		database := mustOpenDatabase(*dbPath)
		defer database.Close()

		if err := cli.TUICommand(database); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}

	case "crm":
		database := mustOpenDatabase(*dbPath)
		defer database.Close()

		if *initOnly {
			log.Println("Database initialized successfully")
			os.Exit(0)
		}

		if len(commandArgs) == 0 {
			fmt.Println("Error: crm requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		crmCommand := commandArgs[0]
		crmArgs := commandArgs[1:]

		if err := runCRMCommand(database, crmCommand, crmArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "sync":
		database := mustOpenDatabase(*dbPath)
		defer database.Close()

		if len(commandArgs) == 0 {
			fmt.Println("Error: sync requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		syncCommand := commandArgs[0]
		syncArgs := commandArgs[1:]

		switch syncCommand {
		case "init":
			if err := cli.SyncInitCommand(database, syncArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "contacts":
			if err := cli.SyncContactsCommand(database, syncArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown sync command: %s\n\n", syncCommand)
			printUsage()
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runCRMCommand(database *sql.DB, command string, args []string) error {
	switch command {
	// Contact commands
	case "add-contact":
		return cli.AddContactCommand(database, args)
	case "list-contacts":
		return cli.ListContactsCommand(database, args)
	case "delete-contact":
		return cli.DeleteContactCommand(database, args)

	// Note commands
	case "add-note":
		return cli.AddNoteCommand(database, args)
	case "list-notes":
		return cli.ListNotesCommand(database, args)

	// Pipeline commands
	case "add-pipeline":
		return cli.AddPipelineCommand(database, args)
	case "list-pipelines":
		return cli.ListPipelinesCommand(database, args)
	case "delete-pipeline":
		return cli.DeletePipelineCommand(database, args)

	// Deal commands
	case "add-deal":
		return cli.AddDealCommand(database, args)
	case "list-deals":
		return cli.ListDealsCommand(database, args)
	case "win-deal":
		return cli.WinDealCommand(database, args)
	case "lose-deal":
		return cli.LoseDealCommand(database, args)
	case "move-deal":
		return cli.MoveDealCommand(database, args)
	case "delete-deal":
		return cli.DeleteDealCommand(database, args)

	// Task commands
	case "add-task":
		return cli.AddTaskCommand(database, args)
	case "list-tasks":
		return cli.ListTasksCommand(database, args)
	case "complete-task":
		return cli.CompleteTaskCommand(database, args)
	case "delete-task":
		return cli.DeleteTaskCommand(database, args)

	default:
		fmt.Printf("Unknown crm command: %s\n\n", command)
		printUsage()
		os.Exit(1)
		return nil
	}
}

func mustOpenDatabase(dbPath string) *sql.DB {
	finalDBPath := getDatabasePath(dbPath)
	database, err := db.OpenDatabase(finalDBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return database
}

func getDatabasePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	return filepath.Join(xdg.DataHome, "dealflow", "dealflow.db")
}

func printUsage() {
	fmt.Printf(`dealflow v%s - CRM toolkit

USAGE:
  dealflow [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/dealflow/dealflow.db)
  --init                 Initialize database and exit (use with 'crm')

COMMANDS:
  mcp                    Start MCP server for Claude Desktop
  tui                    Interactive contact and note browser
  crm                    CRM management commands
  sync                   Google Contacts import

CRM COMMANDS:
  dealflow crm add-contact      Add a new contact
    --first-name <name>           First name (required)
    --last-name <name>            Last name
    --company <company>           Company name
    --emails <a@b,c@d>            Comma-separated email addresses
    --phones <p1,p2>              Comma-separated phone numbers

  dealflow crm list-contacts    List contacts
    --query <text>                Search by name, company, or email
    --limit <n>                   Max results (default: 50)

  dealflow crm add-note --content <text> <contact-id>
  dealflow crm list-notes [--page <n>] [--limit <n>] <contact-id>

  dealflow crm add-pipeline     Create a pipeline
    --name <name>                 Pipeline name (required)
    --stages <s1,s2>              Comma-separated stage names (required)

  dealflow crm add-deal         Create a deal
    --owner <id>                  Owner ID (required)
    --pipeline <id>               Pipeline ID (required)
    --stage <id>                  Stage ID (required)
    --contact <id>                Contact ID (required)
    --title <title>               Deal title (required)
    --amount <n>                  Amount (optional)
    --close-date <YYYY-MM-DD>     Expected close date (optional)

  dealflow crm win-deal <id>
  dealflow crm lose-deal --reason <reason> <id>
  dealflow crm move-deal --stage <stage-id> <id>

  dealflow crm add-task         Create a task
    --title <title>               Title (required)
    --description <text>          Description (required)
    --status <status>             pending, in_progress, completed
    --priority <priority>         low, medium, high
    --due <YYYY-MM-DDTHH:MM>      Due date (required)

  dealflow crm list-tasks [--status <status>]
  dealflow crm complete-task <id>

SYNC COMMANDS:
  dealflow sync init            Authorize Google Contacts access
  dealflow sync contacts        Import Google Contacts
`, version)
}
