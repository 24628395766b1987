package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	eduquest "github.com/unowned-ai/eduquest/pkg"
	"github.com/unowned-ai/eduquest/pkg/app"
	"github.com/unowned-ai/eduquest/pkg/config"
	"github.com/unowned-ai/eduquest/pkg/db"
	"github.com/unowned-ai/eduquest/pkg/logging"
)

var (
	configFile string
	envFile    string

	cfg    *config.Config
	eduApp *app.App
)

// flagKeys maps command-line flags onto configuration keys. Only flags the
// user actually set override the file and the environment.
var flagKeys = map[string]string{
	"db":        "database.path",
	"notes":     "notes.directory",
	"output":    "output",
	"log-level": "log.level",
	"wal":       "database.wal",
	"sync":      "database.synchronous",
}

var rootCmd = &cobra.Command{
	Use:   "eduquest",
	Short: "A personal study organizer: calendar events, flashcards, notes and study time.",
	Long: `EduQuest keeps a calendar of study events, a daily flashcard deck,
plain-text notes and a history of how long you studied.

Settings come from eduquest.yaml (working directory or ~/.config/eduquest),
a .env file, EDUQUEST_* environment variables and the flags below, in
increasing order of precedence.`,
	Version:           fmt.Sprintf("v%s", eduquest.Version),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// setup loads the configuration and builds the app shared by every command.
func setup(cmd *cobra.Command, args []string) error {
	loader, err := config.NewLoader(configFile)
	if err != nil {
		return err
	}
	loader.WithEnvFile(envFile)
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			loader.Set(key, f.Value.String())
		}
	}

	loaded, err := loader.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	logger := logging.New(cmd.ErrOrStderr(), cfg.Log.Level)
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

	eduApp, err = app.New(*cfg)
	return err
}

// openApp makes sure the database and notes directory exist before a
// command touches them.
func openApp(cmd *cobra.Command) (context.Context, *app.App, error) {
	ctx := cmd.Context()
	if err := eduApp.Init(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return ctx, eduApp, nil
}

// noSetup skips configuration for commands that never touch storage.
func noSetup(cmd *cobra.Command, args []string) {}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for eduquest.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(eduquest completion bash)

  Zsh:
    $ eduquest completion zsh > "${fpath[1]}/_eduquest"

  Fish:
    $ eduquest completion fish > ~/.config/fish/completions/eduquest.fish

  PowerShell:
    PS> eduquest completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	PersistentPreRun:      noSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:              "version",
	Short:            "Print the version number of eduquest",
	PersistentPreRun: noSetup,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), eduquest.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the EduQuest database",
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Create the database or bring its schema up to date",
	Long: `Opens the SQLite database (see --db) and applies any schema migrations
the studydb component still needs. A missing database is created with the
latest schema.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, a, err := openApp(cmd)
		if err != nil {
			return err
		}
		c := a.Config()
		okColor.Fprintf(cmd.OutOrStdout(), "Database %s is at schema version %d (WAL: %t, Sync: %s)\n",
			c.Database.Path, db.TargetSchemaVersion, c.Database.WAL, syncLabel(c.Database.Synchronous))
		return nil
	},
}

func syncLabel(mode string) string {
	if mode == "" {
		return "default"
	}
	return mode
}

func initCmd() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Path to a yaml config file (default: eduquest.yaml in . or ~/.config/eduquest)")
	pf.StringVar(&envFile, "env-file", ".env", "Path to a .env file with EDUQUEST_* variables")
	pf.String("db", config.DefaultDBPath, "Path to the SQLite database file")
	pf.String("notes", config.DefaultNotesDir, "Directory holding note files")
	pf.StringP("output", "o", "text", "Output format: text, json or yaml")
	pf.String("log-level", "warn", "Log level: debug, info, warn or error")

	dbUpgradeCmd.Flags().Bool("wal", false, "Enable SQLite WAL (Write-Ahead Logging) mode.")
	dbUpgradeCmd.Flags().String("sync", "", "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA).")
	dbCmd.AddCommand(dbUpgradeCmd)

	initEventsCmd()
	initCalendarCmd()
	initFlashcardsCmd()
	initNotesCmd()
	initStudyCmd()
	initICSCmd()

	rootCmd.AddCommand(completionCmd, versionCmd, dbCmd,
		eventsCmd, calendarCmd, flashcardsCmd, notesCmd,
		historyCmd, studyCmd, icsCmd, tuiCmd, mcpCmd)
}

func main() {
	initCmd()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		errColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
