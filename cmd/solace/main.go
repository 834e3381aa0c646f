package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	solace "github.com/unowned-ai/solace/pkg"
	"github.com/unowned-ai/solace/pkg/config"
	pkgdb "github.com/unowned-ai/solace/pkg/db"
	"github.com/unowned-ai/solace/pkg/logging"
	"github.com/unowned-ai/solace/pkg/utils"
)

var (
	cfgFile string
	v       = config.New()
	cfg     config.Config
	logger  = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:     "solace",
	Short:   "A wellness companion for students: mood, journal, tasks, chat and breathing.",
	Long:    ``,
	Version: fmt.Sprintf("v%s", solace.Version),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(logger)
		return nil
	},
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for solace.

Examples:

  Bash (current shell):
    $ source <(solace completion bash)

  Zsh:
    $ solace completion zsh > "${fpath[1]}/_solace"

  Fish:
    $ solace completion fish > ~/.config/fish/completions/solace.fish

  PowerShell:
    PS> solace completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
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
	Use:   "version",
	Short: "Print the version number of solace",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), solace.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the solace database",
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Create or migrate the database schema",
	Long: `Opens the SQLite database at --db (or the default location) and applies any
pending migrations. A missing database is created.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path, err := utils.ResolveAndEnsureDBPath(cfg.DB)
		if err != nil {
			return err
		}

		conn, err := pkgdb.Open(ctx, pkgdb.Options{Path: path, WAL: cfg.WAL, Sync: cfg.Sync})
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := pkgdb.Migrate(ctx, conn, logger); err != nil {
			return err
		}
		version, err := pkgdb.Version(ctx, conn)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Database %s is at schema version %d\n", path, version)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: solace.yaml or solace.toml in the data directory)")
	flags.String("db", "", "Path to the database file (default: system-specific data directory)")
	flags.Bool("wal", false, "Enable SQLite WAL (Write-Ahead Logging) mode")
	flags.String("sync", "FULL", "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json)")

	_ = v.BindPFlag(config.KeyDB, flags.Lookup("db"))
	_ = v.BindPFlag(config.KeyWAL, flags.Lookup("wal"))
	_ = v.BindPFlag(config.KeySync, flags.Lookup("sync"))
	_ = v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	dbCmd.AddCommand(dbUpgradeCmd)
	rootCmd.AddCommand(completionCmd, versionCmd, dbCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
