package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/flowerpass/flowerpass/cmd/flowerpass/internal"
	"github.com/flowerpass/flowerpass/internal/config"
	"github.com/flowerpass/flowerpass/internal/logging"
	"github.com/flowerpass/flowerpass/internal/tui"
)

// cfg is the loaded configuration, populated by setup before any
// command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "flowerpass",
	Short: "Deterministic site password generator (Flower Password algorithm)",
	Long: `flowerpass derives per-site passwords from a single master password
using the Flower Password algorithm. The same master password and key
always produce the same password, so nothing secret is ever stored.

When run without a subcommand in an interactive terminal, flowerpass
launches an interactive form. Use 'flowerpass generate <key>' for
scripted use.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
	RunE:              runRootCmd,
}

// Execute runs the root command with signal handling
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// setup is called before any command runs. It parses global flags,
// loads configuration, and configures logging.
func setup(cmd *cobra.Command, args []string) error {
	flags, err := ParseGlobalFlags(cmd)
	if err != nil {
		return internal.WrapError(internal.ExitUsage, "invalid flags", err)
	}
	internal.SetVerbose(flags.IsVerbose())

	homeDir := flags.HomeDir
	if homeDir == "" {
		homeDir = os.Getenv("FLOWERPASS_HOME")
	}
	if homeDir == "" {
		homeDir = config.DefaultHomeDir()
	}

	configFile := flags.ConfigFile
	if configFile == "" {
		configFile = config.DefaultConfigPath(homeDir)
	}

	loader := config.NewConfigLoader(config.NewValidator())
	cfg, err = loader.LoadWithDefaults(configFile)
	if err != nil {
		return internal.WrapError(internal.ExitConfigError, "failed to load configuration", err)
	}
	if flags.HomeDir != "" {
		cfg.Core.HomeDir = flags.HomeDir
	}

	logCfg := cfg.Logging
	if flags.IsVerbose() {
		logCfg.Level = "debug"
	}
	if flags.IsQuiet() {
		logCfg.Level = "error"
	}
	if err := logging.Setup(logCfg, cmd.ErrOrStderr()); err != nil {
		return internal.WrapError(internal.ExitConfigError, "failed to configure logging", err)
	}

	return nil
}

func init() {
	RegisterGlobalFlags(rootCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(siteCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

// runRootCmd handles the root command when run without subcommands.
// In an interactive terminal it launches the derivation form.
func runRootCmd(cmd *cobra.Command, args []string) error {
	if isTerminalInteractive() {
		return tui.Run(cmd.Context(), cfg.Defaults.Length)
	}
	return cmd.Help()
}

// isTerminalInteractive checks if stdin is a terminal.
func isTerminalInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Args:  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{
		"bash", "zsh", "fish", "powershell",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		default:
			return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}
	},
}
