package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/flowerpass/flowerpass/cmd/flowerpass/internal"
	"github.com/flowerpass/flowerpass/internal/store"
	"github.com/flowerpass/flowerpass/pkg/fpcode"
)

var generateFlags struct {
	length      int
	passwordEnv string
	copyResult  bool
}

var generateCmd = &cobra.Command{
	Use:     "generate <key>",
	Aliases: []string{"gen"},
	Short:   "Derive a password for a key",
	Long: `Derive a deterministic password for a key (typically a domain name).

The master password is read from a no-echo prompt, or from an
environment variable with --password-env. It is never stored or logged.

The length is resolved in order: --length flag, the site profile saved
with 'flowerpass site set', then the configured default.

Examples:
  flowerpass generate github.com
  flowerpass generate github.com --length 20 --copy
  flowerpass generate github.com --password-env FP_MASTER --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&generateFlags.length, "length", "l", 0,
		fmt.Sprintf("Password length %d-%d (default: site profile or config)", fpcode.MinLength, fpcode.MaxLength))
	generateCmd.Flags().StringVar(&generateFlags.passwordEnv, "password-env", "",
		"Read the master password from this environment variable")
	generateCmd.Flags().BoolVarP(&generateFlags.copyResult, "copy", "c", false,
		"Copy the password to the clipboard instead of printing it")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	key := args[0]

	length, err := resolveGenerateLength(cmd, key)
	if err != nil {
		return err
	}

	master, err := readMasterPassword(cmd)
	if err != nil {
		return err
	}

	result, err := fpcode.Code(master, key, length)
	if err != nil {
		return err
	}

	formatter := internal.NewFormatter(globalFlags.GetOutputFormat(), cmd.OutOrStdout())

	if generateFlags.copyResult || cfg.Defaults.Copy {
		if err := clipboard.WriteAll(result); err != nil {
			return internal.WrapError(internal.ExitError, "failed to copy to clipboard", err)
		}
		return formatter.PrintSuccess(fmt.Sprintf("password for %s copied to clipboard", key))
	}

	if globalFlags.GetOutputFormat() == internal.FormatJSON {
		return formatter.PrintJSON(map[string]interface{}{
			"key":      key,
			"length":   length,
			"password": result,
		})
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), result)
	return err
}

// resolveGenerateLength picks the derivation length: explicit flag,
// then the stored site profile, then the configured default.
func resolveGenerateLength(cmd *cobra.Command, key string) (int, error) {
	if generateFlags.length != 0 {
		return generateFlags.length, nil
	}

	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		// A broken store should not block derivation; fall back to the
		// configured default.
		slog.Warn("site profile store unavailable", "error", err)
		return cfg.Defaults.Length, nil
	}
	defer s.Close()

	profile, err := s.Get(cmd.Context(), key)
	if errors.Is(err, store.ErrNotFound) {
		return cfg.Defaults.Length, nil
	}
	if err != nil {
		return 0, internal.WrapError(internal.ExitStoreError, "failed to load site profile", err)
	}

	slog.Debug("using site profile length", "site", key, "length", profile.Length)
	return profile.Length, nil
}

// readMasterPassword reads the master password from the configured
// environment variable, a no-echo terminal prompt, or piped stdin.
func readMasterPassword(cmd *cobra.Command) (string, error) {
	if generateFlags.passwordEnv != "" {
		master := os.Getenv(generateFlags.passwordEnv)
		if master == "" {
			return "", internal.NewCLIError(internal.ExitUsage,
				fmt.Sprintf("environment variable %s is empty or unset", generateFlags.passwordEnv))
		}
		return master, nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Master password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read master password: %w", err)
		}
		master := string(raw)
		if master == "" {
			return "", internal.NewCLIError(internal.ExitUsage, "master password must not be empty")
		}
		return master, nil
	}

	// Not a terminal: read one line from stdin (pipes, scripts).
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read master password from stdin: %w", err)
	}
	master := strings.TrimRight(line, "\r\n")
	if master == "" {
		return "", internal.NewCLIError(internal.ExitUsage, "master password must not be empty")
	}
	return master, nil
}
