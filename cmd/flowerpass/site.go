package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowerpass/flowerpass/cmd/flowerpass/internal"
	"github.com/flowerpass/flowerpass/internal/store"
	"github.com/flowerpass/flowerpass/pkg/fpcode"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Manage per-site derivation profiles",
	Long: `Manage per-site derivation profiles.

A profile remembers the password length (and optional notes) used for a
site, so 'flowerpass generate' picks the right length automatically.
Profiles contain no secrets: no master password and no derived password
is ever stored.`,
}

var siteSetFlags struct {
	length int
	notes  string
}

var siteSetCmd = &cobra.Command{
	Use:   "set <site>",
	Short: "Save or update a site profile",
	Long: `Save or update the derivation profile for a site.

Examples:
  flowerpass site set github.com --length 20
  flowerpass site set legacybank.example --length 8 --notes "max 8 chars"`,
	Args: cobra.ExactArgs(1),
	RunE: runSiteSet,
}

var siteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved site profiles",
	RunE:  runSiteList,
}

var siteRemoveCmd = &cobra.Command{
	Use:     "remove <site>",
	Aliases: []string{"rm"},
	Short:   "Remove a site profile",
	Args:    cobra.ExactArgs(1),
	RunE:    runSiteRemove,
}

func init() {
	siteSetCmd.Flags().IntVarP(&siteSetFlags.length, "length", "l", 0,
		fmt.Sprintf("Password length %d-%d (required)", fpcode.MinLength, fpcode.MaxLength))
	siteSetCmd.Flags().StringVar(&siteSetFlags.notes, "notes", "", "Free-form notes for this site")
	_ = siteSetCmd.MarkFlagRequired("length")

	siteCmd.AddCommand(siteSetCmd)
	siteCmd.AddCommand(siteListCmd)
	siteCmd.AddCommand(siteRemoveCmd)
}

// openSiteStore opens the configured site profile store.
func openSiteStore() (*store.Store, error) {
	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, internal.WrapError(internal.ExitStoreError, "failed to open site profile store", err)
	}
	return s, nil
}

func runSiteSet(cmd *cobra.Command, args []string) error {
	s, err := openSiteStore()
	if err != nil {
		return err
	}
	defer s.Close()

	profile := store.Profile{
		Site:   args[0],
		Length: siteSetFlags.length,
		Notes:  siteSetFlags.notes,
	}
	if err := s.Put(cmd.Context(), profile); err != nil {
		return err
	}

	formatter := internal.NewFormatter(globalFlags.GetOutputFormat(), cmd.OutOrStdout())
	return formatter.PrintSuccess(fmt.Sprintf("profile for %s saved (length %d)", profile.Site, profile.Length))
}

func runSiteList(cmd *cobra.Command, args []string) error {
	s, err := openSiteStore()
	if err != nil {
		return err
	}
	defer s.Close()

	profiles, err := s.List(cmd.Context())
	if err != nil {
		return internal.WrapError(internal.ExitStoreError, "failed to list site profiles", err)
	}

	formatter := internal.NewFormatter(globalFlags.GetOutputFormat(), cmd.OutOrStdout())

	if len(profiles) == 0 && globalFlags.GetOutputFormat() == internal.FormatText {
		cmd.Println("No site profiles saved. Add one with 'flowerpass site set <site> --length <n>'.")
		return nil
	}

	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []string{
			p.Site,
			strconv.Itoa(p.Length),
			p.Notes,
			p.UpdatedAt.Local().Format(time.DateTime),
		})
	}
	return formatter.PrintTable([]string{"site", "length", "notes", "updated"}, rows)
}

func runSiteRemove(cmd *cobra.Command, args []string) error {
	s, err := openSiteStore()
	if err != nil {
		return err
	}
	defer s.Close()

	site := args[0]
	if err := s.Delete(cmd.Context(), site); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return internal.NewCLIError(internal.ExitUsage, fmt.Sprintf("no profile for %s", site))
		}
		return internal.WrapError(internal.ExitStoreError, "failed to remove site profile", err)
	}

	formatter := internal.NewFormatter(globalFlags.GetOutputFormat(), cmd.OutOrStdout())
	return formatter.PrintSuccess(fmt.Sprintf("profile for %s removed", site))
}
