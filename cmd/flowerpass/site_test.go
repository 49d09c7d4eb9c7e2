package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowerpass/flowerpass/cmd/flowerpass/internal"
	"github.com/flowerpass/flowerpass/internal/store"
	"github.com/flowerpass/flowerpass/pkg/fpcode"
)

func setupSiteTestEnv(t *testing.T) {
	t.Helper()
	setupTestEnv(t)

	origSet := siteSetFlags
	t.Cleanup(func() { siteSetFlags = origSet })
	siteSetFlags.length = 0
	siteSetFlags.notes = ""
}

func newSiteTestCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{Use: "site"}
	cmd.SetContext(context.Background())
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	return cmd, &out
}

func TestRunSiteSet_AndList(t *testing.T) {
	setupSiteTestEnv(t)
	siteSetFlags.length = 20
	siteSetFlags.notes = "work"

	cmd, out := newSiteTestCommand()
	require.NoError(t, runSiteSet(cmd, []string{"github.com"}))
	assert.Contains(t, out.String(), "github.com")

	cmd, out = newSiteTestCommand()
	require.NoError(t, runSiteList(cmd, nil))
	assert.Contains(t, out.String(), "github.com")
	assert.Contains(t, out.String(), "20")
	assert.Contains(t, out.String(), "work")
}

func TestRunSiteSet_InvalidLength(t *testing.T) {
	setupSiteTestEnv(t)
	siteSetFlags.length = 1

	cmd, _ := newSiteTestCommand()
	err := runSiteSet(cmd, []string{"github.com"})

	var invalidErr *fpcode.InvalidLengthError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, 1, invalidErr.Length)
}

func TestRunSiteList_Empty(t *testing.T) {
	setupSiteTestEnv(t)

	cmd, out := newSiteTestCommand()
	require.NoError(t, runSiteList(cmd, nil))
	assert.Contains(t, out.String(), "No site profiles")
}

func TestRunSiteRemove(t *testing.T) {
	setupSiteTestEnv(t)

	s, err := store.Open(cfg.Store.Path)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), store.Profile{Site: "github.com", Length: 16}))
	require.NoError(t, s.Close())

	cmd, out := newSiteTestCommand()
	require.NoError(t, runSiteRemove(cmd, []string{"github.com"}))
	assert.Contains(t, out.String(), "removed")
}

func TestRunSiteRemove_Missing(t *testing.T) {
	setupSiteTestEnv(t)

	cmd, _ := newSiteTestCommand()
	err := runSiteRemove(cmd, []string{"nope.example"})
	require.Error(t, err)

	var cliErr *internal.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, internal.ExitUsage, cliErr.Code)
}
