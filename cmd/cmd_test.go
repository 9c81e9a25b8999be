package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, expected := range []string{
		"overview", "nurse", "coverage", "workload", "recommend", "report",
		"convert", "cache", "analysis", "mcp", "version",
	} {
		assert.Contains(t, names, expected)
	}

	sub := func(parent string) []string {
		c, _, err := rootCmd.Find([]string{parent})
		require.NoError(t, err)
		var out []string
		for _, s := range c.Commands() {
			out = append(out, s.Name())
		}
		return out
	}
	assert.ElementsMatch(t, []string{"clear", "status"}, sub("cache"))
	assert.ElementsMatch(t, []string{"clear", "status", "export", "migrate"}, sub("analysis"))
}

func TestCommandFlags(t *testing.T) {
	for _, name := range []string{"format", "sheet", "skip-rows", "skip-cols", "limit", "output", "output-file", "emoji", "color", "cache-backend", "analysis-backend"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing persistent flag %s", name)
	}
	assert.NotNil(t, nurseCmd.Flags().Lookup("nurse"))
	assert.Equal(t, "all", nurseCmd.Flags().Lookup("filter").DefValue)
	assert.NotNil(t, coverageCmd.Flags().Lookup("rank"))
	assert.NotNil(t, workloadCmd.Flags().Lookup("rank"))
	assert.Equal(t, "-1", analysisMigrateCmd.Flags().Lookup("target-version").DefValue)
}

func TestRosterCommandsTakeOneSource(t *testing.T) {
	for _, c := range []string{"overview", "nurse", "coverage", "workload", "recommend", "report", "convert"} {
		found, _, err := rootCmd.Find([]string{c})
		require.NoError(t, err)
		assert.NoError(t, found.Args(found, []string{"roster.csv"}))
		assert.Error(t, found.Args(found, []string{"a.csv", "b.csv"}))
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, buf.String(), "shiftlens CLI")
	assert.Contains(t, buf.String(), "Version: dev")
}
