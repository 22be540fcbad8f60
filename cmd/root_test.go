package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "docvet.dev/pkg/docvet/internal/model"
)

func TestScanPaths(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []m.Path
	}{
		{"defaults to configured root", []string{}, []m.Path{"src"}},
		{"single path", []string{"lib"}, []m.Path{"lib"}},
		{"multiple paths keep order", []string{"lib", "app"}, []m.Path{"lib", "app"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scanPaths(tt.args))
		})
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"scan", "list", "view", "init", "version"} {
		require.True(t, names[want], "missing subcommand %q", want)
	}
}
