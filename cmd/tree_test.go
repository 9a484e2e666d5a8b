package cmd

import (
	"bytes"
	"testing"

	"github.com/gnames/gntol/pkg/tree"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTreeCommands verifies commands of the tree lifecycle.
func TestTreeCommands(t *testing.T) {
	tests := []struct {
		use     string
		get     func() *cobra.Command
		flags   []string
		example string
	}{
		{"build", getBuildCmd, []string{"data-dir"}, "gntol build"},
		{"link", getLinkCmd, []string{"tree"}, "gntol link --tree full"},
		{"reduce", getReduceCmd, []string{"tree", "data-dir"}, "gntol reduce"},
		{"query", getQueryCmd,
			[]string{"name", "type", "toroot", "excl", "limit", "tree", "pretty"},
			"gntol query --name"},
	}
	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			cmd := tt.get()
			require.NotNil(t, cmd)
			assert.Equal(t, tt.use, cmd.Use)
			assert.NotEmpty(t, cmd.Short)
			assert.NotNil(t, cmd.RunE)
			for _, f := range tt.flags {
				assert.NotNil(t, cmd.Flags().Lookup(f), "flag %s", f)
			}

			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{"--help"})
			require.NoError(t, cmd.Execute())
			assert.Contains(t, buf.String(), tt.example)
		})
	}
}

// TestTreeFlagDefaults verifies default trees of commands.
func TestTreeFlagDefaults(t *testing.T) {
	assert.Equal(t, "full", getLinkCmd().Flags().Lookup("tree").DefValue)
	assert.Equal(t, "images", getQueryCmd().Flags().Lookup("tree").DefValue)
	assert.Equal(t, "node", getQueryCmd().Flags().Lookup("type").DefValue)
	assert.Equal(t, "[]", getReduceCmd().Flags().Lookup("tree").DefValue)
}

func TestParseView(t *testing.T) {
	tests := []struct {
		in   string
		want tree.View
		ok   bool
	}{
		{"full", tree.Full, true},
		{"Picked", tree.Picked, true},
		{"images", tree.Images, true},
		{" trimmed ", tree.Trimmed, true},
		{"other", tree.Full, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := parseView(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}
