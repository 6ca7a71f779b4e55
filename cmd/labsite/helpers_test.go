package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMaxCommand(n *int) *cobra.Command {
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().IntVar(n, "max", 0, "")
	return cmd
}

func TestChangedInt(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want *int
	}{
		{"unset", nil, nil},
		{"explicit zero", []string{"--max", "0"}, intPtr(0)},
		{"explicit value", []string{"--max=30"}, intPtr(30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n int
			cmd := newMaxCommand(&n)
			require.NoError(t, cmd.ParseFlags(tt.args))

			got := changedInt(cmd, "max", n)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestChangedInt_SameForBothCommands(t *testing.T) {
	for _, cmd := range []*cobra.Command{publicationsCmd, worksCmd} {
		t.Run(cmd.Name(), func(t *testing.T) {
			require.NoError(t, cmd.Flags().Set("max", "0"))
			t.Cleanup(func() { cmd.Flags().Lookup("max").Changed = false })

			got := changedInt(cmd, "max", 0)
			require.NotNil(t, got, "--max 0 should override the config")
			assert.Equal(t, 0, *got)
		})
	}
}

func intPtr(n int) *int {
	return &n
}
