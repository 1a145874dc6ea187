// Package cli exposes the core use cases as casuite subcommands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kirillkom/ca-suite-backend/internal/config"
)

// Env carries what every command needs. Tests swap in a memory filesystem.
type Env struct {
	FS     afero.Fs
	Out    io.Writer
	Config func() config.Config
}

func NewRootCmd(env Env) *cobra.Command {
	if env.Config == nil {
		env.Config = config.Load
	}
	root := &cobra.Command{
		Use:           "casuite",
		Short:         "CA-Suite backend tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(env.Out)

	root.AddCommand(
		newMigrateCmd(env),
		newNoticeCmd(env),
		newTallyCmd(env),
		newConfigCmd(env),
	)
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
