package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanpama/relaypage/internal/language"
	"github.com/hanpama/relaypage/internal/schema"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the SDL of the configured schema with connection types generated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if len(e.cfg.Schema.Types) == 0 {
				return errors.New("no types configured; pass --config")
			}
			s, err := e.cfg.Schema.Assemble()
			if err != nil {
				return err
			}
			sdl := schema.Render(s)
			if err := language.ValidateSchema("relaypage.graphql", sdl); err != nil {
				return fmt.Errorf("generated schema is invalid: %w", err)
			}
			e.logger.WithField("paged_fields", len(s.PagedFields())).Debug("schema assembled")
			_, err = fmt.Fprint(cmd.OutOrStdout(), sdl)
			return err
		},
	}
}
