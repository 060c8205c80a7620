package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hanpama/relaypage/internal/paging"
)

func newCursorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Encode and decode cursors",
	}
	cmd.PersistentFlags().String("ordering", "", "ordering key baked into the cursor")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "encode <position>",
			Short: "Print the cursor of a zero-based position",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pos, err := strconv.Atoi(args[0])
				if err != nil || pos < 0 {
					return fmt.Errorf("position must be a non-negative integer, got %q", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), cursorCodec(cmd).Encode(pos))
				return nil
			},
		},
		&cobra.Command{
			Use:   "decode <cursor>",
			Short: "Print the position a cursor points at",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pos, err := cursorCodec(cmd).Decode(paging.Cursor(args[0]))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), pos)
				return nil
			},
		},
	)
	return cmd
}

func cursorCodec(cmd *cobra.Command) paging.CursorCodec {
	ordering, _ := cmd.Flags().GetString("ordering")
	return paging.NewCursorCodec(ordering)
}
