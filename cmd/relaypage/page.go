package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hanpama/relaypage/internal/field"
	"github.com/hanpama/relaypage/internal/paging"
	"github.com/hanpama/relaypage/internal/reqid"
)

func newPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Paginate a JSON array and print the resulting connection",
		Long: `Reads a JSON array from --input ("-" for stdin) as a lazy sequence and prints
one page of it as a Relay connection. Reading stops one element past the page.`,
		Args: cobra.NoArgs,
		RunE: runPage,
	}
	f := cmd.Flags()
	f.String("input", "", "JSON array file, or - for stdin")
	f.Int("first", 0, "number of nodes to return")
	f.String("after", "", "return nodes after this cursor")
	f.Int("last", 0, "backward page size (not supported)")
	f.String("before", "", "backward cursor (not supported)")
	f.String("field", "", "paged field Type.field declared in the config schema")
	f.String("ordering", "", "ordering key for cursors when --field is not set")
	f.Int("max-page-size", 0, "upper bound for --first when --field is not set")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runPage(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	f, err := pageField(cmd, e)
	if err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	r, err := openInput(cmd, input)
	if err != nil {
		return err
	}
	defer r.Close()

	var readErr error
	provider := func(context.Context) (paging.Source[json.RawMessage], error) {
		return paging.FromSeqErr(jsonArray(r, &readErr), func() error {
			if readErr != nil {
				return fmt.Errorf("failed to read %s: %w", input, readErr)
			}
			return nil
		}), nil
	}

	ctx, _ := reqid.NewContext(cmd.Context())
	conn, err := f.Resolve(ctx, provider, pageArgs(cmd))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(conn)
}

func pageField(cmd *cobra.Command, e *env) (*field.Field[json.RawMessage], error) {
	name, _ := cmd.Flags().GetString("field")
	if name == "" {
		ordering, _ := cmd.Flags().GetString("ordering")
		maxSize, _ := cmd.Flags().GetInt("max-page-size")
		return field.New[json.RawMessage]("Query", "items", paging.FieldConfig{
			Ordering:    ordering,
			MaxPageSize: maxSize,
		})
	}
	typeName, fieldName, ok := strings.Cut(name, ".")
	if !ok {
		return nil, fmt.Errorf("--field must be Type.field, got %q", name)
	}
	s, err := e.cfg.Schema.Assemble()
	if err != nil {
		return nil, err
	}
	return field.FromSchema[json.RawMessage](s, typeName, fieldName)
}

// pageArgs collects the pagination flags the user actually set.
func pageArgs(cmd *cobra.Command) map[string]any {
	raw := make(map[string]any)
	for _, name := range []string{"first", "last"} {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetInt(name)
			raw[name] = v
		}
	}
	for _, name := range []string{"after", "before"} {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			raw[name] = v
		}
	}
	return raw
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(path)
}

// jsonArray yields the elements of a JSON array one at a time. Decoding stops
// when the consumer stops; the first decoding error is stored in errp.
func jsonArray(r io.Reader, errp *error) iter.Seq[json.RawMessage] {
	return func(yield func(json.RawMessage) bool) {
		dec := json.NewDecoder(r)
		tok, err := dec.Token()
		if err != nil {
			*errp = err
			return
		}
		if d, ok := tok.(json.Delim); !ok || d != '[' {
			*errp = errors.New("input is not a JSON array")
			return
		}
		for dec.More() {
			var v json.RawMessage
			if err := dec.Decode(&v); err != nil {
				*errp = err
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}
