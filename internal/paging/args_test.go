package paging

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseArguments(t *testing.T) {
	after := Cursor("abc")
	cases := []struct {
		name string
		raw  map[string]any
		want Arguments
	}{
		{"empty", nil, Arguments{}},
		{"int", map[string]any{"first": 3}, Arguments{First: intp(3)}},
		{"int64", map[string]any{"first": int64(3)}, Arguments{First: intp(3)}},
		{"int32", map[string]any{"first": int32(3)}, Arguments{First: intp(3)}},
		{"json number", map[string]any{"first": float64(3)}, Arguments{First: intp(3)}},
		{"query string", map[string]any{"first": "3", "after": "abc"}, Arguments{First: intp(3), After: &after}},
		{"pointers", map[string]any{"first": intp(0), "after": (*string)(nil)}, Arguments{First: intp(0)}},
		{"cursor type", map[string]any{"after": after}, Arguments{After: &after}},
		{"negative kept", map[string]any{"first": -1}, Arguments{First: intp(-1)}},
		{"nil backward pointers", map[string]any{"last": (*int)(nil), "before": (*string)(nil)}, Arguments{}},
		{"extra keys ignored", map[string]any{"orderBy": "name"}, Arguments{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseArguments(tc.raw)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseArguments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseArgumentsRejects(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		code Code
		arg  string
	}{
		{"fractional", map[string]any{"first": 1.5}, CodeInvalidPageSize, "first"},
		{"huge float", map[string]any{"first": math.Inf(1)}, CodeInvalidPageSize, "first"},
		{"non numeric", map[string]any{"first": "ten"}, CodeInvalidPageSize, "first"},
		{"bool", map[string]any{"first": true}, CodeInvalidPageSize, "first"},
		{"numeric cursor", map[string]any{"after": 5}, CodeInvalidCursor, "after"},
		{"last", map[string]any{"last": 2}, CodeUnsupportedPaginationDirection, "last"},
		{"before", map[string]any{"before": "abc"}, CodeUnsupportedPaginationDirection, "before"},
		{"last of wrong type", map[string]any{"last": "abc"}, CodeUnsupportedPaginationDirection, "last"},
		{"before of wrong type", map[string]any{"before": 5}, CodeUnsupportedPaginationDirection, "before"},
		{"before beside valid first", map[string]any{"first": 2, "before": true}, CodeUnsupportedPaginationDirection, "before"},
		{"last beside bad first", map[string]any{"first": "ten", "last": []int{1}}, CodeUnsupportedPaginationDirection, "last"},
		{"last beside bad after", map[string]any{"after": 5, "last": 1}, CodeUnsupportedPaginationDirection, "last"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseArguments(tc.raw)
			require.Error(t, err)
			require.Equal(t, tc.code, CodeOf(err))
			var pe *Error
			require.ErrorAs(t, err, &pe)
			require.Equal(t, tc.arg, pe.Argument)
		})
	}
}

func TestForward(t *testing.T) {
	args := Forward(nil, "")
	require.Nil(t, args.First)
	require.Nil(t, args.After)
	require.False(t, args.IsBackward())

	args = Forward(intp(2), "c")
	require.Equal(t, 2, *args.First)
	require.Equal(t, Cursor("c"), *args.After)

	require.True(t, Arguments{Last: intp(1)}.IsBackward())
}

func TestErrorShape(t *testing.T) {
	_, err := Paginate(FromSlice([]int{}), Arguments{Last: intp(1)}, Options{})
	var pe *Error
	require.ErrorAs(t, err, &pe)

	require.Equal(t, map[string]any{
		"code":     "UNSUPPORTED_PAGINATION_DIRECTION",
		"argument": "last",
	}, pe.Extensions())
	require.Equal(t, "InvalidArgument", pe.GRPCStatus().Code().String())
	require.Empty(t, CodeOf(nil))
}

func TestConnectionToMap(t *testing.T) {
	codec := CursorCodec{}
	conn, err := Paginate(FromSlice([]any{"a", nil}), Arguments{First: intp(1)}, Options{})
	require.NoError(t, err)

	want := map[string]any{
		"edges": []any{map[string]any{"node": "a", "cursor": string(codec.Encode(0))}},
		"pageInfo": map[string]any{
			"hasNextPage":     true,
			"hasPreviousPage": false,
			"startCursor":     string(codec.Encode(0)),
			"endCursor":       string(codec.Encode(0)),
		},
	}
	if diff := cmp.Diff(want, conn.ToMap()); diff != "" {
		t.Errorf("ToMap mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, []any{"a"}, conn.Nodes())
}
