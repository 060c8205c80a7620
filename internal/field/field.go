package field

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hanpama/relaypage/internal/eventbus"
	"github.com/hanpama/relaypage/internal/events"
	"github.com/hanpama/relaypage/internal/language"
	"github.com/hanpama/relaypage/internal/paging"
	"github.com/hanpama/relaypage/internal/reqid"
	"github.com/hanpama/relaypage/internal/schema"
)

// Provider produces the ordered sequence behind a paged field. It is called
// once per resolution, after the arguments have been validated.
type Provider[T any] func(ctx context.Context) (paging.Source[T], error)

// CustomProvider produces a connection built by the caller. Its cursors are
// passed through as-is.
type CustomProvider[T any] func(ctx context.Context, args paging.Arguments) (*paging.Connection[T], error)

// Field is a paged field registration.
type Field[T any] struct {
	typeName  string
	fieldName string
	config    paging.FieldConfig
	opts      paging.Options
}

// New registers a paged field. An empty ConnectionName is derived from the
// type and field names.
func New[T any](typeName, fieldName string, config paging.FieldConfig) (*Field[T], error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("field %s.%s: %w", typeName, fieldName, err)
	}
	if config.ConnectionName == "" {
		config.ConnectionName = schema.ConnectionName(typeName, fieldName)
	}
	return &Field[T]{
		typeName:  typeName,
		fieldName: fieldName,
		config:    config,
		opts:      config.Options(),
	}, nil
}

// FromSchema registers the paged field typeName.fieldName of an assembled
// schema.
func FromSchema[T any](s *schema.Schema, typeName, fieldName string) (*Field[T], error) {
	t, ok := s.Types[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", schema.ErrUnknownType, typeName)
	}
	f := t.Field(fieldName)
	if f == nil || f.Paging == nil {
		return nil, fmt.Errorf("field %s.%s is not paged", typeName, fieldName)
	}
	return New[T](typeName, fieldName, *f.Paging)
}

func (f *Field[T]) Config() paging.FieldConfig { return f.config }

func (f *Field[T]) Name() string { return f.typeName + "." + f.fieldName }

// Resolve parses raw arguments, validates them, obtains the sequence from
// provider and slices it.
func (f *Field[T]) Resolve(ctx context.Context, provider Provider[T], raw map[string]any) (*paging.Connection[T], error) {
	ctx, _ = reqid.Ensure(ctx)
	args, err := paging.ParseArguments(raw)
	if err != nil {
		f.finish(ctx, f.start(ctx, args), nil, false, err)
		return nil, err
	}
	return f.ResolveArgs(ctx, provider, args)
}

// ResolveArgs is Resolve with already-typed arguments.
func (f *Field[T]) ResolveArgs(ctx context.Context, provider Provider[T], args paging.Arguments) (conn *paging.Connection[T], err error) {
	ctx, _ = reqid.Ensure(ctx)
	start := f.start(ctx, args)
	defer func() { f.finish(ctx, start, conn, false, err) }()

	if err := paging.Validate(args, f.opts); err != nil {
		return nil, err
	}
	src, err := provider(ctx)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", f.Name(), err)
	}
	return paging.Paginate(src, args, f.opts)
}

// ResolveCustom validates raw arguments like Resolve and returns the
// connection built by provider unchanged.
func (f *Field[T]) ResolveCustom(ctx context.Context, provider CustomProvider[T], raw map[string]any) (conn *paging.Connection[T], err error) {
	ctx, _ = reqid.Ensure(ctx)
	args, err := paging.ParseArguments(raw)
	if err != nil {
		f.finish(ctx, f.start(ctx, args), nil, true, err)
		return nil, err
	}
	start := f.start(ctx, args)
	defer func() { f.finish(ctx, start, conn, true, err) }()

	if err := paging.Validate(args, f.opts); err != nil {
		return nil, err
	}
	conn, err = provider(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", f.Name(), err)
	}
	if conn == nil {
		return nil, fmt.Errorf("field %s: custom provider returned no connection", f.Name())
	}
	return conn, nil
}

// ResolveField is Resolve with arguments taken from a selected field.
func (f *Field[T]) ResolveField(ctx context.Context, provider Provider[T], sel *language.Field, vars map[string]any) (*paging.Connection[T], error) {
	raw, err := language.ArgumentValues(sel, vars)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", f.Name(), err)
	}
	return f.Resolve(ctx, provider, raw)
}

// resolution identifies one start/finish pair.
type resolution struct {
	id    string
	start time.Time
}

func (f *Field[T]) start(ctx context.Context, args paging.Arguments) resolution {
	r := resolution{id: uuid.NewString()}
	e := events.PageStart{ID: r.id, Type: f.typeName, Field: f.fieldName, First: args.First}
	if args.After != nil {
		e.After = string(*args.After)
	}
	eventbus.Publish(ctx, e)
	r.start = time.Now()
	return r
}

func (f *Field[T]) finish(ctx context.Context, r resolution, conn *paging.Connection[T], custom bool, err error) {
	e := events.PageFinish{
		ID:       r.id,
		Type:     f.typeName,
		Field:    f.fieldName,
		Custom:   custom,
		Code:     string(paging.CodeOf(err)),
		Err:      err,
		Duration: time.Since(r.start),
	}
	if conn != nil {
		e.Edges = len(conn.Edges)
		e.HasNextPage = conn.PageInfo.HasNextPage
		e.HasPreviousPage = conn.PageInfo.HasPreviousPage
	}
	eventbus.Publish(ctx, e)
}

// GraphQLError converts a resolution error into a GraphQL error located at
// path. Paging rejections carry their code and argument as extensions.
func GraphQLError(err error, path language.Path) *language.Error {
	gerr := &language.Error{Err: err, Message: err.Error(), Path: path}
	var pe *paging.Error
	if errors.As(err, &pe) {
		gerr.Extensions = pe.Extensions()
	}
	return gerr
}
