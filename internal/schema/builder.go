package schema

import (
	"errors"
	"fmt"

	"github.com/iancoleman/strcase"
	"github.com/samber/lo"

	"github.com/hanpama/relaypage/internal/language"
	"github.com/hanpama/relaypage/internal/paging"
)

var (
	ErrDuplicateType  = errors.New("schema: duplicate type")
	ErrDuplicateField = errors.New("schema: duplicate field")
	ErrUnknownType    = errors.New("schema: unknown type")
	ErrNotAList       = errors.New("schema: paged field is not a list")
	ErrNameConflict   = errors.New("schema: generated type name conflict")
)

// TypeDef declares an object, scalar or enum type. Extensions use the same
// shape with only Name and Fields set.
type TypeDef struct {
	Name        string     `mapstructure:"name"`
	Kind        string     `mapstructure:"kind"` // object (default), scalar or enum
	Description string     `mapstructure:"description"`
	Fields      []FieldDef `mapstructure:"fields"`
	Values      []string   `mapstructure:"values"`
}

// FieldDef declares a field. Type is a GraphQL type expression such as
// "[User!]!".
type FieldDef struct {
	Name        string              `mapstructure:"name"`
	Type        string              `mapstructure:"type"`
	Description string              `mapstructure:"description"`
	Deprecated  string              `mapstructure:"deprecated"`
	Paging      *paging.FieldConfig `mapstructure:"paging"`
}

// MergeExtensions folds extensions into the base declarations. Each extended
// type ends up with its own fields first, followed by extension fields in
// extension order. A field declared twice or an extension of an undeclared
// type is an error.
func MergeExtensions(base []TypeDef, extensions ...TypeDef) ([]TypeDef, error) {
	if dups := lo.FindDuplicatesBy(base, func(d TypeDef) string { return d.Name }); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateType, dups[0].Name)
	}
	merged := lo.Map(base, func(d TypeDef, _ int) TypeDef {
		d.Fields = append([]FieldDef(nil), d.Fields...)
		return d
	})
	index := make(map[string]int, len(merged))
	for i, d := range merged {
		index[d.Name] = i
	}

	for _, ext := range extensions {
		i, ok := index[ext.Name]
		if !ok {
			return nil, fmt.Errorf("%w: cannot extend %s", ErrUnknownType, ext.Name)
		}
		merged[i].Fields = append(merged[i].Fields, ext.Fields...)
	}
	for _, d := range merged {
		names := lo.Map(d.Fields, func(f FieldDef, _ int) string { return f.Name })
		if dups := lo.FindDuplicates(names); len(dups) > 0 {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateField, d.Name, dups[0])
		}
	}
	return merged, nil
}

// Assemble merges extensions into types and builds the schema, turning every
// paged list field into a connection field with first/after arguments.
func Assemble(queryType string, types []TypeDef, extensions []TypeDef) (*Schema, error) {
	if queryType == "" {
		queryType = "Query"
	}
	defs, err := MergeExtensions(types, extensions...)
	if err != nil {
		return nil, err
	}

	s := NewSchema(queryType)
	for _, def := range defs {
		if _, ok := s.Types[def.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateType, def.Name)
		}
		t, err := buildType(def)
		if err != nil {
			return nil, err
		}
		s.Types[t.Name] = t
	}
	if s.GetQueryType() == nil {
		return nil, fmt.Errorf("%w: query type %s", ErrUnknownType, queryType)
	}
	for _, t := range s.Types {
		for _, f := range t.Fields {
			if _, ok := s.Types[f.Type.GetNamedType()]; !ok {
				return nil, fmt.Errorf("%w: %s referenced by %s.%s", ErrUnknownType, f.Type.GetNamedType(), t.Name, f.Name)
			}
		}
	}

	b := &connectionBuilder{schema: s, owners: make(map[string]string)}
	for _, def := range defs {
		t := s.Types[def.Name]
		for _, f := range t.Fields {
			if f.Paging == nil {
				continue
			}
			if err := b.add(t, f); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func buildType(def TypeDef) (*Type, error) {
	switch def.Kind {
	case "", "object":
		t := &Type{Name: def.Name, Kind: TypeKindObject, Description: def.Description}
		for _, fd := range def.Fields {
			f, err := buildField(def.Name, fd)
			if err != nil {
				return nil, err
			}
			t.Fields = append(t.Fields, f)
		}
		return t, nil
	case "scalar":
		return &Type{Name: def.Name, Kind: TypeKindScalar, Description: def.Description}, nil
	case "enum":
		t := &Type{Name: def.Name, Kind: TypeKindEnum, Description: def.Description}
		for _, v := range def.Values {
			t.EnumValues = append(t.EnumValues, &EnumValue{Name: v})
		}
		return t, nil
	}
	return nil, fmt.Errorf("schema: type %s has unsupported kind %q", def.Name, def.Kind)
}

func buildField(owner string, def FieldDef) (*Field, error) {
	typ, err := language.ParseType(def.Type)
	if err != nil {
		return nil, fmt.Errorf("schema: field %s.%s: %w", owner, def.Name, err)
	}
	f := &Field{
		Name:              def.Name,
		Description:       def.Description,
		Type:              buildTypeRef(typ),
		IsDeprecated:      def.Deprecated != "",
		DeprecationReason: def.Deprecated,
	}
	if def.Paging != nil {
		cfg := *def.Paging
		f.Paging = &cfg
	}
	return f, nil
}

func buildTypeRef(t *language.Type) *TypeRef {
	var ref *TypeRef
	if t.Elem != nil {
		ref = ListType(buildTypeRef(t.Elem))
	} else {
		ref = NamedType(t.NamedType)
	}
	if t.NonNull {
		ref = NonNullType(ref)
	}
	return ref
}

// ConnectionName returns the default connection name for a paged field.
func ConnectionName(typeName, fieldName string) string {
	return strcase.ToCamel(typeName) + strcase.ToCamel(fieldName)
}

type connectionBuilder struct {
	schema *Schema
	// owners maps generated type names to the field that produced them.
	owners map[string]string
}

func (b *connectionBuilder) add(owner *Type, f *Field) error {
	path := owner.Name + "." + f.Name
	if err := f.Paging.Validate(); err != nil {
		return fmt.Errorf("schema: field %s: %w", path, err)
	}
	if !f.Type.IsList() {
		return fmt.Errorf("%w: %s has type %s", ErrNotAList, path, f.Type)
	}
	if f.Paging.ConnectionName == "" {
		f.Paging.ConnectionName = ConnectionName(owner.Name, f.Name)
	}
	name := f.Paging.ConnectionName
	node := f.Type.Nullable().OfType

	if err := b.claim(path, "PageInfo", true); err != nil {
		return err
	}
	if _, ok := b.schema.Types["PageInfo"]; !ok {
		b.schema.Types["PageInfo"] = newPageInfoType()
	}

	edgeName := name + "Edge"
	connName := name + "Connection"
	for _, n := range []string{edgeName, connName} {
		if err := b.claim(path, n, false); err != nil {
			return err
		}
	}

	b.schema.Types[edgeName] = &Type{
		Name:        edgeName,
		Kind:        TypeKindObject,
		Description: "An edge in a connection.",
		Generated:   true,
		Fields: []*Field{
			{Name: "cursor", Type: NonNullType(NamedType("String")), Description: "A cursor for use in pagination."},
			{Name: "node", Type: node, Description: "The item at the end of the edge."},
		},
	}
	conn := &Type{
		Name:        connName,
		Kind:        TypeKindObject,
		Description: "A connection to a list of items.",
		Generated:   true,
		Fields: []*Field{
			{Name: "pageInfo", Type: NonNullType(NamedType("PageInfo")), Description: "Information to aid in pagination."},
			{Name: "edges", Type: ListType(NonNullType(NamedType(edgeName))), Description: "A list of edges."},
			{Name: "nodes", Type: ListType(node), Description: "A flattened list of the nodes."},
		},
	}
	if f.Paging.IncludeTotalCount {
		conn.Fields = append(conn.Fields, &Field{Name: "totalCount", Type: NonNullType(NamedType("Int")), Description: "Identifies the total count of items in the connection."})
	}
	b.schema.Types[connName] = conn

	f.NodeType = node
	connRef := NamedType(connName)
	if f.Type.IsNonNull() {
		connRef = NonNullType(connRef)
	}
	f.Type = connRef
	for _, arg := range []string{"first", "after"} {
		if lo.ContainsBy(f.Arguments, func(a *InputValue) bool { return a.Name == arg }) {
			return fmt.Errorf("%w: %s already declares argument %s", ErrNameConflict, path, arg)
		}
	}
	f.Arguments = append(f.Arguments,
		&InputValue{Name: "first", Type: NamedType("Int"), Description: "Returns the first _n_ elements from the list."},
		&InputValue{Name: "after", Type: NamedType("String"), Description: "Returns the elements in the list that come after the specified cursor."},
	)
	return nil
}

// claim reserves a generated type name for path. Shared names (PageInfo)
// may be claimed by any number of fields but never collide with a declared
// type.
func (b *connectionBuilder) claim(path, name string, shared bool) error {
	if owner, ok := b.owners[name]; ok {
		if shared {
			return nil
		}
		return fmt.Errorf("%w: %s is generated for both %s and %s", ErrNameConflict, name, owner, path)
	}
	if _, ok := b.schema.Types[name]; ok {
		return fmt.Errorf("%w: %s is already declared", ErrNameConflict, name)
	}
	b.owners[name] = path
	return nil
}
