package schema

import "github.com/hanpama/relaypage/internal/paging"

// Schema is an assembled GraphQL schema.
type Schema struct {
	QueryType   string
	Types       map[string]*Type // All named types keyed by name
	Description string
}

// NewSchema returns an empty schema rooted at queryType with the built-in
// scalars registered.
func NewSchema(queryType string) *Schema {
	s := &Schema{QueryType: queryType, Types: make(map[string]*Type)}
	for _, t := range builtinScalars {
		s.Types[t.Name] = t
	}
	return s
}

// GetQueryType returns the root query type (may be nil if absent)
func (s *Schema) GetQueryType() *Type { return s.Types[s.QueryType] }

// PagedFields returns every paged field keyed by "Type.field".
func (s *Schema) PagedFields() map[string]*Field {
	out := make(map[string]*Field)
	for _, t := range s.Types {
		for _, f := range t.Fields {
			if f.Paging != nil {
				out[t.Name+"."+f.Name] = f
			}
		}
	}
	return out
}

// Type is a named GraphQL type.
type Type struct {
	Name        string
	Kind        TypeKind
	Description string
	Fields      []*Field     // For OBJECT
	EnumValues  []*EnumValue // For ENUM
	// Generated marks types produced by connection assembly.
	Generated bool
}

// Field looks up a field by name.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Field represents a field on an object.
type Field struct {
	Name              string
	Description       string
	Type              *TypeRef
	Arguments         []*InputValue
	IsDeprecated      bool
	DeprecationReason string
	// Paging is set on list fields exposed as connections. After assembly
	// ConnectionName is always filled in.
	Paging *paging.FieldConfig
	// NodeType is the original list element type of a paged field.
	NodeType *TypeRef
}

// TypeKind represents the kind of GraphQL type
type TypeKind string

const (
	TypeKindScalar TypeKind = "SCALAR"
	TypeKindObject TypeKind = "OBJECT"
	TypeKindEnum   TypeKind = "ENUM"
)

// TypeRef represents a reference to a type (can be wrapped)
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // For List and NonNull
	Named  string   // For named types
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

func (t *TypeRef) IsNonNull() bool {
	return t != nil && t.Kind == TypeRefKindNonNull
}

// IsList reports whether t is a list, possibly wrapped in Non-Null.
func (t *TypeRef) IsList() bool {
	if t == nil {
		return false
	}
	if t.Kind == TypeRefKindList {
		return true
	}
	return t.Kind == TypeRefKindNonNull && t.OfType != nil && t.OfType.Kind == TypeRefKindList
}

// Nullable strips an outer Non-Null, if any.
func (t *TypeRef) Nullable() *TypeRef {
	if t.IsNonNull() {
		return t.OfType
	}
	return t
}

func (t *TypeRef) GetNamedType() string {
	for current := t; current != nil; current = current.OfType {
		if current.Named != "" {
			return current.Named
		}
	}
	return ""
}

func (t *TypeRef) String() string { return renderTypeRef(t) }

type EnumValue struct {
	Name              string
	Description       string
	IsDeprecated      bool
	DeprecationReason string
}

type InputValue struct {
	Name         string
	Description  string
	Type         *TypeRef
	DefaultValue any
}

func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }
