package schema

var stringType = &Type{
	Name:        "String",
	Kind:        TypeKindScalar,
	Description: "The `String` scalar type represents textual data, represented as UTF-8 character sequences.",
}

var intType = &Type{
	Name:        "Int",
	Kind:        TypeKindScalar,
	Description: "The `Int` scalar type represents non-fractional signed whole numeric values.",
}

var floatType = &Type{
	Name:        "Float",
	Kind:        TypeKindScalar,
	Description: "The `Float` scalar type represents signed double-precision fractional values.",
}

var booleanType = &Type{
	Name:        "Boolean",
	Kind:        TypeKindScalar,
	Description: "The `Boolean` scalar type represents `true` or `false`.",
}

var idType = &Type{
	Name:        "ID",
	Kind:        TypeKindScalar,
	Description: "The `ID` scalar type represents a unique identifier, often used to refetch an object or as a key for caching.",
}

var builtinScalars = []*Type{stringType, intType, floatType, booleanType, idType}

// newPageInfoType returns the PageInfo type shared by every connection of a
// schema.
func newPageInfoType() *Type {
	return &Type{
		Name:        "PageInfo",
		Kind:        TypeKindObject,
		Description: "Information about pagination in a connection.",
		Generated:   true,
		Fields: []*Field{
			{Name: "hasNextPage", Type: NonNullType(NamedType("Boolean")), Description: "Indicates whether more edges exist following the set defined by the clients arguments."},
			{Name: "hasPreviousPage", Type: NonNullType(NamedType("Boolean")), Description: "Indicates whether more edges exist prior the set defined by the clients arguments."},
			{Name: "startCursor", Type: NamedType("String"), Description: "When paginating backwards, the cursor to continue."},
			{Name: "endCursor", Type: NamedType("String"), Description: "When paginating forwards, the cursor to continue."},
		},
	}
}

func isBuiltin(t *Type) bool {
	switch t {
	case stringType, intType, floatType, booleanType, idType:
		return true
	}
	return false
}
