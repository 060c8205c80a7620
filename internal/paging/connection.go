package paging

// Edge pairs a node with the cursor of its position. Node may be nil for
// nullable node types; the cursor is always set.
type Edge[T any] struct {
	Node   T      `json:"node"`
	Cursor Cursor `json:"cursor"`
}

// NewEdge returns an edge for node at cursor.
func NewEdge[T any](node T, cursor Cursor) Edge[T] {
	return Edge[T]{Node: node, Cursor: cursor}
}

// PageInfo summarizes one page of a connection.
type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *Cursor `json:"startCursor"`
	EndCursor       *Cursor `json:"endCursor"`
}

// NewPageInfo returns page info whose boundary cursors are taken from edges.
func NewPageInfo[T any](edges []Edge[T], hasNextPage, hasPreviousPage bool) PageInfo {
	info := PageInfo{HasNextPage: hasNextPage, HasPreviousPage: hasPreviousPage}
	if len(edges) > 0 {
		start := edges[0].Cursor
		end := edges[len(edges)-1].Cursor
		info.StartCursor = &start
		info.EndCursor = &end
	}
	return info
}

// ToMap renders the page info for map-based serializers.
func (p PageInfo) ToMap() map[string]any {
	m := map[string]any{
		"hasNextPage":     p.HasNextPage,
		"hasPreviousPage": p.HasPreviousPage,
		"startCursor":     nil,
		"endCursor":       nil,
	}
	if p.StartCursor != nil {
		m["startCursor"] = string(*p.StartCursor)
	}
	if p.EndCursor != nil {
		m["endCursor"] = string(*p.EndCursor)
	}
	return m
}

// Connection is the paginated result of one field evaluation. It is built
// fresh for each call and never modified afterwards.
type Connection[T any] struct {
	Edges    []Edge[T] `json:"edges"`
	PageInfo PageInfo  `json:"pageInfo"`
	// TotalCount is set only when requested and the source knows its length.
	TotalCount *int `json:"totalCount,omitempty"`
}

// NewConnection wraps hand-built edges and page info. Cursors of such
// connections are caller data; nothing here decodes or checks them.
func NewConnection[T any](edges []Edge[T], pageInfo PageInfo) *Connection[T] {
	if edges == nil {
		edges = []Edge[T]{}
	}
	return &Connection[T]{Edges: edges, PageInfo: pageInfo}
}

// Nodes returns the node of every edge, in order.
func (c *Connection[T]) Nodes() []T {
	nodes := make([]T, len(c.Edges))
	for i, e := range c.Edges {
		nodes[i] = e.Node
	}
	return nodes
}

// ToMap renders the connection for map-based serializers. Nodes are passed
// through untouched.
func (c *Connection[T]) ToMap() map[string]any {
	edges := make([]any, len(c.Edges))
	for i, e := range c.Edges {
		edges[i] = map[string]any{"node": e.Node, "cursor": string(e.Cursor)}
	}
	m := map[string]any{
		"edges":    edges,
		"pageInfo": c.PageInfo.ToMap(),
	}
	if c.TotalCount != nil {
		m["totalCount"] = *c.TotalCount
	}
	return m
}
