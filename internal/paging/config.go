package paging

import "errors"

// FieldConfig declares how a list field is exposed as a connection.
type FieldConfig struct {
	// ConnectionName is the prefix of the generated Connection and Edge type
	// names. Empty means a name derived from the owning type and field.
	ConnectionName string `mapstructure:"connectionName" json:"connectionName,omitempty"`
	// AllowBackwardPagination must stay false; last/before are not served.
	AllowBackwardPagination bool `mapstructure:"allowBackwardPagination" json:"allowBackwardPagination,omitempty"`
	// MaxPageSize bounds `first`. Zero means unlimited.
	MaxPageSize int `mapstructure:"maxPageSize" json:"maxPageSize,omitempty"`
	// IncludeTotalCount adds totalCount to the connection.
	IncludeTotalCount bool `mapstructure:"includeTotalCount" json:"includeTotalCount,omitempty"`
	// Ordering is the ordering key baked into cursors of this field.
	Ordering string `mapstructure:"ordering" json:"ordering,omitempty"`
}

// Validate reports a configuration that can never serve a request.
func (c FieldConfig) Validate() error {
	if c.AllowBackwardPagination {
		return unsupportedDirection("", "backward pagination is not supported")
	}
	if c.MaxPageSize < 0 {
		return errors.New("paging: maxPageSize must not be negative")
	}
	return nil
}

// Options returns the pagination options for c.
func (c FieldConfig) Options() Options {
	return Options{
		AllowBackwardPagination: c.AllowBackwardPagination,
		MaxPageSize:             c.MaxPageSize,
		IncludeTotalCount:       c.IncludeTotalCount,
		Codec:                   NewCursorCodec(c.Ordering),
	}
}
