package types

import "errors"

// Config holds the parameters the rewind CLI uses to open a database and
// construct a Manager.
type Config struct {
	DBPath string   `json:"db_path" yaml:"db_path"`
	Tables []string `json:"tables,omitempty" yaml:"tables,omitempty"`
	Prefix string   `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// Config validation errors.
var (
	ErrDBPathEmpty = errors.New("db_path must not be empty")
)

// Validate checks that the Config is well-formed. Tables may be empty here;
// commands that construct a Manager reject an empty scope with ErrNoTables.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return ErrDBPathEmpty
	}
	return nil
}
