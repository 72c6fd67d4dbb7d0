package domain

import "time"

// MirrorDriver is the engine of an external mirror database.
type MirrorDriver string

const (
	MirrorDriverMySQL    MirrorDriver = "mysql"
	MirrorDriverPostgres MirrorDriver = "postgres"
	MirrorDriverMongoDB  MirrorDriver = "mongodb"
	MirrorDriverSQLite   MirrorDriver = "sqlite"
)

// MirrorTarget is an external database that receives a copy of every saved
// layout. The password lives in the secret store, keyed by ID.
type MirrorTarget struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Driver    MirrorDriver `json:"driver"`
	Host      string       `json:"host"`     // hostname, URI (mongodb) or file path (sqlite)
	Port      int          `json:"port"`     // 0 means the driver default
	Database  string       `json:"database"` // empty for sqlite
	Username  string       `json:"username"`
	SSLMode   string       `json:"sslMode"`
	Table     string       `json:"table"` // table or collection, defaults to gridboard_layouts
	ExtraJSON string       `json:"extraJson"`
	Enabled   bool         `json:"enabled"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type MirrorTargetStore interface {
	CreateTarget(t *MirrorTarget) error
	GetTarget(id string) (*MirrorTarget, error)
	ListTargets() ([]MirrorTarget, error)
	UpdateTarget(t *MirrorTarget) error
	DeleteTarget(id string) error
}
