package domain

import "time"

const ExportVersion = "1.0.0"

// ExportData is the persisted layout shape. Order is optional; without it
// canvases are imported sorted by id.
type ExportData struct {
	Version  string                  `json:"version"`
	Viewport Viewport                `json:"viewport"`
	Canvases map[string]ExportCanvas `json:"canvases"`
	Order    []string                `json:"order,omitempty"`
}

type ExportCanvas struct {
	Items []GridItem `json:"items"`
}

// LayoutDocument is a named, saved ExportData.
type LayoutDocument struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Data      ExportData `json:"data"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// LayoutRevision is an autosaved copy of a layout.
type LayoutRevision struct {
	ID        string    `json:"id"`
	LayoutID  string    `json:"layoutId"`
	Label     string    `json:"label"`
	DataJSON  string    `json:"dataJson"`
	CreatedAt time.Time `json:"createdAt"`
}

type LayoutStore interface {
	SaveLayout(doc *LayoutDocument) error
	GetLayout(id string) (*LayoutDocument, error)
	ListLayouts() ([]LayoutDocument, error)
	DeleteLayout(id string) error
}
