package app

import (
	"time"

	"gridboard/internal/domain"
)

// MirrorTargetView is the frontend-safe view of a mirror target (no password).
type MirrorTargetView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Driver    string    `json:"driver"`
	Host      string    `json:"host"`
	Port      int       `json:"port"`
	Database  string    `json:"database"`
	Username  string    `json:"username"`
	SSLMode   string    `json:"sslMode"`
	Table     string    `json:"table"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
}

func mirrorTargetView(t domain.MirrorTarget) MirrorTargetView {
	return MirrorTargetView{
		ID:        t.ID,
		Name:      t.Name,
		Driver:    string(t.Driver),
		Host:      t.Host,
		Port:      t.Port,
		Database:  t.Database,
		Username:  t.Username,
		SSLMode:   t.SSLMode,
		Table:     t.Table,
		Enabled:   t.Enabled,
		CreatedAt: t.CreatedAt,
	}
}

// CreateMirrorTargetInput is the input for adding a mirror target.
type CreateMirrorTargetInput struct {
	Name      string `json:"name"`
	Driver    string `json:"driver"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Database  string `json:"database"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	SSLMode   string `json:"sslMode"`
	Table     string `json:"table"`
	ExtraJSON string `json:"extraJson"`
}
