package app

import (
	"fmt"

	"gridboard/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Mirror target bindings
// ─────────────────────────────────────────────────────────────

func (a *App) ListMirrorTargets() ([]MirrorTargetView, error) {
	targets, err := a.mirror.ListTargets()
	if err != nil {
		return nil, err
	}
	out := make([]MirrorTargetView, len(targets))
	for i, t := range targets {
		out[i] = mirrorTargetView(t)
	}
	return out, nil
}

// AddMirrorTarget stores a new target; its password goes to the keychain.
func (a *App) AddMirrorTarget(input CreateMirrorTargetInput) (MirrorTargetView, error) {
	driver := domain.MirrorDriver(input.Driver)
	switch driver {
	case domain.MirrorDriverMySQL, domain.MirrorDriverPostgres, domain.MirrorDriverMongoDB, domain.MirrorDriverSQLite:
	default:
		return MirrorTargetView{}, fmt.Errorf("add mirror target: unsupported driver %q", input.Driver)
	}
	extra := input.ExtraJSON
	if extra == "" {
		extra = "{}"
	}
	t := &domain.MirrorTarget{
		Name:      input.Name,
		Driver:    driver,
		Host:      input.Host,
		Port:      input.Port,
		Database:  input.Database,
		Username:  input.Username,
		SSLMode:   input.SSLMode,
		Table:     input.Table,
		ExtraJSON: extra,
		Enabled:   true,
	}
	if err := a.mirror.AddTarget(t, input.Password); err != nil {
		return MirrorTargetView{}, err
	}
	return mirrorTargetView(*t), nil
}

func (a *App) RemoveMirrorTarget(id string) error {
	return a.mirror.RemoveTarget(id)
}

// TestMirrorTarget opens the target and pings it.
func (a *App) TestMirrorTarget(id string) error {
	return a.mirror.TestTarget(a.ctx, id)
}
