package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"gridboard/internal/dbclient"
	"gridboard/internal/domain"
	"gridboard/internal/secret"
	"gridboard/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Mirror Service: copies saved layouts to external databases
// ─────────────────────────────────────────────────────────────

// ConnectFunc opens a connector for a target. Tests swap it out.
type ConnectFunc func(t *domain.MirrorTarget, password string) (dbclient.Connector, error)

type MirrorService struct {
	targets *storage.MirrorTargetStore
	secrets secret.SecretStore
	connect ConnectFunc
}

func NewMirrorService(targets *storage.MirrorTargetStore, secrets secret.SecretStore) *MirrorService {
	return &MirrorService{targets: targets, secrets: secrets, connect: dbclient.NewConnector}
}

// SetConnectFunc replaces how connectors are opened.
func (s *MirrorService) SetConnectFunc(fn ConnectFunc) { s.connect = fn }

// AddTarget stores a target and its password.
func (s *MirrorService) AddTarget(t *domain.MirrorTarget, password string) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if err := s.targets.CreateTarget(t); err != nil {
		return fmt.Errorf("create mirror target: %w", err)
	}
	if password != "" {
		if err := s.secrets.Set(t.ID, []byte(password)); err != nil {
			return fmt.Errorf("store mirror password: %w", err)
		}
	}
	return nil
}

func (s *MirrorService) ListTargets() ([]domain.MirrorTarget, error) {
	return s.targets.ListTargets()
}

func (s *MirrorService) RemoveTarget(id string) error {
	if err := s.targets.DeleteTarget(id); err != nil {
		return err
	}
	return s.secrets.Delete(id)
}

// TestTarget opens a connection to one target and pings it.
func (s *MirrorService) TestTarget(ctx context.Context, id string) error {
	t, err := s.targets.GetTarget(id)
	if err != nil {
		return err
	}
	c, err := s.open(t)
	if err != nil {
		return err
	}
	defer c.Close()
	return c.TestConnection(ctx)
}

// Push sends doc to every enabled target. Failures are joined; one bad
// target does not stop the others.
func (s *MirrorService) Push(ctx context.Context, doc *domain.LayoutDocument) error {
	return s.each(func(c dbclient.Connector) error { return c.PushLayout(ctx, doc) })
}

// Delete removes a layout from every enabled target.
func (s *MirrorService) Delete(ctx context.Context, id string) error {
	return s.each(func(c dbclient.Connector) error { return c.DeleteLayout(ctx, id) })
}

func (s *MirrorService) each(fn func(dbclient.Connector) error) error {
	targets, err := s.targets.ListTargets()
	if err != nil {
		return fmt.Errorf("list mirror targets: %w", err)
	}
	var errs []error
	for i := range targets {
		t := &targets[i]
		if !t.Enabled {
			continue
		}
		c, err := s.open(t)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.Name, err))
			continue
		}
		if err := fn(c); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.Name, err))
		}
		c.Close()
	}
	return errors.Join(errs...)
}

func (s *MirrorService) open(t *domain.MirrorTarget) (dbclient.Connector, error) {
	pw, err := s.secrets.Get(t.ID)
	if err != nil {
		return nil, fmt.Errorf("read mirror password: %w", err)
	}
	return s.connect(t, string(pw))
}
