package command

import (
	"fmt"
	"sort"

	"gridboard/internal/domain"
	"gridboard/internal/state"
)

// BatchAdd records items added in one operation. Refs hold the canvas and
// index each item landed at.
type BatchAdd struct {
	env  Env
	refs []state.ItemRef
}

func NewBatchAdd(env Env, refs []state.ItemRef) *BatchAdd {
	return &BatchAdd{env: env, refs: cloneRefs(refs)}
}

func (c *BatchAdd) Description() string {
	if len(c.refs) == 1 {
		return "Add " + typeLabel(c.refs[0].Item)
	}
	return fmt.Sprintf("Add %d items", len(c.refs))
}

func (c *BatchAdd) Undo() { c.env.apply(c.Description(), func(n *state.Snapshot) error { return removeRefs(n, c.refs) }) }
func (c *BatchAdd) Redo() { c.env.apply(c.Description(), func(n *state.Snapshot) error { return insertRefs(n, c.refs) }) }

// BatchDelete records items removed in one operation. Refs hold the position
// each item had before removal.
type BatchDelete struct {
	env  Env
	refs []state.ItemRef
}

func NewBatchDelete(env Env, refs []state.ItemRef) *BatchDelete {
	return &BatchDelete{env: env, refs: cloneRefs(refs)}
}

func (c *BatchDelete) Description() string {
	if len(c.refs) == 1 {
		return "Delete " + typeLabel(c.refs[0].Item)
	}
	return fmt.Sprintf("Delete %d items", len(c.refs))
}

func (c *BatchDelete) Undo() { c.env.apply(c.Description(), func(n *state.Snapshot) error { return insertRefs(n, c.refs) }) }
func (c *BatchDelete) Redo() { c.env.apply(c.Description(), func(n *state.Snapshot) error { return removeRefs(n, c.refs) }) }

// ConfigChange is one item's config before and after an edit.
type ConfigChange struct {
	ItemID string
	Before domain.Config
	After  domain.Config
}

type BatchUpdateConfig struct {
	env     Env
	changes []ConfigChange
}

func NewBatchUpdateConfig(env Env, changes []ConfigChange) *BatchUpdateConfig {
	cp := make([]ConfigChange, len(changes))
	for i, ch := range changes {
		cp[i] = ConfigChange{ItemID: ch.ItemID, Before: ch.Before.Clone(), After: ch.After.Clone()}
	}
	return &BatchUpdateConfig{env: env, changes: cp}
}

func (c *BatchUpdateConfig) Description() string {
	if len(c.changes) == 1 {
		return "Update config"
	}
	return fmt.Sprintf("Update config of %d items", len(c.changes))
}

func (c *BatchUpdateConfig) Undo() { c.set(func(ch ConfigChange) domain.Config { return ch.Before }) }
func (c *BatchUpdateConfig) Redo() { c.set(func(ch ConfigChange) domain.Config { return ch.After }) }

func (c *BatchUpdateConfig) set(pick func(ConfigChange) domain.Config) {
	c.env.apply(c.Description(), func(next *state.Snapshot) error {
		for _, ch := range c.changes {
			ref, ok := next.FindItem(ch.ItemID)
			if !ok {
				return fmt.Errorf("config of %s: %w", ch.ItemID, state.ErrItemNotFound)
			}
			it := ref.Item
			it.Config = pick(ch).Clone()
			if err := next.ReplaceItem(it); err != nil {
				return err
			}
		}
		return nil
	})
}

func cloneRefs(refs []state.ItemRef) []state.ItemRef {
	out := make([]state.ItemRef, len(refs))
	for i, r := range refs {
		out[i] = state.ItemRef{CanvasID: r.CanvasID, Index: r.Index, Item: r.Item.Clone()}
	}
	return out
}

func removeRefs(next *state.Snapshot, refs []state.ItemRef) error {
	for _, r := range refs {
		if _, err := next.RemoveItem(r.Item.ID); err != nil {
			return err
		}
	}
	return nil
}

// insertRefs restores items at their recorded indices. Inserting in ascending
// index order per canvas reproduces the original ordering.
func insertRefs(next *state.Snapshot, refs []state.ItemRef) error {
	sorted := cloneRefs(refs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CanvasID != sorted[j].CanvasID {
			return sorted[i].CanvasID < sorted[j].CanvasID
		}
		return sorted[i].Index < sorted[j].Index
	})
	for _, r := range sorted {
		if err := next.InsertItem(r.CanvasID, r.Index, r.Item); err != nil {
			return err
		}
	}
	return nil
}
