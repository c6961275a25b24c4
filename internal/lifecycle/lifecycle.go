// Package lifecycle implements the soft-delete lifecycle shared by the
// clinic entities: create-or-restore on a natural key, idempotent
// soft-delete, restore, and guarded partial updates. It is generic over
// the entity kind so parents, kids, drugs and exams all run through the
// same code.
package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/medikids/clinic-api/internal/model"
	apperrors "github.com/medikids/clinic-api/pkg/errors"
)

// Entity is the capability a model must expose to be managed here.
// State is promoted from the embedded model.Lifecycle.
type Entity[F any] interface {
	State() *model.Lifecycle
	Apply(fields F)
}

// Store is the persistence capability the manager needs. FindByID and
// FindByKey must return soft-deleted rows as well; Insert must enforce
// the active-unique constraint atomically and report a collision as a
// conflict error.
type Store[ID comparable, K any, F any, E Entity[F]] interface {
	FindByID(ctx context.Context, id ID) (E, error)
	FindByKey(ctx context.Context, key K) (E, error)
	Insert(ctx context.Context, entity E) error
	Update(ctx context.Context, entity E) error
}

// Manager runs the lifecycle operations for one entity kind.
type Manager[ID comparable, K any, F any, E Entity[F]] struct {
	resource string
	store    Store[ID, K, F, E]
	build    func(key K, fields F) E
	now      func() time.Time
}

// NewManager wires a manager for one entity kind. build constructs a
// fresh entity from key and fields; entity kinds without a natural key
// pass nil and never call CreateOrRestore.
func NewManager[ID comparable, K any, F any, E Entity[F]](
	resource string,
	store Store[ID, K, F, E],
	build func(key K, fields F) E,
) *Manager[ID, K, F, E] {
	return &Manager[ID, K, F, E]{
		resource: resource,
		store:    store,
		build:    build,
		now:      time.Now,
	}
}

// CreateOrRestore creates a new active entity under key, or revives a
// soft-deleted one with the supplied fields. A currently active row
// under the same key fails with AlreadyExists. A constraint violation
// from the store means a concurrent insert won the race and is reported
// the same way.
func (m *Manager[ID, K, F, E]) CreateOrRestore(ctx context.Context, key K, fields F) (E, error) {
	var zero E

	existing, err := m.store.FindByKey(ctx, key)
	switch {
	case apperrors.IsNotFound(err):
		if m.build == nil {
			return zero, apperrors.Internal(fmt.Errorf("%s: no entity factory configured", m.resource))
		}
		entity := m.build(key, fields)
		if err := m.store.Insert(ctx, entity); err != nil {
			if apperrors.IsConflict(err) {
				return zero, apperrors.AlreadyExists(m.resource, err)
			}
			return zero, err
		}
		return entity, nil
	case err != nil:
		return zero, err
	}

	state := existing.State()
	if !state.Deleted {
		return zero, apperrors.AlreadyExists(m.resource, nil)
	}

	state.Deleted = false
	state.DeletedAt = nil
	existing.Apply(fields)
	if err := m.store.Update(ctx, existing); err != nil {
		return zero, err
	}
	return existing, nil
}

// Get returns an active entity by id; soft-deleted rows read as
// missing.
func (m *Manager[ID, K, F, E]) Get(ctx context.Context, id ID) (E, error) {
	var zero E

	entity, err := m.store.FindByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if entity.State().Deleted {
		return zero, apperrors.NotFound(m.resource, nil)
	}
	return entity, nil
}

// SoftDelete flags an entity as deleted and stamps the deletion time.
// Deleting an already-deleted entity is a no-op.
func (m *Manager[ID, K, F, E]) SoftDelete(ctx context.Context, id ID) error {
	entity, err := m.store.FindByID(ctx, id)
	if err != nil {
		return err
	}

	state := entity.State()
	if state.Deleted {
		return nil
	}

	now := m.now()
	state.Deleted = true
	state.DeletedAt = &now
	return m.store.Update(ctx, entity)
}

// Restore reactivates a soft-deleted entity. Restoring an entity that
// is not deleted fails with NotFound: there is nothing to restore.
func (m *Manager[ID, K, F, E]) Restore(ctx context.Context, id ID) (E, error) {
	var zero E

	entity, err := m.store.FindByID(ctx, id)
	if err != nil {
		return zero, err
	}

	state := entity.State()
	if !state.Deleted {
		return zero, apperrors.NotFound(fmt.Sprintf("deleted %s", m.resource), nil)
	}

	state.Deleted = false
	state.DeletedAt = nil
	if err := m.store.Update(ctx, entity); err != nil {
		return zero, err
	}
	return entity, nil
}

// UpdateFields applies a partial patch to an active entity. The patch
// closure only touches the fields present in the request, so absent
// fields keep their stored values.
func (m *Manager[ID, K, F, E]) UpdateFields(ctx context.Context, id ID, patch func(E)) (E, error) {
	var zero E

	entity, err := m.store.FindByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if entity.State().Deleted {
		return zero, apperrors.NotFound(m.resource, nil)
	}

	patch(entity)
	if err := m.store.Update(ctx, entity); err != nil {
		return zero, err
	}
	return entity, nil
}
