package auth

import (
	"context"
	"errors"

	"docroom/internal/docmeta/model"
	"docroom/internal/docmeta/store"
)

// Access levels the relay understands.
type Access string

const (
	AccessRW       Access = "rw"
	AccessReadOnly Access = "read-only"
	AccessNone     Access = "no-access"
)

// Authorizer decides what access a user has to a room. Deployments substitute
// their own policy here without touching routing code.
type Authorizer interface {
	Authorize(ctx context.Context, userID, room string) (Access, error)
}

// RoomGetter is the slice of the metadata store the default policy needs.
type RoomGetter interface {
	Get(ctx context.Context, id string) (model.DocMeta, error)
}

// DocAuthorizer grants read-write on any room with a metadata record and
// denies everything else. Every known document is world-writable, which is
// fine for a demo but not a policy to ship.
type DocAuthorizer struct {
	Docs RoomGetter
}

func NewDocAuthorizer(docs RoomGetter) *DocAuthorizer {
	return &DocAuthorizer{Docs: docs}
}

func (a *DocAuthorizer) Authorize(ctx context.Context, userID, room string) (Access, error) {
	_, err := a.Docs.Get(ctx, room)
	if errors.Is(err, store.ErrNotFound) {
		return AccessNone, nil
	}
	if err != nil {
		return AccessNone, err
	}
	return AccessRW, nil
}
