package domain

import (
	"context"
	"io"
	"time"
)

// Group is a study group with an optional profile picture.
type Group struct {
	ID             string
	Name           string
	Description    string
	ProfilePicture string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// GroupRepository persists groups.
type GroupRepository interface {
	CreateGroup(ctx context.Context, group *Group) error
	// GetGroupByID returns nil, nil when the group does not exist.
	GetGroupByID(ctx context.Context, id string) (*Group, error)
	ListGroups(ctx context.Context) ([]*Group, error)
	// UpdateGroup returns false when no row matched.
	UpdateGroup(ctx context.Context, group *Group) (bool, error)
	DeleteGroup(ctx context.Context, id string) (bool, error)
	UpdateProfilePicture(ctx context.Context, id, path string) (bool, error)
}

// FileStore saves uploaded files and returns the stored path.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}
