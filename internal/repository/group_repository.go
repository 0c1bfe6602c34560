package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"note-quiz/internal/domain"
	"note-quiz/internal/repository/models"
	"note-quiz/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
)

const groupColumns = `
		id "id",
		name "name",
		description "description",
		profile_picture "profile_picture",
		created_at "created_at",
		updated_at "updated_at"`

// GroupDatabaseAdapter implements domain.GroupRepository using sqlx.
type GroupDatabaseAdapter struct {
	db *sqlx.DB
}

func NewGroupDatabaseAdapter(db *sqlx.DB) domain.GroupRepository {
	return &GroupDatabaseAdapter{db: db}
}

func (a *GroupDatabaseAdapter) CreateGroup(ctx context.Context, group *domain.Group) error {
	exec := GetExecutor(ctx, a.db)

	model := toModelGroup(group)
	model.ID = util.NewULID()
	model.CreatedAt = time.Now()
	model.UpdatedAt = model.CreatedAt

	query := `INSERT INTO study_groups (id, name, description, profile_picture, created_at, updated_at)
		VALUES (:id, :name, :description, :profile_picture, :created_at, :updated_at)`
	if _, err := exec.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	group.ID = model.ID
	group.CreatedAt = model.CreatedAt
	group.UpdatedAt = model.UpdatedAt
	return nil
}

func (a *GroupDatabaseAdapter) GetGroupByID(ctx context.Context, id string) (*domain.Group, error) {
	exec := GetExecutor(ctx, a.db)

	var model models.Group
	query := `SELECT` + groupColumns + `
	FROM study_groups
	WHERE id = ?`
	if err := exec.GetContext(ctx, &model, exec.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group %s: %w", id, err)
	}
	return toDomainGroup(model), nil
}

func (a *GroupDatabaseAdapter) ListGroups(ctx context.Context) ([]*domain.Group, error) {
	exec := GetExecutor(ctx, a.db)

	var rows []models.Group
	query := `SELECT` + groupColumns + `
	FROM study_groups
	ORDER BY created_at, id`
	if err := exec.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	return lo.Map(rows, func(row models.Group, _ int) *domain.Group {
		return toDomainGroup(row)
	}), nil
}

// UpdateGroup overwrites name and description. The profile picture is only
// changed through UpdateProfilePicture.
func (a *GroupDatabaseAdapter) UpdateGroup(ctx context.Context, group *domain.Group) (bool, error) {
	exec := GetExecutor(ctx, a.db)

	group.UpdatedAt = time.Now()
	query := `UPDATE study_groups SET name = ?, description = ?, updated_at = ? WHERE id = ?`
	res, err := exec.ExecContext(ctx, exec.Rebind(query),
		group.Name, util.StringToNullString(group.Description), group.UpdatedAt, group.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update group %s: %w", group.ID, err)
	}
	return affected(res)
}

func (a *GroupDatabaseAdapter) DeleteGroup(ctx context.Context, id string) (bool, error) {
	exec := GetExecutor(ctx, a.db)

	res, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM study_groups WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete group %s: %w", id, err)
	}
	return affected(res)
}

func (a *GroupDatabaseAdapter) UpdateProfilePicture(ctx context.Context, id, path string) (bool, error) {
	exec := GetExecutor(ctx, a.db)

	query := `UPDATE study_groups SET profile_picture = ?, updated_at = ? WHERE id = ?`
	res, err := exec.ExecContext(ctx, exec.Rebind(query), path, time.Now(), id)
	if err != nil {
		return false, fmt.Errorf("failed to update profile picture of group %s: %w", id, err)
	}
	return affected(res)
}

func toModelGroup(g *domain.Group) models.Group {
	return models.Group{
		ID:             g.ID,
		Name:           g.Name,
		Description:    util.StringToNullString(g.Description),
		ProfilePicture: util.StringToNullString(g.ProfilePicture),
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}

func toDomainGroup(m models.Group) *domain.Group {
	return &domain.Group{
		ID:             m.ID,
		Name:           m.Name,
		Description:    util.NullStringToString(m.Description),
		ProfilePicture: util.NullStringToString(m.ProfilePicture),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
