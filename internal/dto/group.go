package dto

import (
	"time"

	"note-quiz/internal/domain"

	"github.com/samber/lo"
)

// GroupRequest is the body of create and update calls.
// @Description Request body for creating or updating a group
type GroupRequest struct {
	Name        string `json:"name" example:"Organic Chemistry"`
	Description string `json:"description" example:"Weekly study group"`
}

// GroupResponse represents a group in the API response
type GroupResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// DeleteResponse reports the outcome of a delete.
type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// UploadResponse reports where an uploaded file was stored.
type UploadResponse struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

func ToGroupResponse(g *domain.Group) *GroupResponse {
	return &GroupResponse{
		ID:             g.ID,
		Name:           g.Name,
		Description:    g.Description,
		ProfilePicture: g.ProfilePicture,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}

func ToGroupResponses(groups []*domain.Group) []*GroupResponse {
	return lo.Map(groups, func(g *domain.Group, _ int) *GroupResponse {
		return ToGroupResponse(g)
	})
}
