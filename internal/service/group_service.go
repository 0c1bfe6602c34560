package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"note-quiz/internal/domain"
	"note-quiz/internal/dto"
	"note-quiz/internal/logger"

	"go.uber.org/zap"
)

// GroupService manages study groups and their profile pictures.
type GroupService interface {
	CreateGroup(ctx context.Context, req *dto.GroupRequest) (*dto.GroupResponse, error)
	ListGroups(ctx context.Context) ([]*dto.GroupResponse, error)
	GetGroup(ctx context.Context, groupID string) (*dto.GroupResponse, error)
	UpdateGroup(ctx context.Context, groupID string, req *dto.GroupRequest) (*dto.GroupResponse, error)
	DeleteGroup(ctx context.Context, groupID string) (*dto.DeleteResponse, error)
	// UploadProfilePicture stores the file as {userID}-{unix millis}{ext} and
	// points the group's profile picture at it.
	UploadProfilePicture(ctx context.Context, groupID, userID, filename string, file io.Reader) (*dto.UploadResponse, error)
}

type groupService struct {
	repo  domain.GroupRepository
	store domain.FileStore
	now   func() time.Time
}

func NewGroupService(repo domain.GroupRepository, store domain.FileStore) GroupService {
	return &groupService{repo: repo, store: store, now: time.Now}
}

func (s *groupService) CreateGroup(ctx context.Context, req *dto.GroupRequest) (*dto.GroupResponse, error) {
	group := &domain.Group{Name: req.Name, Description: req.Description}
	if err := s.repo.CreateGroup(ctx, group); err != nil {
		return nil, domain.NewInternalError("Failed to create group", err)
	}
	return s.GetGroup(ctx, group.ID)
}

func (s *groupService) ListGroups(ctx context.Context) ([]*dto.GroupResponse, error) {
	groups, err := s.repo.ListGroups(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list groups", err)
	}
	return dto.ToGroupResponses(groups), nil
}

func (s *groupService) GetGroup(ctx context.Context, groupID string) (*dto.GroupResponse, error) {
	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return dto.ToGroupResponse(group), nil
}

func (s *groupService) UpdateGroup(ctx context.Context, groupID string, req *dto.GroupRequest) (*dto.GroupResponse, error) {
	ok, err := s.repo.UpdateGroup(ctx, &domain.Group{ID: groupID, Name: req.Name, Description: req.Description})
	if err != nil {
		return nil, domain.NewInternalError("Failed to update group", err)
	}
	if !ok {
		return nil, domain.NewGroupNotFoundError(groupID)
	}
	return s.GetGroup(ctx, groupID)
}

func (s *groupService) DeleteGroup(ctx context.Context, groupID string) (*dto.DeleteResponse, error) {
	ok, err := s.repo.DeleteGroup(ctx, groupID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to delete group", err)
	}
	if !ok {
		return nil, domain.NewGroupNotFoundError(groupID)
	}
	return &dto.DeleteResponse{Deleted: true, ID: groupID}, nil
}

func (s *groupService) UploadProfilePicture(ctx context.Context, groupID, userID, filename string, file io.Reader) (*dto.UploadResponse, error) {
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return nil, err
	}
	if userID == "" {
		userID = groupID
	}

	name := fmt.Sprintf("%s-%d%s", filepath.Base(userID), s.now().UnixMilli(), filepath.Ext(filename))
	path, err := s.store.Save(ctx, name, file)
	if err != nil {
		return nil, domain.NewInternalError("Failed to store profile picture", err)
	}

	ok, err := s.repo.UpdateProfilePicture(ctx, groupID, path)
	if err != nil {
		return nil, domain.NewInternalError("Failed to update group with new profile picture", err)
	}
	if !ok {
		return nil, domain.NewGroupNotFoundError(groupID)
	}

	logger.Get().Info("Profile picture uploaded", zap.String("group_id", groupID), zap.String("path", path))
	return &dto.UploadResponse{
		Message: fmt.Sprintf("File uploaded successfully: %s", path),
		Path:    path,
	}, nil
}

func (s *groupService) findGroup(ctx context.Context, groupID string) (*domain.Group, error) {
	group, err := s.repo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get group", err)
	}
	if group == nil {
		return nil, domain.NewGroupNotFoundError(groupID)
	}
	return group, nil
}
