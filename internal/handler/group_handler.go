package handler

import (
	"note-quiz/internal/domain"
	"note-quiz/internal/dto"
	"note-quiz/internal/logger"
	"note-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GroupHandler handles group CRUD and profile picture uploads
type GroupHandler struct {
	service service.GroupService
}

func NewGroupHandler(service service.GroupService) *GroupHandler {
	return &GroupHandler{service: service}
}

// CreateGroup godoc
// @Summary Create a group
// @Tags groups
// @Accept json
// @Produce json
// @Param group body dto.GroupRequest true "Group"
// @Success 200 {object} dto.GroupResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /groups [post]
func (h *GroupHandler) CreateGroup(c *fiber.Ctx) error {
	var req dto.GroupRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Failed to parse group body", zap.Error(err))
		return domain.NewInvalidInputError("Invalid request body")
	}

	group, err := h.service.CreateGroup(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(group)
}

// ListGroups godoc
// @Summary List groups
// @Tags groups
// @Produce json
// @Success 200 {array} dto.GroupResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /groups [get]
func (h *GroupHandler) ListGroups(c *fiber.Ctx) error {
	groups, err := h.service.ListGroups(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(groups)
}

// GetGroup godoc
// @Summary Get a group
// @Tags groups
// @Produce json
// @Param groupId path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /groups/{groupId} [get]
func (h *GroupHandler) GetGroup(c *fiber.Ctx) error {
	group, err := h.service.GetGroup(c.UserContext(), c.Params("groupId"))
	if err != nil {
		return err
	}
	return c.JSON(group)
}

// UpdateGroup godoc
// @Summary Update a group
// @Tags groups
// @Accept json
// @Produce json
// @Param groupId path string true "Group ID"
// @Param group body dto.GroupRequest true "Group"
// @Success 200 {object} dto.GroupResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /groups/{groupId} [put]
func (h *GroupHandler) UpdateGroup(c *fiber.Ctx) error {
	var req dto.GroupRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	group, err := h.service.UpdateGroup(c.UserContext(), c.Params("groupId"), &req)
	if err != nil {
		return err
	}
	return c.JSON(group)
}

// DeleteGroup godoc
// @Summary Delete a group
// @Tags groups
// @Produce json
// @Param groupId path string true "Group ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /groups/{groupId} [delete]
func (h *GroupHandler) DeleteGroup(c *fiber.Ctx) error {
	resp, err := h.service.DeleteGroup(c.UserContext(), c.Params("groupId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UploadProfilePicture godoc
// @Summary Upload a group profile picture
// @Description Stores the file as {userId}-{timestamp}{ext} under the uploads directory
// @Tags groups
// @Accept multipart/form-data
// @Produce json
// @Param groupId path string true "Group ID"
// @Param profilePicture formData file true "Picture"
// @Param userId formData string false "Uploader ID, defaults to the group ID"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /groups/{groupId}/uploadProfilePicture [post]
func (h *GroupHandler) UploadProfilePicture(c *fiber.Ctx) error {
	header, err := c.FormFile("profilePicture")
	if err != nil {
		return domain.NewInvalidInputError("No file uploaded.")
	}

	file, err := header.Open()
	if err != nil {
		return domain.NewInternalError("Failed to read uploaded file", err)
	}
	defer file.Close()

	resp, err := h.service.UploadProfilePicture(c.UserContext(), c.Params("groupId"), c.FormValue("userId"), header.Filename, file)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
