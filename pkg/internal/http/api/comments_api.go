package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/plumehq/plume/pkg/internal/http/exts"
	"github.com/plumehq/plume/pkg/internal/services"
)

func listComments(c *fiber.Ctx) error {
	postID, err := pathUUID(c, "postId")
	if err != nil {
		return err
	}

	thread, err := services.ListCommentThread(c.UserContext(), dataSrc, postID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, thread)
}

func createComment(c *fiber.Ctx) error {
	postID, err := pathUUID(c, "postId")
	if err != nil {
		return err
	}

	var data struct {
		Content  string     `json:"content" validate:"required,max=2000"`
		ParentID *uuid.UUID `json:"parent_id"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	view, err := services.NewComment(c.UserContext(), dataSrc, postID, viewerID(c), data.Content, data.ParentID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, view)
}

func updateComment(c *fiber.Ctx) error {
	postID, err := pathUUID(c, "postId")
	if err != nil {
		return err
	}
	commentID, err := pathUUID(c, "commentId")
	if err != nil {
		return err
	}

	var data struct {
		Content string `json:"content" validate:"required,max=2000"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	view, err := services.EditComment(c.UserContext(), dataSrc, commentID, postID, viewerID(c), data.Content)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, view)
}

func deleteComment(c *fiber.Ctx) error {
	postID, err := pathUUID(c, "postId")
	if err != nil {
		return err
	}
	commentID, err := pathUUID(c, "commentId")
	if err != nil {
		return err
	}

	if err := services.DeleteComment(c.UserContext(), dataSrc, commentID, postID, viewerID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
