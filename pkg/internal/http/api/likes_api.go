package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plumehq/plume/pkg/internal/services"
)

func likePost(c *fiber.Ctx) error {
	postID, err := pathUUID(c, "postId")
	if err != nil {
		return err
	}

	count, err := services.LikePost(c.UserContext(), dataSrc, postID, viewerID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, fiber.Map{
		"like_count": count,
		"is_liked":   true,
	})
}

func unlikePost(c *fiber.Ctx) error {
	postID, err := pathUUID(c, "postId")
	if err != nil {
		return err
	}

	count, err := services.UnlikePost(c.UserContext(), dataSrc, postID, viewerID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"like_count": count,
		"is_liked":   false,
	})
}
