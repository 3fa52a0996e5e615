package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plumehq/plume/pkg/internal/http/exts"
	"github.com/plumehq/plume/pkg/internal/services"
	"github.com/plumehq/plume/pkg/internal/store"
)

func getMyProfile(c *fiber.Ctx) error {
	view, err := services.GetAccount(c.UserContext(), dataSrc, viewerID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, view)
}

func updateMyProfile(c *fiber.Ctx) error {
	var data struct {
		FullName  *string `json:"full_name" validate:"omitempty,max=100"`
		Bio       *string `json:"bio" validate:"omitempty,max=500"`
		AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	view, err := services.UpdateProfile(c.UserContext(), dataSrc, viewerID(c), store.ProfilePatch{
		FullName:  data.FullName,
		Bio:       data.Bio,
		AvatarURL: data.AvatarURL,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, view)
}

func getUserProfile(c *fiber.Ctx) error {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	view, err := services.GetAccount(c.UserContext(), dataSrc, userID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, view)
}

func listFollowers(c *fiber.Ctx) error {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	page, err := services.ListFollowers(c.UserContext(), dataSrc, userID, pageParams(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, page)
}

func listFollowing(c *fiber.Ctx) error {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	page, err := services.ListFollowing(c.UserContext(), dataSrc, userID, pageParams(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, page)
}

func followUser(c *fiber.Ctx) error {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	if err := services.FollowUser(c.UserContext(), dataSrc, viewerID(c), userID); err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, fiber.Map{"following": true})
}

func unfollowUser(c *fiber.Ctx) error {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	if err := services.UnfollowUser(c.UserContext(), dataSrc, viewerID(c), userID); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"following": false})
}
