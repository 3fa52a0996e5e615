package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plumehq/plume/pkg/internal/services"
)

func listTags(c *fiber.Ctx) error {
	page, err := services.ListTags(c.UserContext(), dataSrc, pageParams(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, page)
}

func listPostsByTag(c *fiber.Ctx) error {
	page, err := services.ListPostsByTag(c.UserContext(), dataSrc, c.Params("tagName"), optionalViewerID(c), pageParams(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, page)
}
