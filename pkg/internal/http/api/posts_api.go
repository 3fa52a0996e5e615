package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plumehq/plume/pkg/internal/http/exts"
	"github.com/plumehq/plume/pkg/internal/services"
)

func listPosts(c *fiber.Ctx) error {
	page, err := services.ListPublishedPosts(c.UserContext(), dataSrc, optionalViewerID(c), pageParams(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, page)
}

func listDrafts(c *fiber.Ctx) error {
	page, err := services.ListDrafts(c.UserContext(), dataSrc, viewerID(c), pageParams(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, page)
}

func getFeed(c *fiber.Ctx) error {
	page, err := services.GetFeed(c.UserContext(), dataSrc, viewerID(c), pageParams(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, page)
}

func getPost(c *fiber.Ctx) error {
	postID, err := pathUUID(c, "postId")
	if err != nil {
		return err
	}

	view, err := services.GetPublicPost(c.UserContext(), dataSrc, postID, optionalViewerID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, view)
}

func createPost(c *fiber.Ctx) error {
	var data struct {
		Title      string   `json:"title" validate:"required,max=255"`
		Content    string   `json:"content" validate:"required"`
		Excerpt    *string  `json:"excerpt" validate:"omitempty,max=500"`
		CoverImage *string  `json:"cover_image" validate:"omitempty,url"`
		Tags       []string `json:"tags" validate:"omitempty,dive,required,max=50"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	view, err := services.NewPost(c.UserContext(), dataSrc, viewerID(c), services.PostDraft{
		Title:      data.Title,
		Content:    data.Content,
		Excerpt:    data.Excerpt,
		CoverImage: data.CoverImage,
		Tags:       data.Tags,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, view)
}

func updatePost(c *fiber.Ctx) error {
	postID, err := pathUUID(c, "postId")
	if err != nil {
		return err
	}

	var data struct {
		Title      *string  `json:"title" validate:"omitempty,max=255"`
		Content    *string  `json:"content"`
		Excerpt    *string  `json:"excerpt" validate:"omitempty,max=500"`
		CoverImage *string  `json:"cover_image" validate:"omitempty,url"`
		Tags       []string `json:"tags" validate:"omitempty,dive,required,max=50"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	post, err := dataSrc.GetPost(c.UserContext(), postID)
	if err != nil {
		return err
	}
	if post.AuthorID != viewerID(c) {
		return fiber.NewError(fiber.StatusForbidden, "cannot edit someone else's post")
	}

	view, err := services.EditPost(c.UserContext(), dataSrc, post, services.PostPatch{
		Title:      data.Title,
		Content:    data.Content,
		Excerpt:    data.Excerpt,
		CoverImage: data.CoverImage,
		Tags:       data.Tags,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, view)
}

func deletePost(c *fiber.Ctx) error {
	postID, err := pathUUID(c, "postId")
	if err != nil {
		return err
	}

	if err := services.DeletePost(c.UserContext(), dataSrc, postID, viewerID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func publishPost(c *fiber.Ctx) error {
	postID, err := pathUUID(c, "postId")
	if err != nil {
		return err
	}

	view, err := services.PublishPost(c.UserContext(), dataSrc, postID, viewerID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, view)
}
