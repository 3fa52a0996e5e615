package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/plumehq/plume/pkg/internal/pagination"
	"github.com/plumehq/plume/pkg/internal/security"
	"github.com/plumehq/plume/pkg/internal/store"
)

var (
	dataSrc store.Store
	tokens  security.TokenConfig
)

func MapAPIs(app *fiber.App, baseURL string, s store.Store, cfg security.TokenConfig) {
	dataSrc = s
	tokens = cfg

	api := app.Group(baseURL).Name("API")
	{
		auth := api.Group("/auth").Name("Auth API")
		{
			auth.Post("/register", register)
			auth.Post("/login", login)
			auth.Post("/refresh", refreshToken)
		}

		users := api.Group("/users").Name("Users API")
		{
			users.Get("/profile", authRequired, getMyProfile)
			users.Put("/profile", authRequired, updateMyProfile)
			users.Get("/:userId", getUserProfile)
			users.Post("/:userId/follow", authRequired, followUser)
			users.Delete("/:userId/unfollow", authRequired, unfollowUser)
			users.Get("/:userId/followers", listFollowers)
			users.Get("/:userId/following", listFollowing)
		}

		posts := api.Group("/posts").Name("Posts API")
		{
			posts.Get("/", authOptional, listPosts)
			posts.Post("/", authRequired, createPost)
			// Fixed segments go before the :postId wildcard so the
			// router never swallows them as ids.
			posts.Get("/drafts", authRequired, listDrafts)
			posts.Get("/feed", authRequired, getFeed)
			posts.Get("/:postId", authOptional, getPost)
			posts.Put("/:postId", authRequired, updatePost)
			posts.Delete("/:postId", authRequired, deletePost)
			posts.Patch("/:postId/publish", authRequired, publishPost)
			posts.Post("/:postId/like", authRequired, likePost)
			posts.Delete("/:postId/unlike", authRequired, unlikePost)
			posts.Get("/:postId/comments", listComments)
			posts.Post("/:postId/comments", authRequired, createComment)
			posts.Put("/:postId/comments/:commentId", authRequired, updateComment)
			posts.Delete("/:postId/comments/:commentId", authRequired, deleteComment)
		}

		tags := api.Group("/tags").Name("Tags API")
		{
			tags.Get("/", listTags)
			tags.Get("/:tagName/posts", authOptional, listPostsByTag)
		}
	}
}

func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func pageParams(c *fiber.Ctx) pagination.Params {
	return pagination.Params{
		Page:  c.QueryInt("page", pagination.DefaultPage),
		Limit: c.QueryInt("limit", pagination.DefaultLimit),
	}
}

func pathUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("malformed %s", name))
	}
	return id, nil
}
