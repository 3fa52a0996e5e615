package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plumehq/plume/pkg/internal/http/exts"
	"github.com/plumehq/plume/pkg/internal/services"
)

func register(c *fiber.Ctx) error {
	var data struct {
		Username string  `json:"username" validate:"required,min=3,max=50,alphanum"`
		Email    string  `json:"email" validate:"required,email"`
		Password string  `json:"password" validate:"required,min=6,max=72"`
		FullName *string `json:"full_name"`
		Bio      *string `json:"bio"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	user, err := services.Register(c.UserContext(), dataSrc, data.Username, data.Email, data.Password, data.FullName, data.Bio)
	if err != nil {
		return err
	}

	pair, err := tokens.IssueTokenPair(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "unable to issue tokens")
	}

	return respond(c, fiber.StatusCreated, fiber.Map{
		"user":   services.AssembleUserView(c.UserContext(), dataSrc, user),
		"tokens": pair,
	})
}

func login(c *fiber.Ctx) error {
	var data struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	user, err := services.Authenticate(c.UserContext(), dataSrc, data.Email, data.Password)
	if err != nil {
		return err
	}

	pair, err := tokens.IssueTokenPair(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "unable to issue tokens")
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"user":   services.AssembleUserView(c.UserContext(), dataSrc, user),
		"tokens": pair,
	})
}

// refreshToken trades a still-valid refresh token for a fresh pair.
func refreshToken(c *fiber.Ctx) error {
	var data struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	userID, err := tokens.VerifyToken(data.RefreshToken)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired refresh token")
	}

	user, err := dataSrc.GetUser(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "account no longer exists")
	}

	pair, err := tokens.IssueTokenPair(user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "unable to issue tokens")
	}

	return respond(c, fiber.StatusOK, pair)
}
