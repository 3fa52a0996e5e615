package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/plumehq/plume/pkg/internal/models"
	"github.com/plumehq/plume/pkg/internal/store"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password so
// a login failure never reveals which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

func Register(ctx context.Context, s store.Store, username, email, password string, fullName, bio *string) (models.User, error) {
	exists, err := s.ExistsUserByEmailOrUsername(ctx, email, username)
	if err != nil {
		return models.User{}, fmt.Errorf("unable to check account uniqueness: %w", err)
	}
	if exists {
		return models.User{}, fmt.Errorf("user with this email or username already exists: %w", store.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("unable to hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Bio:          bio,
	}
	if err := s.CreateUser(ctx, &user); err != nil {
		return models.User{}, fmt.Errorf("unable to create user: %w", err)
	}
	return user, nil
}

func Authenticate(ctx context.Context, s store.Store, email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func GetAccount(ctx context.Context, s store.Store, id uuid.UUID) (models.UserView, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return models.UserView{}, err
	}
	return AssembleUserView(ctx, s, user), nil
}

func UpdateProfile(ctx context.Context, s store.Store, id uuid.UUID, patch store.ProfilePatch) (models.UserView, error) {
	user, err := s.UpdateUserProfile(ctx, id, patch)
	if err != nil {
		return models.UserView{}, err
	}
	return AssembleUserView(ctx, s, user), nil
}
