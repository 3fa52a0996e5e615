// Package store defines the entity store the aggregation services read
// through, plus its Postgres implementation. Services never touch the
// database directly; they consume this contract so the read-side engine can
// be exercised against any backend.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/plumehq/plume/pkg/internal/models"
	"github.com/plumehq/plume/pkg/internal/pagination"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

type ProfilePatch struct {
	FullName  *string
	Bio       *string
	AvatarURL *string
}

type Store interface {
	// Users
	GetUser(ctx context.Context, id uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	ExistsUserByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUserProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (models.User, error)

	// Posts
	GetPost(ctx context.Context, id uuid.UUID) (models.Post, error)
	CreatePost(ctx context.Context, post *models.Post) error
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id, authorID uuid.UUID) error
	ListPublishedPosts(ctx context.Context, p pagination.Params) ([]models.Post, int64, error)
	ListDraftsByAuthor(ctx context.Context, authorID uuid.UUID, p pagination.Params) ([]models.Post, int64, error)
	ListFollowedAuthorPosts(ctx context.Context, followerID uuid.UUID, p pagination.Params) ([]models.Post, int64, error)
	ListPostsByTag(ctx context.Context, tagName string, p pagination.Params) ([]models.Post, int64, error)

	// Comments
	GetComment(ctx context.Context, id uuid.UUID) (models.Comment, error)
	ListCommentsByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error)
	CountComments(ctx context.Context, postID uuid.UUID) (int64, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	UpdateCommentContent(ctx context.Context, id, postID, authorID uuid.UUID, content string) (models.Comment, error)
	DeleteComment(ctx context.Context, id, postID, authorID uuid.UUID) error

	// Likes
	CountLikes(ctx context.Context, postID uuid.UUID) (int64, error)
	ExistsLike(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, postID, userID uuid.UUID) error

	// Follows
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
	ExistsFollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	ListFollowingIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error)
	ListFollowerUsers(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]models.User, int64, error)
	ListFollowingUsers(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]models.User, int64, error)
	CreateFollow(ctx context.Context, follow *models.Follow) error
	DeleteFollow(ctx context.Context, followerID, followingID uuid.UUID) error

	// Tags
	UpsertTagByName(ctx context.Context, name string) (models.Tag, error)
	ListTagsForPost(ctx context.Context, postID uuid.UUID) ([]string, error)
	ListTags(ctx context.Context, p pagination.Params) ([]models.Tag, int64, error)
	ReplacePostTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error
}
