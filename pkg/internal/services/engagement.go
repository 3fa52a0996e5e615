package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/plumehq/plume/pkg/internal/models"
	"github.com/plumehq/plume/pkg/internal/store"
)

func LikeCount(ctx context.Context, s store.Store, postID uuid.UUID) int64 {
	count, err := s.CountLikes(ctx, postID)
	if err != nil {
		log.Warn().Err(err).Stringer("post", postID).Msg("An error occurred when counting likes...")
		return 0
	}
	return count
}

func CommentCount(ctx context.Context, s store.Store, postID uuid.UUID) int64 {
	count, err := s.CountComments(ctx, postID)
	if err != nil {
		log.Warn().Err(err).Stringer("post", postID).Msg("An error occurred when counting comments...")
		return 0
	}
	return count
}

// IsLikedBy reports whether the viewer liked the post. Anonymous viewers and
// failed lookups both read as not liked.
func IsLikedBy(ctx context.Context, s store.Store, postID uuid.UUID, viewerID *uuid.UUID) bool {
	if viewerID == nil {
		return false
	}
	exists, err := s.ExistsLike(ctx, postID, *viewerID)
	if err != nil {
		log.Warn().Err(err).Stringer("post", postID).Msg("An error occurred when checking like state...")
		return false
	}
	return exists
}

// LikePost records one like per user per post and returns the fresh count.
// Drafts cannot be liked; they read as missing to everyone but their author.
func LikePost(ctx context.Context, s store.Store, postID, userID uuid.UUID) (int64, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return 0, err
	}
	if !post.IsPublished {
		return 0, store.ErrNotFound
	}

	if exists, err := s.ExistsLike(ctx, postID, userID); err != nil {
		return 0, fmt.Errorf("unable to check like state: %w", err)
	} else if exists {
		return 0, fmt.Errorf("post already liked: %w", store.ErrConflict)
	}

	like := models.Like{UserID: userID, PostID: postID}
	if err := s.CreateLike(ctx, &like); err != nil {
		return 0, err
	}
	return LikeCount(ctx, s, postID), nil
}

func UnlikePost(ctx context.Context, s store.Store, postID, userID uuid.UUID) (int64, error) {
	if err := s.DeleteLike(ctx, postID, userID); err != nil {
		return 0, err
	}
	return LikeCount(ctx, s, postID), nil
}
