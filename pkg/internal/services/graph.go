package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	cachestore "github.com/eko/gocache/lib/v4/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	localCache "github.com/plumehq/plume/pkg/internal/cache"
	"github.com/plumehq/plume/pkg/internal/models"
	"github.com/plumehq/plume/pkg/internal/pagination"
	"github.com/plumehq/plume/pkg/internal/store"
)

var ErrSelfFollow = errors.New("cannot follow yourself")

// FollowerCount is a degrading aggregate: a failed scan logs and counts as
// zero rather than failing the view being assembled.
func FollowerCount(ctx context.Context, s store.Store, userID uuid.UUID) int64 {
	count, err := s.CountFollowers(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Stringer("user", userID).Msg("An error occurred when counting followers...")
		return 0
	}
	return count
}

func FollowingCount(ctx context.Context, s store.Store, userID uuid.UUID) int64 {
	count, err := s.CountFollowing(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Stringer("user", userID).Msg("An error occurred when counting followings...")
		return 0
	}
	return count
}

// IsFollowing degrades to false when the edge lookup fails.
func IsFollowing(ctx context.Context, s store.Store, followerID, followingID uuid.UUID) bool {
	exists, err := s.ExistsFollow(ctx, followerID, followingID)
	if err != nil {
		log.Warn().Err(err).Msg("An error occurred when checking follow edge...")
		return false
	}
	return exists
}

func followedAuthorsCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("followed-authors#%s", userID)
}

// FollowedAuthorIDs resolves the set of accounts a viewer follows, behind a
// short-lived process-local cache. Follow and unfollow invalidate the entry,
// so a viewer sees their own graph changes immediately; the TTL only bounds
// staleness across processes.
func FollowedAuthorIDs(ctx context.Context, s store.Store, userID uuid.UUID) ([]uuid.UUID, error) {
	if localCache.S == nil {
		return s.ListFollowingIDs(ctx, userID)
	}

	marshal := marshaler.New(cache.New[any](localCache.S))
	key := followedAuthorsCacheKey(userID)

	if cached, err := marshal.Get(ctx, key, new([]uuid.UUID)); err == nil {
		return *cached.(*[]uuid.UUID), nil
	}

	ids, err := s.ListFollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	_ = marshal.Set(ctx, key, ids,
		cachestore.WithExpiration(5*time.Minute),
		cachestore.WithTags([]string{"follow-graph", fmt.Sprintf("user#%s", userID)}),
	)
	return ids, nil
}

func invalidateFollowedAuthors(ctx context.Context, userID uuid.UUID) {
	if localCache.S == nil {
		return
	}
	marshal := marshaler.New(cache.New[any](localCache.S))
	if err := marshal.Delete(ctx, followedAuthorsCacheKey(userID)); err != nil {
		log.Warn().Err(err).Msg("An error occurred when invalidating follow graph cache...")
	}
}

// FollowUser creates the follower -> following edge. Following yourself,
// following a missing account, and following twice are all rejected.
func FollowUser(ctx context.Context, s store.Store, followerID, followingID uuid.UUID) error {
	if followerID == followingID {
		return ErrSelfFollow
	}
	if _, err := s.GetUser(ctx, followingID); err != nil {
		return err
	}

	if exists, err := s.ExistsFollow(ctx, followerID, followingID); err != nil {
		return fmt.Errorf("unable to check follow edge: %w", err)
	} else if exists {
		return fmt.Errorf("already following this user: %w", store.ErrConflict)
	}

	follow := models.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := s.CreateFollow(ctx, &follow); err != nil {
		return err
	}

	invalidateFollowedAuthors(ctx, followerID)
	return nil
}

func UnfollowUser(ctx context.Context, s store.Store, followerID, followingID uuid.UUID) error {
	if err := s.DeleteFollow(ctx, followerID, followingID); err != nil {
		return err
	}
	invalidateFollowedAuthors(ctx, followerID)
	return nil
}

func ListFollowers(ctx context.Context, s store.Store, userID uuid.UUID, p pagination.Params) (pagination.Paged[models.UserView], error) {
	users, total, err := s.ListFollowerUsers(ctx, userID, p)
	if err != nil {
		return pagination.Paged[models.UserView]{}, fmt.Errorf("unable to list followers: %w", err)
	}

	views := lo.Map(users, func(user models.User, _ int) models.UserView {
		return AssembleUserView(ctx, s, user)
	})
	return pagination.NewPaged(views, total, p), nil
}

func ListFollowing(ctx context.Context, s store.Store, userID uuid.UUID, p pagination.Params) (pagination.Paged[models.UserView], error) {
	users, total, err := s.ListFollowingUsers(ctx, userID, p)
	if err != nil {
		return pagination.Paged[models.UserView]{}, fmt.Errorf("unable to list followings: %w", err)
	}

	views := lo.Map(users, func(user models.User, _ int) models.UserView {
		return AssembleUserView(ctx, s, user)
	})
	return pagination.NewPaged(views, total, p), nil
}
