package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/plumehq/plume/pkg/internal/models"
	"github.com/plumehq/plume/pkg/internal/pagination"
	"github.com/plumehq/plume/pkg/internal/store"
)

// GetFeed pages the published posts authored by accounts the viewer follows,
// newest publication first. A viewer following nobody gets an empty page
// without touching the post table.
func GetFeed(ctx context.Context, s store.Store, viewerID uuid.UUID, p pagination.Params) (pagination.Paged[models.PostView], error) {
	authorIDs, err := FollowedAuthorIDs(ctx, s, viewerID)
	if err != nil {
		return pagination.Paged[models.PostView]{}, fmt.Errorf("unable to resolve followed authors: %w", err)
	}
	if len(authorIDs) == 0 {
		return pagination.NewPaged[models.PostView](nil, 0, p), nil
	}

	posts, total, err := s.ListFollowedAuthorPosts(ctx, viewerID, p)
	if err != nil {
		return pagination.Paged[models.PostView]{}, fmt.Errorf("unable to list feed posts: %w", err)
	}

	views, err := AssemblePostViews(ctx, s, posts, &viewerID)
	if err != nil {
		return pagination.Paged[models.PostView]{}, err
	}
	return pagination.NewPaged(views, total, p), nil
}
