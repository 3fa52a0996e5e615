package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/plumehq/plume/pkg/internal/models"
	"github.com/plumehq/plume/pkg/internal/pagination"
	"github.com/plumehq/plume/pkg/internal/store"
)

// EnsureTag resolves a tag by its exact, case-sensitive name, creating it on
// first use.
func EnsureTag(ctx context.Context, s store.Store, name string) (models.Tag, error) {
	tag, err := s.UpsertTagByName(ctx, name)
	if err != nil {
		return models.Tag{}, fmt.Errorf("unable to ensure tag %q: %w", name, err)
	}
	return tag, nil
}

// TagsForPost degrades to an empty list on failure; the slice is never nil
// so the view serializes as [].
func TagsForPost(ctx context.Context, s store.Store, postID uuid.UUID) []string {
	names, err := s.ListTagsForPost(ctx, postID)
	if err != nil {
		log.Warn().Err(err).Stringer("post", postID).Msg("An error occurred when listing post tags...")
		return []string{}
	}
	if names == nil {
		names = []string{}
	}
	return names
}

func ListTags(ctx context.Context, s store.Store, p pagination.Params) (pagination.Paged[models.Tag], error) {
	tags, total, err := s.ListTags(ctx, p)
	if err != nil {
		return pagination.Paged[models.Tag]{}, fmt.Errorf("unable to list tags: %w", err)
	}
	return pagination.NewPaged(tags, total, p), nil
}

// ListPostsByTag pages the published posts carrying the named tag, newest
// publication first.
func ListPostsByTag(ctx context.Context, s store.Store, tagName string, viewerID *uuid.UUID, p pagination.Params) (pagination.Paged[models.PostView], error) {
	posts, total, err := s.ListPostsByTag(ctx, tagName, p)
	if err != nil {
		return pagination.Paged[models.PostView]{}, fmt.Errorf("unable to list posts by tag: %w", err)
	}

	views, err := AssemblePostViews(ctx, s, posts, viewerID)
	if err != nil {
		return pagination.Paged[models.PostView]{}, err
	}
	return pagination.NewPaged(views, total, p), nil
}
