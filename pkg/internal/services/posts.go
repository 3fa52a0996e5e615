package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"

	"github.com/plumehq/plume/pkg/internal/models"
	"github.com/plumehq/plume/pkg/internal/pagination"
	"github.com/plumehq/plume/pkg/internal/store"
)

// PostDraft carries the fields of a brand-new post. New posts always start
// unpublished.
type PostDraft struct {
	Title      string
	Content    string
	Excerpt    *string
	CoverImage *string
	Tags       []string
}

// PostPatch carries a partial edit; nil fields keep their current value. A
// non-nil empty Tags slice clears the post's tags.
type PostPatch struct {
	Title      *string
	Content    *string
	Excerpt    *string
	CoverImage *string
	Tags       []string
}

func attachTags(ctx context.Context, s store.Store, postID uuid.UUID, names []string) error {
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		tag, err := EnsureTag(ctx, s, name)
		if err != nil {
			return err
		}
		ids = append(ids, tag.ID)
	}
	return s.ReplacePostTags(ctx, postID, ids)
}

// NewPost creates a draft owned by the author. The slug is derived from the
// title and the body language is auto-detected; tag attachment failures do
// not fail the creation.
func NewPost(ctx context.Context, s store.Store, authorID uuid.UUID, draft PostDraft) (models.PostView, error) {
	post := models.Post{
		Title:      draft.Title,
		Slug:       slug.Make(draft.Title),
		Content:    draft.Content,
		Excerpt:    draft.Excerpt,
		CoverImage: draft.CoverImage,
		Language:   DetectLanguage(draft.Content),
		AuthorID:   authorID,
	}
	if err := s.CreatePost(ctx, &post); err != nil {
		return models.PostView{}, fmt.Errorf("unable to create post: %w", err)
	}

	if len(draft.Tags) > 0 {
		if err := attachTags(ctx, s, post.ID, draft.Tags); err != nil {
			log.Warn().Err(err).Stringer("post", post.ID).Msg("An error occurred when attaching tags...")
		}
	}
	return AssemblePostView(ctx, s, post, &authorID)
}

// EditPost applies a partial update to a post the caller already owns. A new
// title recomputes the slug; a new body redetects the language.
func EditPost(ctx context.Context, s store.Store, post models.Post, patch PostPatch) (models.PostView, error) {
	if patch.Title != nil {
		post.Title = *patch.Title
		post.Slug = slug.Make(*patch.Title)
	}
	if patch.Content != nil {
		post.Content = *patch.Content
		post.Language = DetectLanguage(*patch.Content)
	}
	if patch.Excerpt != nil {
		post.Excerpt = patch.Excerpt
	}
	if patch.CoverImage != nil {
		post.CoverImage = patch.CoverImage
	}

	if err := s.UpdatePost(ctx, &post); err != nil {
		return models.PostView{}, fmt.Errorf("unable to update post: %w", err)
	}

	if patch.Tags != nil {
		if err := attachTags(ctx, s, post.ID, patch.Tags); err != nil {
			log.Warn().Err(err).Stringer("post", post.ID).Msg("An error occurred when attaching tags...")
		}
	}
	return AssemblePostView(ctx, s, post, &post.AuthorID)
}

// PublishPost flips the author's draft live and stamps PublishedAt exactly
// once; publishing an already published post is a conflict, never a restamp.
func PublishPost(ctx context.Context, s store.Store, postID, authorID uuid.UUID) (models.PostView, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return models.PostView{}, err
	}
	if post.AuthorID != authorID {
		return models.PostView{}, store.ErrNotFound
	}
	if post.IsPublished {
		return models.PostView{}, fmt.Errorf("post is already published: %w", store.ErrConflict)
	}

	now := time.Now()
	post.IsPublished = true
	post.PublishedAt = &now
	if err := s.UpdatePost(ctx, &post); err != nil {
		return models.PostView{}, fmt.Errorf("unable to publish post: %w", err)
	}
	return AssemblePostView(ctx, s, post, &authorID)
}

// GetPublicPost resolves a single post view. Drafts are visible only to
// their author; to anyone else they read as missing.
func GetPublicPost(ctx context.Context, s store.Store, postID uuid.UUID, viewerID *uuid.UUID) (models.PostView, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return models.PostView{}, err
	}
	if !post.IsPublished && (viewerID == nil || *viewerID != post.AuthorID) {
		return models.PostView{}, store.ErrNotFound
	}
	return AssemblePostView(ctx, s, post, viewerID)
}

// ListPublishedPosts pages the public timeline, newest publication first.
func ListPublishedPosts(ctx context.Context, s store.Store, viewerID *uuid.UUID, p pagination.Params) (pagination.Paged[models.PostView], error) {
	posts, total, err := s.ListPublishedPosts(ctx, p)
	if err != nil {
		return pagination.Paged[models.PostView]{}, fmt.Errorf("unable to list posts: %w", err)
	}

	views, err := AssemblePostViews(ctx, s, posts, viewerID)
	if err != nil {
		return pagination.Paged[models.PostView]{}, err
	}
	return pagination.NewPaged(views, total, p), nil
}

// ListDrafts pages the caller's own unpublished posts, newest first.
func ListDrafts(ctx context.Context, s store.Store, authorID uuid.UUID, p pagination.Params) (pagination.Paged[models.PostView], error) {
	posts, total, err := s.ListDraftsByAuthor(ctx, authorID, p)
	if err != nil {
		return pagination.Paged[models.PostView]{}, fmt.Errorf("unable to list drafts: %w", err)
	}

	views, err := AssemblePostViews(ctx, s, posts, &authorID)
	if err != nil {
		return pagination.Paged[models.PostView]{}, err
	}
	return pagination.NewPaged(views, total, p), nil
}

// DeletePost trashes the author's own post; anything else reads as missing.
func DeletePost(ctx context.Context, s store.Store, postID, authorID uuid.UUID) error {
	return s.DeletePost(ctx, postID, authorID)
}
