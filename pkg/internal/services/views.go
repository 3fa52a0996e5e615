// Package services hosts the aggregation engine: it assembles denormalized
// read views out of the flat entities the store hands back, and carries the
// write flows that keep those views consistent.
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/plumehq/plume/pkg/internal/models"
	"github.com/plumehq/plume/pkg/internal/store"
)

// AssembleUserView merges the stored profile with live follow counts. Count
// lookups degrade to zero on failure so a profile stays renderable even when
// the relation scan is unavailable.
func AssembleUserView(ctx context.Context, s store.Store, user models.User) models.UserView {
	return models.UserView{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FullName:       user.FullName,
		Bio:            user.Bio,
		AvatarURL:      user.AvatarURL,
		IsVerified:     user.IsVerified,
		FollowerCount:  FollowerCount(ctx, s, user.ID),
		FollowingCount: FollowingCount(ctx, s, user.ID),
		CreatedAt:      user.CreatedAt,
	}
}

// AssemblePostView composes the full read view of one post. The author must
// resolve, a post without its author is unrenderable; every other sub-lookup
// (tags, counts, viewer like state) degrades to an empty value instead of
// failing the whole view. A nil viewerID means an anonymous request and
// always yields IsLiked false.
func AssemblePostView(ctx context.Context, s store.Store, post models.Post, viewerID *uuid.UUID) (models.PostView, error) {
	author := post.Author
	if author.ID == uuid.Nil {
		var err error
		author, err = s.GetUser(ctx, post.AuthorID)
		if err != nil {
			return models.PostView{}, fmt.Errorf("unable to load post author: %w", err)
		}
	}

	return models.PostView{
		ID:           post.ID,
		Title:        post.Title,
		Slug:         post.Slug,
		Content:      post.Content,
		Excerpt:      post.Excerpt,
		CoverImage:   post.CoverImage,
		Language:     post.Language,
		Author:       AssembleUserView(ctx, s, author),
		Tags:         TagsForPost(ctx, s, post.ID),
		LikeCount:    LikeCount(ctx, s, post.ID),
		CommentCount: CommentCount(ctx, s, post.ID),
		IsLiked:      IsLikedBy(ctx, s, post.ID, viewerID),
		IsPublished:  post.IsPublished,
		PublishedAt:  post.PublishedAt,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}, nil
}

func viewFanout() int {
	if limit := viper.GetInt("performance.view_fanout"); limit > 0 {
		return limit
	}
	return 8
}

// AssemblePostViews assembles a whole page of post views, fanning the
// per-post sub-lookups out over a bounded worker group. Order is preserved.
func AssemblePostViews(ctx context.Context, s store.Store, posts []models.Post, viewerID *uuid.UUID) ([]models.PostView, error) {
	views := make([]models.PostView, len(posts))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(viewFanout())
	for idx, post := range posts {
		idx, post := idx, post
		group.Go(func() error {
			view, err := AssemblePostView(ctx, s, post, viewerID)
			if err != nil {
				return err
			}
			views[idx] = view
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

// AssembleCommentView resolves one comment into its read view. Replies start
// empty; threading is a separate pass over a flat page of views.
func AssembleCommentView(ctx context.Context, s store.Store, comment models.Comment) (models.CommentView, error) {
	author := comment.Author
	if author.ID == uuid.Nil {
		var err error
		author, err = s.GetUser(ctx, comment.AuthorID)
		if err != nil {
			return models.CommentView{}, fmt.Errorf("unable to load comment author: %w", err)
		}
	}

	return models.CommentView{
		ID:        comment.ID,
		Content:   comment.Content,
		Author:    AssembleUserView(ctx, s, author),
		ParentID:  comment.ParentID,
		Replies:   []models.CommentView{},
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}, nil
}
