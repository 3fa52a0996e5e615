package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/plumehq/plume/pkg/internal/models"
	"github.com/plumehq/plume/pkg/internal/store"
)

var ErrParentComment = errors.New("parent comment not found on this post")

// ThreadComments collapses a flat, created-ascending list of comment views
// into root comments carrying one level of replies. Replies keep their
// creation order inside each group. A reply whose parent is itself a reply
// stays grouped under that parent and never surfaces; nesting deeper than
// one level is flattened away on read.
func ThreadComments(views []models.CommentView) []models.CommentView {
	roots := []models.CommentView{}
	replies := map[uuid.UUID][]models.CommentView{}
	for _, view := range views {
		if view.ParentID == nil {
			roots = append(roots, view)
		} else {
			replies[*view.ParentID] = append(replies[*view.ParentID], view)
		}
	}

	for idx := range roots {
		if group, ok := replies[roots[idx].ID]; ok {
			roots[idx].Replies = group
		}
	}
	return roots
}

// ListCommentThread loads and threads the full comment tree of one post.
func ListCommentThread(ctx context.Context, s store.Store, postID uuid.UUID) ([]models.CommentView, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.ListCommentsByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("unable to list comments: %w", err)
	}

	views := make([]models.CommentView, 0, len(comments))
	for _, comment := range comments {
		view, err := AssembleCommentView(ctx, s, comment)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return ThreadComments(views), nil
}

// NewComment attaches a comment to a post, optionally as a reply. The parent
// must be an existing comment on the same post.
func NewComment(ctx context.Context, s store.Store, postID, authorID uuid.UUID, content string, parentID *uuid.UUID) (models.CommentView, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return models.CommentView{}, err
	}
	if parentID != nil {
		parent, err := s.GetComment(ctx, *parentID)
		if errors.Is(err, store.ErrNotFound) {
			return models.CommentView{}, ErrParentComment
		} else if err != nil {
			return models.CommentView{}, fmt.Errorf("unable to load parent comment: %w", err)
		}
		if parent.PostID != postID {
			return models.CommentView{}, ErrParentComment
		}
	}

	comment := models.Comment{
		Content:  content,
		PostID:   postID,
		AuthorID: authorID,
		ParentID: parentID,
	}
	if err := s.CreateComment(ctx, &comment); err != nil {
		return models.CommentView{}, err
	}
	return AssembleCommentView(ctx, s, comment)
}

// EditComment rewrites the body of the author's own comment.
func EditComment(ctx context.Context, s store.Store, id, postID, authorID uuid.UUID, content string) (models.CommentView, error) {
	comment, err := s.UpdateCommentContent(ctx, id, postID, authorID, content)
	if err != nil {
		return models.CommentView{}, err
	}
	return AssembleCommentView(ctx, s, comment)
}

func DeleteComment(ctx context.Context, s store.Store, id, postID, authorID uuid.UUID) error {
	return s.DeleteComment(ctx, id, postID, authorID)
}
