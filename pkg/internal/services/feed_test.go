package services

import (
	"context"
	"testing"

	"github.com/plumehq/plume/pkg/internal/pagination"
)

func TestGetFeedOnlyFollowedAuthors(t *testing.T) {
	ctx := context.Background()
	s := newMemStore()
	viewer := seedUser(s, "viewer")
	alice := seedUser(s, "alice")
	bob := seedUser(s, "bob")
	carol := seedUser(s, "carol")

	if err := FollowUser(ctx, s, viewer.ID, alice.ID); err != nil {
		t.Fatalf("FollowUser: %v", err)
	}
	if err := FollowUser(ctx, s, viewer.ID, bob.ID); err != nil {
		t.Fatalf("FollowUser: %v", err)
	}

	alicePost := publishPost(t, s, alice.ID, "From Alice")
	bobPost := publishPost(t, s, bob.ID, "From Bob")
	publishPost(t, s, carol.ID, "From Carol")
	_, _ = NewPost(ctx, s, alice.ID, PostDraft{Title: "Alice Draft", Content: "wip"})

	feed, err := GetFeed(ctx, s, viewer.ID, pagination.Params{})
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}

	if feed.Total != 2 || len(feed.Data) != 2 {
		t.Fatalf("expected 2 feed posts, got total=%d len=%d", feed.Total, len(feed.Data))
	}
	if feed.Data[0].ID != bobPost || feed.Data[1].ID != alicePost {
		t.Errorf("feed not ordered newest publication first")
	}
	for _, post := range feed.Data {
		if post.Author.ID == carol.ID {
			t.Errorf("feed leaked a post from an unfollowed author")
		}
		if !post.IsPublished {
			t.Errorf("feed leaked a draft")
		}
	}
}

func TestGetFeedWithoutFollows(t *testing.T) {
	ctx := context.Background()
	s := newMemStore()
	viewer := seedUser(s, "viewer")
	alice := seedUser(s, "alice")
	publishPost(t, s, alice.ID, "Unseen")

	feed, err := GetFeed(ctx, s, viewer.ID, pagination.Params{})
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}
	if feed.Data == nil {
		t.Fatalf("empty feed must serialize as [], not null")
	}
	if feed.Total != 0 || len(feed.Data) != 0 || feed.TotalPages != 0 {
		t.Errorf("expected an empty page, got %+v", feed)
	}
}
