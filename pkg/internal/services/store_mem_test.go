package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plumehq/plume/pkg/internal/models"
	"github.com/plumehq/plume/pkg/internal/pagination"
	"github.com/plumehq/plume/pkg/internal/store"
)

// memStore is an in-memory store.Store used to exercise the services layer
// without a database. View assembly fans out over goroutines, so every
// method locks.
type memStore struct {
	mu       sync.Mutex
	seq      int
	base     time.Time
	users    map[uuid.UUID]models.User
	posts    map[uuid.UUID]models.Post
	comments []models.Comment
	likes    []models.Like
	follows  []models.Follow
	tags     map[uuid.UUID]models.Tag
	postTags map[uuid.UUID][]uuid.UUID
}

var _ store.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		base:     time.Now(),
		users:    map[uuid.UUID]models.User{},
		posts:    map[uuid.UUID]models.Post{},
		tags:     map[uuid.UUID]models.Tag{},
		postTags: map[uuid.UUID][]uuid.UUID{},
	}
}

// tick hands out strictly increasing timestamps so ordering assertions are
// deterministic.
func (m *memStore) tick() time.Time {
	m.seq++
	return m.base.Add(time.Duration(m.seq) * time.Second)
}

func pageSlice[T any](items []T, p pagination.Params) ([]T, int64) {
	total := int64(len(items))
	p = p.Normalize()
	offset := p.Offset()
	if offset >= len(items) {
		return []T{}, total
	}
	end := offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], total
}

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return user, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (m *memStore) ExistsUserByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email || user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = m.tick()
	m.users[user.ID] = *user
	return nil
}

func (m *memStore) UpdateUserProfile(_ context.Context, id uuid.UUID, patch store.ProfilePatch) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	if patch.FullName != nil {
		user.FullName = patch.FullName
	}
	if patch.Bio != nil {
		user.Bio = patch.Bio
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = patch.AvatarURL
	}
	m.users[id] = user
	return user, nil
}

func (m *memStore) GetPost(_ context.Context, id uuid.UUID) (models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return models.Post{}, store.ErrNotFound
	}
	return post, nil
}

func (m *memStore) CreatePost(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	post.CreatedAt = m.tick()
	post.UpdatedAt = post.CreatedAt
	m.posts[post.ID] = *post
	return nil
}

func (m *memStore) UpdatePost(_ context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[post.ID]; !ok {
		return store.ErrNotFound
	}
	post.UpdatedAt = m.tick()
	m.posts[post.ID] = *post
	return nil
}

func (m *memStore) DeletePost(_ context.Context, id, authorID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok || post.AuthorID != authorID {
		return store.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *memStore) publishedPosts(filter func(models.Post) bool) []models.Post {
	posts := make([]models.Post, 0)
	for _, post := range m.posts {
		if post.IsPublished && (filter == nil || filter(post)) {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(*posts[j].PublishedAt)
	})
	return posts
}

func (m *memStore) ListPublishedPosts(_ context.Context, p pagination.Params) ([]models.Post, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	page, total := pageSlice(m.publishedPosts(nil), p)
	return page, total, nil
}

func (m *memStore) ListDraftsByAuthor(_ context.Context, authorID uuid.UUID, p pagination.Params) ([]models.Post, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	drafts := make([]models.Post, 0)
	for _, post := range m.posts {
		if !post.IsPublished && post.AuthorID == authorID {
			drafts = append(drafts, post)
		}
	}
	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].CreatedAt.After(drafts[j].CreatedAt)
	})
	page, total := pageSlice(drafts, p)
	return page, total, nil
}

func (m *memStore) ListFollowedAuthorPosts(_ context.Context, followerID uuid.UUID, p pagination.Params) ([]models.Post, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	followed := map[uuid.UUID]bool{}
	for _, follow := range m.follows {
		if follow.FollowerID == followerID {
			followed[follow.FollowingID] = true
		}
	}
	page, total := pageSlice(m.publishedPosts(func(post models.Post) bool {
		return followed[post.AuthorID]
	}), p)
	return page, total, nil
}

func (m *memStore) ListPostsByTag(_ context.Context, tagName string, p pagination.Params) ([]models.Post, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tagID uuid.UUID
	for id, tag := range m.tags {
		if tag.Name == tagName {
			tagID = id
		}
	}
	page, total := pageSlice(m.publishedPosts(func(post models.Post) bool {
		for _, id := range m.postTags[post.ID] {
			if id == tagID {
				return true
			}
		}
		return false
	}), p)
	return page, total, nil
}

func (m *memStore) GetComment(_ context.Context, id uuid.UUID) (models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, comment := range m.comments {
		if comment.ID == id {
			return comment, nil
		}
	}
	return models.Comment{}, store.ErrNotFound
}

func (m *memStore) ListCommentsByPost(_ context.Context, postID uuid.UUID) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	comments := make([]models.Comment, 0)
	for _, comment := range m.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func (m *memStore) CountComments(_ context.Context, postID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, comment := range m.comments {
		if comment.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) CreateComment(_ context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = m.tick()
	comment.UpdatedAt = comment.CreatedAt
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *memStore) UpdateCommentContent(_ context.Context, id, postID, authorID uuid.UUID, content string) (models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for idx, comment := range m.comments {
		if comment.ID == id && comment.PostID == postID && comment.AuthorID == authorID {
			m.comments[idx].Content = content
			m.comments[idx].UpdatedAt = m.tick()
			return m.comments[idx], nil
		}
	}
	return models.Comment{}, store.ErrNotFound
}

func (m *memStore) DeleteComment(_ context.Context, id, postID, authorID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for idx, comment := range m.comments {
		if comment.ID == id && comment.PostID == postID && comment.AuthorID == authorID {
			m.comments = append(m.comments[:idx], m.comments[idx+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memStore) CountLikes(_ context.Context, postID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, like := range m.likes {
		if like.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) ExistsLike(_ context.Context, postID, userID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, like := range m.likes {
		if like.PostID == postID && like.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateLike(_ context.Context, like *models.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.likes {
		if existing.PostID == like.PostID && existing.UserID == like.UserID {
			return store.ErrConflict
		}
	}
	like.ID = uuid.New()
	like.CreatedAt = m.tick()
	m.likes = append(m.likes, *like)
	return nil
}

func (m *memStore) DeleteLike(_ context.Context, postID, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for idx, like := range m.likes {
		if like.PostID == postID && like.UserID == userID {
			m.likes = append(m.likes[:idx], m.likes[idx+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memStore) CountFollowers(_ context.Context, userID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, follow := range m.follows {
		if follow.FollowingID == userID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) CountFollowing(_ context.Context, userID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, follow := range m.follows {
		if follow.FollowerID == userID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) ExistsFollow(_ context.Context, followerID, followingID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, follow := range m.follows {
		if follow.FollowerID == followerID && follow.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListFollowingIDs(_ context.Context, followerID uuid.UUID) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]uuid.UUID, 0)
	for _, follow := range m.follows {
		if follow.FollowerID == followerID {
			ids = append(ids, follow.FollowingID)
		}
	}
	return ids, nil
}

func (m *memStore) ListFollowerUsers(_ context.Context, userID uuid.UUID, p pagination.Params) ([]models.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]models.User, 0)
	for idx := len(m.follows) - 1; idx >= 0; idx-- {
		if m.follows[idx].FollowingID == userID {
			users = append(users, m.users[m.follows[idx].FollowerID])
		}
	}
	page, total := pageSlice(users, p)
	return page, total, nil
}

func (m *memStore) ListFollowingUsers(_ context.Context, userID uuid.UUID, p pagination.Params) ([]models.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]models.User, 0)
	for idx := len(m.follows) - 1; idx >= 0; idx-- {
		if m.follows[idx].FollowerID == userID {
			users = append(users, m.users[m.follows[idx].FollowingID])
		}
	}
	page, total := pageSlice(users, p)
	return page, total, nil
}

func (m *memStore) CreateFollow(_ context.Context, follow *models.Follow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.follows {
		if existing.FollowerID == follow.FollowerID && existing.FollowingID == follow.FollowingID {
			return store.ErrConflict
		}
	}
	follow.ID = uuid.New()
	follow.CreatedAt = m.tick()
	m.follows = append(m.follows, *follow)
	return nil
}

func (m *memStore) DeleteFollow(_ context.Context, followerID, followingID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for idx, follow := range m.follows {
		if follow.FollowerID == followerID && follow.FollowingID == followingID {
			m.follows = append(m.follows[:idx], m.follows[idx+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memStore) UpsertTagByName(_ context.Context, name string) (models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tag := range m.tags {
		if tag.Name == name {
			return tag, nil
		}
	}
	tag := models.Tag{Name: name}
	tag.ID = uuid.New()
	tag.CreatedAt = m.tick()
	m.tags[tag.ID] = tag
	return tag, nil
}

func (m *memStore) ListTagsForPost(_ context.Context, postID uuid.UUID) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0)
	for _, id := range m.postTags[postID] {
		names = append(names, m.tags[id].Name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *memStore) ListTags(_ context.Context, p pagination.Params) ([]models.Tag, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tags := make([]models.Tag, 0, len(m.tags))
	for _, tag := range m.tags {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	page, total := pageSlice(tags, p)
	return page, total, nil
}

func (m *memStore) ReplacePostTags(_ context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.postTags[postID] = tagIDs
	return nil
}

// seedUser is a test helper registering a bare account directly.
func seedUser(m *memStore, username string) models.User {
	user := models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	_ = m.CreateUser(context.Background(), &user)
	return user
}
