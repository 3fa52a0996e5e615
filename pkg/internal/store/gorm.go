package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plumehq/plume/pkg/internal/models"
	"github.com/plumehq/plume/pkg/internal/pagination"
)

// Gorm is the Postgres-backed store. The connection is expected to be opened
// with gorm's error translation enabled so unique-index violations surface as
// gorm.ErrDuplicatedKey.
type Gorm struct {
	db *gorm.DB
}

var _ Store = (*Gorm)(nil)

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}

// Users

func (g *Gorm) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return user, translate(err)
}

func (g *Gorm) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := g.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return user, translate(err)
}

func (g *Gorm) ExistsUserByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

func (g *Gorm) CreateUser(ctx context.Context, user *models.User) error {
	return translate(g.db.WithContext(ctx).Create(user).Error)
}

func (g *Gorm) UpdateUserProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (models.User, error) {
	var user models.User
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return user, translate(err)
	}

	changes := map[string]any{}
	if patch.FullName != nil {
		changes["full_name"] = *patch.FullName
	}
	if patch.Bio != nil {
		changes["bio"] = *patch.Bio
	}
	if patch.AvatarURL != nil {
		changes["avatar_url"] = *patch.AvatarURL
	}
	if len(changes) == 0 {
		return user, nil
	}

	if err := g.db.WithContext(ctx).Model(&user).Updates(changes).Error; err != nil {
		return user, translate(err)
	}
	return user, nil
}

// Posts

func (g *Gorm) GetPost(ctx context.Context, id uuid.UUID) (models.Post, error) {
	var post models.Post
	err := g.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&post).Error
	return post, translate(err)
}

func (g *Gorm) CreatePost(ctx context.Context, post *models.Post) error {
	return translate(g.db.WithContext(ctx).Omit("Tags").Create(post).Error)
}

func (g *Gorm) UpdatePost(ctx context.Context, post *models.Post) error {
	return translate(g.db.WithContext(ctx).Omit("Tags", "Author").Save(post).Error)
}

func (g *Gorm) DeletePost(ctx context.Context, id, authorID uuid.UUID) error {
	// Not-found and not-owner intentionally collapse into the same outcome.
	res := g.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		Delete(&models.Post{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *Gorm) pagePosts(tx *gorm.DB, order string, p pagination.Params) ([]models.Post, int64, error) {
	p = p.Normalize()

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Post
	if err := tx.Preload("Author").
		Order(order).
		Limit(p.Limit).Offset(p.Offset()).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (g *Gorm) ListPublishedPosts(ctx context.Context, p pagination.Params) ([]models.Post, int64, error) {
	tx := g.db.WithContext(ctx).Model(&models.Post{}).
		Where("is_published = ?", true)
	return g.pagePosts(tx, "published_at DESC", p)
}

func (g *Gorm) ListDraftsByAuthor(ctx context.Context, authorID uuid.UUID, p pagination.Params) ([]models.Post, int64, error) {
	tx := g.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ? AND is_published = ?", authorID, false)
	return g.pagePosts(tx, "created_at DESC", p)
}

func (g *Gorm) ListFollowedAuthorPosts(ctx context.Context, followerID uuid.UUID, p pagination.Params) ([]models.Post, int64, error) {
	tx := g.db.WithContext(ctx).Model(&models.Post{}).
		Joins("JOIN follows ON follows.following_id = posts.author_id").
		Where("follows.follower_id = ? AND posts.is_published = ?", followerID, true)
	return g.pagePosts(tx, "posts.published_at DESC", p)
}

func (g *Gorm) ListPostsByTag(ctx context.Context, tagName string, p pagination.Params) ([]models.Post, int64, error) {
	tx := g.db.WithContext(ctx).Model(&models.Post{}).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Where("tags.name = ? AND posts.is_published = ?", tagName, true)
	return g.pagePosts(tx, "posts.published_at DESC", p)
}

// Comments

func (g *Gorm) GetComment(ctx context.Context, id uuid.UUID) (models.Comment, error) {
	var comment models.Comment
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	return comment, translate(err)
}

func (g *Gorm) ListCommentsByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := g.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (g *Gorm) CountComments(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (g *Gorm) CreateComment(ctx context.Context, comment *models.Comment) error {
	return translate(g.db.WithContext(ctx).Omit("Author", "Post").Create(comment).Error)
}

func (g *Gorm) UpdateCommentContent(ctx context.Context, id, postID, authorID uuid.UUID, content string) (models.Comment, error) {
	var comment models.Comment
	if err := g.db.WithContext(ctx).
		Where("id = ? AND post_id = ? AND author_id = ?", id, postID, authorID).
		First(&comment).Error; err != nil {
		return comment, translate(err)
	}

	if err := g.db.WithContext(ctx).Model(&comment).Update("content", content).Error; err != nil {
		return comment, translate(err)
	}
	return comment, nil
}

func (g *Gorm) DeleteComment(ctx context.Context, id, postID, authorID uuid.UUID) error {
	res := g.db.WithContext(ctx).
		Where("id = ? AND post_id = ? AND author_id = ?", id, postID, authorID).
		Delete(&models.Comment{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Likes

func (g *Gorm) CountLikes(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (g *Gorm) ExistsLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

func (g *Gorm) CreateLike(ctx context.Context, like *models.Like) error {
	return translate(g.db.WithContext(ctx).Create(like).Error)
}

func (g *Gorm) DeleteLike(ctx context.Context, postID, userID uuid.UUID) error {
	res := g.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Follows

func (g *Gorm) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (g *Gorm) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (g *Gorm) ExistsFollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (g *Gorm) ListFollowingIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := g.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error
	return ids, err
}

func (g *Gorm) pageFollowEdgeUsers(tx *gorm.DB, p pagination.Params) ([]models.User, int64, error) {
	p = p.Normalize()

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := tx.Select("users.*").
		Order("follows.created_at DESC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (g *Gorm) ListFollowerUsers(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]models.User, int64, error) {
	tx := g.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID)
	return g.pageFollowEdgeUsers(tx, p)
}

func (g *Gorm) ListFollowingUsers(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]models.User, int64, error) {
	tx := g.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID)
	return g.pageFollowEdgeUsers(tx, p)
}

func (g *Gorm) CreateFollow(ctx context.Context, follow *models.Follow) error {
	return translate(g.db.WithContext(ctx).Create(follow).Error)
}

func (g *Gorm) DeleteFollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	res := g.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Tags

// upsertTagClauses makes a same-name insert resolve to the single existing
// row. The RETURNING clause is load-bearing: the create hook pre-fills a
// fresh UUID, so without it a conflicting insert would hand back that random
// id instead of the winning row's.
func upsertTagClauses(name string) []clause.Expression {
	return []clause.Expression{
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]any{"name": name}),
		},
		clause.Returning{Columns: []clause.Column{{Name: "id"}, {Name: "created_at"}}},
	}
}

func (g *Gorm) UpsertTagByName(ctx context.Context, name string) (models.Tag, error) {
	tag := models.Tag{Name: name}
	err := g.db.WithContext(ctx).
		Clauses(upsertTagClauses(name)...).
		Create(&tag).Error
	if err != nil {
		return tag, fmt.Errorf("unable to upsert tag: %w", err)
	}
	return tag, nil
}

func (g *Gorm) ListTagsForPost(ctx context.Context, postID uuid.UUID) ([]string, error) {
	var names []string
	err := g.db.WithContext(ctx).Model(&models.Tag{}).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Pluck("tags.name", &names).Error
	return names, err
}

func (g *Gorm) ListTags(ctx context.Context, p pagination.Params) ([]models.Tag, int64, error) {
	p = p.Normalize()

	var total int64
	if err := g.db.WithContext(ctx).Model(&models.Tag{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tags []models.Tag
	if err := g.db.WithContext(ctx).
		Order("name ASC").
		Limit(p.Limit).Offset(p.Offset()).
		Find(&tags).Error; err != nil {
		return nil, 0, err
	}

	return tags, total, nil
}

func (g *Gorm) ReplacePostTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", postID).Error; err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			if err := tx.Exec(
				"INSERT INTO post_tags (post_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
				postID, tagID,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
