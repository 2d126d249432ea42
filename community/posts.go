package community

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/technobugproject/technobug/model"
	"gorm.io/gorm"
)

// CreatePost publishes a new post by the given user. An empty category gets
// the default label.
func CreatePost(db *gorm.DB, userID string, content string, category string) (*model.Post, error) {
	if db.Where("id = ?", userID).First(&model.User{}).RowsAffected != 1 {
		return nil, ErrNotFound
	}
	if category == "" {
		category = model.DefaultPostCategory
	}

	post := model.Post{
		Id:        uuid.New().String(),
		CreatedAt: time.Now(),
		Content:   content,
		Category:  category,
		UserID:    userID,
	}
	if err := db.Create(&post).Error; err != nil {
		return nil, errors.Wrap(err, "fail to create post for user "+userID)
	}
	return &post, nil
}

// ListPosts returns the community feed with authors, most recent first.
func ListPosts(db *gorm.DB) ([]*model.Post, error) {
	var posts []*model.Post
	err := db.Preload("User").Order("created_at desc").Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "fail to list posts")
	}
	return posts, nil
}

// DeletePost removes a post and everything hanging off it: its comments,
// the likes on the post, and the likes on each of those comments. Only the
// author may delete. The whole cascade commits or rolls back as a unit since
// the schema doesn't enforce it.
func DeletePost(db *gorm.DB, userID string, postID string) error {
	var post model.Post
	if db.Where("id = ?", postID).First(&post).RowsAffected != 1 {
		return ErrNotFound
	}
	if post.UserID != userID {
		return ErrNotOwner
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var commentIds []string
		if err := tx.Model(&model.Comment{}).Where("post_id = ?", postID).Pluck("id", &commentIds).Error; err != nil {
			return errors.Wrap(err, "fail to collect comments of post "+postID)
		}
		if len(commentIds) > 0 {
			if err := tx.Where("comment_id IN ?", commentIds).Delete(&model.Like{}).Error; err != nil {
				return errors.Wrap(err, "fail to delete comment likes of post "+postID)
			}
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.Like{}).Error; err != nil {
			return errors.Wrap(err, "fail to delete likes of post "+postID)
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
			return errors.Wrap(err, "fail to delete comments of post "+postID)
		}
		if err := tx.Delete(&post).Error; err != nil {
			return errors.Wrap(err, "fail to delete post "+postID)
		}
		return nil
	})
}
