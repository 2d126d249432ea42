package community

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/technobugproject/technobug/model"
	"gorm.io/gorm"
)

// CreateComment adds a comment to a post, or a reply when parentID is given.
// The parent must belong to the same post. Replying to a reply attaches to
// the reply's own top-level parent, keeping the thread exactly one level
// deep by construction.
func CreateComment(db *gorm.DB, userID string, postID string, parentID *string, content string) (*model.Comment, error) {
	if db.Where("id = ?", userID).First(&model.User{}).RowsAffected != 1 {
		return nil, ErrNotFound
	}
	if db.Where("id = ?", postID).First(&model.Post{}).RowsAffected != 1 {
		return nil, ErrNotFound
	}

	if parentID != nil {
		var parent model.Comment
		if db.Where("id = ?", *parentID).First(&parent).RowsAffected != 1 {
			return nil, ErrNotFound
		}
		if parent.PostID != postID {
			return nil, errors.New("parent comment belongs to a different post")
		}
		if parent.IsReply() {
			parentID = parent.ParentID
		}
	}

	comment := model.Comment{
		Id:        uuid.New().String(),
		CreatedAt: time.Now(),
		Content:   content,
		UserID:    userID,
		PostID:    postID,
		ParentID:  parentID,
	}
	if err := db.Create(&comment).Error; err != nil {
		return nil, errors.Wrap(err, "fail to create comment for user "+userID)
	}
	return &comment, nil
}

// DeleteComment removes a comment. Deleting a top-level comment also deletes
// its direct replies and every like on the comment or its replies, in one
// transaction. Only the author may delete.
func DeleteComment(db *gorm.DB, userID string, commentID string) error {
	var comment model.Comment
	if db.Where("id = ?", commentID).First(&comment).RowsAffected != 1 {
		return ErrNotFound
	}
	if comment.UserID != userID {
		return ErrNotOwner
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var replyIds []string
		if err := tx.Model(&model.Comment{}).Where("parent_id = ?", commentID).Pluck("id", &replyIds).Error; err != nil {
			return errors.Wrap(err, "fail to collect replies of comment "+commentID)
		}
		doomed := append(replyIds, commentID)
		if err := tx.Where("comment_id IN ?", doomed).Delete(&model.Like{}).Error; err != nil {
			return errors.Wrap(err, "fail to delete likes of comment "+commentID)
		}
		if err := tx.Where("id IN ?", doomed).Delete(&model.Comment{}).Error; err != nil {
			return errors.Wrap(err, "fail to delete comment "+commentID)
		}
		return nil
	})
}
