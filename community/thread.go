package community

import (
	"time"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/technobugproject/technobug/model"
	"gorm.io/gorm"
)

// Author is the slice of a user shown next to their comment.
type Author struct {
	Id             string `json:"id"`
	Username       string `json:"username"`
	IsAdmin        bool   `json:"is_admin"`
	IsModerator    bool   `json:"is_moderator"`
	ProfilePicture string `json:"profile_picture"`
}

// ThreadComment is one node of an assembled discussion: a top-level comment
// with its flat reply list, or a reply (whose Replies is always empty).
type ThreadComment struct {
	Id        string           `json:"id"`
	Content   string           `json:"content"`
	CreatedAt time.Time        `json:"created_at"`
	Author    Author           `json:"author"`
	LikeCount int64            `json:"like_count"`
	Replies   []*ThreadComment `json:"replies"`
}

// AssembleThread resolves a post's discussion for rendering: top-level
// comments in conversational order (creation time ascending), each carrying
// its author, like count, and direct replies in the same order. The source
// data permits deeper nesting but the product renders one level, so replies
// are returned flat under their top-level comment.
func AssembleThread(db *gorm.DB, postID string) ([]*ThreadComment, error) {
	if db.Where("id = ?", postID).First(&model.Post{}).RowsAffected != 1 {
		return nil, ErrNotFound
	}

	var comments []*model.Comment
	err := db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		return nil, errors.Wrap(err, "fail to load comments for post "+postID)
	}

	commentIds := make([]string, 0, len(comments))
	for _, comment := range comments {
		commentIds = append(commentIds, comment.Id)
	}
	likeCounts, err := likeCountsByComment(db, commentIds)
	if err != nil {
		return nil, err
	}

	thread := []*ThreadComment{}
	topLevel := map[string]*ThreadComment{}
	for _, comment := range comments {
		if comment.IsReply() {
			continue
		}
		node := toThreadComment(comment, likeCounts[comment.Id])
		topLevel[comment.Id] = node
		thread = append(thread, node)
	}

	// Comments are already in creation order, so reply lists come out in
	// conversational order too.
	for _, comment := range comments {
		if !comment.IsReply() {
			continue
		}
		parent, ok := topLevel[*comment.ParentID]
		if !ok {
			// A reply whose parent was deleted mid-assembly; skip rather
			// than fail the whole thread.
			continue
		}
		parent.Replies = append(parent.Replies, toThreadComment(comment, likeCounts[comment.Id]))
	}

	return thread, nil
}

func toThreadComment(comment *model.Comment, likeCount int64) *ThreadComment {
	node := ThreadComment{Replies: []*ThreadComment{}}
	copier.Copy(&node, comment)
	copier.Copy(&node.Author, &comment.User)
	node.LikeCount = likeCount
	return &node
}
