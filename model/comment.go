package model

import "time"

/*

Comment is a reply to a post, or a reply to another comment.

Id: primary key
CreatedAt: time when entity is created

Content: comment body in plain text
UserID:
User: the author, "belongs-to" relation
PostID:
Post: the post this comment belongs to, even for replies
ParentID: nil for a top-level comment. Set to the top-level comment's id
	for a reply. The schema permits arbitrary depth but the product only
	renders one level, so the thread assembler never recurses past replies.
*/

type Comment struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	Content   string `gorm:"type:text;not null"`
	UserID    string `gorm:"index;not null"`
	User      User
	PostID    string `gorm:"index;not null"`
	Post      Post
	ParentID  *string `gorm:"index"`
}

// IsReply reports whether the comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
