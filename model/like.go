package model

import "time"

/*

Like marks a user's appreciation of exactly one post or one comment.

Id: primary key
CreatedAt: time when entity is created

UserID: the user giving the like
PostID: set iff the target is a post
CommentID: set iff the target is a comment

Exactly one of PostID/CommentID is non-nil. The community package only
constructs likes through a tagged target union, so "both set" and "neither
set" are unreachable. At most one like may exist per (user, target) pair;
the partial unique indexes below back that invariant against concurrent
toggles (Postgres treats NULLs as distinct, so each index only constrains
rows of its own target kind).
*/

type Like struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UserID    string  `gorm:"not null;uniqueIndex:idx_like_user_post;uniqueIndex:idx_like_user_comment"`
	User      User
	PostID    *string `gorm:"uniqueIndex:idx_like_user_post"`
	CommentID *string `gorm:"uniqueIndex:idx_like_user_comment"`
}
