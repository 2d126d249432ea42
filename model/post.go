package model

import "time"

// DefaultPostCategory is assigned when a post is created without an
// explicit category.
const DefaultPostCategory = "Dúvidas Gerais"

/*

Post is a piece of content published to the community feed.

Id: primary key
CreatedAt: time when entity is created, feed listing orders by this desc

Content: post body in plain text
Category: free-text category label, defaults to DefaultPostCategory
UserID:
User: the author, "belongs-to" relation

Deleting a post cascades to its comments and to every like targeting the
post or one of its comments. The cascade is enforced by community.DeletePost
inside one transaction, not by the schema.
*/

type Post struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	Content   string `gorm:"type:text;not null"`
	Category  string `gorm:"not null"`
	UserID    string `gorm:"index;not null"`
	User      User
}
