package model

import (
	"time"

	"gorm.io/datatypes"
)

/*

User is a registered community member.

Id: primary key
CreatedAt: time when the account is created

Username: display name, uniqueness enforced at the application layer
Email: login identity, globally unique
PasswordHash: bcrypt hash of the password. Nil for federated-identity
	accounts (Google login) that never set a local password.

IsAdmin, IsModerator: role flags used for rendering badges

ProfilePicture: relative path of the uploaded avatar, empty when unset

VisitedPages: page key -> last-visit timestamp (RFC3339), persisted as a
	JSON column. Only keys from progress.Pages are ever written.
LastActivity: refreshed every time a page visit is recorded
*/

type User struct {
	Id             string `gorm:"primaryKey"`
	CreatedAt      time.Time
	Username       string  `gorm:"index;not null"`
	Email          string  `gorm:"uniqueIndex;not null"`
	PasswordHash   *string
	IsAdmin        bool
	IsModerator    bool
	ProfilePicture string
	VisitedPages   datatypes.JSONMap
	LastActivity   time.Time
}
