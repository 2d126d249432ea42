package model

import "time"

/*

ResetCode is an emailed 6-digit password-reset code.

Email: address the code was sent to. Not a foreign key: the address may
	belong to a federated-identity account that has no local User row yet
	and is being claimed through the reset flow.
Code: 6 numeric digits
ExpiresAt: issue time + 10 minutes

There is no uniqueness constraint: several outstanding codes per email are
allowed and any unexpired one verifies. Rows are deleted on successful
verification or when found expired.
*/

type ResetCode struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	Email     string `gorm:"index;not null"`
	Code      string `gorm:"not null"`
	ExpiresAt time.Time
}

// Expired reports whether the code is past its expiry at the given time.
func (r *ResetCode) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
