package accounts

import (
	"errors"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/technobugproject/technobug/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordTooShort   = errors.New("password must have at least 6 characters")
)

const minPasswordLength = 6

// Register creates a local-password account. Email uniqueness is backed by
// the DB index; username uniqueness is enforced here for every caller, the
// schema only indexes it.
func Register(db *gorm.DB, username string, email string, password string) (*model.User, error) {
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if err := checkIdentityFree(db, username, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "fail to hash password")
	}
	hashStr := string(hash)

	user := model.User{
		Id:           uuid.New().String(),
		CreatedAt:    time.Now(),
		Username:     username,
		Email:        email,
		PasswordHash: &hashStr,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "fail to create user "+email)
	}
	return &user, nil
}

// RegisterFederated creates the local row for an account authenticated by an
// external identity provider. No password hash: such accounts only get one
// if they later claim the account through the reset flow.
func RegisterFederated(db *gorm.DB, username string, email string) (*model.User, error) {
	if err := checkIdentityFree(db, username, email); err != nil {
		return nil, err
	}

	user := model.User{
		Id:        uuid.New().String(),
		CreatedAt: time.Now(),
		Username:  username,
		Email:     email,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "fail to create federated user "+email)
	}
	return &user, nil
}

// Authenticate checks a local-password login. Federated accounts without a
// local hash fail like a wrong password so the response doesn't leak which
// provider owns the address.
func Authenticate(db *gorm.DB, email string, password string) (*model.User, error) {
	var user model.User
	if db.Where("email = ?", email).First(&user).RowsAffected != 1 {
		return nil, ErrInvalidCredentials
	}
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// ProfileUpdate carries the optional profile fields; nil means unchanged.
type ProfileUpdate struct {
	Username       *string
	ProfilePicture *string
}

// UpdateProfile applies the non-nil fields of update to the user's profile.
func UpdateProfile(db *gorm.DB, userID string, update ProfileUpdate) (*model.User, error) {
	var user model.User
	if db.Where("id = ?", userID).First(&user).RowsAffected != 1 {
		return nil, ErrUserNotFound
	}

	changes := map[string]interface{}{}
	if update.Username != nil && *update.Username != user.Username {
		var taken int64
		db.Model(&model.User{}).Where("username = ? AND id != ?", *update.Username, userID).Count(&taken)
		if taken > 0 {
			return nil, ErrUsernameTaken
		}
		changes["username"] = *update.Username
	}
	if update.ProfilePicture != nil {
		changes["profile_picture"] = *update.ProfilePicture
	}
	if len(changes) == 0 {
		return &user, nil
	}

	if err := db.Model(&user).Updates(changes).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "fail to update profile of user "+userID)
	}
	return &user, nil
}

func checkIdentityFree(db *gorm.DB, username string, email string) error {
	var count int64
	db.Model(&model.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return ErrEmailTaken
	}
	db.Model(&model.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return ErrUsernameTaken
	}
	return nil
}
