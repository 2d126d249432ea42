package accounts

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/technobugproject/technobug/model"
	"github.com/technobugproject/technobug/utils"
	"github.com/technobugproject/technobug/utils/dotenv"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func TestRegisterAndAuthenticate(t *testing.T) {
	db, _ := utils.CreateTempDB(t)

	user, err := Register(db, "felipe", "felipe@technobug.dev", "senha123")
	require.Nil(t, err)
	require.NotNil(t, user.PasswordHash)
	require.NotEqual(t, "senha123", *user.PasswordHash)

	got, err := Authenticate(db, "felipe@technobug.dev", "senha123")
	require.Nil(t, err)
	require.Equal(t, user.Id, got.Id)

	_, err = Authenticate(db, "felipe@technobug.dev", "senhaerrada")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Authenticate(db, "ninguem@technobug.dev", "senha123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterUniqueness(t *testing.T) {
	db, _ := utils.CreateTempDB(t)

	_, err := Register(db, "felipe", "felipe@technobug.dev", "senha123")
	require.Nil(t, err)

	_, err = Register(db, "outro", "felipe@technobug.dev", "senha123")
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = Register(db, "felipe", "outro@technobug.dev", "senha123")
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = Register(db, "curto", "curto@technobug.dev", "12345")
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestFederatedAccountHasNoHash(t *testing.T) {
	db, _ := utils.CreateTempDB(t)

	user, err := RegisterFederated(db, "google_user", "google@technobug.dev")
	require.Nil(t, err)
	require.Nil(t, user.PasswordHash)

	// Password login must fail without leaking that the account exists.
	_, err = Authenticate(db, "google@technobug.dev", "qualquercoisa")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	db, _ := utils.CreateTempDB(t)

	user, err := Register(db, "felipe", "felipe@technobug.dev", "senha123")
	require.Nil(t, err)
	_, err = Register(db, "maria", "maria@technobug.dev", "senha123")
	require.Nil(t, err)

	newName := "felipe_dev"
	pic := "uploads/felipe.png"
	updated, err := UpdateProfile(db, user.Id, ProfileUpdate{Username: &newName, ProfilePicture: &pic})
	require.Nil(t, err)

	var got model.User
	db.Where("id = ?", updated.Id).First(&got)
	require.Equal(t, "felipe_dev", got.Username)
	require.Equal(t, "uploads/felipe.png", got.ProfilePicture)

	taken := "maria"
	_, err = UpdateProfile(db, user.Id, ProfileUpdate{Username: &taken})
	require.ErrorIs(t, err, ErrUsernameTaken)
}
