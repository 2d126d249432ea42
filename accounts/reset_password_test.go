package accounts

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/technobugproject/technobug/model"
	"github.com/technobugproject/technobug/utils"
)

// recordingSender keeps sent emails so tests can fish the code out.
type recordingSender struct {
	to    []string
	codes []string
}

var codePattern = regexp.MustCompile(`\d{6}`)

func (s *recordingSender) Send(toEmail string, subject string, htmlBody string) error {
	s.to = append(s.to, toEmail)
	s.codes = append(s.codes, codePattern.FindString(htmlBody))
	return nil
}

func TestGenerateResetCode(t *testing.T) {
	for i := 0; i < 20; i++ {
		require.Regexp(t, "^[0-9]{6}$", GenerateResetCode())
	}
}

func TestResetFlowForLocalUser(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	sender := &recordingSender{}

	_, err := Register(db, "felipe", "felipe@technobug.dev", "senhaantiga")
	require.Nil(t, err)

	require.Nil(t, IssueResetCode(db, sender, "felipe@technobug.dev"))
	require.Len(t, sender.codes, 1)
	require.Equal(t, []string{"felipe@technobug.dev"}, sender.to)

	require.Nil(t, VerifyResetCode(db, "felipe@technobug.dev", sender.codes[0], "senhanova"))

	_, err = Authenticate(db, "felipe@technobug.dev", "senhanova")
	require.Nil(t, err)
	_, err = Authenticate(db, "felipe@technobug.dev", "senhaantiga")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// The code is consumed, a second use fails.
	require.ErrorIs(t,
		VerifyResetCode(db, "felipe@technobug.dev", sender.codes[0], "outrasenha"),
		ErrCodeInvalid)

	var count int64
	db.Model(&model.ResetCode{}).Count(&count)
	require.Equal(t, int64(0), count)
}

func TestResetFlowClaimsFederatedAccount(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	sender := &recordingSender{}

	// No local row at all for this address yet.
	require.Nil(t, IssueResetCode(db, sender, "google@technobug.dev"))
	require.Nil(t, VerifyResetCode(db, "google@technobug.dev", sender.codes[0], "senhanova"))

	user, err := Authenticate(db, "google@technobug.dev", "senhanova")
	require.Nil(t, err)
	require.Equal(t, "google", user.Username)
}

func TestAnyUnexpiredCodeVerifies(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	sender := &recordingSender{}

	_, err := Register(db, "felipe", "felipe@technobug.dev", "senhaantiga")
	require.Nil(t, err)

	require.Nil(t, IssueResetCode(db, sender, "felipe@technobug.dev"))
	require.Nil(t, IssueResetCode(db, sender, "felipe@technobug.dev"))
	require.Len(t, sender.codes, 2)

	// The older of the two outstanding codes still works.
	require.Nil(t, VerifyResetCode(db, "felipe@technobug.dev", sender.codes[0], "senhanova"))
}

func TestExpiredCodeIsRejectedAndDeleted(t *testing.T) {
	db, _ := utils.CreateTempDB(t)

	_, err := Register(db, "felipe", "felipe@technobug.dev", "senhaantiga")
	require.Nil(t, err)

	expired := model.ResetCode{
		Id:        "expired-code-row",
		CreatedAt: time.Now().Add(-time.Hour),
		Email:     "felipe@technobug.dev",
		Code:      "123456",
		ExpiresAt: time.Now().Add(-50 * time.Minute),
	}
	require.Nil(t, db.Create(&expired).Error)

	require.ErrorIs(t,
		VerifyResetCode(db, "felipe@technobug.dev", "123456", "senhanova"),
		ErrCodeExpired)

	var count int64
	db.Model(&model.ResetCode{}).Count(&count)
	require.Equal(t, int64(0), count)

	// Old password still works, the reset never happened.
	_, err = Authenticate(db, "felipe@technobug.dev", "senhaantiga")
	require.Nil(t, err)
}

func TestVerifyRejectsWrongCodeAndShortPassword(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	sender := &recordingSender{}

	_, err := Register(db, "felipe", "felipe@technobug.dev", "senhaantiga")
	require.Nil(t, err)
	require.Nil(t, IssueResetCode(db, sender, "felipe@technobug.dev"))

	require.ErrorIs(t,
		VerifyResetCode(db, "felipe@technobug.dev", "000000", "senhanova"),
		ErrCodeInvalid)
	require.ErrorIs(t,
		VerifyResetCode(db, "felipe@technobug.dev", sender.codes[0], "curta"),
		ErrPasswordTooShort)
}
