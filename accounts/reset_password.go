package accounts

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/technobugproject/technobug/model"
	. "github.com/technobugproject/technobug/utils/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrCodeInvalid = errors.New("invalid reset code")
	ErrCodeExpired = errors.New("reset code expired")
)

const resetCodeTTL = 10 * time.Minute

// Sender delivers a reset email. The SMTP transport lives outside this
// module; production wires a real relay, development and tests use LogSender.
type Sender interface {
	Send(toEmail string, subject string, htmlBody string) error
}

// LogSender writes the email to the log instead of delivering it.
type LogSender struct{}

func (LogSender) Send(toEmail string, subject string, htmlBody string) error {
	Log.Info("reset email for ", toEmail, ": ", subject)
	return nil
}

// GenerateResetCode returns 6 random numeric digits.
func GenerateResetCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand only fails when the platform source is broken.
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// IssueResetCode creates a reset code for the email and sends it. The email
// doesn't need a local user: a federated account can claim a local password
// through this flow. Multiple outstanding codes per email are fine, any
// unexpired one verifies.
func IssueResetCode(db *gorm.DB, sender Sender, email string) error {
	code := model.ResetCode{
		Id:        uuid.New().String(),
		CreatedAt: time.Now(),
		Email:     email,
		Code:      GenerateResetCode(),
		ExpiresAt: time.Now().Add(resetCodeTTL),
	}
	if err := db.Create(&code).Error; err != nil {
		return pkgerrors.Wrap(err, "fail to persist reset code for "+email)
	}

	subject := "Código de Redefinição de Senha - TechnoBug"
	body := fmt.Sprintf(`<p>Olá,</p>
<p>Seu código de redefinição de senha é: <strong>%s</strong></p>
<p>Este código expira em 10 minutos.</p>
<p>Se você não solicitou esta redefinição, ignore este e-mail.</p>
<p>Atenciosamente,<br>Equipe TechnoBug</p>`, code.Code)

	if err := sender.Send(email, subject, body); err != nil {
		return pkgerrors.Wrap(err, "fail to send reset code to "+email)
	}
	Log.Info("reset code issued for ", email)
	return nil
}

// VerifyResetCode consumes a matching unexpired code and sets the new
// password. Matching is by exact (email, code) pair, never by recency: any
// outstanding unexpired code for the address is accepted. A matching but
// expired code is deleted on sight. When the email has no local user yet,
// a local account is created, claiming the federated identity.
func VerifyResetCode(db *gorm.DB, email string, code string, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	var resetCode model.ResetCode
	if db.Where("email = ? AND code = ?", email, code).First(&resetCode).RowsAffected != 1 {
		return ErrCodeInvalid
	}
	if resetCode.Expired(time.Now()) {
		if err := db.Delete(&resetCode).Error; err != nil {
			Log.Error("fail to delete expired reset code for ", email, ": ", err)
		}
		return ErrCodeExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return pkgerrors.Wrap(err, "fail to hash new password")
	}
	hashStr := string(hash)

	return db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if tx.Where("email = ?", email).First(&user).RowsAffected == 1 {
			if err := tx.Model(&user).Update("password_hash", hashStr).Error; err != nil {
				return pkgerrors.Wrap(err, "fail to update password for "+email)
			}
		} else {
			user = model.User{
				Id:           uuid.New().String(),
				CreatedAt:    time.Now(),
				Username:     strings.Split(email, "@")[0],
				Email:        email,
				PasswordHash: &hashStr,
			}
			if err := tx.Create(&user).Error; err != nil {
				return pkgerrors.Wrap(err, "fail to create claimed user for "+email)
			}
		}

		if err := tx.Delete(&resetCode).Error; err != nil {
			return pkgerrors.Wrap(err, "fail to consume reset code for "+email)
		}
		return nil
	})
}
