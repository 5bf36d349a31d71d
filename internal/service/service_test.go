package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"truthlink/message-api/internal/model"
	"truthlink/message-api/pkg/security"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database, one per test, with the
// schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(model.User{}, model.Message{}))

	return db
}

// stubMailer records what would have been sent and can be told to fail.
type stubMailer struct {
	codes     []string
	resetURLs []string
	lastTo    string
	failNext  bool
}

func (m *stubMailer) SendVerifyCode(toAddr, username, code string) error {
	if m.failNext {
		m.failNext = false
		return errors.New("smtp unreachable")
	}

	m.lastTo = toAddr
	m.codes = append(m.codes, code)
	return nil
}

func (m *stubMailer) SendPasswordReset(toAddr, username, resetURL string) error {
	if m.failNext {
		m.failNext = false
		return errors.New("smtp unreachable")
	}

	m.lastTo = toAddr
	m.resetURLs = append(m.resetURLs, resetURL)
	return nil
}

type testEnv struct {
	db           *gorm.DB
	mail         *stubMailer
	accounts     *Accounts
	verification *Verification
	reset        *Reset
	auth         *Auth
	messages     *Messages
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	argon := security.New()
	mail := &stubMailer{}

	return &testEnv{
		db:           db,
		mail:         mail,
		accounts:     &Accounts{DB: db, Argon: argon},
		verification: &Verification{DB: db, Mail: mail, CodeTTL: time.Hour},
		reset: &Reset{
			DB:       db,
			Argon:    argon,
			Mail:     mail,
			TokenTTL: time.Hour,
			ResetURL: "http://localhost/reset-password",
		},
		auth: &Auth{
			DB:         db,
			Argon:      argon,
			SignKey:    []byte("test-secret"),
			SessionTTL: time.Hour,
		},
		messages: &Messages{DB: db},
	}
}

// registerVerified creates an account and walks it through verification.
func (e *testEnv) registerVerified(t *testing.T, username, email, password string) *model.User {
	t.Helper()

	user, err := e.accounts.Register(username, email, password)
	require.NoError(t, err)

	require.NoError(t, e.verification.Issue(user))
	require.NoError(t, e.verification.Redeem(username, e.mail.codes[len(e.mail.codes)-1]))

	fresh, err := e.accounts.FindByID(user.ID)
	require.NoError(t, err)

	return fresh
}
