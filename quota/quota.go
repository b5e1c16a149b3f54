// Package quota controla o limite diário de e-mails enviados por usuário.
package quota

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wedding-planner/models"
)

const dayLayout = "2006-01-02"

var ErrQuotaExceeded = errors.New("daily email quota exceeded")

// Store guarda o contador em email_quota(user_uid, day, sent).
type Store struct {
	db    *sql.DB
	limit int
	now   func() time.Time
}

func NewStore(db *sql.DB, dailyLimit int) *Store {
	return &Store{db: db, limit: dailyLimit, now: time.Now}
}

// Reservation identifica a unidade reservada para poder devolvê-la depois
type Reservation struct {
	UserUID string
	Day     string
	Sent    int
}

func (s *Store) today() string {
	return s.now().UTC().Format(dayLayout)
}

// Só incrementa enquanto sent < limite; quando o limite já foi atingido o
// RETURNING não devolve linhas.
const reserveSQL = `
INSERT INTO email_quota (user_uid, day, sent) VALUES ($1, $2, 1)
ON CONFLICT (user_uid, day) DO UPDATE SET sent = email_quota.sent + 1
WHERE email_quota.sent < $3
RETURNING sent`

// Reserve consome uma unidade da cota do dia de forma atômica.
func (s *Store) Reserve(ctx context.Context, userUID string) (Reservation, error) {
	day := s.today()
	var sent int
	err := s.db.QueryRowContext(ctx, reserveSQL, userUID, day, s.limit).Scan(&sent)
	if errors.Is(err, sql.ErrNoRows) {
		return Reservation{}, ErrQuotaExceeded
	}
	if err != nil {
		return Reservation{}, fmt.Errorf("erro ao reservar cota de e-mail para %s: %w", userUID, err)
	}
	return Reservation{UserUID: userUID, Day: day, Sent: sent}, nil
}

// Release devolve a unidade quando o envio falha.
func (s *Store) Release(ctx context.Context, r Reservation) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE email_quota SET sent = sent - 1 WHERE user_uid = $1 AND day = $2 AND sent > 0`,
		r.UserUID, r.Day)
	if err != nil {
		return fmt.Errorf("erro ao devolver cota de e-mail para %s: %w", r.UserUID, err)
	}
	return nil
}

func (s *Store) Usage(ctx context.Context, userUID string) (models.QuotaUsage, error) {
	day := s.today()
	usage := models.QuotaUsage{Day: day, Limit: s.limit}

	err := s.db.QueryRowContext(ctx,
		`SELECT sent FROM email_quota WHERE user_uid = $1 AND day = $2`,
		userUID, day).Scan(&usage.Sent)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return usage, fmt.Errorf("erro ao consultar cota de e-mail para %s: %w", userUID, err)
	}

	usage.Remaining = s.limit - usage.Sent
	if usage.Remaining < 0 {
		usage.Remaining = 0
	}
	return usage, nil
}
