package gmail

import (
	"context"
	"errors"
	"time"

	"wedding-planner/models"
	"wedding-planner/utilities"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
)

// Sender envia pelo Transport e repete com backoff exponencial quando o Gmail
// responde com limite de taxa. Outros erros voltam na primeira tentativa.
type Sender struct {
	Transport   Transport
	MaxAttempts int
	BaseDelay   time.Duration

	sleep func(ctx context.Context, d time.Duration) error
}

func NewSender(t Transport) *Sender {
	return &Sender{Transport: t, MaxAttempts: DefaultMaxAttempts, BaseDelay: DefaultBaseDelay, sleep: sleepContext}
}

// Send devolve o resultado, o número de tentativas feitas e o erro já classificado.
func (s *Sender) Send(ctx context.Context, raw string) (*models.GmailResult, int, error) {
	attempts := s.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := s.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		res, err := s.Transport.Send(ctx, raw)
		if err == nil {
			return res, attempt, nil
		}

		lastErr = Classify(err)
		if !errors.Is(lastErr, ErrRateLimited) || attempt == attempts {
			return nil, attempt, lastErr
		}

		delay := s.BaseDelay << (attempt - 1)
		utilities.LogInfo("Gmail limitou a taxa de envio (tentativa %d/%d), aguardando %v", attempt, attempts, delay)
		if err := sleep(ctx, delay); err != nil {
			return nil, attempt, err
		}
	}
	return nil, attempts, lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
