package gmail

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

var (
	// ErrRateLimited: a API pediu para diminuir o ritmo; vale tentar de novo
	ErrRateLimited = errors.New("gmail rate limit exceeded")
	// ErrQuotaExceeded: cota diária da conta esgotada; não adianta repetir hoje
	ErrQuotaExceeded = errors.New("gmail daily quota exceeded")
	// ErrReauthRequired: token ausente, expirado ou revogado
	ErrReauthRequired = errors.New("gmail authorization required")
)

var (
	rateLimitReasons = map[string]bool{
		"rateLimitExceeded":     true,
		"userRateLimitExceeded": true,
	}
	quotaReasons = map[string]bool{
		"dailyLimitExceeded": true,
		"quotaExceeded":      true,
	}
)

// Classify traduz o erro do cliente do Gmail para um dos sentinelas acima,
// mantendo o erro original na mensagem. Erros desconhecidos voltam como estão.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrQuotaExceeded) || errors.Is(err, ErrReauthRequired) {
		return err
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: %v", ErrReauthRequired, err)
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	for _, item := range apiErr.Errors {
		if quotaReasons[item.Reason] {
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
		if rateLimitReasons[item.Reason] {
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
	}

	switch apiErr.Code {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", ErrReauthRequired, err)
	}
	return err
}

// StatusCode devolve o status HTTP que o endpoint deve responder para o erro
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrQuotaExceeded), errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrReauthRequired):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
