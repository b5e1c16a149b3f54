package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// TokenVerifier verifica o ID token enviado pelo frontend e devolve o UID do usuário
type TokenVerifier struct {
	client *auth.Client
}

func NewTokenVerifier(client *auth.Client) *TokenVerifier {
	return &TokenVerifier{client: client}
}

func (v *TokenVerifier) VerifyUserToken(ctx context.Context, token string) (string, error) {
	verifiedToken, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("erro ao verificar token: %w", err)
	}
	return verifiedToken.UID, nil
}
