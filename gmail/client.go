package gmail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"wedding-planner/firebase"
	"wedding-planner/models"
)

// Transport envia uma mensagem já codificada. APIClient é a implementação real;
// os testes usam implementações falsas.
type Transport interface {
	Send(ctx context.Context, raw string) (*models.GmailResult, error)
}

// APIClient fala com a API do Gmail em nome de um usuário
type APIClient struct {
	svc *gmailapi.Service
}

// OAuthConfig monta a configuração OAuth2 do app. O token source que ela cria
// renova o access token sozinho usando o refresh token.
func OAuthConfig(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmailapi.GmailSendScope},
	}
}

func NewAPIClient(ctx context.Context, cfg *oauth2.Config, tok *oauth2.Token) (*APIClient, error) {
	svc, err := gmailapi.NewService(ctx, option.WithTokenSource(cfg.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente do Gmail: %w", err)
	}
	return &APIClient{svc: svc}, nil
}

func (c *APIClient) Send(ctx context.Context, raw string) (*models.GmailResult, error) {
	msg, err := c.svc.Users.Messages.Send("me", &gmailapi.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return &models.GmailResult{ID: msg.Id, ThreadID: msg.ThreadId, LabelIDs: msg.LabelIds}, nil
}

// TokenStore lê o token OAuth salvo para o usuário
type TokenStore interface {
	GetGmailToken(ctx context.Context, uid string) (models.GmailToken, error)
}

// Transports cria um APIClient por usuário a partir do token salvo
type Transports struct {
	Tokens TokenStore
	OAuth  *oauth2.Config
}

// TransportFor devolve ErrReauthRequired quando o usuário nunca autorizou o
// Gmail ou o token salvo não tem como ser renovado.
func (t *Transports) TransportFor(ctx context.Context, uid string) (Transport, error) {
	stored, err := t.Tokens.GetGmailToken(ctx, uid)
	if err != nil {
		if errors.Is(err, firebase.ErrNotFound) {
			return nil, fmt.Errorf("%w: usuário %s não conectou o Gmail", ErrReauthRequired, uid)
		}
		return nil, err
	}
	if stored.AccessToken == "" && stored.RefreshToken == "" {
		return nil, fmt.Errorf("%w: token do Gmail vazio para %s", ErrReauthRequired, uid)
	}
	if stored.RefreshToken == "" && !stored.Expiry.IsZero() && stored.Expiry.Before(time.Now()) {
		return nil, fmt.Errorf("%w: token do Gmail expirado para %s", ErrReauthRequired, uid)
	}

	tok := &oauth2.Token{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		TokenType:    stored.TokenType,
		Expiry:       stored.Expiry,
	}
	return NewAPIClient(ctx, t.OAuth, tok)
}
