package firebase

import (
	"context"
	"fmt"

	"wedding-planner/models"
)

// GetNotificationPreferences devolve found=false quando o usuário ainda não salvou preferências
func (s *Store) GetNotificationPreferences(ctx context.Context, uid string) (models.NotificationPreferences, bool, error) {
	doc, err := s.userDoc(uid).Collection("settings").Doc("notifications").Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return models.NotificationPreferences{}, false, nil
		}
		return models.NotificationPreferences{}, false, fmt.Errorf("erro ao buscar preferências de %s: %w", uid, err)
	}
	var prefs models.NotificationPreferences
	if err := doc.DataTo(&prefs); err != nil {
		return models.NotificationPreferences{}, false, fmt.Errorf("erro ao converter preferências de %s: %w", uid, err)
	}
	return prefs, true, nil
}

func (s *Store) SaveNotificationPreferences(ctx context.Context, uid string, prefs models.NotificationPreferences) error {
	if _, err := s.userDoc(uid).Collection("settings").Doc("notifications").Set(ctx, prefs); err != nil {
		return fmt.Errorf("erro ao salvar preferências de %s: %w", uid, err)
	}
	return nil
}

// GetGmailToken lê o token OAuth gravado pelo frontend depois do consentimento
func (s *Store) GetGmailToken(ctx context.Context, uid string) (models.GmailToken, error) {
	doc, err := s.userDoc(uid).Collection("integrations").Doc("gmail").Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return models.GmailToken{}, ErrNotFound
		}
		return models.GmailToken{}, fmt.Errorf("erro ao buscar token do Gmail de %s: %w", uid, err)
	}
	var tok models.GmailToken
	if err := doc.DataTo(&tok); err != nil {
		return models.GmailToken{}, fmt.Errorf("erro ao converter token do Gmail de %s: %w", uid, err)
	}
	return tok, nil
}
