package firebase

import (
	"context"
	"fmt"

	"wedding-planner/models"
	"wedding-planner/utilities"
)

// LogEmailSend registra uma tentativa de envio em users/{uid}/emailHistory.
// Falhas aqui não interrompem o envio, apenas são logadas.
func (s *Store) LogEmailSend(ctx context.Context, uid string, entry models.EmailHistoryEntry) {
	docRef, _, err := s.userDoc(uid).Collection("emailHistory").Add(ctx, entry)
	if err != nil {
		utilities.LogError(err, fmt.Sprintf("LogEmailSend: Falha ao salvar histórico de e-mail do usuário %s", uid))
		return
	}
	utilities.LogDebug("LogEmailSend: Histórico salvo com ID %s para usuário %s", docRef.ID, uid)
}
