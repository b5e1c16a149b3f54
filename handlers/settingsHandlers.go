package handlers

import (
	"net/http"

	"wedding-planner/models"
	"wedding-planner/utilities"
)

// GetNotificationSettingsHandler devolve as preferências salvas ou os valores padrão
func GetNotificationSettingsHandler(w http.ResponseWriter, r *http.Request) {
	uid := UserUID(r.Context())

	prefs, found, err := settingsRepo.GetNotificationPreferences(r.Context(), uid)
	if err != nil {
		utilities.LogError(err, "GetNotificationSettingsHandler: Erro ao buscar preferências")
		writeError(w, http.StatusInternalServerError, "Erro ao buscar preferências")
		return
	}
	if !found {
		prefs = models.DefaultNotificationPreferences()
	}
	writeJSON(w, http.StatusOK, prefs)
}

func UpdateNotificationSettingsHandler(w http.ResponseWriter, r *http.Request) {
	uid := UserUID(r.Context())

	var prefs models.NotificationPreferences
	if err := decodeJSON(r, &prefs); err != nil {
		utilities.LogError(err, "UpdateNotificationSettingsHandler: Erro ao decodificar JSON")
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if err := prefs.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	prefs.UpdatedAt = now()

	if err := settingsRepo.SaveNotificationPreferences(r.Context(), uid, prefs); err != nil {
		utilities.LogError(err, "UpdateNotificationSettingsHandler: Erro ao salvar preferências")
		writeError(w, http.StatusInternalServerError, "Erro ao salvar preferências")
		return
	}
	utilities.LogInfo("Preferências de notificação atualizadas para usuário %s", uid)
	writeJSON(w, http.StatusOK, prefs)
}
