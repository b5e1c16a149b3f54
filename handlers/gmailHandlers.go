package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"wedding-planner/flows"
	"wedding-planner/gmail"
	"wedding-planner/models"
	"wedding-planner/quota"
	"wedding-planner/utilities"
)

// maxSendBodyBytes limita o JSON de POST /gmail/send antes de decodificar os anexos
var maxSendBodyBytes int64 = gmail.MaxRequestBytes

func writeSendError(w http.ResponseWriter, status int, body models.SendEmailError) {
	writeJSON(w, status, body)
}

// SendEmailHandler envia um e-mail pelo Gmail do usuário autenticado.
// Rota: POST /gmail/send
func SendEmailHandler(w http.ResponseWriter, r *http.Request) {
	uid := UserUID(r.Context())
	ctx := r.Context()

	limitBody(w, r, maxSendBodyBytes)
	var req models.SendEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		utilities.LogError(err, "SendEmailHandler: Erro ao decodificar JSON")
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeSendError(w, http.StatusRequestEntityTooLarge, models.SendEmailError{Error: gmail.ErrAttachmentSize.Error()})
			return
		}
		writeSendError(w, http.StatusBadRequest, models.SendEmailError{Error: "Corpo da requisição inválido"})
		return
	}
	if req.UserID != "" && req.UserID != uid {
		utilities.LogError(fmt.Errorf("userId %s diferente do token (%s)", req.UserID, uid), "SendEmailHandler: Acesso negado")
		writeSendError(w, http.StatusForbidden, models.SendEmailError{Error: "userId não corresponde ao usuário autenticado"})
		return
	}

	msg, err := gmail.NewMessage("", req)
	if err != nil {
		writeSendError(w, http.StatusBadRequest, models.SendEmailError{Error: err.Error()})
		return
	}
	raw, err := msg.Raw()
	if err != nil {
		utilities.LogError(err, "SendEmailHandler: Erro ao montar mensagem")
		writeSendError(w, http.StatusInternalServerError, models.SendEmailError{Error: "Erro ao montar o e-mail"})
		return
	}

	reservation, err := quotaSvc.Reserve(ctx, uid)
	if errors.Is(err, quota.ErrQuotaExceeded) {
		utilities.LogInfo("SendEmailHandler: Cota diária esgotada para usuário %s", uid)
		writeSendError(w, http.StatusTooManyRequests, models.SendEmailError{Error: "Limite diário de e-mails atingido", QuotaExceeded: true})
		return
	}
	if err != nil {
		utilities.LogError(err, "SendEmailHandler: Erro ao reservar cota")
		writeSendError(w, http.StatusInternalServerError, models.SendEmailError{Error: "Erro ao verificar cota de e-mails"})
		return
	}

	res, attempts, err := sendWithTransport(r, uid, raw)
	if err != nil {
		if relErr := quotaSvc.Release(ctx, reservation); relErr != nil {
			utilities.LogError(relErr, "SendEmailHandler: Erro ao devolver cota")
		}
		logHistory(r, uid, req, models.EmailHistoryEntry{Status: "failed", Attempts: attempts, Error: err.Error()})
		respondGmailError(w, err)
		return
	}

	logHistory(r, uid, req, models.EmailHistoryEntry{Status: "sent", GmailMessageID: res.ID, Attempts: attempts})
	utilities.LogInfo("E-mail enviado por %s (Gmail ID: %s, tentativas: %d)", uid, res.ID, attempts)
	writeJSON(w, http.StatusOK, models.SendEmailResponse{Success: true, GmailRes: res})
}

func sendWithTransport(r *http.Request, uid, raw string) (*models.GmailResult, int, error) {
	transport, err := transports.TransportFor(r.Context(), uid)
	if err != nil {
		return nil, 0, gmail.Classify(err)
	}
	return newSender(transport).Send(r.Context(), raw)
}

func respondGmailError(w http.ResponseWriter, err error) {
	status := gmail.StatusCode(err)
	body := models.SendEmailError{Error: "Erro ao enviar e-mail"}
	switch {
	case errors.Is(err, gmail.ErrQuotaExceeded):
		body = models.SendEmailError{Error: "Limite diário do Gmail atingido", QuotaExceeded: true}
	case errors.Is(err, gmail.ErrRateLimited):
		body = models.SendEmailError{Error: "Gmail limitou a taxa de envio, tente novamente em instantes", RateLimited: true}
	case errors.Is(err, gmail.ErrReauthRequired):
		body = models.SendEmailError{Error: "Autorização do Gmail necessária", ReauthRequired: true}
	}
	utilities.LogError(err, fmt.Sprintf("SendEmailHandler: Falha no envio (status %d)", status))
	writeSendError(w, status, body)
}

func logHistory(r *http.Request, uid string, req models.SendEmailRequest, entry models.EmailHistoryEntry) {
	if history == nil {
		return
	}
	entry.To = req.To
	entry.Subject = req.Subject
	entry.Timestamp = now()
	history.LogEmailSend(r.Context(), uid, entry)
}

// EmailQuotaHandler devolve o uso da cota diária. Rota: GET /gmail/quota
func EmailQuotaHandler(w http.ResponseWriter, r *http.Request) {
	usage, err := quotaSvc.Usage(r.Context(), UserUID(r.Context()))
	if err != nil {
		utilities.LogError(err, "EmailQuotaHandler: Erro ao consultar cota")
		writeError(w, http.StatusInternalServerError, "Erro ao consultar cota de e-mails")
		return
	}
	writeJSON(w, http.StatusOK, usage)
}

// DraftVendorEmailHandler gera um rascunho com IA. Rota: POST /gmail/draft
func DraftVendorEmailHandler(w http.ResponseWriter, r *http.Request) {
	if drafter == nil {
		writeError(w, http.StatusServiceUnavailable, "Geração de rascunhos não configurada")
		return
	}

	var req models.VendorEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		utilities.LogError(err, "DraftVendorEmailHandler: Erro ao decodificar JSON")
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if _, err := flows.BuildVendorEmailPrompt(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	draft, err := drafter.Draft(r.Context(), req)
	if err != nil {
		utilities.LogError(err, "DraftVendorEmailHandler: Erro ao gerar rascunho")
		writeError(w, http.StatusInternalServerError, "Erro ao gerar rascunho de e-mail")
		return
	}
	writeJSON(w, http.StatusOK, draft)
}
