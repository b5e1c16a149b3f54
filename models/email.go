package models

import "time"

// EmailAttachment chega do frontend com o conteúdo em base64
type EmailAttachment struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// SendEmailRequest é o corpo de POST /gmail/send
type SendEmailRequest struct {
	To          string            `json:"to"`
	Subject     string            `json:"subject"`
	Body        string            `json:"body"`
	Attachments []EmailAttachment `json:"attachments"`
	UserID      string            `json:"userId"`
}

type GmailResult struct {
	ID       string   `json:"id"`
	ThreadID string   `json:"threadId"`
	LabelIDs []string `json:"labelIds,omitempty"`
}

type SendEmailResponse struct {
	Success  bool         `json:"success"`
	GmailRes *GmailResult `json:"gmailRes"`
}

// SendEmailError é o corpo de erro do endpoint de envio; as flags dizem ao
// frontend se deve pedir nova autorização ou avisar sobre a cota.
type SendEmailError struct {
	Error          string `json:"error"`
	QuotaExceeded  bool   `json:"quotaExceeded,omitempty"`
	RateLimited    bool   `json:"rateLimited,omitempty"`
	ReauthRequired bool   `json:"reauthRequired,omitempty"`
}

type QuotaUsage struct {
	Day       string `json:"day"`
	Sent      int    `json:"sent"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
}

// EmailHistoryEntry registra cada tentativa de envio em users/{uid}/emailHistory.
type EmailHistoryEntry struct {
	To             string    `firestore:"to"`
	Subject        string    `firestore:"subject"`
	Status         string    `firestore:"status"` // "sent" ou "failed"
	GmailMessageID string    `firestore:"gmailMessageId,omitempty"`
	Attempts       int       `firestore:"attempts"`
	Error          string    `firestore:"error,omitempty"`
	Timestamp      time.Time `firestore:"timestamp"`
}

// GmailToken guarda as credenciais OAuth em users/{uid}/integrations/gmail
type GmailToken struct {
	AccessToken  string    `firestore:"accessToken"`
	RefreshToken string    `firestore:"refreshToken"`
	TokenType    string    `firestore:"tokenType"`
	Expiry       time.Time `firestore:"expiry"`
}

// VendorEmailRequest é a entrada do rascunho de e-mail para fornecedores (POST /gmail/draft)
type VendorEmailRequest struct {
	VendorName  string   `json:"vendorName"`
	VendorEmail string   `json:"vendorEmail"`
	SenderName  string   `json:"senderName"`
	WeddingDate string   `json:"weddingDate"`
	KeyPoints   []string `json:"keyPoints"`
	Tone        string   `json:"tone"`
	Language    string   `json:"language"`
}

type VendorEmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
