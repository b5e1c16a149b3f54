package gmail

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/mail"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/gomail.v2"

	"wedding-planner/models"
)

// Limite da API do Gmail para a mensagem inteira é 35MB; deixamos folga para o base64
const MaxAttachmentBytes = 25 << 20

// MaxRequestBytes limita o corpo JSON de POST /gmail/send: anexos em base64
// crescem 4/3, mais uma folga para assunto, corpo e campos.
const MaxRequestBytes = MaxAttachmentBytes/3*4 + 1<<20

var (
	ErrMissingRecipient = errors.New("recipient is required")
	ErrInvalidRecipient = errors.New("invalid recipient address")
	ErrMissingSubject   = errors.New("subject is required")
	ErrAttachmentSize   = errors.New("attachments exceed 25MB")
	ErrInvalidMimeType  = errors.New("invalid attachment mimeType")
)

var htmlTag = regexp.MustCompile(`(?i)<(html|body|p|br|div|span|a|table|strong|em|ul|ol|li|h[1-6])[\s/>]`)

// Message é o e-mail já validado, pronto para virar MIME
type Message struct {
	From        string
	To          []string
	Subject     string
	Body        string
	Attachments []Attachment
}

type Attachment struct {
	Filename string
	MimeType string
	Data     []byte
}

// NewMessage valida a requisição do frontend e decodifica os anexos.
func NewMessage(from string, req models.SendEmailRequest) (*Message, error) {
	if strings.TrimSpace(req.To) == "" {
		return nil, ErrMissingRecipient
	}
	addrs, err := mail.ParseAddressList(req.To)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}
	if strings.TrimSpace(req.Subject) == "" {
		return nil, ErrMissingSubject
	}

	msg := &Message{From: from, Subject: strings.TrimSpace(req.Subject), Body: req.Body}
	for _, a := range addrs {
		msg.To = append(msg.To, a.String())
	}

	total := 0
	for i, att := range req.Attachments {
		data, err := decodeAttachment(att.Data)
		if err != nil {
			return nil, fmt.Errorf("anexo %d (%s) com base64 inválido: %w", i, att.Filename, err)
		}
		total += len(data)
		if total > MaxAttachmentBytes {
			return nil, ErrAttachmentSize
		}
		name := filepath.Base(strings.Map(dropControl, strings.TrimSpace(att.Filename)))
		if name == "." || name == "/" || name == "" {
			name = fmt.Sprintf("attachment-%d", i+1)
		}
		mediaType := ""
		if strings.TrimSpace(att.MimeType) != "" {
			mediaType, _, err = mime.ParseMediaType(att.MimeType)
			if err != nil || strings.Count(mediaType, "/") != 1 {
				return nil, fmt.Errorf("%w: anexo %d (%s): %q", ErrInvalidMimeType, i, name, att.MimeType)
			}
		}
		msg.Attachments = append(msg.Attachments, Attachment{Filename: name, MimeType: mediaType, Data: data})
	}
	return msg, nil
}

// dropControl remove caracteres de controle do nome do arquivo
func dropControl(r rune) rune {
	if r < 0x20 || r == 0x7f {
		return -1
	}
	return r
}

// decodeAttachment aceita base64 padrão, base64url e data URLs ("data:...;base64,xxx")
func decodeAttachment(s string) ([]byte, error) {
	if i := strings.Index(s, ";base64,"); strings.HasPrefix(s, "data:") && i >= 0 {
		s = s[i+len(";base64,"):]
	}
	s = strings.TrimSpace(s)
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	if data, err := base64.URLEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}

// Build gera a mensagem RFC 822. Com anexos o resultado é multipart/mixed.
func (m *Message) Build() ([]byte, error) {
	gm := gomail.NewMessage()
	if m.From != "" {
		gm.SetHeader("From", m.From)
	}
	gm.SetHeader("To", m.To...)
	gm.SetHeader("Subject", m.Subject)

	contentType := "text/plain"
	if htmlTag.MatchString(m.Body) {
		contentType = "text/html"
	}
	gm.SetBody(contentType, m.Body)

	for _, att := range m.Attachments {
		data := att.Data
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		// sem mimeType o gomail deduz o tipo pela extensão
		if ct := mime.FormatMediaType(att.MimeType, map[string]string{"name": att.Filename}); ct != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {ct},
			}))
		}
		gm.Attach(att.Filename, settings...)
	}

	var buf bytes.Buffer
	if _, err := gm.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("erro ao montar mensagem MIME: %w", err)
	}
	return buf.Bytes(), nil
}

// Raw devolve a mensagem codificada em base64url, como a API do Gmail espera
func (m *Message) Raw() (string, error) {
	b, err := m.Build()
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
