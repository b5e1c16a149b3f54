package flows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"

	"wedding-planner/models"
	"wedding-planner/utilities"
)

var ErrVendorEmailInput = errors.New("vendorName, senderName e keyPoints são obrigatórios")

// VendorEmailDrafter gera rascunhos de e-mail para fornecedores do casamento usando o Gemini
type VendorEmailDrafter struct {
	flow *core.Flow[models.VendorEmailRequest, *models.VendorEmailDraft, struct{}]
}

// NewVendorEmailDrafter inicializa o Genkit com o plugin do Google AI e registra o flow "vendorEmail".
func NewVendorEmailDrafter(ctx context.Context, apiKey, model string) (*VendorEmailDrafter, error) {
	g, err := genkit.Init(ctx,
		genkit.WithPlugins(&googlegenai.GoogleAI{APIKey: apiKey}),
		genkit.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar o Genkit: %w", err)
	}

	flow := genkit.DefineFlow(g, "vendorEmail", func(ctx context.Context, req models.VendorEmailRequest) (*models.VendorEmailDraft, error) {
		prompt, err := BuildVendorEmailPrompt(req)
		if err != nil {
			return nil, err
		}
		utilities.LogDebug("vendorEmail: prompt enviado ao modelo:\n%s", prompt)

		text, err := genkit.GenerateText(ctx, g, ai.WithPrompt(prompt))
		if err != nil {
			return nil, fmt.Errorf("falha ao gerar e-mail com o modelo: %w", err)
		}
		draft := ParseVendorEmailDraft(text)
		if draft.Body == "" {
			return nil, errors.New("resposta do modelo vazia ou inválida")
		}
		return draft, nil
	})

	return &VendorEmailDrafter{flow: flow}, nil
}

func (d *VendorEmailDrafter) Draft(ctx context.Context, req models.VendorEmailRequest) (*models.VendorEmailDraft, error) {
	return d.flow.Run(ctx, req)
}

// BuildVendorEmailPrompt monta o prompt. Tom e idioma têm valores padrão.
func BuildVendorEmailPrompt(req models.VendorEmailRequest) (string, error) {
	var points strings.Builder
	for _, p := range req.KeyPoints {
		if p = strings.TrimSpace(p); p != "" {
			points.WriteString("- " + p + "\n")
		}
	}
	if strings.TrimSpace(req.VendorName) == "" || strings.TrimSpace(req.SenderName) == "" || points.Len() == 0 {
		return "", ErrVendorEmailInput
	}
	if req.Tone == "" {
		req.Tone = "friendly and professional"
	}
	if req.Language == "" {
		req.Language = "English"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write an email in %s to a wedding vendor.\n\n", req.Language)
	fmt.Fprintf(&b, "Vendor: %s\n", req.VendorName)
	if req.VendorEmail != "" {
		fmt.Fprintf(&b, "Vendor email: %s\n", req.VendorEmail)
	}
	fmt.Fprintf(&b, "From: %s\n", req.SenderName)
	if req.WeddingDate != "" {
		fmt.Fprintf(&b, "Wedding date: %s\n", req.WeddingDate)
	}
	fmt.Fprintf(&b, "Tone: %s\n\n", req.Tone)
	b.WriteString("Key points to cover:\n")
	b.WriteString(points.String())
	b.WriteString(`
Instructions:
- The first line must be "Subject: " followed by a short subject line.
- After a blank line, write only the email body, with a greeting and a sign-off.
- Do not include From or To lines in the body.
`)
	return b.String(), nil
}

// ParseVendorEmailDraft separa a linha "Subject:" do corpo gerado pelo modelo
func ParseVendorEmailDraft(text string) *models.VendorEmailDraft {
	text = strings.TrimSpace(text)
	first, rest, _ := strings.Cut(text, "\n")
	first = strings.TrimSpace(first)
	if strings.HasPrefix(strings.ToLower(first), "subject:") {
		return &models.VendorEmailDraft{
			Subject: strings.TrimSpace(first[len("subject:"):]),
			Body:    strings.TrimSpace(rest),
		}
	}
	return &models.VendorEmailDraft{Body: text}
}
