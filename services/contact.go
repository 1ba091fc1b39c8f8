package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"portfolio-backend/config"
	"portfolio-backend/errs"
)

const resendEndpoint = "https://api.resend.com/emails"

// ContactForm is a visitor's contact submission
type ContactForm struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Company    string `json:"company,omitempty"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	WantsReply bool   `json:"wantsReply"`
}

// Validate checks the required contact fields
func (f ContactForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errs.NewMissingRequiredFieldError("name")
	}
	if strings.TrimSpace(f.Subject) == "" {
		return errs.NewMissingRequiredFieldError("subject")
	}
	if strings.TrimSpace(f.Message) == "" {
		return errs.NewMissingRequiredFieldError("message")
	}
	if f.WantsReply && strings.TrimSpace(f.Email) == "" && strings.TrimSpace(f.Phone) == "" {
		return errs.NewInvalidFieldError("email", "an email or phone number is required when a reply is requested")
	}
	return nil
}

// ResendEmailRequest represents the request payload for the Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from the Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from the Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// EmailService delivers transactional email through the Resend HTTP API.
// Requires RESEND_API_KEY, RESEND_FROM_EMAIL, and CONTACT_TO_EMAIL.
type EmailService struct {
	apiKey    string
	fromEmail string
	toEmail   string
	endpoint  string
	client    *http.Client
}

// NewEmailServiceFromEnv loads Resend credentials from the environment,
// reading .env first if present
func NewEmailServiceFromEnv() (*EmailService, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded, using existing environment variables")
	}
	cfg := config.New()

	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable is required")
	}
	fromEmail := config.GetString(cfg, "RESEND_FROM_EMAIL", "")
	if fromEmail == "" {
		return nil, fmt.Errorf("RESEND_FROM_EMAIL environment variable is required")
	}
	toEmail := config.GetString(cfg, "CONTACT_TO_EMAIL", fromEmail)

	return &EmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		toEmail:   toEmail,
		endpoint:  resendEndpoint,
		client:    &http.Client{},
	}, nil
}

// SendContactEmail renders the contact form as HTML and delivers it to the
// configured recipient. Delivery failures propagate; there are no retries.
func (s *EmailService) SendContactEmail(form ContactForm) error {
	subject := "Portfolio Contact: " + form.Subject
	return s.Send(subject, buildContactEmailHTML(form), []string{s.toEmail})
}

// Send delivers a single HTML email through Resend
func (s *EmailService) Send(subject, html string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	payload := ResendEmailRequest{
		From:    s.fromEmail,
		To:      recipients,
		Subject: subject,
		Html:    html,
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}

func buildContactEmailHTML(form ContactForm) string {
	var b strings.Builder

	b.WriteString("<h2 style='color: #333;'>New Contact Form Submission</h2>")
	b.WriteString("<p><strong>Name:</strong> " + htmlEscape(form.Name) + "</p>")
	if strings.TrimSpace(form.Company) != "" {
		b.WriteString("<p><strong>Company:</strong> " + htmlEscape(form.Company) + "</p>")
	}
	b.WriteString("<p><strong>Subject:</strong> " + htmlEscape(form.Subject) + "</p>")
	b.WriteString("<p><strong>Message:</strong></p>")
	b.WriteString("<div style='padding: 15px; background-color: #f5f5f5; border-radius: 5px; margin: 10px 0;'>")
	b.WriteString("<p>" + strings.ReplaceAll(htmlEscape(form.Message), "\n", "<br/>") + "</p>")
	b.WriteString("</div>")

	if form.WantsReply {
		b.WriteString("<h3 style='color: #2563eb; margin-top: 20px;'>Contact Details for Reply:</h3>")
		if strings.TrimSpace(form.Email) != "" {
			escaped := htmlEscape(form.Email)
			b.WriteString("<p><strong>Email:</strong> <a href='mailto:" + escaped + "'>" + escaped + "</a></p>")
		}
		if strings.TrimSpace(form.Phone) != "" {
			b.WriteString("<p><strong>Phone:</strong> " + htmlEscape(form.Phone) + "</p>")
		}
	}

	return b.String()
}

func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}
