package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"portfolio-backend/errs"
	"portfolio-backend/services"
)

// EmailSender is satisfied by services.EmailService
type EmailSender interface {
	SendContactEmail(form services.ContactForm) error
}

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	email     EmailSender
}

func newContactHandler(email EmailSender) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		email:     email,
	}
}

// sendContactEmail validates the contact form and relays it through the
// transactional email provider
func (h contactHandler) sendContactEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.email == nil {
			h.responder.WriteError(w, errs.NewInternalError("email delivery is not configured"))
			return
		}

		var form services.ContactForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := form.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.email.SendContactEmail(form); err != nil {
			h.logger.Error().Err(err).Msg("Failed to send contact email")
			h.responder.WriteError(w, errs.NewInternalError("failed to send message"))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Message sent successfully"})
	}
}
