package httptransport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"worldsmith/internal/account"
	dErrors "worldsmith/pkg/domain-errors"
)

type messageBody struct {
	ConfirmationNumber string `json:"confirmation_number"`
	ContactType        string `json:"contact_type"`
	MaskedContact      string `json:"masked_contact"`
}

type deviceBody struct {
	Browser        string `json:"browser,omitempty"`
	BrowserVersion string `json:"browser_version,omitempty"`
	OS             string `json:"os,omitempty"`
	Mobile         bool   `json:"mobile"`
}

type sessionBody struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	RefreshToken string      `json:"refresh_token"`
	Device       *deviceBody `json:"device,omitempty"`
	CreatedAt    string      `json:"created_at"`
}

func messagePayload(m account.SentMessage) messageBody {
	return messageBody{
		ConfirmationNumber: m.ConfirmationNumber,
		ContactType:        string(m.ContactType),
		MaskedContact:      m.MaskedContact,
	}
}

func sessionPayload(s account.Session) sessionBody {
	body := sessionBody{
		ID:           s.ID.String(),
		UserID:       s.UserID.String(),
		RefreshToken: s.RefreshToken,
		CreatedAt:    s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if s.Device != nil {
		body.Device = &deviceBody{
			Browser:        s.Device.Browser,
			BrowserVersion: s.Device.BrowserVersion,
			OS:             s.Device.OS,
			Mobile:         s.Device.Mobile,
		}
	}
	return body
}

// writeOutcome renders any of the closed outcome sets as a tagged envelope.
// The outcome interfaces are sealed, so an unknown type here is a programming
// error, reported as such.
func writeOutcome(w http.ResponseWriter, outcome any) {
	switch o := outcome.(type) {
	case account.AuthenticationLinkSent:
		writeJSON(w, http.StatusOK, map[string]any{
			"kind":    "authentication_link_sent",
			"message": messagePayload(o.Message),
		})
	case account.PasswordRequired:
		writeJSON(w, http.StatusOK, map[string]any{
			"kind": "password_required",
		})
	case account.OneTimePasswordChallenge:
		writeJSON(w, http.StatusOK, map[string]any{
			"kind":                 "one_time_password_challenge",
			"one_time_password_id": o.OneTimePasswordID.String(),
			"message":              messagePayload(o.Message),
		})
	case account.ProfileCompletionRequired:
		writeJSON(w, http.StatusOK, map[string]any{
			"kind":                     "profile_completion_required",
			"profile_completion_token": o.Token,
		})
	case account.SessionIssued:
		writeJSON(w, http.StatusOK, map[string]any{
			"kind":    "session_issued",
			"session": sessionPayload(o.Session),
		})
	case account.RecoveryLinkSent:
		writeJSON(w, http.StatusOK, map[string]any{
			"kind":    "recovery_link_sent",
			"message": messagePayload(o.Message),
		})
	case account.PhoneChanged:
		writeJSON(w, http.StatusOK, map[string]any{
			"kind": "phone_changed",
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": map[string]any{"code": "internal", "message": "unrenderable outcome"},
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func statusForCode(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeInvalidCredentials, dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a coded error onto an HTTP status. Details stay in the
// server log; the client sees the code and the message only.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := dErrors.CodeOf(err)
	status := statusForCode(code)

	logger := h.logger.With(
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("code", string(code)),
	)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", slog.Any("error", err))
	} else {
		logger.Debug("request rejected", slog.Any("error", err))
	}

	message := "internal error"
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) && status < http.StatusInternalServerError {
		message = domainErr.Message
	}
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"code": string(code), "message": message},
	})
}
