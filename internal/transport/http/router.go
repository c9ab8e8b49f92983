// Package httptransport is the thin HTTP layer over the account service. It
// decodes requests, delegates, and renders outcomes; no business logic.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"worldsmith/internal/account"
)

// AccountService is the orchestration surface the transport depends on.
type AccountService interface {
	SignIn(ctx context.Context, req account.SignInRequest, attributes map[string]string) (account.SignInOutcome, error)
	ResetPassword(ctx context.Context, req account.ResetPasswordRequest, attributes map[string]string) (account.ResetPasswordOutcome, error)
	ChangePhone(ctx context.Context, caller account.Caller, req account.ChangePhoneRequest) (account.ChangePhoneOutcome, error)
	VerifyPhone(ctx context.Context, req account.VerifyPhoneRequest) (account.VerifyPhoneOutcome, error)
	RenewSession(ctx context.Context, refreshToken string, attributes map[string]string) (account.Session, error)
	SignOut(ctx context.Context, caller account.Caller, sessionID uuid.UUID) error
	SignOutEverywhere(ctx context.Context, caller account.Caller) error
}

// Handler carries the transport dependencies.
type Handler struct {
	accounts AccountService
	logger   *slog.Logger
}

func NewHandler(accounts AccountService, logger *slog.Logger) *Handler {
	return &Handler{accounts: accounts, logger: logger}
}

// NewRouter wires the public account endpoints. Caller identity comes from
// the fronting gateway via trusted headers; see callerFrom.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/account", func(r chi.Router) {
		r.Post("/sign/in", h.handleSignIn)
		r.Post("/sign/out", h.handleSignOut)
		r.Post("/session/renew", h.handleRenewSession)
		r.Post("/password/reset", h.handleResetPassword)
		r.Post("/phone/change", h.handleChangePhone)
		r.Post("/phone/verify", h.handleVerifyPhone)
	})

	return r
}

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var payload signInPayload
	if !decode(w, r, &payload) {
		return
	}

	outcome, err := h.accounts.SignIn(r.Context(), payload.toRequest(), requestAttributes(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeOutcome(w, outcome)
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload resetPasswordPayload
	if !decode(w, r, &payload) {
		return
	}

	outcome, err := h.accounts.ResetPassword(r.Context(), payload.toRequest(), requestAttributes(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeOutcome(w, outcome)
}

func (h *Handler) handleChangePhone(w http.ResponseWriter, r *http.Request) {
	var payload changePhonePayload
	if !decode(w, r, &payload) {
		return
	}

	outcome, err := h.accounts.ChangePhone(r.Context(), callerFrom(r), payload.toRequest())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeOutcome(w, outcome)
}

func (h *Handler) handleVerifyPhone(w http.ResponseWriter, r *http.Request) {
	var payload verifyPhonePayload
	if !decode(w, r, &payload) {
		return
	}

	outcome, err := h.accounts.VerifyPhone(r.Context(), payload.toRequest())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeOutcome(w, outcome)
}

func (h *Handler) handleRenewSession(w http.ResponseWriter, r *http.Request) {
	var payload renewSessionPayload
	if !decode(w, r, &payload) {
		return
	}

	session, err := h.accounts.RenewSession(r.Context(), payload.RefreshToken, requestAttributes(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"kind":    "session_issued",
		"session": sessionPayload(session),
	})
}

func (h *Handler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	var payload signOutPayload
	if !decode(w, r, &payload) {
		return
	}

	caller := callerFrom(r)
	var err error
	if payload.Everywhere {
		err = h.accounts.SignOutEverywhere(r.Context(), caller)
	} else {
		err = h.accounts.SignOut(r.Context(), caller, payload.SessionID)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
