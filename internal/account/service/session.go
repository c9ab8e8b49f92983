package service

import (
	"context"

	"github.com/google/uuid"

	"worldsmith/internal/account"
	dErrors "worldsmith/pkg/domain-errors"
)

// RenewSession exchanges a refresh token for a fresh session.
func (s *Service) RenewSession(ctx context.Context, refreshToken string, attributes map[string]string) (account.Session, error) {
	ctx, span := s.tracer.Start(ctx, "account.RenewSession")
	defer span.End()

	if refreshToken == "" {
		return account.Session{}, dErrors.New(dErrors.CodeValidation, "the request payload is not valid").
			WithDetails("refresh_token", "refresh token is required")
	}
	return s.sessions.Renew(ctx, refreshToken, attributes)
}

// SignOut revokes one of the caller's sessions.
func (s *Service) SignOut(ctx context.Context, caller account.Caller, sessionID uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "account.SignOut")
	defer span.End()

	if caller.Kind != account.CallerKindUser {
		return dErrors.New(dErrors.CodeUnauthorized, "an authenticated user is required")
	}
	if sessionID == uuid.Nil {
		return dErrors.New(dErrors.CodeValidation, "the request payload is not valid").
			WithDetails("session_id", "session id is required")
	}
	return s.sessions.Revoke(ctx, sessionID)
}

// SignOutEverywhere revokes every session of the calling user.
func (s *Service) SignOutEverywhere(ctx context.Context, caller account.Caller) error {
	ctx, span := s.tracer.Start(ctx, "account.SignOutEverywhere")
	defer span.End()

	if caller.Kind != account.CallerKindUser {
		return dErrors.New(dErrors.CodeUnauthorized, "an authenticated user is required")
	}
	return s.sessions.RevokeByUser(ctx, caller.UserID)
}
