package service

import (
	"context"
	"time"

	"worldsmith/internal/account"
	"worldsmith/internal/account/contact"
	dErrors "worldsmith/pkg/domain-errors"
)

// completionGate is the single terminal step shared by every flow: no
// session is ever created for an incomplete profile. The token it issues is
// reusable so the phone verification step can present it again; emailClaim,
// when set, travels on the token for prefill after a password reset.
//
// The two outcomes it returns implement every flow's outcome interface, so
// callers assert to their own closed set.
func (s *Service) completionGate(ctx context.Context, user *account.User, attributes map[string]string, emailClaim *contact.Email) (account.SignInOutcome, error) {
	if !user.ProfileCompleted() {
		token, err := s.tokens.Issue(ctx, account.TokenSpec{
			Type:      account.TokenTypeProfileCompletion,
			Subject:   user.Subject(),
			Email:     emailClaim,
			SingleUse: false,
		})
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue profile completion token")
		}
		return account.ProfileCompletionRequired{Token: token.Value}, nil
	}
	return s.issueSession(ctx, user, attributes)
}

// issueSession creates the session and publishes the signed-in
// notification. Callers reach it only through the gate or the documented
// password shortcut, both of which guarantee a completed profile.
func (s *Service) issueSession(ctx context.Context, user *account.User, attributes map[string]string) (account.SignInOutcome, error) {
	session, err := s.sessions.Create(ctx, user, attributes)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	event := account.UserSignedIn{
		SessionID: session.ID,
		UserID:    user.ID,
		At:        time.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to publish signed-in event")
	}

	if s.metrics != nil {
		s.metrics.IncrementSessionsIssued()
	}
	s.logger.DebugContext(ctx, "session issued",
		"user_id", user.ID.String(),
		"session_id", session.ID.String(),
	)
	return account.SessionIssued{Session: session}, nil
}
