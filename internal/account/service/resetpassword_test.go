package service

import (
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"worldsmith/internal/account"
	dErrors "worldsmith/pkg/domain-errors"
)

func (s *ServiceSuite) TestResetPassword_ValidationShortCircuits() {
	s.Run("empty request is rejected", func() {
		_, err := s.service.ResetPassword(s.ctx, account.ResetPasswordRequest{Locale: "en"}, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("email and token together are rejected", func() {
		req := account.ResetPasswordRequest{
			Locale:       "en",
			EmailAddress: "ada@example.com",
			Token:        "recovery-token",
			NewPassword:  strptr("correct horse battery staple"),
		}
		_, err := s.service.ResetPassword(s.ctx, req, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("token without new password is rejected", func() {
		req := account.ResetPasswordRequest{Locale: "en", Token: "recovery-token"}
		_, err := s.service.ResetPassword(s.ctx, req, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("short new password is rejected", func() {
		req := account.ResetPasswordRequest{Locale: "en", Token: "recovery-token", NewPassword: strptr("short")}
		_, err := s.service.ResetPassword(s.ctx, req, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestResetPassword_UnknownEmailGetsFabricatedReceipt() {
	req := account.ResetPasswordRequest{Locale: "en", EmailAddress: "nobody@example.com"}

	// Only the lookup runs: no token is minted and no message goes out, yet
	// the response is indistinguishable from the known-address one.
	s.mockDirectory.EXPECT().FindByIdentifier(gomock.Any(), "nobody@example.com").Return(nil, nil)

	outcome, err := s.service.ResetPassword(s.ctx, req, nil)
	s.Require().NoError(err)
	sent, ok := outcome.(account.RecoveryLinkSent)
	s.Require().True(ok)
	s.NotEmpty(sent.Message.ConfirmationNumber)
	s.Equal(account.ContactTypeEmail, sent.Message.ContactType)
	s.Equal("nobody@example.com", sent.Message.MaskedContact)
}

func (s *ServiceSuite) TestResetPassword_KnownEmailGetsRecoveryLink() {
	user := s.completedUser()
	req := account.ResetPasswordRequest{Locale: "en", EmailAddress: "ada@example.com"}

	s.mockDirectory.EXPECT().FindByIdentifier(gomock.Any(), "ada@example.com").Return(user, nil)
	s.mockTokens.EXPECT().Issue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, spec account.TokenSpec) (account.IssuedToken, error) {
			s.Equal(account.TokenTypePasswordRecovery, spec.Type)
			s.Equal(user.Subject(), spec.Subject)
			s.True(spec.SingleUse)
			return account.IssuedToken{Value: "recovery-token"}, nil
		})
	s.mockMessages.EXPECT().SendToUser(gomock.Any(), TemplatePasswordRecovery, user,
		account.ContactTypeEmail, "en", map[string]string{"Token": "recovery-token"}).
		Return(account.SentMessage{ConfirmationNumber: "c-9"}, nil)

	outcome, err := s.service.ResetPassword(s.ctx, req, nil)
	s.Require().NoError(err)
	sent, ok := outcome.(account.RecoveryLinkSent)
	s.Require().True(ok)
	s.Equal("c-9", sent.Message.ConfirmationNumber)
}

func (s *ServiceSuite) TestResetPassword_NewPasswordOnCompleteProfileIssuesSession() {
	user := s.completedUser()
	req := account.ResetPasswordRequest{
		Locale:      "en",
		Token:       "recovery-token",
		NewPassword: strptr("correct horse battery staple"),
	}

	s.mockTokens.EXPECT().Validate(gomock.Any(), "recovery-token", account.TokenTypePasswordRecovery, true).
		Return(account.TokenClaims{Subject: user.Subject()}, nil)
	s.mockDirectory.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
	s.mockDirectory.EXPECT().ResetPassword(gomock.Any(), user.ID, "correct horse battery staple").Return(user, nil)
	s.mockSessions.EXPECT().Create(gomock.Any(), user, nil).Return(account.Session{ID: uuid.New()}, nil)
	s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := s.service.ResetPassword(s.ctx, req, nil)
	s.Require().NoError(err)
	s.IsType(account.SessionIssued{}, outcome)
}

func (s *ServiceSuite) TestResetPassword_NewPasswordOnIncompleteProfileHoldsSession() {
	user := s.incompleteUser()
	req := account.ResetPasswordRequest{
		Locale:      "en",
		Token:       "recovery-token",
		NewPassword: strptr("correct horse battery staple"),
	}

	s.mockTokens.EXPECT().Validate(gomock.Any(), "recovery-token", account.TokenTypePasswordRecovery, true).
		Return(account.TokenClaims{Subject: user.Subject()}, nil)
	s.mockDirectory.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
	s.mockDirectory.EXPECT().ResetPassword(gomock.Any(), user.ID, "correct horse battery staple").Return(user, nil)
	s.mockTokens.EXPECT().Issue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, spec account.TokenSpec) (account.IssuedToken, error) {
			s.Equal(account.TokenTypeProfileCompletion, spec.Type)
			// The user's email rides along for onboarding prefill.
			s.Require().NotNil(spec.Email)
			s.Equal(user.Email.Address, spec.Email.Address)
			return account.IssuedToken{Value: "completion-token"}, nil
		})

	outcome, err := s.service.ResetPassword(s.ctx, req, nil)
	s.Require().NoError(err)
	required, ok := outcome.(account.ProfileCompletionRequired)
	s.Require().True(ok)
	s.Equal("completion-token", required.Token)
}

func (s *ServiceSuite) TestResetPassword_ConsumedTokenPropagates() {
	req := account.ResetPasswordRequest{
		Locale:      "en",
		Token:       "recovery-token",
		NewPassword: strptr("correct horse battery staple"),
	}

	s.mockTokens.EXPECT().Validate(gomock.Any(), "recovery-token", account.TokenTypePasswordRecovery, true).
		Return(account.TokenClaims{}, dErrors.New(dErrors.CodeInvalidCredentials, "the token is not valid"))

	_, err := s.service.ResetPassword(s.ctx, req, nil)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidCredentials))
}

func (s *ServiceSuite) TestResetPassword_TokenWithoutSubjectIsRejected() {
	req := account.ResetPasswordRequest{
		Locale:      "en",
		Token:       "recovery-token",
		NewPassword: strptr("correct horse battery staple"),
	}

	s.mockTokens.EXPECT().Validate(gomock.Any(), "recovery-token", account.TokenTypePasswordRecovery, true).
		Return(account.TokenClaims{}, nil)

	_, err := s.service.ResetPassword(s.ctx, req, nil)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidCredentials))
}
