package service

import (
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"worldsmith/internal/account"
	"worldsmith/internal/account/contact"
	dErrors "worldsmith/pkg/domain-errors"
)

func (s *ServiceSuite) TestSignIn_ValidationShortCircuits() {
	s.Run("empty request is rejected before any collaborator call", func() {
		_, err := s.service.SignIn(s.ctx, account.SignInRequest{Locale: "en"}, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("two populated branches are rejected", func() {
		req := account.SignInRequest{
			Locale:              "en",
			Credentials:         &account.Credentials{EmailAddress: "ada@example.com"},
			AuthenticationToken: "some-token",
		}
		_, err := s.service.SignIn(s.ctx, req, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("missing locale is rejected", func() {
		req := account.SignInRequest{
			Credentials: &account.Credentials{EmailAddress: "ada@example.com"},
		}
		_, err := s.service.SignIn(s.ctx, req, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("malformed email is rejected", func() {
		req := account.SignInRequest{
			Locale:      "en",
			Credentials: &account.Credentials{EmailAddress: "not an email"},
		}
		_, err := s.service.SignIn(s.ctx, req, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("empty password present is rejected", func() {
		req := account.SignInRequest{
			Locale:      "en",
			Credentials: &account.Credentials{EmailAddress: "ada@example.com", Password: strptr("")},
		}
		_, err := s.service.SignIn(s.ctx, req, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestSignIn_UnknownIdentifierGetsAuthenticationLink() {
	req := account.SignInRequest{
		Locale:      "en",
		Credentials: &account.Credentials{EmailAddress: "nobody@example.com"},
	}

	s.mockDirectory.EXPECT().FindByIdentifier(gomock.Any(), "nobody@example.com").Return(nil, nil)
	s.mockTokens.EXPECT().Issue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, spec account.TokenSpec) (account.IssuedToken, error) {
			s.Equal(account.TokenTypeAuthentication, spec.Type)
			s.True(spec.SingleUse)
			s.Empty(spec.Subject)
			s.Require().NotNil(spec.Email)
			s.Equal("nobody@example.com", spec.Email.Address)
			return account.IssuedToken{Value: "signed-token"}, nil
		})
	// The message goes to the bare address; there is no user to address.
	s.mockMessages.EXPECT().SendToEmail(gomock.Any(), TemplateAccountAuthentication,
		contact.Email{Address: "nobody@example.com"}, "en", map[string]string{"Token": "signed-token"}).
		Return(account.SentMessage{ConfirmationNumber: "c-1", ContactType: account.ContactTypeEmail, MaskedContact: "nobody@example.com"}, nil)

	outcome, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().NoError(err)
	sent, ok := outcome.(account.AuthenticationLinkSent)
	s.Require().True(ok)
	s.Equal("c-1", sent.Message.ConfirmationNumber)
}

func (s *ServiceSuite) TestSignIn_PasswordlessUserGetsSameLinkOutcome() {
	user := s.completedUser()
	user.HasPassword = false

	req := account.SignInRequest{
		Locale:      "en",
		Credentials: &account.Credentials{EmailAddress: "ada@example.com"},
	}

	s.mockDirectory.EXPECT().FindByIdentifier(gomock.Any(), "ada@example.com").Return(user, nil)
	s.mockTokens.EXPECT().Issue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, spec account.TokenSpec) (account.IssuedToken, error) {
			s.Equal(user.Subject(), spec.Subject)
			return account.IssuedToken{Value: "signed-token"}, nil
		})
	s.mockMessages.EXPECT().SendToUser(gomock.Any(), TemplateAccountAuthentication, user,
		account.ContactTypeEmail, "en", map[string]string{"Token": "signed-token"}).
		Return(account.SentMessage{ConfirmationNumber: "c-2"}, nil)

	outcome, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().NoError(err)
	s.IsType(account.AuthenticationLinkSent{}, outcome)
}

func (s *ServiceSuite) TestSignIn_NilPasswordPromptsWithoutSideEffects() {
	user := s.completedUser()
	req := account.SignInRequest{
		Locale:      "en",
		Credentials: &account.Credentials{EmailAddress: "ada@example.com"},
	}

	// Only the lookup runs; no token, message, or session is produced.
	s.mockDirectory.EXPECT().FindByIdentifier(gomock.Any(), "ada@example.com").Return(user, nil)

	outcome, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().NoError(err)
	s.IsType(account.PasswordRequired{}, outcome)
}

func (s *ServiceSuite) TestSignIn_WrongPasswordPropagates() {
	user := s.completedUser()
	req := account.SignInRequest{
		Locale:      "en",
		Credentials: &account.Credentials{EmailAddress: "ada@example.com", Password: strptr("wrong")},
	}

	s.mockDirectory.EXPECT().FindByIdentifier(gomock.Any(), "ada@example.com").Return(user, nil)
	s.mockDirectory.EXPECT().Authenticate(gomock.Any(), user, "wrong").
		Return(nil, dErrors.New(dErrors.CodeInvalidCredentials, "the credentials are not valid"))

	_, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidCredentials))
}

func (s *ServiceSuite) TestSignIn_PasswordWithoutMFAIssuesSession() {
	user := s.completedUser()
	attributes := map[string]string{"IpAddress": "203.0.113.7"}
	req := account.SignInRequest{
		Locale:      "en",
		Credentials: &account.Credentials{EmailAddress: "ada@example.com", Password: strptr("hunter22")},
	}

	session := account.Session{ID: uuid.New(), UserID: user.ID, RefreshToken: "RT.x.y"}
	s.mockDirectory.EXPECT().FindByIdentifier(gomock.Any(), "ada@example.com").Return(user, nil)
	s.mockDirectory.EXPECT().Authenticate(gomock.Any(), user, "hunter22").Return(user, nil)
	s.mockSessions.EXPECT().Create(gomock.Any(), user, attributes).Return(session, nil)
	s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, event account.UserSignedIn) error {
			s.Equal(session.ID, event.SessionID)
			s.Equal(user.ID, event.UserID)
			return nil
		}).Times(1)

	outcome, err := s.service.SignIn(s.ctx, req, attributes)
	s.Require().NoError(err)
	issued, ok := outcome.(account.SessionIssued)
	s.Require().True(ok)
	s.Equal(session.ID, issued.Session.ID)
}

func (s *ServiceSuite) TestSignIn_PasswordWithIncompleteProfileHitsTheGate() {
	user := s.incompleteUser()
	req := account.SignInRequest{
		Locale:      "en",
		Credentials: &account.Credentials{EmailAddress: "ada@example.com", Password: strptr("hunter22")},
	}

	s.mockDirectory.EXPECT().FindByIdentifier(gomock.Any(), "ada@example.com").Return(user, nil)
	s.mockDirectory.EXPECT().Authenticate(gomock.Any(), user, "hunter22").Return(user, nil)
	s.mockTokens.EXPECT().Issue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, spec account.TokenSpec) (account.IssuedToken, error) {
			s.Equal(account.TokenTypeProfileCompletion, spec.Type)
			s.Equal(user.Subject(), spec.Subject)
			s.False(spec.SingleUse)
			return account.IssuedToken{Value: "completion-token"}, nil
		})

	outcome, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().NoError(err)
	required, ok := outcome.(account.ProfileCompletionRequired)
	s.Require().True(ok)
	s.Equal("completion-token", required.Token)
}

func (s *ServiceSuite) TestSignIn_MFAEmailSendsChallenge() {
	user := s.completedUser()
	user.MFAMode = account.MFAModeEmail
	req := account.SignInRequest{
		Locale:      "en",
		Credentials: &account.Credentials{EmailAddress: "ada@example.com", Password: strptr("hunter22")},
	}

	otpID := uuid.New()
	s.mockDirectory.EXPECT().FindByIdentifier(gomock.Any(), "ada@example.com").Return(user, nil)
	s.mockDirectory.EXPECT().Authenticate(gomock.Any(), user, "hunter22").Return(user, nil)
	s.mockOtps.EXPECT().Issue(gomock.Any(), user.ID, account.PurposeMultiFactorAuthentication, nil).
		Return(account.OneTimePassword{ID: otpID, Code: "123456", UserID: user.ID}, nil)
	s.mockMessages.EXPECT().SendToUser(gomock.Any(), TemplateMultiFactorAuthenticationEmail, user,
		account.ContactTypeEmail, "en", map[string]string{"OneTimePassword": "123456"}).
		Return(account.SentMessage{ConfirmationNumber: "c-3"}, nil)

	outcome, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().NoError(err)
	challenge, ok := outcome.(account.OneTimePasswordChallenge)
	s.Require().True(ok)
	s.Equal(otpID, challenge.OneTimePasswordID)
}

func (s *ServiceSuite) TestSignIn_MFAPhoneWithoutPhoneIsMissingConfiguration() {
	user := s.completedUser()
	user.MFAMode = account.MFAModePhone
	user.Phone = nil
	req := account.SignInRequest{
		Locale:      "en",
		Credentials: &account.Credentials{EmailAddress: "ada@example.com", Password: strptr("hunter22")},
	}

	s.mockDirectory.EXPECT().FindByIdentifier(gomock.Any(), "ada@example.com").Return(user, nil)
	s.mockDirectory.EXPECT().Authenticate(gomock.Any(), user, "hunter22").Return(user, nil)

	_, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeMissingConfiguration))
	s.Equal(user.ID.String(), dErrors.Detail(err, "user_id"))
}

func (s *ServiceSuite) TestSignIn_TokenWithoutSubjectProvisionsUser() {
	req := account.SignInRequest{Locale: "en", AuthenticationToken: "signed-token"}
	created := s.incompleteUser()

	s.mockTokens.EXPECT().Validate(gomock.Any(), "signed-token", account.TokenTypeAuthentication, true).
		Return(account.TokenClaims{Email: &contact.Email{Address: "new@example.com"}}, nil)
	s.mockDirectory.EXPECT().Create(gomock.Any(), contact.Email{Address: "new@example.com", Verified: true}).
		Return(created, nil)
	s.mockTokens.EXPECT().Issue(gomock.Any(), gomock.Any()).
		Return(account.IssuedToken{Value: "completion-token"}, nil)

	outcome, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().NoError(err)
	s.IsType(account.ProfileCompletionRequired{}, outcome)
}

func (s *ServiceSuite) TestSignIn_TokenWithSubjectRefreshesChangedEmail() {
	user := s.completedUser()
	req := account.SignInRequest{Locale: "en", AuthenticationToken: "signed-token"}

	claimEmail := contact.Email{Address: "fresh@example.com"}
	updated := *user
	updated.Email = &contact.Email{Address: "fresh@example.com", Verified: true}

	s.mockTokens.EXPECT().Validate(gomock.Any(), "signed-token", account.TokenTypeAuthentication, true).
		Return(account.TokenClaims{Subject: user.Subject(), Email: &claimEmail}, nil)
	s.mockDirectory.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
	s.mockDirectory.EXPECT().UpdateEmail(gomock.Any(), user.ID, contact.Email{Address: "fresh@example.com", Verified: true}).
		Return(&updated, nil)
	s.mockSessions.EXPECT().Create(gomock.Any(), &updated, nil).Return(account.Session{ID: uuid.New()}, nil)
	s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().NoError(err)
	s.IsType(account.SessionIssued{}, outcome)
}

func (s *ServiceSuite) TestSignIn_TokenWithMatchingEmailSkipsUpdate() {
	user := s.completedUser()
	req := account.SignInRequest{Locale: "en", AuthenticationToken: "signed-token"}

	// Claim email equals the stored one after the verified flag is applied.
	claimEmail := *user.Email
	claimEmail.Verified = false

	s.mockTokens.EXPECT().Validate(gomock.Any(), "signed-token", account.TokenTypeAuthentication, true).
		Return(account.TokenClaims{Subject: user.Subject(), Email: &claimEmail}, nil)
	s.mockDirectory.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
	s.mockSessions.EXPECT().Create(gomock.Any(), user, nil).Return(account.Session{ID: uuid.New()}, nil)
	s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().NoError(err)
	s.IsType(account.SessionIssued{}, outcome)
}

func (s *ServiceSuite) TestSignIn_TokenWithoutSubjectOrEmailIsRejected() {
	req := account.SignInRequest{Locale: "en", AuthenticationToken: "signed-token"}

	s.mockTokens.EXPECT().Validate(gomock.Any(), "signed-token", account.TokenTypeAuthentication, true).
		Return(account.TokenClaims{}, nil)

	_, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidCredentials))
}

func (s *ServiceSuite) TestSignIn_TokenSubjectGoneReturnsNotFound() {
	gone := uuid.New()
	req := account.SignInRequest{Locale: "en", AuthenticationToken: "signed-token"}

	s.mockTokens.EXPECT().Validate(gomock.Any(), "signed-token", account.TokenTypeAuthentication, true).
		Return(account.TokenClaims{Subject: gone.String()}, nil)
	s.mockDirectory.EXPECT().FindByID(gomock.Any(), gone).Return(nil, nil)

	_, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestSignIn_OneTimePasswordAnswersChallenge() {
	user := s.completedUser()
	otpID := uuid.New()
	req := account.SignInRequest{
		Locale:          "en",
		OneTimePassword: &account.OneTimePasswordSubmission{ID: otpID, Code: "123456"},
	}

	s.mockOtps.EXPECT().Validate(gomock.Any(), otpID, "123456", account.PurposeMultiFactorAuthentication).
		Return(account.OneTimePassword{ID: otpID, UserID: user.ID}, nil)
	s.mockDirectory.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
	s.mockSessions.EXPECT().Create(gomock.Any(), user, nil).Return(account.Session{ID: uuid.New()}, nil)
	s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().NoError(err)
	s.IsType(account.SessionIssued{}, outcome)
}

func (s *ServiceSuite) TestSignIn_WrongOneTimePasswordPropagates() {
	otpID := uuid.New()
	req := account.SignInRequest{
		Locale:          "en",
		OneTimePassword: &account.OneTimePasswordSubmission{ID: otpID, Code: "999999"},
	}

	s.mockOtps.EXPECT().Validate(gomock.Any(), otpID, "999999", account.PurposeMultiFactorAuthentication).
		Return(account.OneTimePassword{}, dErrors.New(dErrors.CodeInvalidCredentials, "the one-time password is not valid"))

	_, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidCredentials))
}

func (s *ServiceSuite) TestSignIn_ProfileCompletionIssuesSession() {
	user := s.incompleteUser()
	phone, err := contact.NewPhone("CA", "(514) 845-4636", "")
	s.Require().NoError(err)
	phone.Verified = true

	req := account.SignInRequest{
		Locale: "en",
		Profile: &account.ProfileCompletionSubmission{
			Token: "completion-token",
			ProfileFields: account.ProfileFields{
				FirstName: "Ada",
				LastName:  "Lovelace",
				Locale:    "en-CA",
				TimeZone:  "America/Montreal",
			},
			Password: strptr("correct horse battery staple"),
			MFAMode:  account.MFAModePhone,
		},
	}

	completed := s.completedUser()
	completed.ID = user.ID
	completed.Phone = &phone

	s.mockTokens.EXPECT().Validate(gomock.Any(), "completion-token", account.TokenTypeProfileCompletion, true).
		Return(account.TokenClaims{Subject: user.Subject(), Phone: &phone}, nil)
	s.mockDirectory.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
	s.mockDirectory.EXPECT().CompleteProfile(gomock.Any(), user.ID, gomock.Any()).DoAndReturn(
		func(_ any, _ uuid.UUID, completion account.ProfileCompletion) (*account.User, error) {
			s.Equal("Ada", completion.FirstName)
			s.Equal(account.MFAModePhone, completion.MFAMode)
			// The phone comes from the verified token claim.
			s.Require().NotNil(completion.Phone)
			s.True(completion.Phone.Verified)
			return completed, nil
		})
	s.mockSessions.EXPECT().Create(gomock.Any(), completed, nil).Return(account.Session{ID: uuid.New()}, nil)
	s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().NoError(err)
	s.IsType(account.SessionIssued{}, outcome)
}

func (s *ServiceSuite) TestSignIn_ProfileTokenWithoutSubjectIsRejected() {
	req := account.SignInRequest{
		Locale: "en",
		Profile: &account.ProfileCompletionSubmission{
			Token: "completion-token",
			ProfileFields: account.ProfileFields{
				FirstName: "Ada",
				LastName:  "Lovelace",
				Locale:    "en-CA",
				TimeZone:  "America/Montreal",
			},
			MFAMode: account.MFAModeNone,
		},
	}

	s.mockTokens.EXPECT().Validate(gomock.Any(), "completion-token", account.TokenTypeProfileCompletion, true).
		Return(account.TokenClaims{}, nil)

	_, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidCredentials))
}

func (s *ServiceSuite) TestSignIn_ProfileSubmissionShortPasswordIsRejected() {
	req := account.SignInRequest{
		Locale: "en",
		Profile: &account.ProfileCompletionSubmission{
			Token: "completion-token",
			ProfileFields: account.ProfileFields{
				FirstName: "Ada",
				LastName:  "Lovelace",
				Locale:    "en-CA",
				TimeZone:  "America/Montreal",
			},
			Password: strptr("short"),
			MFAMode:  account.MFAModeNone,
		},
	}

	_, err := s.service.SignIn(s.ctx, req, nil)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}
