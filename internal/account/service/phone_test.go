package service

import (
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"worldsmith/internal/account"
	"worldsmith/internal/account/contact"
	dErrors "worldsmith/pkg/domain-errors"
)

func (s *ServiceSuite) TestChangePhone_RequiresUserCaller() {
	req := account.ChangePhoneRequest{
		Locale:   "en",
		NewPhone: &account.PhoneInput{CountryCode: "CA", Number: "(514) 845-4636"},
	}

	_, err := s.service.ChangePhone(s.ctx, account.SystemCaller(), req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestChangePhone_ValidationShortCircuits() {
	caller := account.UserCaller(uuid.New())

	s.Run("neither step is rejected", func() {
		_, err := s.service.ChangePhone(s.ctx, caller, account.ChangePhoneRequest{Locale: "en"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("both steps are rejected", func() {
		req := account.ChangePhoneRequest{
			Locale:          "en",
			NewPhone:        &account.PhoneInput{CountryCode: "CA", Number: "(514) 845-4636"},
			OneTimePassword: &account.OneTimePasswordSubmission{ID: uuid.New(), Code: "123456"},
		}
		_, err := s.service.ChangePhone(s.ctx, caller, req)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unsupported region is rejected", func() {
		req := account.ChangePhoneRequest{
			Locale:   "en",
			NewPhone: &account.PhoneInput{CountryCode: "ZZ", Number: "(514) 845-4636"},
		}
		_, err := s.service.ChangePhone(s.ctx, caller, req)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestChangePhone_UnknownCallerIsUnauthorized() {
	caller := account.UserCaller(uuid.New())
	req := account.ChangePhoneRequest{
		Locale:   "en",
		NewPhone: &account.PhoneInput{CountryCode: "CA", Number: "(514) 845-4636"},
	}

	s.mockDirectory.EXPECT().FindByID(gomock.Any(), caller.UserID).Return(nil, nil)

	_, err := s.service.ChangePhone(s.ctx, caller, req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestChangePhone_NewPhoneDispatchesChallenge() {
	user := s.completedUser()
	caller := account.UserCaller(user.ID)
	req := account.ChangePhoneRequest{
		Locale:   "en",
		NewPhone: &account.PhoneInput{CountryCode: "CA", Number: "(514) 845-4636"},
	}

	otpID := uuid.New()
	s.mockDirectory.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
	s.mockOtps.EXPECT().Issue(gomock.Any(), user.ID, account.PurposeContactVerification, gomock.Any()).DoAndReturn(
		func(_ any, _ uuid.UUID, _ string, phone *contact.Phone) (account.OneTimePassword, error) {
			s.Require().NotNil(phone)
			s.Equal("+15148454636", phone.E164)
			return account.OneTimePassword{ID: otpID, Code: "123456", UserID: user.ID, Phone: phone}, nil
		})
	s.mockMessages.EXPECT().SendToPhone(gomock.Any(), TemplateContactVerificationPhone, gomock.Any(), "en",
		map[string]string{"OneTimePassword": "123456"}).
		Return(account.SentMessage{ConfirmationNumber: "c-7", ContactType: account.ContactTypePhone, MaskedContact: "+1********36"}, nil)

	outcome, err := s.service.ChangePhone(s.ctx, caller, req)
	s.Require().NoError(err)
	challenge, ok := outcome.(account.OneTimePasswordChallenge)
	s.Require().True(ok)
	s.Equal(otpID, challenge.OneTimePasswordID)
	s.Equal("+1********36", challenge.Message.MaskedContact)
}

func (s *ServiceSuite) TestChangePhone_OTPAppliesVerifiedPhone() {
	user := s.completedUser()
	caller := account.UserCaller(user.ID)
	otpID := uuid.New()
	req := account.ChangePhoneRequest{
		Locale:          "en",
		OneTimePassword: &account.OneTimePasswordSubmission{ID: otpID, Code: "123456"},
	}

	phone, err := contact.NewPhone("CA", "(514) 845-4636", "")
	s.Require().NoError(err)

	updated := *user
	verified := phone
	verified.Verified = true
	updated.Phone = &verified

	s.mockDirectory.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
	s.mockOtps.EXPECT().Validate(gomock.Any(), otpID, "123456", account.PurposeContactVerification).
		Return(account.OneTimePassword{ID: otpID, UserID: user.ID, Phone: &phone}, nil)
	s.mockDirectory.EXPECT().UpdatePhone(gomock.Any(), user.ID, gomock.Any()).DoAndReturn(
		func(_ any, _ uuid.UUID, applied contact.Phone) (*account.User, error) {
			s.True(applied.Verified)
			s.Equal("+15148454636", applied.E164)
			return &updated, nil
		})

	outcome, err := s.service.ChangePhone(s.ctx, caller, req)
	s.Require().NoError(err)
	changed, ok := outcome.(account.PhoneChanged)
	s.Require().True(ok)
	s.Require().NotNil(changed.User.Phone)
	s.True(changed.User.Phone.Verified)
}

func (s *ServiceSuite) TestChangePhone_OTPBoundToAnotherUserIsRejected() {
	user := s.completedUser()
	other := uuid.New()
	caller := account.UserCaller(user.ID)
	otpID := uuid.New()
	req := account.ChangePhoneRequest{
		Locale:          "en",
		OneTimePassword: &account.OneTimePasswordSubmission{ID: otpID, Code: "123456"},
	}

	phone, err := contact.NewPhone("CA", "(514) 845-4636", "")
	s.Require().NoError(err)

	s.mockDirectory.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
	s.mockOtps.EXPECT().Validate(gomock.Any(), otpID, "123456", account.PurposeContactVerification).
		Return(account.OneTimePassword{ID: otpID, UserID: other, Phone: &phone}, nil)

	_, err = s.service.ChangePhone(s.ctx, caller, req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidCredentials))
	s.Equal(other.String(), dErrors.Detail(err, "expected_user_id"))
	s.Equal(user.ID.String(), dErrors.Detail(err, "actual_user_id"))
}

func (s *ServiceSuite) TestVerifyPhone_RequiresToken() {
	req := account.VerifyPhoneRequest{
		Locale:   "en",
		NewPhone: &account.PhoneInput{CountryCode: "CA", Number: "(514) 845-4636"},
	}

	_, err := s.service.VerifyPhone(s.ctx, req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestVerifyPhone_NewPhoneDispatchesChallengeWithoutConsumingToken() {
	user := s.incompleteUser()
	req := account.VerifyPhoneRequest{
		Locale:                 "en",
		ProfileCompletionToken: "completion-token",
		NewPhone:               &account.PhoneInput{CountryCode: "CA", Number: "(514) 845-4636"},
	}

	otpID := uuid.New()
	s.mockTokens.EXPECT().Validate(gomock.Any(), "completion-token", account.TokenTypeProfileCompletion, false).
		Return(account.TokenClaims{Subject: user.Subject()}, nil)
	s.mockDirectory.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
	s.mockOtps.EXPECT().Issue(gomock.Any(), user.ID, account.PurposeContactVerification, gomock.Any()).
		Return(account.OneTimePassword{ID: otpID, Code: "123456", UserID: user.ID}, nil)
	s.mockMessages.EXPECT().SendToPhone(gomock.Any(), TemplateContactVerificationPhone, gomock.Any(), "en",
		map[string]string{"OneTimePassword": "123456"}).
		Return(account.SentMessage{ConfirmationNumber: "c-8"}, nil)

	outcome, err := s.service.VerifyPhone(s.ctx, req)
	s.Require().NoError(err)
	challenge, ok := outcome.(account.OneTimePasswordChallenge)
	s.Require().True(ok)
	s.Equal(otpID, challenge.OneTimePasswordID)
}

func (s *ServiceSuite) TestVerifyPhone_OTPMintsFreshTokenAndRetiresOldOne() {
	user := s.incompleteUser()
	otpID := uuid.New()
	req := account.VerifyPhoneRequest{
		Locale:                 "en",
		ProfileCompletionToken: "old-completion-token",
		OneTimePassword:        &account.OneTimePasswordSubmission{ID: otpID, Code: "123456"},
	}

	phone, err := contact.NewPhone("CA", "(514) 845-4636", "")
	s.Require().NoError(err)

	s.mockTokens.EXPECT().Validate(gomock.Any(), "old-completion-token", account.TokenTypeProfileCompletion, false).
		Return(account.TokenClaims{Subject: user.Subject()}, nil)
	s.mockDirectory.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
	s.mockOtps.EXPECT().Validate(gomock.Any(), otpID, "123456", account.PurposeContactVerification).
		Return(account.OneTimePassword{ID: otpID, UserID: user.ID, Phone: &phone}, nil)
	s.mockTokens.EXPECT().Issue(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, spec account.TokenSpec) (account.IssuedToken, error) {
			s.Equal(account.TokenTypeProfileCompletion, spec.Type)
			s.Equal(user.Subject(), spec.Subject)
			s.False(spec.SingleUse)
			s.Require().NotNil(spec.Phone)
			s.True(spec.Phone.Verified)
			s.Equal("+15148454636", spec.Phone.E164)
			return account.IssuedToken{Value: "fresh-completion-token"}, nil
		})
	s.mockTokens.EXPECT().Invalidate(gomock.Any(), "old-completion-token", account.TokenTypeProfileCompletion).Return(true)

	outcome, err := s.service.VerifyPhone(s.ctx, req)
	s.Require().NoError(err)
	required, ok := outcome.(account.ProfileCompletionRequired)
	s.Require().True(ok)
	s.Equal("fresh-completion-token", required.Token)
}

func (s *ServiceSuite) TestVerifyPhone_InvalidateFailureIsSwallowed() {
	user := s.incompleteUser()
	otpID := uuid.New()
	req := account.VerifyPhoneRequest{
		Locale:                 "en",
		ProfileCompletionToken: "old-completion-token",
		OneTimePassword:        &account.OneTimePasswordSubmission{ID: otpID, Code: "123456"},
	}

	phone, err := contact.NewPhone("CA", "(514) 845-4636", "")
	s.Require().NoError(err)

	s.mockTokens.EXPECT().Validate(gomock.Any(), "old-completion-token", account.TokenTypeProfileCompletion, false).
		Return(account.TokenClaims{Subject: user.Subject()}, nil)
	s.mockDirectory.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
	s.mockOtps.EXPECT().Validate(gomock.Any(), otpID, "123456", account.PurposeContactVerification).
		Return(account.OneTimePassword{ID: otpID, UserID: user.ID, Phone: &phone}, nil)
	s.mockTokens.EXPECT().Issue(gomock.Any(), gomock.Any()).
		Return(account.IssuedToken{Value: "fresh-completion-token"}, nil)
	s.mockTokens.EXPECT().Invalidate(gomock.Any(), "old-completion-token", account.TokenTypeProfileCompletion).Return(false)

	outcome, err := s.service.VerifyPhone(s.ctx, req)
	s.Require().NoError(err)
	s.IsType(account.ProfileCompletionRequired{}, outcome)
}

func (s *ServiceSuite) TestVerifyPhone_ExpiredTokenPropagates() {
	req := account.VerifyPhoneRequest{
		Locale:                 "en",
		ProfileCompletionToken: "expired-token",
		NewPhone:               &account.PhoneInput{CountryCode: "CA", Number: "(514) 845-4636"},
	}

	s.mockTokens.EXPECT().Validate(gomock.Any(), "expired-token", account.TokenTypeProfileCompletion, false).
		Return(account.TokenClaims{}, dErrors.New(dErrors.CodeInvalidCredentials, "the token is not valid"))

	_, err := s.service.VerifyPhone(s.ctx, req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidCredentials))
}
