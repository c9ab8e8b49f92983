package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"worldsmith/internal/account"
	"worldsmith/internal/account/contact"
	dErrors "worldsmith/pkg/domain-errors"
)

const maxPersonNameLength = 128
const maxGenderLength = 64

// violations accumulates per-field validation failures so one response can
// name every problem.
type violations struct {
	details []any
}

func (v *violations) add(field, message string) {
	v.details = append(v.details, field, message)
}

func (v *violations) addErr(field string, err error) {
	var msg string
	if e, ok := err.(*dErrors.Error); ok {
		msg = e.Message
	} else {
		msg = err.Error()
	}
	v.add(field, msg)
}

func (v *violations) err() error {
	if len(v.details) == 0 {
		return nil
	}
	return dErrors.New(dErrors.CodeValidation, "the request payload is not valid").
		WithDetails(v.details...)
}

func validateLocale(locale string, v *violations) {
	if strings.TrimSpace(locale) == "" {
		v.add("locale", "locale is required")
		return
	}
	tag, err := language.Parse(locale)
	if err != nil || tag == language.Und {
		v.add("locale", "locale is not a valid BCP 47 tag")
	}
}

func validateTimeZone(zone string, v *violations) {
	// IANA zone names ("America/Montreal"); "UTC" is accepted as-is.
	if zone == "UTC" {
		return
	}
	if zone == "" || strings.ContainsAny(zone, " \t") || !strings.Contains(zone, "/") {
		v.add("time_zone", "time zone must be an IANA zone name")
	}
}

func validatePersonName(field, name string, required bool, v *violations) {
	name = strings.TrimSpace(name)
	if name == "" {
		if required {
			v.add(field, "name is required")
		}
		return
	}
	if len(name) > maxPersonNameLength {
		v.add(field, "name is too long")
	}
}

func (s *Service) validatePassword(field string, password string, v *violations) {
	if len(password) < s.passwords.MinLength {
		v.add(field, "password does not meet the minimum length")
	}
}

func validateProfileFields(fields account.ProfileFields, v *violations) {
	validatePersonName("first_name", fields.FirstName, true, v)
	validatePersonName("middle_name", fields.MiddleName, false, v)
	validatePersonName("last_name", fields.LastName, true, v)
	if fields.Birthdate != nil && !fields.Birthdate.Before(time.Now()) {
		v.add("birthdate", "birthdate must be in the past")
	}
	if len(fields.Gender) > maxGenderLength {
		v.add("gender", "gender is too long")
	}
	validateLocale(fields.Locale, v)
	validateTimeZone(fields.TimeZone, v)
}

func validateOTPSubmission(sub *account.OneTimePasswordSubmission, v *violations) {
	if sub.ID == uuid.Nil {
		v.add("one_time_password.id", "id is required")
	}
	if sub.Code == "" {
		v.add("one_time_password.code", "code is required")
	}
}

// Closed sign-in variants. Validation converts the nullable request shape
// into exactly one of these before any collaborator is called.
type signInBranch interface{ isSignInBranch() }

type credentialsBranch struct {
	email    contact.Email
	password *string
}

type authenticationTokenBranch struct {
	token string
}

type oneTimePasswordBranch struct {
	id   uuid.UUID
	code string
}

type profileCompletionBranch struct {
	token    string
	fields   account.ProfileFields
	password *string
	mfaMode  account.MFAMode
}

func (credentialsBranch) isSignInBranch()         {}
func (authenticationTokenBranch) isSignInBranch() {}
func (oneTimePasswordBranch) isSignInBranch()     {}
func (profileCompletionBranch) isSignInBranch()   {}

func (s *Service) validateSignIn(req account.SignInRequest) (signInBranch, error) {
	var v violations
	validateLocale(req.Locale, &v)

	populated := 0
	if req.Credentials != nil {
		populated++
	}
	if req.AuthenticationToken != "" {
		populated++
	}
	if req.OneTimePassword != nil {
		populated++
	}
	if req.Profile != nil {
		populated++
	}
	if populated != 1 {
		v.add("payload", "exactly one of credentials, authentication_token, one_time_password, profile must be specified")
		return nil, v.err()
	}

	var branch signInBranch
	switch {
	case req.Credentials != nil:
		email, err := contact.NewEmail(req.Credentials.EmailAddress)
		if err != nil {
			v.addErr("credentials.email_address", err)
		}
		if req.Credentials.Password != nil && *req.Credentials.Password == "" {
			v.add("credentials.password", "password must not be empty when present")
		}
		branch = credentialsBranch{email: email, password: req.Credentials.Password}

	case req.AuthenticationToken != "":
		branch = authenticationTokenBranch{token: req.AuthenticationToken}

	case req.OneTimePassword != nil:
		validateOTPSubmission(req.OneTimePassword, &v)
		branch = oneTimePasswordBranch{id: req.OneTimePassword.ID, code: req.OneTimePassword.Code}

	case req.Profile != nil:
		if req.Profile.Token == "" {
			v.add("profile.token", "token is required")
		}
		validateProfileFields(req.Profile.ProfileFields, &v)
		if req.Profile.Password != nil {
			s.validatePassword("profile.password", *req.Profile.Password, &v)
		}
		if !req.Profile.MFAMode.Valid() {
			v.add("profile.multi_factor_authentication_mode", "mode must be one of None, Email, Phone")
		}
		branch = profileCompletionBranch{
			token:    req.Profile.Token,
			fields:   req.Profile.ProfileFields,
			password: req.Profile.Password,
			mfaMode:  req.Profile.MFAMode,
		}
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return branch, nil
}

// Closed reset-password variants.
type resetPasswordBranch interface{ isResetPasswordBranch() }

type recoveryRequestBranch struct {
	email contact.Email
}

type newPasswordBranch struct {
	token       string
	newPassword string
}

func (recoveryRequestBranch) isResetPasswordBranch() {}
func (newPasswordBranch) isResetPasswordBranch()     {}

func (s *Service) validateResetPassword(req account.ResetPasswordRequest) (resetPasswordBranch, error) {
	var v violations
	validateLocale(req.Locale, &v)

	if req.EmailAddress != "" {
		if req.Token != "" || req.NewPassword != nil {
			v.add("payload", "exactly one of email_address, token with new_password must be specified")
			return nil, v.err()
		}
		email, err := contact.NewEmail(req.EmailAddress)
		if err != nil {
			v.addErr("email_address", err)
		}
		if err := v.err(); err != nil {
			return nil, err
		}
		return recoveryRequestBranch{email: email}, nil
	}

	if req.Token == "" || req.NewPassword == nil {
		v.add("payload", "exactly one of email_address, token with new_password must be specified")
		return nil, v.err()
	}
	s.validatePassword("new_password", *req.NewPassword, &v)
	if err := v.err(); err != nil {
		return nil, err
	}
	return newPasswordBranch{token: req.Token, newPassword: *req.NewPassword}, nil
}

// Closed phone-flow variants, shared by change and verify.
type phoneBranch interface{ isPhoneBranch() }

type newPhoneBranch struct {
	phone contact.Phone
}

type phoneOTPBranch struct {
	id   uuid.UUID
	code string
}

func (newPhoneBranch) isPhoneBranch() {}
func (phoneOTPBranch) isPhoneBranch() {}

func validatePhoneStep(locale string, newPhone *account.PhoneInput, otp *account.OneTimePasswordSubmission) (phoneBranch, error) {
	var v violations
	validateLocale(locale, &v)

	if (newPhone == nil) == (otp == nil) {
		v.add("payload", "exactly one of new_phone, one_time_password must be specified")
		return nil, v.err()
	}

	var branch phoneBranch
	if newPhone != nil {
		phone, err := contact.NewPhone(newPhone.CountryCode, newPhone.Number, newPhone.Extension)
		if err != nil {
			v.addErr("new_phone", err)
		}
		branch = newPhoneBranch{phone: phone}
	} else {
		validateOTPSubmission(otp, &v)
		branch = phoneOTPBranch{id: otp.ID, code: otp.Code}
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return branch, nil
}
