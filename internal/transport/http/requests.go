package httptransport

import (
	"time"

	"github.com/google/uuid"

	"worldsmith/internal/account"
)

// Wire shapes. These stay separate from the domain request types so the
// JSON contract can evolve without touching the service.

type credentialsPayload struct {
	EmailAddress string  `json:"email_address"`
	Password     *string `json:"password,omitempty"`
}

type oneTimePasswordPayload struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
}

type profilePayload struct {
	Token      string     `json:"token"`
	FirstName  string     `json:"first_name"`
	MiddleName string     `json:"middle_name,omitempty"`
	LastName   string     `json:"last_name"`
	Birthdate  *time.Time `json:"birthdate,omitempty"`
	Gender     string     `json:"gender,omitempty"`
	Locale     string     `json:"locale"`
	TimeZone   string     `json:"time_zone"`
	Password   *string    `json:"password,omitempty"`
	MFAMode    string     `json:"multi_factor_authentication_mode"`
}

type phonePayload struct {
	CountryCode string `json:"country_code,omitempty"`
	Number      string `json:"number"`
	Extension   string `json:"extension,omitempty"`
}

type signInPayload struct {
	Locale              string                  `json:"locale"`
	Credentials         *credentialsPayload     `json:"credentials,omitempty"`
	AuthenticationToken string                  `json:"authentication_token,omitempty"`
	OneTimePassword     *oneTimePasswordPayload `json:"one_time_password,omitempty"`
	Profile             *profilePayload         `json:"profile,omitempty"`
}

func (p signInPayload) toRequest() account.SignInRequest {
	req := account.SignInRequest{
		Locale:              p.Locale,
		AuthenticationToken: p.AuthenticationToken,
	}
	if p.Credentials != nil {
		req.Credentials = &account.Credentials{
			EmailAddress: p.Credentials.EmailAddress,
			Password:     p.Credentials.Password,
		}
	}
	if p.OneTimePassword != nil {
		req.OneTimePassword = &account.OneTimePasswordSubmission{
			ID:   p.OneTimePassword.ID,
			Code: p.OneTimePassword.Code,
		}
	}
	if p.Profile != nil {
		req.Profile = &account.ProfileCompletionSubmission{
			Token: p.Profile.Token,
			ProfileFields: account.ProfileFields{
				FirstName:  p.Profile.FirstName,
				MiddleName: p.Profile.MiddleName,
				LastName:   p.Profile.LastName,
				Birthdate:  p.Profile.Birthdate,
				Gender:     p.Profile.Gender,
				Locale:     p.Profile.Locale,
				TimeZone:   p.Profile.TimeZone,
			},
			Password: p.Profile.Password,
			MFAMode:  account.MFAMode(p.Profile.MFAMode),
		}
	}
	return req
}

type resetPasswordPayload struct {
	Locale       string  `json:"locale"`
	EmailAddress string  `json:"email_address,omitempty"`
	Token        string  `json:"token,omitempty"`
	NewPassword  *string `json:"new_password,omitempty"`
}

func (p resetPasswordPayload) toRequest() account.ResetPasswordRequest {
	return account.ResetPasswordRequest{
		Locale:       p.Locale,
		EmailAddress: p.EmailAddress,
		Token:        p.Token,
		NewPassword:  p.NewPassword,
	}
}

type changePhonePayload struct {
	Locale          string                  `json:"locale"`
	NewPhone        *phonePayload           `json:"new_phone,omitempty"`
	OneTimePassword *oneTimePasswordPayload `json:"one_time_password,omitempty"`
}

func (p changePhonePayload) toRequest() account.ChangePhoneRequest {
	req := account.ChangePhoneRequest{Locale: p.Locale}
	if p.NewPhone != nil {
		req.NewPhone = &account.PhoneInput{
			CountryCode: p.NewPhone.CountryCode,
			Number:      p.NewPhone.Number,
			Extension:   p.NewPhone.Extension,
		}
	}
	if p.OneTimePassword != nil {
		req.OneTimePassword = &account.OneTimePasswordSubmission{
			ID:   p.OneTimePassword.ID,
			Code: p.OneTimePassword.Code,
		}
	}
	return req
}

type verifyPhonePayload struct {
	Locale                 string                  `json:"locale"`
	ProfileCompletionToken string                  `json:"profile_completion_token"`
	NewPhone               *phonePayload           `json:"new_phone,omitempty"`
	OneTimePassword        *oneTimePasswordPayload `json:"one_time_password,omitempty"`
}

func (p verifyPhonePayload) toRequest() account.VerifyPhoneRequest {
	req := account.VerifyPhoneRequest{
		Locale:                 p.Locale,
		ProfileCompletionToken: p.ProfileCompletionToken,
	}
	if p.NewPhone != nil {
		req.NewPhone = &account.PhoneInput{
			CountryCode: p.NewPhone.CountryCode,
			Number:      p.NewPhone.Number,
			Extension:   p.NewPhone.Extension,
		}
	}
	if p.OneTimePassword != nil {
		req.OneTimePassword = &account.OneTimePasswordSubmission{
			ID:   p.OneTimePassword.ID,
			Code: p.OneTimePassword.Code,
		}
	}
	return req
}

type renewSessionPayload struct {
	RefreshToken string `json:"refresh_token"`
}

type signOutPayload struct {
	SessionID  uuid.UUID `json:"session_id,omitempty"`
	Everywhere bool      `json:"everywhere,omitempty"`
}
