package contact

import (
	"strings"

	dErrors "worldsmith/pkg/domain-errors"
)

// Phone is a normalized phone number. CountryCode is an ISO 3166-1 alpha-2
// region ("CA"), Number the national significant number as submitted, and
// E164 the canonical +<calling code><digits> form used on the wire.
type Phone struct {
	CountryCode string
	Number      string
	Extension   string
	E164        string
	Verified    bool
}

// callingCodes maps the regions the product ships in to their ITU calling
// codes. Unknown regions are rejected at construction.
var callingCodes = map[string]string{
	"US": "1", "CA": "1", "MX": "52",
	"GB": "44", "IE": "353", "FR": "33", "BE": "32", "CH": "41",
	"DE": "49", "AT": "43", "NL": "31", "LU": "352",
	"ES": "34", "PT": "351", "IT": "39",
	"DK": "45", "NO": "47", "SE": "46", "FI": "358",
	"PL": "48", "CZ": "420",
	"BR": "55", "AR": "54", "CL": "56", "CO": "57",
	"AU": "61", "NZ": "64", "JP": "81", "KR": "82", "IN": "91",
}

// NewPhone builds a normalized phone from a region and a national number.
// An empty region defaults to "CA", matching the product's home market.
func NewPhone(countryCode, number, extension string) (Phone, error) {
	region := strings.ToUpper(strings.TrimSpace(countryCode))
	if region == "" {
		region = "CA"
	}
	calling, ok := callingCodes[region]
	if !ok {
		return Phone{}, dErrors.New(dErrors.CodeValidation, "phone country code is not supported").
			WithDetails("field", "country_code", "country_code", region)
	}

	digits := digitsOf(number)
	if len(digits) < 7 || len(digits) > 14 {
		return Phone{}, dErrors.New(dErrors.CodeValidation, "phone number is not valid").
			WithDetails("field", "phone_number")
	}
	if len(calling)+len(digits) > 15 {
		return Phone{}, dErrors.New(dErrors.CodeValidation, "phone number is not valid").
			WithDetails("field", "phone_number")
	}

	extension = digitsOf(extension)

	return Phone{
		CountryCode: region,
		Number:      strings.TrimSpace(number),
		Extension:   extension,
		E164:        "+" + calling + digits,
	}, nil
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RFC3966Extension renders the E.164 form with the ";ext=" suffix used in
// token claims, or the bare E.164 form when there is no extension.
func (p Phone) RFC3966Extension() string {
	if p.Extension == "" {
		return p.E164
	}
	return p.E164 + ";ext=" + p.Extension
}

// ParseRFC3966 splits a claim value produced by RFC3966Extension back into
// the E.164 form and the extension.
func ParseRFC3966(value string) (e164, extension string) {
	if i := strings.IndexByte(value, ';'); i >= 0 {
		extension = strings.TrimPrefix(value[i+1:], "ext=")
		return value[:i], extension
	}
	return value, ""
}

// Masked hides the middle of the number, keeping the calling code and the
// last two digits. Receipts use this so a challenge response never echoes
// the full destination.
func (p Phone) Masked() string {
	if len(p.E164) < 5 {
		return p.E164
	}
	calling := callingCodes[p.CountryCode]
	prefix := "+" + calling
	tail := p.E164[len(p.E164)-2:]
	hidden := len(p.E164) - len(prefix) - len(tail)
	return prefix + strings.Repeat("*", hidden) + tail
}

func (p Phone) Equal(other Phone) bool {
	return p.CountryCode == other.CountryCode &&
		p.Number == other.Number &&
		p.Extension == other.Extension &&
		p.E164 == other.E164 &&
		p.Verified == other.Verified
}
