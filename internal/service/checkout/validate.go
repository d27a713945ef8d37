package checkout

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"storefront/internal/domain"
)

const (
	minPhoneLen   = 10
	minPincodeLen = 6
	minLineLen    = 6
)

// ValidateAddress reports the first missing or too-short field.
func ValidateAddress(a domain.Address) error {
	switch {
	case blank(a.Name):
		return fmt.Errorf("%w: name required", domain.ErrInvalidAddress)
	case length(a.Phone) < minPhoneLen:
		return fmt.Errorf("%w: phone must have at least %d characters", domain.ErrInvalidAddress, minPhoneLen)
	case length(a.Pincode) < minPincodeLen:
		return fmt.Errorf("%w: pincode must have at least %d characters", domain.ErrInvalidAddress, minPincodeLen)
	case blank(a.City):
		return fmt.Errorf("%w: city required", domain.ErrInvalidAddress)
	case blank(a.State):
		return fmt.Errorf("%w: state required", domain.ErrInvalidAddress)
	case length(a.Line) < minLineLen:
		return fmt.Errorf("%w: address line must be longer than %d characters", domain.ErrInvalidAddress, minLineLen-1)
	}
	return nil
}

// ParsePaymentMethod accepts COD, UPI, CARD and ONLINE in any case.
func ParsePaymentMethod(s string) (domain.PaymentMethod, error) {
	switch m := domain.PaymentMethod(strings.ToUpper(strings.TrimSpace(s))); m {
	case domain.PaymentCOD, domain.PaymentUPI, domain.PaymentCard, domain.PaymentOnline:
		return m, nil
	case "":
		return "", fmt.Errorf("%w: payment method required", domain.ErrInvalidPayment)
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidPayment, s)
	}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func length(s string) int { return utf8.RuneCountInString(strings.TrimSpace(s)) }
