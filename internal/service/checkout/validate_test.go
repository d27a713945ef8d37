package checkout

import (
	"errors"
	"testing"

	"storefront/internal/domain"
)

func TestValidateAddress(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.Address)
		ok     bool
	}{
		{name: "valid", mutate: func(*domain.Address) {}, ok: true},
		{name: "missing name", mutate: func(a *domain.Address) { a.Name = "  " }},
		{name: "short phone", mutate: func(a *domain.Address) { a.Phone = "987654321" }},
		{name: "short pincode", mutate: func(a *domain.Address) { a.Pincode = "56000" }},
		{name: "missing city", mutate: func(a *domain.Address) { a.City = "" }},
		{name: "missing state", mutate: func(a *domain.Address) { a.State = "" }},
		{name: "line of five", mutate: func(a *domain.Address) { a.Line = "12 MG" }},
		{name: "line of six", mutate: func(a *domain.Address) { a.Line = "12 MGR" }, ok: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := validAddress()
			tc.mutate(&a)
			err := ValidateAddress(a)
			if tc.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.ok && !errors.Is(err, domain.ErrInvalidAddress) {
				t.Fatalf("expected ErrInvalidAddress, got %v", err)
			}
		})
	}
}

func TestParsePaymentMethod(t *testing.T) {
	for in, want := range map[string]domain.PaymentMethod{
		"cod":    domain.PaymentCOD,
		" UPI ":  domain.PaymentUPI,
		"Card":   domain.PaymentCard,
		"online": domain.PaymentOnline,
	} {
		got, err := ParsePaymentMethod(in)
		if err != nil || got != want {
			t.Fatalf("ParsePaymentMethod(%q) = %q, %v", in, got, err)
		}
	}
	for _, in := range []string{"", "cheque"} {
		if _, err := ParsePaymentMethod(in); !errors.Is(err, domain.ErrInvalidPayment) {
			t.Fatalf("expected ErrInvalidPayment for %q, got %v", in, err)
		}
	}
}
