package core

import (
	"errors"
	"testing"
)

func TestChurchTypeValid(t *testing.T) {
	cases := []struct {
		t  ChurchType
		ok bool
	}{
		{HeadChurch, true},
		{Congregation, true},
		{PreachingPoint, true},
		{Cell, true},
		{"Sede", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := tc.t.Valid(); got != tc.ok {
			t.Fatalf("%q expected %v, got %v", tc.t, tc.ok, got)
		}
	}
}

func TestParseEntryKind(t *testing.T) {
	if k, err := ParseEntryKind("Income"); err != nil || k != Income {
		t.Fatalf("expected Income, got %q (err=%v)", k, err)
	}
	if k, err := ParseEntryKind("Expense"); err != nil || k != Expense {
		t.Fatalf("expected Expense, got %q (err=%v)", k, err)
	}
	for _, in := range []string{"", "income", "Receita"} {
		if _, err := ParseEntryKind(in); !errors.Is(err, ErrInvalidEntryKind) {
			t.Fatalf("%q expected ErrInvalidEntryKind, got %v", in, err)
		}
	}
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	var err error = &ValidationError{Field: "name", Message: "name is required"}
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected errors.Is ErrValidation")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("validation error must not match ErrNotFound")
	}
	if err.Error() != "name: name is required" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestNewCashFlowBalance(t *testing.T) {
	cf := NewCashFlow(Money{Cents: 100056}, Money{Cents: 30011})
	if cf.Balance.Cents != 70045 {
		t.Fatalf("expected 70045, got %d", cf.Balance.Cents)
	}
	if cf.Balance != cf.Income.Sub(cf.Expense) {
		t.Fatalf("balance must equal income - expense")
	}
}
