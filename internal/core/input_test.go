package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewMemberInputDefaults(t *testing.T) {
	in := NewMemberInput(Fields{"name": "João"})
	if err := in.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	want := MemberInput{Name: "João", Role: "Member", MaritalStatus: "Single"}
	if in != want {
		t.Fatalf("expected %+v, got %+v", want, in)
	}

	in = NewMemberInput(Fields{"name": "Ana", "role": "", "marital_status": "Married"})
	if in.Role != DefaultRole || in.MaritalStatus != "Married" {
		t.Fatalf("unexpected defaults %+v", in)
	}
}

func TestMemberInputValidate(t *testing.T) {
	for _, f := range []Fields{{}, {"name": ""}, {"name": "   "}, {"name": nil}} {
		err := NewMemberInput(f).Validate()
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%v expected ErrValidation, got %v", f, err)
		}
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "name" {
			t.Fatalf("expected ValidationError on name, got %v", err)
		}
	}
}

func TestNewChurchInput(t *testing.T) {
	in := NewChurchInput(Fields{"name": "Sede Central"})
	if in.Type != HeadChurch {
		t.Fatalf("expected default HeadChurch, got %q", in.Type)
	}
	in = NewChurchInput(Fields{"name": "Vila Nova", "type": "Cell", "location": "Rua 1"})
	if in.Type != Cell || in.Location != "Rua 1" || in.Contact != "" {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestNewPastorInputChurchID(t *testing.T) {
	cases := []struct {
		f    Fields
		want *int64
	}{
		{Fields{}, nil},
		{Fields{"church_id": nil}, nil},
		{Fields{"church_id": ""}, nil},
		{Fields{"church_id": "0"}, nil},
		{Fields{"church_id": "abc"}, nil},
		{Fields{"church_id": 1.5}, nil},
		{Fields{"church_id": "3"}, ptr(3)},
		{Fields{"church_id": " 4 "}, ptr(4)},
		{Fields{"church_id": float64(5)}, ptr(5)},
		{Fields{"church_id": json.Number("6")}, ptr(6)},
		{Fields{"church_id": json.Number("8.0")}, ptr(8)},
		{Fields{"church_id": json.Number("1e1")}, ptr(10)},
		{Fields{"church_id": json.Number("1.5")}, nil},
		{Fields{"church_id": json.Number("0.0")}, nil},
		{Fields{"church_id": 7}, ptr(7)},
	}
	for i, tc := range cases {
		got := NewPastorInput(tc.f).ChurchID
		switch {
		case tc.want == nil && got != nil:
			t.Fatalf("case %d expected nil, got %d", i, *got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Fatalf("case %d expected %d, got %v", i, *tc.want, got)
		}
	}
}

func TestNewFinancialEntryInput(t *testing.T) {
	in := NewFinancialEntryInput(Fields{})
	if in.Kind != Income || in.Category != "Other" || in.Amount.Cents != 0 {
		t.Fatalf("unexpected defaults %+v", in)
	}

	cases := []struct {
		amount any
		cents  int64
	}{
		{"1000.555", 100056},
		{1000.555, 100056},
		{json.Number("300.111"), 30011},
		{42, 4200},
		{"not a number", 0},
		{true, 0},
		{nil, 0},
	}
	for _, tc := range cases {
		in := NewFinancialEntryInput(Fields{"kind": "Expense", "amount": tc.amount})
		if in.Kind != Expense {
			t.Fatalf("expected Expense, got %q", in.Kind)
		}
		if in.Amount.Cents != tc.cents {
			t.Fatalf("%v expected %d, got %d", tc.amount, tc.cents, in.Amount.Cents)
		}
	}
}

func TestNewActivityInput(t *testing.T) {
	in := NewActivityInput(Fields{"date": "2025-03-01", "time": "19:30", "activity": "Culto"})
	want := ActivityInput{Date: "2025-03-01", Time: "19:30", Name: "Culto"}
	if in != want {
		t.Fatalf("expected %+v, got %+v", want, in)
	}
}

func TestFieldsString(t *testing.T) {
	f := Fields{"s": "x", "n": json.Number("12"), "f": 1.5, "b": true, "m": map[string]any{}}
	if f.String("s") != "x" || f.String("n") != "12" || f.String("f") != "1.5" || f.String("b") != "true" {
		t.Fatalf("unexpected conversions")
	}
	if f.String("m") != "" || f.String("missing") != "" {
		t.Fatalf("expected empty for unsupported and missing")
	}
}

func ptr(v int64) *int64 { return &v }
