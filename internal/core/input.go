package core

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Fields is a loosely typed request body: string keys to string, number or
// boolean values. It is converted into a typed input once, at the boundary.
type Fields map[string]any

// String returns the textual form of a field, or "" when it is absent or null.
func (f Fields) String(key string) string {
	switch v := f[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// StringOr returns the field or def when the field is empty.
func (f Fields) StringOr(key, def string) string {
	if s := f.String(key); s != "" {
		return s
	}
	return def
}

// Amount coerces a field to Money. Anything that is not numeric becomes zero.
func (f Fields) Amount(key string) Money {
	switch v := f[key].(type) {
	case string:
		return ParseAmount(v)
	case json.Number:
		return ParseAmount(v.String())
	case float64:
		return MoneyFromFloat(v)
	case int:
		return ParseAmount(strconv.Itoa(v))
	case int64:
		return ParseAmount(strconv.FormatInt(v, 10))
	default:
		return Money{}
	}
}

// OptionalID reads a reference field. Empty, zero, null and non-numeric
// values all mean "no reference".
func (f Fields) OptionalID(key string) *int64 {
	var (
		id  int64
		err error
	)
	switch v := f[key].(type) {
	case string:
		id, err = strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	case json.Number:
		if id, err = v.Int64(); err != nil {
			n, ferr := v.Float64()
			if ferr != nil {
				return nil
			}
			id, err = int64(n), nil
			if float64(id) != n {
				return nil
			}
		}
	case float64:
		id = int64(v)
		if float64(id) != v {
			return nil
		}
	case int:
		id = int64(v)
	case int64:
		id = v
	default:
		return nil
	}
	if err != nil || id == 0 {
		return nil
	}
	return &id
}

type (
	MemberInput struct {
		Name          string
		Role          string
		MaritalStatus string
		Baptism       string
		Contact       string
		Address       string
	}

	ChurchInput struct {
		Name        string
		Type        ChurchType
		Location    string
		Responsible string
		Contact     string
	}

	PastorInput struct {
		Name     string
		Contact  string
		ChurchID *int64
	}

	FinancialEntryInput struct {
		Date     string
		Kind     EntryKind
		Category string
		Amount   Money
		Notes    string
	}

	ActivityInput struct {
		Date        string
		Time        string
		Name        string
		Location    string
		Responsible string
	}
)

func NewMemberInput(f Fields) MemberInput {
	return MemberInput{
		Name:          f.String("name"),
		Role:          f.StringOr("role", DefaultRole),
		MaritalStatus: f.StringOr("marital_status", DefaultMaritalStatus),
		Baptism:       f.String("baptism"),
		Contact:       f.String("contact"),
		Address:       f.String("address"),
	}
}

// Validate enforces the one required field in the system: a member's name.
func (in MemberInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}

// NewChurchInput applies the default type. Unknown types are passed through
// and rejected by the store.
func NewChurchInput(f Fields) ChurchInput {
	return ChurchInput{
		Name:        f.String("name"),
		Type:        ChurchType(f.StringOr("type", string(DefaultChurchType))),
		Location:    f.String("location"),
		Responsible: f.String("responsible"),
		Contact:     f.String("contact"),
	}
}

func NewPastorInput(f Fields) PastorInput {
	return PastorInput{
		Name:     f.String("name"),
		Contact:  f.String("contact"),
		ChurchID: f.OptionalID("church_id"),
	}
}

func NewFinancialEntryInput(f Fields) FinancialEntryInput {
	return FinancialEntryInput{
		Date:     f.String("date"),
		Kind:     EntryKind(f.StringOr("kind", string(DefaultEntryKind))),
		Category: f.StringOr("category", DefaultCategory),
		Amount:   f.Amount("amount"),
		Notes:    f.String("notes"),
	}
}

func NewActivityInput(f Fields) ActivityInput {
	return ActivityInput{
		Date:        f.String("date"),
		Time:        f.String("time"),
		Name:        f.String("activity"),
		Location:    f.String("location"),
		Responsible: f.String("responsible"),
	}
}
