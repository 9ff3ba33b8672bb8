package core

import (
	"errors"
	"fmt"
)

const (
	HeadChurch     ChurchType = "HeadChurch"
	Congregation   ChurchType = "Congregation"
	PreachingPoint ChurchType = "PreachingPoint"
	Cell           ChurchType = "Cell"

	Income  EntryKind = "Income"
	Expense EntryKind = "Expense"
)

// Defaults applied when a create request omits a field or sends it empty.
const (
	DefaultRole          = "Member"
	DefaultMaritalStatus = "Single"
	DefaultChurchType    = HeadChurch
	DefaultEntryKind     = Income
	DefaultCategory      = "Other"
)

type (
	ChurchType string
	EntryKind  string

	Member struct {
		ID            int64  `json:"id"`
		Name          string `json:"name"`
		Role          string `json:"role"`
		MaritalStatus string `json:"marital_status"`
		Baptism       string `json:"baptism"`
		Contact       string `json:"contact"`
		Address       string `json:"address"`
	}

	Church struct {
		ID          int64      `json:"id"`
		Name        string     `json:"name"`
		Type        ChurchType `json:"type"`
		Location    string     `json:"location"`
		Responsible string     `json:"responsible"`
		Contact     string     `json:"contact"`
	}

	// Pastor carries the name of the church it is assigned to when read
	// through the joined listing. Both church fields are nil when unassigned.
	Pastor struct {
		ID         int64   `json:"id"`
		Name       string  `json:"name"`
		Contact    string  `json:"contact"`
		ChurchID   *int64  `json:"church_id"`
		ChurchName *string `json:"church"`
	}

	FinancialEntry struct {
		ID       int64     `json:"id"`
		Date     string    `json:"date"`
		Kind     EntryKind `json:"kind"`
		Category string    `json:"category"`
		Amount   Money     `json:"amount"`
		Notes    string    `json:"notes"`
	}

	Activity struct {
		ID          int64  `json:"id"`
		Date        string `json:"date"`
		Time        string `json:"time"`
		Name        string `json:"activity"`
		Location    string `json:"location"`
		Responsible string `json:"responsible"`
	}
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")

	ErrInvalidEntryKind = errors.New("invalid entry kind")
)

// ValidationError reports a client input problem on a single field.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (t ChurchType) Valid() bool {
	switch t {
	case HeadChurch, Congregation, PreachingPoint, Cell:
		return true
	}
	return false
}

func (k EntryKind) Valid() bool {
	return k == Income || k == Expense
}

// ParseEntryKind accepts the canonical kind names only.
func ParseEntryKind(s string) (EntryKind, error) {
	k := EntryKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidEntryKind, s)
	}
	return k, nil
}

// Entity names used in change events and metrics labels.
const (
	EntityMember         = "member"
	EntityChurch         = "church"
	EntityPastor         = "pastor"
	EntityFinancialEntry = "financial_entry"
	EntityActivity       = "activity"
)
