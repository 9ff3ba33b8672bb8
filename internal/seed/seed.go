// Package seed loads YAML fixture files and creates the records they
// describe through the registry service.
package seed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"igreja/internal/core"
	applog "igreja/internal/log"
)

// Fixture is the top-level layout of a seed file.
type Fixture struct {
	Churches   []Church   `yaml:"churches"`
	Pastors    []Pastor   `yaml:"pastors"`
	Members    []Member   `yaml:"members"`
	Finance    []Entry    `yaml:"finance"`
	Activities []Activity `yaml:"activities"`
}

type Church struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type,omitempty"`
	Location    string `yaml:"location,omitempty"`
	Responsible string `yaml:"responsible,omitempty"`
	Contact     string `yaml:"contact,omitempty"`
}

// Pastor references its church by name. The church must appear in the same
// file.
type Pastor struct {
	Name    string `yaml:"name"`
	Contact string `yaml:"contact,omitempty"`
	Church  string `yaml:"church,omitempty"`
}

type Member struct {
	Name          string `yaml:"name"`
	Role          string `yaml:"role,omitempty"`
	MaritalStatus string `yaml:"marital_status,omitempty"`
	Baptism       string `yaml:"baptism,omitempty"`
	Contact       string `yaml:"contact,omitempty"`
	Address       string `yaml:"address,omitempty"`
}

// Entry amounts are strings so that decimals are not rounded through float64.
type Entry struct {
	Date     string `yaml:"date,omitempty"`
	Kind     string `yaml:"kind"`
	Category string `yaml:"category,omitempty"`
	Amount   string `yaml:"amount"`
	Notes    string `yaml:"notes,omitempty"`
}

type Activity struct {
	Date        string `yaml:"date,omitempty"`
	Time        string `yaml:"time,omitempty"`
	Name        string `yaml:"activity"`
	Location    string `yaml:"location,omitempty"`
	Responsible string `yaml:"responsible,omitempty"`
}

// Registry is the part of the registry service the seeder writes through.
type Registry interface {
	CreateChurch(ctx context.Context, f core.Fields) (core.Church, error)
	CreatePastor(ctx context.Context, f core.Fields) (core.Pastor, error)
	CreateMember(ctx context.Context, f core.Fields) (core.Member, error)
	CreateFinancialEntry(ctx context.Context, f core.Fields) (core.FinancialEntry, error)
	CreateActivity(ctx context.Context, f core.Fields) (core.Activity, error)
}

// Result counts the records created by Apply.
type Result struct {
	Churches   int `json:"churches"`
	Pastors    int `json:"pastors"`
	Members    int `json:"members"`
	Finance    int `json:"finance"`
	Activities int `json:"activities"`
}

func (r Result) Total() int {
	return r.Churches + r.Pastors + r.Members + r.Finance + r.Activities
}

// Load reads and parses a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes a fixture, rejecting unknown keys, and checks that every
// pastor's church is declared.
func Parse(r io.Reader) (*Fixture, error) {
	var fx Fixture
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&fx); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := fx.validate(); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	return &fx, nil
}

func (fx *Fixture) validate() error {
	churches := make(map[string]bool, len(fx.Churches))
	for i, c := range fx.Churches {
		if c.Name == "" {
			return fmt.Errorf("churches[%d]: name is required", i)
		}
		if churches[c.Name] {
			return fmt.Errorf("churches[%d]: duplicate name %q", i, c.Name)
		}
		churches[c.Name] = true
	}
	for i, p := range fx.Pastors {
		if p.Church != "" && !churches[p.Church] {
			return fmt.Errorf("pastors[%d]: unknown church %q", i, p.Church)
		}
	}
	for i, m := range fx.Members {
		if m.Name == "" {
			return fmt.Errorf("members[%d]: name is required", i)
		}
	}
	for i, e := range fx.Finance {
		if e.Kind == "" {
			continue
		}
		if _, err := core.ParseEntryKind(e.Kind); err != nil {
			return fmt.Errorf("finance[%d]: %w", i, err)
		}
	}
	return nil
}

// Apply creates churches first so that pastors can be linked to them, then
// the remaining records in file order. It stops at the first failure; records
// created before it stay.
func Apply(ctx context.Context, reg Registry, fx *Fixture) (Result, error) {
	var res Result
	churchIDs := make(map[string]int64, len(fx.Churches))

	for _, c := range fx.Churches {
		created, err := reg.CreateChurch(ctx, core.Fields{
			"name":        c.Name,
			"type":        c.Type,
			"location":    c.Location,
			"responsible": c.Responsible,
			"contact":     c.Contact,
		})
		if err != nil {
			return res, fmt.Errorf("church %q: %w", c.Name, err)
		}
		churchIDs[c.Name] = created.ID
		res.Churches++
	}

	for _, p := range fx.Pastors {
		f := core.Fields{"name": p.Name, "contact": p.Contact}
		if id, ok := churchIDs[p.Church]; ok {
			f["church_id"] = id
		}
		if _, err := reg.CreatePastor(ctx, f); err != nil {
			return res, fmt.Errorf("pastor %q: %w", p.Name, err)
		}
		res.Pastors++
	}

	for _, m := range fx.Members {
		if _, err := reg.CreateMember(ctx, core.Fields{
			"name":           m.Name,
			"role":           m.Role,
			"marital_status": m.MaritalStatus,
			"baptism":        m.Baptism,
			"contact":        m.Contact,
			"address":        m.Address,
		}); err != nil {
			return res, fmt.Errorf("member %q: %w", m.Name, err)
		}
		res.Members++
	}

	for i, e := range fx.Finance {
		if _, err := reg.CreateFinancialEntry(ctx, core.Fields{
			"date":     e.Date,
			"kind":     e.Kind,
			"category": e.Category,
			"amount":   e.Amount,
			"notes":    e.Notes,
		}); err != nil {
			return res, fmt.Errorf("finance[%d]: %w", i, err)
		}
		res.Finance++
	}

	for _, a := range fx.Activities {
		if _, err := reg.CreateActivity(ctx, core.Fields{
			"date":        a.Date,
			"time":        a.Time,
			"activity":    a.Name,
			"location":    a.Location,
			"responsible": a.Responsible,
		}); err != nil {
			return res, fmt.Errorf("activity %q: %w", a.Name, err)
		}
		res.Activities++
	}

	slog.InfoContext(ctx, "Fixture applied",
		applog.FieldOperation, applog.OpSeed,
		"churches", res.Churches,
		"pastors", res.Pastors,
		"members", res.Members,
		"finance", res.Finance,
		"activities", res.Activities)
	return res, nil
}
