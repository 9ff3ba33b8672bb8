package services

import (
	"context"
	"fmt"
	"log/slog"

	"igreja/internal/amqp"
	"igreja/internal/core"
	"igreja/internal/metrics"
)

// RecordStore is the persistence the record and report services need.
type RecordStore interface {
	ListMembers(ctx context.Context) ([]core.Member, error)
	CreateMember(ctx context.Context, in core.MemberInput) (core.Member, error)
	DeleteMember(ctx context.Context, id int64) error

	ListChurches(ctx context.Context) ([]core.Church, error)
	CreateChurch(ctx context.Context, in core.ChurchInput) (core.Church, error)
	DeleteChurch(ctx context.Context, id int64) (int64, error)

	ListPastors(ctx context.Context) ([]core.Pastor, error)
	CreatePastor(ctx context.Context, in core.PastorInput) (core.Pastor, error)
	DeletePastor(ctx context.Context, id int64) error

	ListFinancialEntries(ctx context.Context) ([]core.FinancialEntry, error)
	CreateFinancialEntry(ctx context.Context, in core.FinancialEntryInput) (core.FinancialEntry, error)
	DeleteFinancialEntry(ctx context.Context, id int64) error

	ListActivities(ctx context.Context) ([]core.Activity, error)
	CreateActivity(ctx context.Context, in core.ActivityInput) (core.Activity, error)
	DeleteActivity(ctx context.Context, id int64) error

	CashFlow(ctx context.Context) (core.CashFlow, error)
	CategoryReport(ctx context.Context, kind core.EntryKind) ([]core.CategoryTotal, error)
	Dashboard(ctx context.Context) (core.DashboardSummary, error)

	Ping(ctx context.Context) error
	Close() error
}

// Publisher announces record changes to other processes.
type Publisher interface {
	PublishChange(ctx context.Context, entity, action string, id int64) error
	Close() error
}

// RegistryService orchestrates record writes across the store and AMQP.
// The store write is authoritative; publishing is best effort.
type RegistryService struct {
	store     RecordStore
	publisher Publisher
	metrics   *metrics.Metrics
}

// NewRegistryService accepts a nil publisher and nil metrics.
func NewRegistryService(store RecordStore, publisher Publisher, m *metrics.Metrics) *RegistryService {
	return &RegistryService{
		store:     store,
		publisher: publisher,
		metrics:   m,
	}
}

func (s *RegistryService) ListMembers(ctx context.Context) ([]core.Member, error) {
	return s.store.ListMembers(ctx)
}

func (s *RegistryService) CreateMember(ctx context.Context, f core.Fields) (core.Member, error) {
	m, err := s.store.CreateMember(ctx, core.NewMemberInput(f))
	if err != nil {
		return core.Member{}, err
	}
	s.changed(ctx, core.EntityMember, amqp.ActionCreated, m.ID)
	return m, nil
}

func (s *RegistryService) DeleteMember(ctx context.Context, id int64) error {
	if err := s.store.DeleteMember(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, core.EntityMember, amqp.ActionDeleted, id)
	return nil
}

func (s *RegistryService) ListChurches(ctx context.Context) ([]core.Church, error) {
	return s.store.ListChurches(ctx)
}

func (s *RegistryService) CreateChurch(ctx context.Context, f core.Fields) (core.Church, error) {
	c, err := s.store.CreateChurch(ctx, core.NewChurchInput(f))
	if err != nil {
		return core.Church{}, err
	}
	s.changed(ctx, core.EntityChurch, amqp.ActionCreated, c.ID)
	return c, nil
}

// DeleteChurch removes a church after detaching its pastors. The store runs
// both steps in one transaction.
func (s *RegistryService) DeleteChurch(ctx context.Context, id int64) error {
	detached, err := s.store.DeleteChurch(ctx, id)
	if err != nil {
		return err
	}
	if detached > 0 {
		slog.InfoContext(ctx, "Pastors detached from deleted church", "church_id", id, "count", detached)
	}
	s.changed(ctx, core.EntityChurch, amqp.ActionDeleted, id)
	return nil
}

func (s *RegistryService) ListPastors(ctx context.Context) ([]core.Pastor, error) {
	return s.store.ListPastors(ctx)
}

func (s *RegistryService) CreatePastor(ctx context.Context, f core.Fields) (core.Pastor, error) {
	p, err := s.store.CreatePastor(ctx, core.NewPastorInput(f))
	if err != nil {
		return core.Pastor{}, err
	}
	s.changed(ctx, core.EntityPastor, amqp.ActionCreated, p.ID)
	return p, nil
}

func (s *RegistryService) DeletePastor(ctx context.Context, id int64) error {
	if err := s.store.DeletePastor(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, core.EntityPastor, amqp.ActionDeleted, id)
	return nil
}

func (s *RegistryService) ListFinancialEntries(ctx context.Context) ([]core.FinancialEntry, error) {
	return s.store.ListFinancialEntries(ctx)
}

func (s *RegistryService) CreateFinancialEntry(ctx context.Context, f core.Fields) (core.FinancialEntry, error) {
	e, err := s.store.CreateFinancialEntry(ctx, core.NewFinancialEntryInput(f))
	if err != nil {
		return core.FinancialEntry{}, err
	}
	s.changed(ctx, core.EntityFinancialEntry, amqp.ActionCreated, e.ID)
	return e, nil
}

func (s *RegistryService) DeleteFinancialEntry(ctx context.Context, id int64) error {
	if err := s.store.DeleteFinancialEntry(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, core.EntityFinancialEntry, amqp.ActionDeleted, id)
	return nil
}

func (s *RegistryService) ListActivities(ctx context.Context) ([]core.Activity, error) {
	return s.store.ListActivities(ctx)
}

func (s *RegistryService) CreateActivity(ctx context.Context, f core.Fields) (core.Activity, error) {
	a, err := s.store.CreateActivity(ctx, core.NewActivityInput(f))
	if err != nil {
		return core.Activity{}, err
	}
	s.changed(ctx, core.EntityActivity, amqp.ActionCreated, a.ID)
	return a, nil
}

func (s *RegistryService) DeleteActivity(ctx context.Context, id int64) error {
	if err := s.store.DeleteActivity(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, core.EntityActivity, amqp.ActionDeleted, id)
	return nil
}

// Ping reports whether the store is reachable.
func (s *RegistryService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *RegistryService) changed(ctx context.Context, entity, action string, id int64) {
	s.metrics.RecordChange(entity, action)

	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP publisher not available, skipping change message",
			"entity", entity, "action", action, "id", id)
		return
	}
	if err := s.publisher.PublishChange(ctx, entity, action, id); err != nil {
		s.metrics.PublishFailed(entity)
		// The record is already stored; the request still succeeds.
		slog.ErrorContext(ctx, "Failed to publish change message",
			"entity", entity, "action", action, "id", id, "error", err)
	}
}

// Close closes both storage and AMQP connections
func (s *RegistryService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close registry service: %v", errs)
	}

	return nil
}
