package http

import (
	"context"
	"net/http"

	"igreja/internal/core"
	applog "igreja/internal/log"
)

// Registry is the record API the handlers drive.
type Registry interface {
	ListMembers(ctx context.Context) ([]core.Member, error)
	CreateMember(ctx context.Context, f core.Fields) (core.Member, error)
	DeleteMember(ctx context.Context, id int64) error

	ListChurches(ctx context.Context) ([]core.Church, error)
	CreateChurch(ctx context.Context, f core.Fields) (core.Church, error)
	DeleteChurch(ctx context.Context, id int64) error

	ListPastors(ctx context.Context) ([]core.Pastor, error)
	CreatePastor(ctx context.Context, f core.Fields) (core.Pastor, error)
	DeletePastor(ctx context.Context, id int64) error

	ListFinancialEntries(ctx context.Context) ([]core.FinancialEntry, error)
	CreateFinancialEntry(ctx context.Context, f core.Fields) (core.FinancialEntry, error)
	DeleteFinancialEntry(ctx context.Context, id int64) error

	ListActivities(ctx context.Context) ([]core.Activity, error)
	CreateActivity(ctx context.Context, f core.Fields) (core.Activity, error)
	DeleteActivity(ctx context.Context, id int64) error

	Ping(ctx context.Context) error
}

// Reports is the read-only aggregate API.
type Reports interface {
	CashFlow(ctx context.Context) (core.CashFlow, error)
	CategoryReport(ctx context.Context, kind string) ([]core.CategoryTotal, error)
	Dashboard(ctx context.Context) (core.DashboardSummary, error)
}

// resource binds one entity's operations to its URL prefix.
type resource[T any] struct {
	entity string
	list   func(context.Context) ([]T, error)
	create func(context.Context, core.Fields) (T, error)
	remove func(context.Context, int64) error
}

func (res resource[T]) register(mux *http.ServeMux, prefix string) {
	mux.HandleFunc("GET "+prefix, res.handleList)
	mux.HandleFunc("POST "+prefix, res.handleCreate)
	mux.HandleFunc("DELETE "+prefix+"/{id}", res.handleDelete)

	// Method-less patterns are less specific and catch the remaining verbs.
	mux.Handle(prefix, methodNotAllowed("GET, HEAD, POST"))
	mux.Handle(prefix+"/{id}", methodNotAllowed("DELETE"))
}

func methodNotAllowed(allowed string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		MethodNotAllowedError(allowed).Write(w)
	})
}

func (res resource[T]) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := res.list(r.Context())
	if err != nil {
		writeError(w, r, applog.OpList, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	NewJSONResponse().Body(items).Write(w)
}

func (res resource[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	fields, err := NewRequestBodyParser(r).Parse()
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	created, err := res.create(r.Context(), fields)
	if err != nil {
		writeError(w, r, applog.OpCreate, err)
		return
	}
	Created(created).Write(w)
}

func (res resource[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		BadRequestError("invalid " + res.entity + " id").Write(w)
		return
	}

	if err := res.remove(r.Context(), id); err != nil {
		writeError(w, r, applog.OpDelete, err)
		return
	}
	Deleted().Write(w)
}

func (s *Server) registerRecordRoutes(mux *http.ServeMux) {
	resource[core.Member]{
		entity: core.EntityMember,
		list:   s.registry.ListMembers,
		create: s.registry.CreateMember,
		remove: s.registry.DeleteMember,
	}.register(mux, "/api/members")

	resource[core.Church]{
		entity: core.EntityChurch,
		list:   s.registry.ListChurches,
		create: s.registry.CreateChurch,
		remove: s.registry.DeleteChurch,
	}.register(mux, "/api/churches")

	resource[core.Pastor]{
		entity: core.EntityPastor,
		list:   s.registry.ListPastors,
		create: s.registry.CreatePastor,
		remove: s.registry.DeletePastor,
	}.register(mux, "/api/pastors")

	resource[core.FinancialEntry]{
		entity: core.EntityFinancialEntry,
		list:   s.registry.ListFinancialEntries,
		create: s.registry.CreateFinancialEntry,
		remove: s.registry.DeleteFinancialEntry,
	}.register(mux, "/api/finance")

	resource[core.Activity]{
		entity: core.EntityActivity,
		list:   s.registry.ListActivities,
		create: s.registry.CreateActivity,
		remove: s.registry.DeleteActivity,
	}.register(mux, "/api/activities")
}
