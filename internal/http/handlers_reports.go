package http

import (
	"net/http"

	"igreja/internal/core"
	applog "igreja/internal/log"
)

func (s *Server) registerReportRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/reports/cash-flow", s.handleCashFlow)
	mux.HandleFunc("GET /api/reports/income", s.handleCategoryReport(core.Income))
	mux.HandleFunc("GET /api/reports/expenses", s.handleCategoryReport(core.Expense))
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
}

func (s *Server) handleCashFlow(w http.ResponseWriter, r *http.Request) {
	cf, err := s.reports.CashFlow(r.Context())
	if err != nil {
		writeError(w, r, applog.OpReport, err)
		return
	}
	NewJSONResponse().Body(cf).Write(w)
}

func (s *Server) handleCategoryReport(kind core.EntryKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totals, err := s.reports.CategoryReport(r.Context(), string(kind))
		if err != nil {
			writeError(w, r, applog.OpReport, err)
			return
		}
		if totals == nil {
			totals = []core.CategoryTotal{}
		}
		NewJSONResponse().Body(totals).Write(w)
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := s.reports.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, applog.OpReport, err)
		return
	}
	NewJSONResponse().Body(summary).Write(w)
}
