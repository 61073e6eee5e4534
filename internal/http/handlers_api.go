package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"agency/internal/analytics"
	"agency/internal/export"
	"agency/internal/log"
)

type trendPoint struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

type categoryPoint struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type financialRow struct {
	Month      string  `json:"month"`
	Revenue    float64 `json:"revenue"`
	OrderIndex int     `json:"order_index"`
}

type dashboardResponse struct {
	Timeframe     string          `json:"timeframe"`
	Label         string          `json:"label"`
	PendingTasks  int             `json:"pending_tasks"`
	ActiveClients int             `json:"active_clients"`
	PipelineValue float64         `json:"pipeline_value"`
	ClosedRevenue float64         `json:"closed_revenue"`
	Trend         []trendPoint    `json:"trend"`
	Categories    []categoryPoint `json:"categories"`
	Financials    []financialRow  `json:"financials"`
}

func (s *Server) handleDashboardJSON(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tf := analytics.ParseTimeframe(r.URL.Query().Get("timeframe"))
	d, err := s.analytics.Dashboard(r.Context(), tf)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Dashboard aggregation failed",
			log.FieldTimeframe, string(tf), log.FieldError, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "aggregation failed"})
		return
	}
	fin, err := s.svc.Financials(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Listing financials failed", log.FieldError, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "listing financials failed"})
		return
	}

	resp := dashboardResponse{
		Timeframe:     string(d.Timeframe),
		Label:         d.Label,
		PendingTasks:  d.PendingTasks,
		ActiveClients: d.ActiveClients,
		PipelineValue: d.PipelineValue.Float64(),
		ClosedRevenue: d.ClosedRevenue.Float64(),
		Trend:         make([]trendPoint, 0, len(d.Trend)),
		Categories:    make([]categoryPoint, 0, len(d.Categories)),
		Financials:    make([]financialRow, 0, len(fin)),
	}
	for _, b := range d.Trend {
		resp.Trend = append(resp.Trend, trendPoint{Label: b.Label, Total: b.Total.Float64()})
	}
	for _, c := range d.Categories {
		resp.Categories = append(resp.Categories, categoryPoint{Category: c.Category, Count: c.Count})
	}
	for _, f := range fin {
		resp.Financials = append(resp.Financials, financialRow{Month: f.Month, Revenue: f.Revenue.Float64(), OrderIndex: f.OrderIndex})
	}
	writeJSON(w, http.StatusOK, resp)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleExportSales(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sales, err := s.svc.Sales.List(r.Context())
	if err != nil {
		s.fail(w, r, err, log.OpExport, "/sales")
		return
	}
	var buf bytes.Buffer
	if err := export.WriteSales(&buf, sales); err != nil {
		s.fail(w, r, err, log.OpExport, "/sales")
		return
	}

	filename := fmt.Sprintf("sales-%s.xlsx", s.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())

	log.FromContext(r.Context()).InfoContext(r.Context(), "Sales exported",
		log.FieldOperation, log.OpExport, "rows", len(sales))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := s.svc.Ping(r.Context()); err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	m := s.tracer.GetMetrics()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ready",
		"requests":      m.TotalRequests,
		"server_errors": m.ServerErrors,
	})
}
