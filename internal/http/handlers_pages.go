package http

import (
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"agency/internal/analytics"
	"agency/internal/core"
	"agency/internal/log"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.render(w, r, http.StatusOK, "home", s.layout("home"))
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type dashboardView struct {
	layout
	Timeframes    []option
	Label         string
	Revenue       string
	Pipeline      string
	ActiveClients int
	PendingTasks  int
	ChartJSON     template.JS
}

type chartSeries[T any] struct {
	Labels []string `json:"labels"`
	Data   []T      `json:"data"`
}

type chartPayload struct {
	Revenue    chartSeries[float64] `json:"revenue"`
	Categories chartSeries[int]     `json:"categories"`
}

func newChartPayload(d analytics.Dashboard) chartPayload {
	p := chartPayload{
		Revenue: chartSeries[float64]{Labels: d.Trend.Labels(), Data: d.Trend.Totals()},
		Categories: chartSeries[int]{
			Labels: make([]string, 0, len(d.Categories)),
			Data:   make([]int, 0, len(d.Categories)),
		},
	}
	for _, c := range d.Categories {
		p.Categories.Labels = append(p.Categories.Labels, c.Category)
		p.Categories.Data = append(p.Categories.Data, c.Count)
	}
	return p
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tf := analytics.ParseTimeframe(r.URL.Query().Get("timeframe"))
	d, err := s.analytics.Dashboard(r.Context(), tf)
	if err != nil {
		s.fail(w, r, err, log.OpList, "/")
		return
	}

	chart, err := json.Marshal(newChartPayload(d))
	if err != nil {
		s.fail(w, r, err, log.OpRender, "/")
		return
	}

	opts := make([]option, 0, len(analytics.Timeframes()))
	for _, t := range analytics.Timeframes() {
		opts = append(opts, option{Value: string(t), Label: t.Label(), Selected: t == tf})
	}

	log.FromContext(r.Context()).DebugContext(r.Context(), "Dashboard computed",
		log.FieldTimeframe, string(tf), "buckets", len(d.Trend))

	s.render(w, r, http.StatusOK, "dashboard", dashboardView{
		layout:        s.layout("dashboard"),
		Timeframes:    opts,
		Label:         d.Label,
		Revenue:       d.ClosedRevenue.Grouped(0),
		Pipeline:      d.PipelineValue.Grouped(2),
		ActiveClients: d.ActiveClients,
		PendingTasks:  d.PendingTasks,
		ChartJSON:     template.JS(chart),
	})
}

var categoryLabels = map[string]string{
	core.CategoryMeeting:  "Meeting",
	core.CategoryDelivery: "Project Delivery",
	core.CategoryOutreach: "Sales/Outreach",
	core.CategoryAdmin:    "Admin/Finance",
	core.CategoryStrategy: "Strategy",
}

type workbenchView struct {
	layout
	Tasks      []core.Task
	Categories []option
}

func (s *Server) handleWorkbench(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tasks, err := s.svc.Tasks.List(r.Context())
	if err != nil {
		s.fail(w, r, err, log.OpList, "/")
		return
	}
	cats := make([]option, 0, len(core.Categories))
	for _, c := range core.Categories {
		cats = append(cats, option{Value: c, Label: categoryLabels[c]})
	}
	s.render(w, r, http.StatusOK, "workbench", workbenchView{
		layout:     s.layout("workbench"),
		Tasks:      tasks,
		Categories: cats,
	})
}

type clientsView struct {
	layout
	Clients  []core.Client
	Statuses []core.ClientStatus
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	clients, err := s.svc.Clients.List(r.Context())
	if err != nil {
		s.fail(w, r, err, log.OpList, "/")
		return
	}
	s.render(w, r, http.StatusOK, "clients", clientsView{
		layout:   s.layout("clients"),
		Clients:  clients,
		Statuses: core.ClientStatuses(),
	})
}

type salesView struct {
	layout
	Sales   []core.Sale
	Clients []core.Client
}

func (s *Server) handleSales(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sales, err := s.svc.Sales.List(r.Context())
	if err != nil {
		s.fail(w, r, err, log.OpList, "/")
		return
	}
	clients, err := s.svc.Clients.List(r.Context())
	if err != nil {
		s.fail(w, r, err, log.OpList, "/")
		return
	}
	s.render(w, r, http.StatusOK, "sales", salesView{
		layout:  s.layout("sales"),
		Sales:   sales,
		Clients: clients,
	})
}
