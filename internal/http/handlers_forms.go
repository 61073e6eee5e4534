package http

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"agency/internal/core"
	"agency/internal/log"
)

func (s *Server) parseForm(w http.ResponseWriter, r *http.Request, back string) bool {
	if err := r.ParseForm(); err != nil {
		s.fail(w, r, core.ErrInvalidInput, log.OpCreate, back)
		return false
	}
	return true
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !s.parseForm(w, r, "/workbench") {
		return
	}
	_, err := s.svc.Tasks.Create(r.Context(),
		formValue(r, "title"),
		formValue(r, "category"),
		formValue(r, "due_date"))
	if err != nil {
		s.fail(w, r, err, log.OpCreate, "/workbench")
		return
	}
	redirect(w, r, "/workbench")
}

func (s *Server) handleAddClient(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !s.parseForm(w, r, "/clients") {
		return
	}
	_, err := s.svc.Clients.Create(r.Context(),
		formValue(r, "name"),
		formValue(r, "company"),
		formValue(r, "email"),
		formValue(r, "status"))
	if err != nil {
		s.fail(w, r, err, log.OpCreate, "/clients")
		return
	}
	redirect(w, r, "/clients")
}

func (s *Server) handleAddSale(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !s.parseForm(w, r, "/sales") {
		return
	}
	_, err := s.svc.Sales.Create(r.Context(),
		formValue(r, "client_name"),
		formValue(r, "service"),
		formValue(r, "amount"),
		formValue(r, "date"),
		formValue(r, "status"))
	if err != nil {
		s.fail(w, r, err, log.OpCreate, "/sales")
		return
	}
	redirect(w, r, "/sales")
}

// byID adapts an id-taking mutation into a route handler that redirects
// to back on success.
func (s *Server) byID(op, back string, fn func(ctx context.Context, id int64) error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, ok := parseID(ps)
		if !ok {
			s.fail(w, r, core.ErrNotFound, op, back)
			return
		}
		if err := fn(r.Context(), id); err != nil {
			s.fail(w, r, err, op, back)
			return
		}
		redirect(w, r, back)
	}
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s.byID(log.OpComplete, "/workbench", s.svc.Tasks.Complete)(w, r, ps)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s.byID(log.OpDelete, "/workbench", s.svc.Tasks.Delete)(w, r, ps)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s.byID(log.OpDelete, "/clients", s.svc.Clients.Delete)(w, r, ps)
}

func (s *Server) handleDeleteSale(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s.byID(log.OpDelete, "/sales", s.svc.Sales.Delete)(w, r, ps)
}
