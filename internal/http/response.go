package http

import (
	"bytes"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"agency/internal/core"
	"agency/internal/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type layout struct {
	Page string
	Year int
}

func (s *Server) layout(page string) layout {
	return layout{Page: page, Year: s.now().Year()}
}

type errorView struct {
	layout
	Status  int
	Message string
	Back    string
}

// render executes a page into a buffer so template failures still produce
// a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	t, ok := s.pages[page]
	if !ok {
		s.logger.ErrorContext(r.Context(), "Unknown template", log.FieldTemplate, page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		log.FromContext(r.Context()).WithComponent(log.ComponentTemplate).ErrorContext(r.Context(), "Template execution failed",
			log.FieldTemplate, page,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeInternal)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// statusFor maps domain errors onto the generic error pages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, "The requested record was not found."
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusBadRequest, "Some required information is missing or invalid."
	default:
		return http.StatusInternalServerError, "Something went wrong. Please try again."
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, op, back string) {
	status, msg := statusFor(err)
	logger := log.FromContext(r.Context())
	switch {
	case status >= 500:
		logger.ErrorContext(r.Context(), "Request failed",
			log.FieldOperation, op, log.FieldError, err, log.FieldErrorType, log.ErrorTypeDatabase)
	default:
		logger.WarnContext(r.Context(), "Request rejected",
			log.FieldOperation, op, log.FieldError, err, log.FieldStatusCode, status)
	}
	s.renderError(w, r, status, msg, back)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg, back string) {
	if back == "" {
		back = "/"
	}
	s.render(w, r, status, "error", errorView{
		layout:  s.layout(""),
		Status:  status,
		Message: msg,
		Back:    back,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusNotFound, "The page you are looking for does not exist.", "/")
}

// redirect sends the browser back to a list page after a mutation.
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"encoding failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
