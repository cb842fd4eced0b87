package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/matsen/bibstat/internal/author"
	"github.com/matsen/bibstat/internal/coauthor"
	"github.com/matsen/bibstat/internal/reference"
	"github.com/matsen/bibstat/internal/report"
	"github.com/matsen/bibstat/internal/storage"
	"github.com/matsen/bibstat/internal/viz"
)

// reportResponse is a named report with the table it produced.
type reportResponse struct {
	Name string `json:"name"`
	report.Table
}

// searchResponse is a ranked search. Stat is present when the search settled
// on a single author.
type searchResponse struct {
	author.Result
	Stat *report.Table `json:"stat,omitempty"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrAuthorNotFound), errors.Is(err, report.ErrUnknownReport):
		return http.StatusNotFound
	case errors.Is(err, report.ErrMissingParam):
		return http.StatusBadRequest
	case errors.Is(err, report.ErrYearSpan):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, report.Definitions())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	def, err := report.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}

	q := r.URL.Query()
	params, err := report.RawParams{
		Stat:   q.Get("stat"),
		Year:   q.Get("year"),
		From:   q.Get("from"),
		To:     q.Get("to"),
		Type:   q.Get("type"),
		Author: q.Get("author"),
	}.Parse()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	table, err := def.Run(s.store.Snapshot(), params)
	if err != nil {
		writeError(w, r, statusFor(err), err.Error())
		return
	}
	writeJSON(w, r, reportResponse{Name: def.Name, Table: table})
}

func (s *Server) handleAuthor(w http.ResponseWriter, r *http.Request) {
	profile, err := report.AuthorProfile(s.store.Snapshot(), chi.URLParam(r, "name"), s.staff)
	if err != nil {
		writeError(w, r, statusFor(err), err.Error())
		return
	}
	writeJSON(w, r, profile)
}

func (s *Server) handleCoauthors(w http.ResponseWriter, r *http.Request) {
	counts, err := coauthor.DetailsFold(s.store.Snapshot(), reference.Lower(chi.URLParam(r, "name")))
	if err != nil {
		writeError(w, r, statusFor(err), err.Error())
		return
	}
	writeJSON(w, r, counts)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, r, http.StatusBadRequest, "missing query parameter q")
		return
	}

	v := s.store.Snapshot()
	resp := searchResponse{Result: author.Search(v, q)}
	if name, ok := resp.Resolved(); ok {
		table, err := report.AuthorStat(v, name)
		if err != nil {
			writeError(w, r, statusFor(err), err.Error())
			return
		}
		resp.Stat = &table
	}
	writeJSON(w, r, resp)
}

// minDegree reads the optional min_degree query parameter.
func minDegree(r *http.Request) (int, error) {
	s := r.URL.Query().Get("min_degree")
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	n, err := minDegree(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid min_degree")
		return
	}
	graph := viz.FromNetwork(coauthor.Network(s.store.Snapshot()), n)
	writeJSON(w, r, graph.ToCytoscape())
}

func (s *Server) handleNetworkPage(w http.ResponseWriter, r *http.Request) {
	n, err := minDegree(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid min_degree")
		return
	}
	opts := viz.DefaultOptions()
	if layout := r.URL.Query().Get("layout"); layout != "" {
		opts.Layout = layout
	}
	if err := viz.ValidateLayout(opts.Layout); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	html, err := viz.GenerateHTML(viz.FromNetwork(coauthor.Network(s.store.Snapshot()), n), opts)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}
