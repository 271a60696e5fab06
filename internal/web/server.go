// Package web serves the flight list UI: the stored list, manual
// entry, the results-page paste form, and outbound search links.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"flightlog/internal/flight"
	"flightlog/internal/importer"
	"flightlog/internal/scrape"
	"flightlog/internal/searchlink"
	"flightlog/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server holds the handlers and their collaborators.
type Server struct {
	store    store.Store
	importer *importer.Importer
	tmpl     *template.Template
}

// NewServer builds a Server and parses the embedded templates.
func NewServer(st store.Store, im *importer.Importer) (*Server, error) {
	funcs := template.FuncMap{
		"clock":  flight.FormatClock,
		"travel": flight.FormatTravelTime,
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{store: st, importer: im, tmpl: tmpl}, nil
}

// Router wires the routes. They mirror the paths the original UI used.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/flights", http.StatusFound)
	})

	r.Route("/flights", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/new", s.handleNewForm)
		r.Get("/add-southwest-flights", s.handlePasteForm)
		r.Post("/add-southwest-flights", s.handlePaste)
		r.Post("/delete_all", s.handleDeleteAll)
		r.Get("/search-links", s.handleSearchLinksForm)
		r.Post("/generate-search-links", s.handleSearchLinks)

		r.Route("/{id:[0-9]+}", func(r chi.Router) {
			r.Get("/", s.handleShow)
			r.Get("/edit", s.handleEditForm)
			r.Post("/", s.handleUpdate)
			r.Post("/delete", s.handleDelete)
		})
	})

	return r
}

// Run starts the HTTP server.
func (s *Server) Run(addr string) error {
	log.Printf("flightlog listening on %s", addr)
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

type listData struct {
	Flash   *Flash
	Flights []flight.Flight
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	flights, err := s.store.AllFlights(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w, http.StatusOK, "flights.html", listData{
		Flash:   takeFlash(w, r),
		Flights: flights,
	})
}

type formData struct {
	Flash  *Flash
	Errors []string
	Values formValues
	ID     int64
}

func (s *Server) handleNewForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "new_flight.html", formData{Flash: takeFlash(w, r)})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	values := readForm(r)
	cand := values.candidate()

	errs := cand.Validate()
	if len(errs) == 0 {
		existing, err := s.store.AllFlights(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if flight.IsDuplicate(cand, existing) {
			errs = append(errs, "That flight is already on your list.")
		}
	}
	if len(errs) > 0 {
		s.render(w, http.StatusUnprocessableEntity, "new_flight.html", formData{
			Errors: errs,
			Values: values,
		})
		return
	}

	if _, err := s.store.CreateFlight(r.Context(), cand); err != nil {
		s.render(w, http.StatusUnprocessableEntity, "new_flight.html", formData{
			Errors: []string{err.Error()},
			Values: values,
		})
		return
	}
	setFlash(w, "success", "Flight information added.")
	http.Redirect(w, r, "/flights", http.StatusSeeOther)
}

type pasteData struct {
	Flash  *Flash
	Errors []string
	Text   string
}

func (s *Server) handlePasteForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "add_southwest_flights.html", pasteData{Flash: takeFlash(w, r)})
}

func (s *Server) handlePaste(w http.ResponseWriter, r *http.Request) {
	text := r.PostFormValue("southwest_flights_information")

	report, err := s.importer.Import(r.Context(), text)
	switch {
	case errors.Is(err, scrape.ErrEmptyInput), errors.Is(err, scrape.ErrNoRoute):
		s.render(w, http.StatusUnprocessableEntity, "add_southwest_flights.html", pasteData{
			Errors: []string{"Invalid flight data."},
			Text:   text,
		})
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	msg := fmt.Sprintf("%d flights added", report.Added)
	if len(report.StoreErrors) > 0 {
		// Store rejections are the user's problem to fix (for
		// example an airline missing from the lookup table), so the
		// store's wording is passed through untouched.
		msg += ". Not saved: " + strings.Join(report.StoreErrors, "; ")
	}
	setFlash(w, "success", msg)
	http.Redirect(w, r, "/flights", http.StatusSeeOther)
}

type showData struct {
	Flash  *Flash
	Flight flight.Flight
}

func (s *Server) flightFromURL(w http.ResponseWriter, r *http.Request) (flight.Flight, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return flight.Flight{}, false
	}
	f, err := s.store.FindFlight(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return flight.Flight{}, false
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return flight.Flight{}, false
	}
	return f, true
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flightFromURL(w, r)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, "flight.html", showData{
		Flash:  takeFlash(w, r),
		Flight: f,
	})
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flightFromURL(w, r)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, "edit_flight.html", formData{
		Flash:  takeFlash(w, r),
		Values: formFromFlight(f),
		ID:     f.ID,
	})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flightFromURL(w, r)
	if !ok {
		return
	}
	values := readForm(r)
	cand := values.candidate()

	if errs := cand.Validate(); len(errs) > 0 {
		s.render(w, http.StatusUnprocessableEntity, "edit_flight.html", formData{
			Errors: errs,
			Values: values,
			ID:     f.ID,
		})
		return
	}
	if err := s.store.UpdateFlight(r.Context(), f.ID, cand); err != nil {
		s.render(w, http.StatusUnprocessableEntity, "edit_flight.html", formData{
			Errors: []string{err.Error()},
			Values: values,
			ID:     f.ID,
		})
		return
	}
	setFlash(w, "success", "Flight information updated.")
	http.Redirect(w, r, "/flights", http.StatusSeeOther)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flightFromURL(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteFlight(r.Context(), f.ID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	setFlash(w, "success", "Flight deleted.")
	http.Redirect(w, r, "/flights", http.StatusSeeOther)
}

func (s *Server) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAllFlights(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	setFlash(w, "success", "Flights have all been deleted")
	http.Redirect(w, r, "/flights", http.StatusSeeOther)
}

type linksData struct {
	Flash        *Flash
	Errors       []string
	Origins      string
	Destinations string
	Date         string
	Links        []searchlink.Link
}

func (s *Server) handleSearchLinksForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "search_links.html", linksData{Flash: takeFlash(w, r)})
}

func (s *Server) handleSearchLinks(w http.ResponseWriter, r *http.Request) {
	data := linksData{
		Origins:      strings.TrimSpace(r.PostFormValue("departure_airports")),
		Destinations: strings.TrimSpace(r.PostFormValue("arrival_airports")),
		Date:         strings.TrimSpace(r.PostFormValue("date")),
	}

	if data.Origins == "" {
		data.Errors = append(data.Errors, "You must choose at least one departure airport or city.")
	}
	if data.Destinations == "" {
		data.Errors = append(data.Errors, "You must choose at least one arrival airport or city.")
	}
	date, err := time.Parse("2006-01-02", data.Date)
	if err != nil {
		data.Errors = append(data.Errors, "Please enter the travel date.")
	}
	if len(data.Errors) > 0 {
		s.render(w, http.StatusUnprocessableEntity, "search_links.html", data)
		return
	}

	data.Links = searchlink.Links(splitCodes(data.Origins), splitCodes(data.Destinations), date)
	s.render(w, http.StatusOK, "search_links.html", data)
}

// splitCodes splits a comma-separated airport list, tolerating spaces.
func splitCodes(s string) []string {
	var codes []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			codes = append(codes, strings.ToUpper(part))
		}
	}
	return codes
}
