package handlers

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/antigravity/bumps/internal/bumps"
	"github.com/antigravity/bumps/internal/matrix"
	"github.com/antigravity/bumps/internal/models"
	"github.com/antigravity/bumps/internal/state"
	"github.com/antigravity/bumps/web"
)

type Handlers struct {
	board  *state.Board
	logger zerolog.Logger
	tmpl   *template.Template
}

func New(board *state.Board, logger zerolog.Logger) (*Handlers, error) {
	tmpl, err := template.New("").
		Funcs(template.FuncMap{"cell": matrix.Cell}).
		ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handlers{board: board, logger: logger, tmpl: tmpl}, nil
}

type formValues struct {
	Name      string
	Allowance string
}

type page struct {
	View    models.ViewMode
	Golfers []models.Golfer
	Holes   []models.Hole
	Matrix  matrix.Matrix
	Error   string
	Form    formValues
}

// Index renders whichever view the board is on.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "", formValues{})
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, msg string, form formValues) {
	snap, err := h.board.Snapshot(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}

	p := page{
		View:    snap.View,
		Golfers: snap.Golfers,
		Holes:   snap.Holes,
		Error:   msg,
		Form:    form,
	}
	if snap.View == models.ViewMatrix {
		p.Matrix = matrix.Build(snap.Golfers, snap.Holes, snap.Assignment)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, "layout", p); err != nil {
		h.logger.Error().Err(err).Msg("render page")
	}
}

func (h *Handlers) AddGolfer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	form := formValues{Name: r.PostFormValue("name"), Allowance: r.PostFormValue("allowance")}

	if err := h.board.AddGolfer(r.Context(), form.Name, form.Allowance); err != nil {
		if bumps.IsValidation(err) {
			h.render(w, r, http.StatusUnprocessableEntity, err.Error(), form)
			return
		}
		h.serverError(w, err)
		return
	}
	redirectHome(w, r)
}

func (h *Handlers) UpdateDifficulties(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.board.UpdateDifficulties(r.Context(), r.PostFormValue("difficulties")); err != nil {
		h.serverError(w, err)
		return
	}
	redirectHome(w, r)
}

func (h *Handlers) Calculate(w http.ResponseWriter, r *http.Request) {
	if err := h.board.ShowMatrix(r.Context()); err != nil {
		h.serverError(w, err)
		return
	}
	redirectHome(w, r)
}

func (h *Handlers) Back(w http.ResponseWriter, r *http.Request) {
	if err := h.board.Back(r.Context()); err != nil {
		h.serverError(w, err)
		return
	}
	redirectHome(w, r)
}

func (h *Handlers) serverError(w http.ResponseWriter, err error) {
	h.logger.Error().Err(err).Msg("request failed")
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
