package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/plus3/tenten/puzzle"
	"github.com/plus3/tenten/puzzle/analysis"
	"github.com/plus3/tenten/session"
)

var (
	errGameNotFound = errors.New("game not found")
	errBadRequest   = errors.New("bad request")
)

type createRequest struct {
	Seed *uint64 `json:"seed,omitempty"`
}

type moveRequest struct {
	Slot int `json:"slot"`
	Row  int `json:"row"`
	Col  int `json:"col"`
}

func (m moveRequest) origin() puzzle.Cell {
	return puzzle.Cell{Row: m.Row, Col: m.Col}
}

type placeResponse struct {
	Result session.PlaceResult `json:"result"`
	State  session.State       `json:"state"`
}

type previewResponse struct {
	Preview analysis.Preview `json:"preview"`
	Cells   []puzzle.Cell    `json:"cells"`
}

func (s *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	room := s.store.Create(req.Seed)
	var st session.State
	room.View(func(g *session.Game) { st = g.State() })
	w.Header().Set("Location", "/games/"+room.ID().String())
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request) {
	var st session.State
	roomFrom(r).View(func(g *session.Game) { st = g.State() })
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) deleteGame(w http.ResponseWriter, r *http.Request) {
	s.store.Delete(roomFrom(r).ID())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var rep analysis.Report
	roomFrom(r).View(func(g *session.Game) { rep = g.Analyze() })
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var (
		resp previewResponse
		err  error
	)
	roomFrom(r).View(func(g *session.Game) {
		resp.Preview, err = g.Preview(req.Slot, req.origin())
		if err == nil {
			resp.Cells = g.Offer()[req.Slot].At(req.origin())
		}
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) place(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var res session.PlaceResult
	st, err := roomFrom(r).Update(func(g *session.Game) error {
		var err error
		res, err = g.Place(req.Slot, req.origin())
		return err
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, placeResponse{Result: res, State: st})
}

func (s *Server) restart(w http.ResponseWriter, r *http.Request) {
	st, _ := roomFrom(r).Update(func(g *session.Game) error {
		g.Restart()
		return nil
	})
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) revive(w http.ResponseWriter, r *http.Request) {
	st, err := roomFrom(r).Update(func(g *session.Game) error {
		return g.Revive()
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// statusFor maps session errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrGameOver),
		errors.Is(err, session.ErrNoSnapshot),
		errors.Is(err, session.ErrReviveLimit):
		return http.StatusConflict
	case errors.Is(err, session.ErrInvalidSlot),
		errors.Is(err, session.ErrSlotEmpty),
		errors.Is(err, session.ErrCannotPlace):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return err
		}
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
