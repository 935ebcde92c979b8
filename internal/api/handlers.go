package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/nscp"
	"github.com/alexiusacademia/gorcc/internal/store"
	"github.com/alexiusacademia/gorcc/internal/version"
)

// ColumnRequest is the body of the curve and check endpoints.
type ColumnRequest struct {
	Column   column.Column   `json:"column"`
	Axis     column.Axis     `json:"axis"`
	Samples  int             `json:"samples,omitempty"`
	Negative bool            `json:"negative,omitempty"` // also sweep the opposite face
	Demands  []column.Demand `json:"demands,omitempty"` // overrides the column's own demands
	Save     bool            `json:"save,omitempty"`
}

// CurveResponse is returned by the curve endpoint.
type CurveResponse struct {
	Curve     *column.Curve     `json:"curve"`
	Detailing *column.Detailing `json:"detailing"`
	RunID     string            `json:"run_id,omitempty"`
}

// CheckResponse is returned by the check endpoint.
type CheckResponse struct {
	column.CheckSummary
	AxialCap float64 `json:"axial_cap"`
	RunID    string  `json:"run_id,omitempty"`
}

// LoadsRequest is the body of the loads endpoint: unfactored axial loads
// and moments per load type.
type LoadsRequest struct {
	Axial      nscp.LoadEffects `json:"axial"`
	Moment     nscp.LoadEffects `json:"moment"`
	Simplified bool             `json:"simplified,omitempty"`
}

// LoadsResponse lists the factored demands and the governing one.
type LoadsResponse struct {
	Demands   []nscp.FactoredDemand `json:"demands"`
	Governing *nscp.FactoredDemand  `json:"governing,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": version.Version,
		"history": s.store != nil,
	})
}

func (s *Server) buildCurve(w http.ResponseWriter, r *http.Request) (*ColumnRequest, *column.Curve, bool) {
	var req ColumnRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return nil, nil, false
	}
	curve, err := req.Column.Interaction(req.Axis, column.Options{Samples: req.Samples, Negative: req.Negative})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return nil, nil, false
	}
	if curve.Skipped > 0 {
		s.log.Debug("degenerate samples skipped", "column", req.Column.Name, "skipped", curve.Skipped)
	}
	return &req, curve, true
}

// save stores a run when requested; failures are logged and reported as an
// empty id.
func (s *Server) save(r *http.Request, req *ColumnRequest, kind string, curve *column.Curve, sum *column.CheckSummary) string {
	if !req.Save || s.store == nil {
		return ""
	}
	run, err := store.NewRun(kind, &req.Column, curve, sum)
	if err == nil {
		err = s.store.Save(r.Context(), run)
	}
	if err != nil {
		s.log.Warn("run not saved", "column", req.Column.Name, "err", err)
		return ""
	}
	return run.ID
}

func (s *Server) curve(w http.ResponseWriter, r *http.Request) {
	req, curve, ok := s.buildCurve(w, r)
	if !ok {
		return
	}
	det, err := req.Column.Detailing()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, CurveResponse{
		Curve:     curve,
		Detailing: det,
		RunID:     s.save(r, req, store.KindCurve, curve, nil),
	})
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	req, curve, ok := s.buildCurve(w, r)
	if !ok {
		return
	}
	demands := req.Demands
	if len(demands) == 0 {
		demands = req.Column.Demands
	}
	if len(demands) == 0 {
		writeError(w, http.StatusBadRequest, "no demands to check")
		return
	}

	sum := curve.CheckAll(demands)
	writeJSON(w, http.StatusOK, CheckResponse{
		CheckSummary: sum,
		AxialCap:     curve.AxialCap,
		RunID:        s.save(r, req, store.KindCheck, curve, &sum),
	})
}

func (s *Server) axial(w http.ResponseWriter, r *http.Request) {
	var in column.AxialInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	res, err := column.AxialCapacity(in)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) loads(w http.ResponseWriter, r *http.Request) {
	var req LoadsRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if req.Axial.IsZero() && req.Moment.IsZero() {
		writeError(w, http.StatusBadRequest, "at least one load effect is required")
		return
	}

	combos := nscp.LoadCombinations
	if req.Simplified {
		combos = nscp.SimplifiedCombinations
	}
	res := LoadsResponse{Demands: nscp.FactorDemands(req.Axial, req.Moment, combos)}
	if g, ok := nscp.GoverningAxial(res.Demands); ok {
		res.Governing = &g
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.log.Error("list runs", "err", err)
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) run(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}
	run, err := s.store.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.log.Error("get run", "err", err)
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	writeJSON(w, http.StatusOK, run)
}
