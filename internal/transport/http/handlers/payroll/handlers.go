package payrollhandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"contracheque/internal/domain/payroll"
	"contracheque/internal/transport/http/api"
	"contracheque/internal/transport/http/middleware"
	"contracheque/internal/transport/http/shared"
)

// Recorder receives domain counters. The metrics collector satisfies it.
type Recorder interface {
	Recompute(source string, capWarning bool)
	PayslipRendered()
}

type Handler struct {
	Service *payroll.Service
	Metrics Recorder
}

func NewHandler(service *payroll.Service, metrics Recorder) *Handler {
	return &Handler{Service: service, Metrics: metrics}
}

type calculateRequest struct {
	payroll.Input
	UnionTypes []string `json:"unionTypes"`
}

type unionRequest struct {
	UnionTypes []string `json:"unionTypes"`
}

type calculationResponse struct {
	Result  payroll.Result      `json:"result"`
	Payslip payroll.PayslipView `json:"payslip"`
}

type unionResponse struct {
	Session           payroll.Session `json:"session"`
	UnionContribution bool            `json:"unionContribution"`
}

type roleOptionsResponse struct {
	Roles         []payroll.RoleOption   `json:"roles"`
	TitleTiers    []payroll.TitleTier    `json:"titleTiers"`
	FunctionTiers []payroll.FunctionTier `json:"functionTiers"`
	UnionTypes    []payroll.UnionType    `json:"unionTypes"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tables", func(r chi.Router) {
		r.Get("/roles", h.handleListRoles)
		r.Get("/roles/{role}/classes", h.handleListClasses)
		r.Get("/roles/{role}/classes/{class}/steps", h.handleListSteps)
		r.Get("/tax", h.handleTaxTable)
	})
	r.Post("/calculate", h.handleCalculate)
	r.Post("/payslip.pdf", h.handleStatelessPayslip)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.handleCreateSession)
		r.Get("/{sessionID}", h.handleGetSession)
		r.Delete("/{sessionID}", h.handleDeleteSession)
		r.Post("/{sessionID}/recompute", h.handleRecompute)
		r.Put("/{sessionID}/union", h.handleConfirmUnion)
		r.Delete("/{sessionID}/union", h.handleClearUnion)
		r.Post("/{sessionID}/payslip.pdf", h.handleSessionPayslip)
	})
}

func (h *Handler) handleListRoles(w http.ResponseWriter, r *http.Request) {
	api.Success(w, roleOptionsResponse{
		Roles:         h.Service.Roles(),
		TitleTiers:    []payroll.TitleTier{payroll.TitleNone, payroll.TitleSpecialization, payroll.TitleMaster, payroll.TitleDoctorate},
		FunctionTiers: []payroll.FunctionTier{payroll.FunctionNone, payroll.FunctionManager, payroll.FunctionCoordinator},
		UnionTypes:    payroll.KnownUnionTypes,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListClasses(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Classes(chi.URLParam(r, "role")), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListSteps(w http.ResponseWriter, r *http.Request) {
	steps := h.Service.Steps(chi.URLParam(r, "role"), chi.URLParam(r, "class"))
	api.Success(w, steps, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTaxTable(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.TaxTable(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if rejectUnionTypes(w, reqID, payload.UnionTypes) {
		return
	}
	res, err := h.Service.Calculate(payload.Input, payload.UnionTypes)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.recordRecompute("stateless", res)
	api.Success(w, calculationResponse{Result: res, Payslip: res.Payslip()}, reqID)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.Service.NewSession(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, session, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.Service.Session(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, session, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.EndSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRecompute(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var in payroll.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	res, err := h.Service.Recompute(r.Context(), chi.URLParam(r, "sessionID"), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.recordRecompute("session", res)
	api.Success(w, calculationResponse{Result: res, Payslip: res.Payslip()}, reqID)
}

func (h *Handler) handleConfirmUnion(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload unionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if rejectUnionTypes(w, reqID, payload.UnionTypes) {
		return
	}
	session, selected, err := h.Service.ConfirmUnion(r.Context(), chi.URLParam(r, "sessionID"), payload.UnionTypes)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, unionResponse{Session: session, UnionContribution: selected}, reqID)
}

func (h *Handler) handleClearUnion(w http.ResponseWriter, r *http.Request) {
	session, err := h.Service.ClearUnion(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, unionResponse{Session: session}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSessionPayslip(w http.ResponseWriter, r *http.Request) {
	var in payroll.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	res, err := h.Service.Recompute(r.Context(), chi.URLParam(r, "sessionID"), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writePDF(w, r, res)
}

func (h *Handler) handleStatelessPayslip(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if rejectUnionTypes(w, reqID, payload.UnionTypes) {
		return
	}
	res, err := h.Service.Calculate(payload.Input, payload.UnionTypes)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writePDF(w, r, res)
}

func (h *Handler) writePDF(w http.ResponseWriter, r *http.Request, res payroll.Result) {
	var buf bytes.Buffer
	if err := payroll.WritePayslipPDF(&buf, res.Payslip()); err != nil {
		h.fail(w, r, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.PayslipRendered()
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="contracheque.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) recordRecompute(source string, res payroll.Result) {
	if h.Metrics != nil {
		h.Metrics.Recompute(source, res.CapWarning)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, payroll.ErrSessionNotFound):
		api.Fail(w, http.StatusNotFound, "session_not_found", "calculator session not found", reqID)
	case errors.Is(err, payroll.ErrUnknownUnionType):
		api.Fail(w, http.StatusBadRequest, "invalid_union_type", err.Error(), reqID)
	default:
		log.Error().Err(err).Str("requestId", reqID).Str("path", r.URL.Path).Msg("payroll request failed")
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
	}
}

func rejectUnionTypes(w http.ResponseWriter, reqID string, raw []string) bool {
	v := shared.NewValidator()
	for i, value := range raw {
		field := fmt.Sprintf("unionTypes[%d]", i)
		if strings.TrimSpace(value) == "" {
			v.Required(field, value, "is required")
			continue
		}
		if _, ok := payroll.ParseUnionType(value); !ok {
			v.Add(field, "unknown union contribution type")
		}
	}
	return v.Reject(w, reqID)
}
