package http

import (
	"encoding/json"
	"net/http"

	"asset-custody/internal/domain/audit"
	"asset-custody/internal/domain/request"
	requestuc "asset-custody/internal/usecase/request"

	"github.com/labstack/echo/v4"
)

type RequestHandler struct{ uc *requestuc.Usecase }

func NewRequestHandler(uc *requestuc.Usecase) *RequestHandler { return &RequestHandler{uc: uc} }

type createRequestReq struct {
	Kind    string          `json:"kind"    validate:"required,request_kind"`
	Title   string          `json:"title"   validate:"required,max=255"`
	Details string          `json:"details" validate:"max=5000"`
	Payload json.RawMessage `json:"payload"`
	// RequesterID defaults to the caller
	RequesterID uint64 `json:"requester_id" validate:"omitempty,gt=0"`
}

type decisionReq struct {
	Reason string `json:"reason" validate:"max=1000"`
}

func (h *RequestHandler) Create(c echo.Context) error {
	var req createRequestReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	ctx := c.Request().Context()
	requester := req.RequesterID
	if requester == 0 {
		requester = audit.ActorFrom(ctx).UserID
	}
	payload := ""
	if len(req.Payload) > 0 && string(req.Payload) != "null" {
		payload = string(req.Payload)
	}
	dto, err := h.uc.Create(ctx, requestuc.CreateInput{
		Kind:        request.Kind(req.Kind),
		RequesterID: requester,
		Title:       req.Title,
		Details:     req.Details,
		Payload:     payload,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *RequestHandler) List(c echo.Context) error {
	f := request.Filter{
		Status: request.Status(c.QueryParam("status")),
		Kind:   request.Kind(c.QueryParam("kind")),
	}
	var err error
	if f.RequesterID, err = queryUint(c, "requester_id"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "requester_id " + err.Error()})
	}
	items, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *RequestHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id " + err.Error()})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RequestHandler) Approve(c echo.Context) error { return h.decide(c, true) }

func (h *RequestHandler) Reject(c echo.Context) error { return h.decide(c, false) }

// the approver is always the authenticated caller
func (h *RequestHandler) decide(c echo.Context, approve bool) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id " + err.Error()})
	}
	var req decisionReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	ctx := c.Request().Context()
	in := requestuc.DecisionInput{ApproverID: audit.ActorFrom(ctx).UserID, Reason: req.Reason}

	var dto *requestuc.RequestDTO
	if approve {
		dto, err = h.uc.Approve(ctx, id, in)
	} else {
		dto, err = h.uc.Reject(ctx, id, in)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RequestHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id " + err.Error()})
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RequestHandler) PendingCount(c echo.Context) error {
	n, err := h.uc.PendingCount(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": n})
}
