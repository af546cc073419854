package http

import (
	"net/http"
	"time"

	"asset-custody/internal/domain/assignment"
	assignmentuc "asset-custody/internal/usecase/assignment"

	"github.com/labstack/echo/v4"
)

type AssignmentHandler struct{ uc *assignmentuc.Usecase }

func NewAssignmentHandler(uc *assignmentuc.Usecase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

type assignReq struct {
	ProductID  uint64     `json:"product_id"  validate:"required,gt=0"`
	PersonID   *uint64    `json:"person_id"   validate:"omitempty,gt=0"`
	LocationID *uint64    `json:"location_id" validate:"omitempty,gt=0"`
	AssignedAt *time.Time `json:"assigned_at"`
	Note       string     `json:"note"        validate:"max=2000"`
}

type updateAssignmentReq struct {
	ProductID  uint64     `json:"product_id"  validate:"omitempty,gt=0"`
	PersonID   *uint64    `json:"person_id"   validate:"omitempty,gt=0"`
	LocationID *uint64    `json:"location_id" validate:"omitempty,gt=0"`
	AssignedAt *time.Time `json:"assigned_at"`
	Status     string     `json:"status"      validate:"required,assignment_status"`
	Note       string     `json:"note"        validate:"max=2000"`
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func (h *AssignmentHandler) Assign(c echo.Context) error {
	var req assignReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Assign(c.Request().Context(), assignmentuc.AssignInput{
		ProductID:  req.ProductID,
		PersonID:   req.PersonID,
		LocationID: req.LocationID,
		AssignedAt: derefTime(req.AssignedAt),
		Note:       req.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AssignmentHandler) List(c echo.Context) error {
	var f assignment.Filter
	var err error
	if f.ProductID, err = queryUint(c, "product_id"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "product_id " + err.Error()})
	}
	if f.PersonID, err = queryUint(c, "person_id"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "person_id " + err.Error()})
	}
	if f.LocationID, err = queryUint(c, "location_id"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "location_id " + err.Error()})
	}
	f.Status = assignment.Status(c.QueryParam("status"))

	items, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AssignmentHandler) Get(c echo.Context) error {
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

// ActiveForProduct serves GET /urunler/:id/zimmet.
func (h *AssignmentHandler) ActiveForProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id " + err.Error()})
	}
	dto, err := h.uc.ActiveForProduct(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AssignmentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id " + err.Error()})
	}
	var req updateAssignmentReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), id, assignmentuc.UpdateInput{
		ProductID:  req.ProductID,
		PersonID:   req.PersonID,
		LocationID: req.LocationID,
		AssignedAt: derefTime(req.AssignedAt),
		Status:     assignment.Status(req.Status),
		Note:       req.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AssignmentHandler) Return(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id " + err.Error()})
	}
	dto, err := h.uc.Return(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AssignmentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id " + err.Error()})
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
