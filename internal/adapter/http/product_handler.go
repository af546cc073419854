package http

import (
	"net/http"

	"asset-custody/internal/domain/product"
	productuc "asset-custody/internal/usecase/product"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct{ uc *productuc.Usecase }

func NewProductHandler(uc *productuc.Usecase) *ProductHandler { return &ProductHandler{uc: uc} }

type createProductReq struct {
	Name   string `json:"name"   validate:"required,max=255"`
	Status string `json:"status" validate:"omitempty,product_status"`
}

type setStatusReq struct {
	Status string `json:"status" validate:"required,product_status"`
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), productuc.CreateInput{
		Name:   req.Name,
		Status: product.Status(req.Status),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ProductHandler) List(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context(), product.Status(c.QueryParam("status")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) Get(c echo.Context) error {
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

func (h *ProductHandler) SetStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id " + err.Error()})
	}
	var req setStatusReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.SetStatus(c.Request().Context(), id, product.Status(req.Status))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "id " + err.Error()})
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
