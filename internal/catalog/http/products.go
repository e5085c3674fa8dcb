package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openshelf/catalog/internal/catalog/domain"
	"github.com/openshelf/catalog/internal/catalog/service"
	"github.com/openshelf/catalog/internal/catalog/store"
	"github.com/openshelf/catalog/pkg/httpx"
	"github.com/openshelf/catalog/pkg/slogx"
)

// ProductHandler serves the /products endpoints.
type ProductHandler struct {
	ProductService *service.ProductService
}

// productRequest is the create/update payload. Price accepts a JSON number
// or a numeric string.
type productRequest struct {
	Name  string       `json:"name"`
	Price domain.Price `json:"price"`
	Image string       `json:"image"`
	Type  string       `json:"type"`
}

func (req productRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:  req.Name,
		Price: req.Price,
		Image: req.Image,
		Type:  req.Type,
	}
}

// writeProductError maps service and store errors onto the response envelope.
func writeProductError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, "Name and price are required")
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Product not found")
	default:
		slogx.FromContext(r.Context()).Error("product request failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// HandleList godoc
//
//	@Summary		List Products
//	@Description	Returns all products, newest first.
//	@Tags			Products
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope	"success, data"
//	@Failure		500	{object}	httpx.Envelope	"success, message"
//	@Router			/products [get].
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.ProductService.List(r.Context())
	if err != nil {
		writeProductError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, products)
}

// HandleGet godoc
//
//	@Summary		Get Product
//	@Description	Returns a single product by id.
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		string			true	"Product id"
//	@Success		200	{object}	httpx.Envelope	"success, data"
//	@Failure		404	{object}	httpx.Envelope	"success, message"
//	@Failure		500	{object}	httpx.Envelope	"success, message"
//	@Router			/products/{id} [get].
func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.ProductService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeProductError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, p)
}

// HandleCreate godoc
//
//	@Summary		Create Product
//	@Description	Creates a product. Name and a positive price are required;
//	@Description	image and type fall back to defaults when omitted.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			product	body		productRequest	true	"Product fields"
//	@Success		201		{object}	httpx.Envelope	"success, data"
//	@Failure		400		{object}	httpx.Envelope	"success, message"
//	@Failure		401		{object}	httpx.Envelope	"success, message"
//	@Failure		403		{object}	httpx.Envelope	"success, message"
//	@Failure		500		{object}	httpx.Envelope	"success, message"
//	@Router			/products [post].
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Name and price are required")
		return
	}

	p, err := h.ProductService.Create(r.Context(), req.toInput())
	if err != nil {
		writeProductError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, p)
}

// HandleUpdate godoc
//
//	@Summary		Update Product
//	@Description	Replaces a product's fields. The payload is validated and
//	@Description	defaulted exactly like create.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string			true	"Product id"
//	@Param			product	body		productRequest	true	"Product fields"
//	@Success		200		{object}	httpx.Envelope	"success, data"
//	@Failure		400		{object}	httpx.Envelope	"success, message"
//	@Failure		401		{object}	httpx.Envelope	"success, message"
//	@Failure		403		{object}	httpx.Envelope	"success, message"
//	@Failure		404		{object}	httpx.Envelope	"success, message"
//	@Failure		500		{object}	httpx.Envelope	"success, message"
//	@Router			/products/{id} [put].
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Name and price are required")
		return
	}

	p, err := h.ProductService.Update(r.Context(), r.PathValue("id"), req.toInput())
	if err != nil {
		writeProductError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, p)
}

// HandleDelete godoc
//
//	@Summary		Delete Product
//	@Description	Deletes a product by id.
//	@Tags			Products
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string			true	"Product id"
//	@Success		200	{object}	httpx.Envelope	"success, message"
//	@Failure		401	{object}	httpx.Envelope	"success, message"
//	@Failure		403	{object}	httpx.Envelope	"success, message"
//	@Failure		404	{object}	httpx.Envelope	"success, message"
//	@Failure		500	{object}	httpx.Envelope	"success, message"
//	@Router			/products/{id} [delete].
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ProductService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeProductError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Product deleted successfully")
}
