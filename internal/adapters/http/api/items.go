// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/httpkit/pkg/apierror"
	"github.com/okian/httpkit/pkg/logger"
	"github.com/okian/httpkit/pkg/pagination"
)

// maxCreateBodyBytes bounds POST /items bodies.
const maxCreateBodyBytes = 64 << 10

// ItemsDependencies defines the interface for catalog operations.
type ItemsDependencies interface {
	ListItems(ctx context.Context, q pagination.Query) (pagination.Response[Item], error)
	GetItem(ctx context.Context, id string) (Item, error)
	CreateItem(ctx context.Context, name string) (Item, error)
}

// ItemsHandler handles item requests.
type ItemsHandler struct {
	deps ItemsDependencies
	errs *errorWriter
}

// NewItemsHandler creates a new items handler. mapErr may be nil.
func NewItemsHandler(deps ItemsDependencies, log logger.Logger, mapErr apierror.MapFunc) *ItemsHandler {
	return &ItemsHandler{deps: deps, errs: &errorWriter{log: log, mapErr: mapErr}}
}

// createItemRequest mirrors the OpenAPI schema for POST /items.
type createItemRequest struct {
	Name string `json:"name"`
}

// HandleList handles GET /items?limit=N&offset=M requests.
func (h *ItemsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q, perr := pagination.ParseQuery(r.URL.Query())
	if perr != nil {
		h.errs.write(w, r, perr)
		return
	}
	page, err := h.deps.ListItems(r.Context(), q)
	if err != nil {
		h.errs.write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandleGet handles GET /items/{id} requests.
func (h *ItemsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.errs.write(w, r, apierror.BadRequest("missing item id"))
		return
	}
	it, err := h.deps.GetItem(r.Context(), id)
	if err != nil {
		h.errs.write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// HandleCreate handles POST /items requests.
func (h *ItemsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errs.write(w, r, err)
		return
	}
	it, err := h.deps.CreateItem(r.Context(), req.Name)
	if err != nil {
		h.errs.write(w, r, err)
		return
	}
	w.Header().Set("Location", "/items/"+it.ID)
	writeJSON(w, http.StatusCreated, it)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCreateBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apierror.Newf(apierror.BadRequestKind, "request body exceeds %d bytes", tooLarge.Limit).
				WithCause(fmt.Errorf("%w: %w", ErrBadRequest, err))
		}
		return apierror.BadRequest("invalid JSON body").WithCause(fmt.Errorf("%w: %w", ErrBadRequest, err))
	}
	return nil
}
