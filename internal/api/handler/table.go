package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/campuskicker/kicker-server/internal/api/middleware"
	"github.com/campuskicker/kicker-server/internal/api/request"
	"github.com/campuskicker/kicker-server/internal/api/response"
	"github.com/campuskicker/kicker-server/internal/model"
	"github.com/campuskicker/kicker-server/internal/services/table"
)

// TableHandler handles table directory endpoints
type TableHandler struct {
	tableService *table.Service
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableService *table.Service) *TableHandler {
	return &TableHandler{
		tableService: tableService,
	}
}

// Add handles POST /api/v1/tables
func (h *TableHandler) Add(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.AddTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if req.Address == "" {
		WriteError(w, NewInvalidRequestError("address is required"))
		return
	}

	t, err := h.tableService.Add(r.Context(), player.ID, table.AddParams{
		Name:      req.Name,
		Address:   req.Address,
		Condition: model.TableCondition(req.Condition),
		Paid:      req.Paid,
		Fee:       req.Fee,
		HasBalls:  req.HasBalls,
		Notes:     req.Notes,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TableFromModel(t))
}

// Get handles GET /api/v1/tables/{table_id}
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.TableID(mux.Vars(r)["table_id"])

	t, err := h.tableService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TableFromModel(t))
}

// List handles GET /api/v1/tables
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	verifiedOnly := r.URL.Query().Get("verified") == "true"

	tables, err := h.tableService.List(r.Context(), verifiedOnly)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TablesFromModel(tables))
}

// Verify handles POST /api/v1/tables/{table_id}/verify
func (h *TableHandler) Verify(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.TableID(mux.Vars(r)["table_id"])

	t, err := h.tableService.Verify(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TableFromModel(t))
}

// Update handles PATCH /api/v1/tables/{table_id}
func (h *TableHandler) Update(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.TableID(mux.Vars(r)["table_id"])

	var req request.UpdateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	params := table.UpdateParams{
		Name:     req.Name,
		Address:  req.Address,
		Paid:     req.Paid,
		Fee:      req.Fee,
		HasBalls: req.HasBalls,
		Notes:    req.Notes,
	}
	if req.Condition != nil {
		cond := model.TableCondition(*req.Condition)
		params.Condition = &cond
	}

	t, err := h.tableService.Update(r.Context(), id, player.ID, params)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TableFromModel(t))
}

// Delete handles DELETE /api/v1/tables/{table_id}
func (h *TableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.TableID(mux.Vars(r)["table_id"])

	if err := h.tableService.Delete(r.Context(), id, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
