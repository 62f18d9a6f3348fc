package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"lista/internal/domain/item"
)

type ItemHandler struct {
	itemRepo item.Repository
}

func NewItemHandler(itemRepo item.Repository) *ItemHandler {
	return &ItemHandler{itemRepo: itemRepo}
}

// Request/Response DTOs

type AddItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type UpdateItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type SetCheckedRequest struct {
	Checked bool `json:"checked"`
}

type ItemResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Checked  bool   `json:"checked"`
}

type ClearCheckedResponse struct {
	Removed int64 `json:"removed"`
}

func toItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:       it.ID,
		Name:     it.Name,
		Quantity: it.Quantity,
		Checked:  it.Checked,
	}
}

func toItemResponses(items []*item.Item) []ItemResponse {
	response := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		response = append(response, toItemResponse(it))
	}
	return response
}

// HandleListItems routes collection requests for one list token.
func (h *ItemHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleAdd(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleItemByID routes requests for a single item.
func (h *ItemHandler) HandleItemByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		h.handleUpdate(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleList returns every item under the token. An unknown token is a
// valid, empty list; possession of the token is the whole access model.
func (h *ItemHandler) handleList(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		http.Error(w, "List token is required", http.StatusBadRequest)
		return
	}

	items, err := h.itemRepo.ListByToken(r.Context(), token)
	if err != nil {
		log.Printf("Error listing items for token %s: %v", token, err)
		http.Error(w, "Failed to list items", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toItemResponses(items))
}

// handleAdd inserts a new unchecked item under the token.
func (h *ItemHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		http.Error(w, "List token is required", http.StatusBadRequest)
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding add item request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// A missing or non-positive quantity becomes 1, never an error.
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	params := item.AddItemParams{
		Name:     req.Name,
		Quantity: req.Quantity,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	it, err := h.itemRepo.Add(r.Context(), token, params)
	if err != nil {
		log.Printf("Error adding item for token %s: %v", token, err)
		http.Error(w, "Failed to add item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toItemResponse(it))
}

// handleUpdate patches name and quantity, leaving checked alone.
func (h *ItemHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")
	if itemID == "" {
		http.Error(w, "Item ID is required", http.StatusBadRequest)
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update item request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Quantity < 1 {
		req.Quantity = 1
	}

	params := item.UpdateItemParams{
		Name:     req.Name,
		Quantity: req.Quantity,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	it, err := h.itemRepo.Update(r.Context(), itemID, params)
	if err != nil {
		if errors.Is(err, item.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating item %s: %v", itemID, err)
		http.Error(w, "Failed to update item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toItemResponse(it))
}

// HandleSetChecked patches only the checked flag.
func (h *ItemHandler) HandleSetChecked(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	itemID := r.PathValue("id")
	if itemID == "" {
		http.Error(w, "Item ID is required", http.StatusBadRequest)
		return
	}

	var req SetCheckedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding set checked request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	it, err := h.itemRepo.SetChecked(r.Context(), itemID, req.Checked)
	if err != nil {
		if errors.Is(err, item.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		log.Printf("Error setting checked on item %s: %v", itemID, err)
		http.Error(w, "Failed to set checked", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toItemResponse(it))
}

// handleDelete removes one item permanently.
func (h *ItemHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")
	if itemID == "" {
		http.Error(w, "Item ID is required", http.StatusBadRequest)
		return
	}

	if err := h.itemRepo.Delete(r.Context(), itemID); err != nil {
		if errors.Is(err, item.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting item %s: %v", itemID, err)
		http.Error(w, "Failed to delete item", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleClearChecked sweeps every checked item under the token in one
// atomic delete.
func (h *ItemHandler) HandleClearChecked(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := r.PathValue("token")
	if token == "" {
		http.Error(w, "List token is required", http.StatusBadRequest)
		return
	}

	removed, err := h.itemRepo.ClearChecked(r.Context(), token)
	if err != nil {
		log.Printf("Error clearing checked items for token %s: %v", token, err)
		http.Error(w, "Failed to clear checked items", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ClearCheckedResponse{Removed: removed})
}
