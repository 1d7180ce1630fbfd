// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"

	"github.com/queuesmart/queuesmart/internal/domain/types"
)

type branchesResponse struct {
	Status    string   `json:"status"`
	Branches  []string `json:"branches"`
	Count     int      `json:"count"`
	Timestamp string   `json:"timestamp"`
}

type servicesResponse struct {
	Status    string   `json:"status"`
	Services  []string `json:"services"`
	Count     int      `json:"count"`
	Timestamp string   `json:"timestamp"`
}

// ReferenceHandler serves the static branch and service catalogs.
type ReferenceHandler struct {
	deps Dependencies
}

// NewReferenceHandler creates a new reference-data handler.
func NewReferenceHandler(deps Dependencies) *ReferenceHandler {
	return &ReferenceHandler{deps: deps}
}

// HandleBranches handles GET /api/branches requests.
func (h *ReferenceHandler) HandleBranches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	branches := types.Branches()
	writeJSON(w, http.StatusOK, branchesResponse{
		Status:    "success",
		Branches:  branches,
		Count:     len(branches),
		Timestamp: h.deps.Now().Format(time.RFC3339),
	})
}

// HandleServices handles GET /api/services requests.
func (h *ReferenceHandler) HandleServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	services := types.ServiceNames()
	writeJSON(w, http.StatusOK, servicesResponse{
		Status:    "success",
		Services:  services,
		Count:     len(services),
		Timestamp: h.deps.Now().Format(time.RFC3339),
	})
}
