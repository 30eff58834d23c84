package handler

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/macromind/backend/internal/db"
	"github.com/macromind/backend/internal/respond"
)

const healthPingTimeout = 2 * time.Second

// ServiceInfo describes a service on its root and health endpoints.
type ServiceInfo struct {
	Service  string
	Name     string
	Version  string
	Features []string
	// LLMConfigured is reported by /health when set.
	LLMConfigured *bool
}

type HealthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database"`
	LLM      string `json:"llm,omitempty"`
}

type RootResponse struct {
	Service  string   `json:"service"`
	Version  string   `json:"version"`
	Status   string   `json:"status"`
	Features []string `json:"features,omitempty"`
}

type HomeHandler struct {
	info ServiceInfo
	db   *sqlx.DB
}

func NewHomeHandler(info ServiceInfo, database *sqlx.DB) *HomeHandler {
	return &HomeHandler{info: info, db: database}
}

func (h *HomeHandler) Root(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, RootResponse{
		Service:  h.info.Name,
		Version:  h.info.Version,
		Status:   "running",
		Features: h.info.Features,
	})
}

// Health always answers 200 so a database outage does not get the process
// evicted by the load balancer.
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:   "ok",
		Service:  h.info.Service,
		Database: "disconnected",
	}
	if db.Ping(r.Context(), h.db, healthPingTimeout) {
		resp.Database = "connected"
	}
	if h.info.LLMConfigured != nil {
		resp.LLM = "not_configured"
		if *h.info.LLMConfigured {
			resp.LLM = "configured"
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "Not found", nil)
}
