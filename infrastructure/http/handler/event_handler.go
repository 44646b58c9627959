package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/clubly/clubly/application/port/inbound"
	"github.com/clubly/clubly/infrastructure/http/middleware"
	"github.com/clubly/clubly/infrastructure/http/response"
)

type EventHandler struct {
	eventUseCase inbound.EventUseCase
}

func NewEventHandler(eventUseCase inbound.EventUseCase) *EventHandler {
	return &EventHandler{
		eventUseCase: eventUseCase,
	}
}

type publishEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	StartsAt    time.Time `json:"starts_at"`
}

func (h *EventHandler) PublishEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	var req publishEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	event, err := h.eventUseCase.PublishEvent(r.Context(), actor.ActorID, inbound.PublishEventRequest{
		Title:       req.Title,
		Description: req.Description,
		Capacity:    req.Capacity,
		StartsAt:    req.StartsAt,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Event published", event)
}

func (h *EventHandler) CanUpgradeCapacity(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	capacity, err := strconv.Atoi(r.URL.Query().Get("capacity"))
	if err != nil || capacity < 1 {
		response.UnprocessableEntity(w, "capacity must be a positive integer")
		return
	}

	ok, err = h.eventUseCase.CanUpgradeCapacity(r.Context(), actor.ActorID, capacity)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Capacity check", map[string]bool{"available": ok})
}
