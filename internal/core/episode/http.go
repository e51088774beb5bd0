// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package episode

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/anicat/internal/platform/middleware"
	requestutil "github.com/taibuivan/anicat/internal/platform/request"
	"github.com/taibuivan/anicat/internal/platform/respond"
	"github.com/taibuivan/anicat/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for episode management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new episode [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches episode endpoints to the root API router.
// Episode endpoints span both /seasons/{seasonId}/... and /episodes/... prefixes.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/episodes", handler.listEpisodes)
	api.Get("/episodes/{id}", handler.getEpisode)

	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/seasons/{seasonId}/episodes", handler.createEpisode)
		admin.Put("/episodes/{id}", handler.updateEpisode)
		admin.Delete("/episodes/{id}", handler.deleteEpisode)
	})
}

// # Episode Retrieval

/*
GET /api/episodes.

Request:
  - seasonId: string (optional query filter)

Response:
  - 200: []Episode: oldest first
*/
func (handler *Handler) listEpisodes(writer http.ResponseWriter, request *http.Request) {
	episodes, err := handler.service.ListEpisodes(request.Context(), requestutil.Query(request, "seasonId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, episodes)
}

/*
GET /api/episodes/{id}.

Response:
  - 200: Episode
  - 404: Episode not found
*/
func (handler *Handler) getEpisode(writer http.ResponseWriter, request *http.Request) {
	episode, err := handler.service.GetEpisode(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, episode)
}

// # Mutation Endpoints

/*
POST /api/seasons/{seasonId}/episodes.

Request (Body):
  - Input: {title, link480p?, link720p?, link1080p?}

Response:
  - 201: Episode
  - 400: Validation failure or duplicate title within the season
  - 404: Season not found
*/
func (handler *Handler) createEpisode(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	episode, err := handler.service.CreateEpisode(request.Context(), requestutil.ID(request, "seasonId"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, episode)
}

/*
PUT /api/episodes/{id}.

Response:
  - 200: Episode
  - 400: Validation failure or duplicate title within the season
  - 404: Episode not found
*/
func (handler *Handler) updateEpisode(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	episode, err := handler.service.UpdateEpisode(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, episode)
}

/*
DELETE /api/episodes/{id}.

Response:
  - 200: {message: "Episode removed"}
  - 404: Episode not found
*/
func (handler *Handler) deleteEpisode(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteEpisode(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Episode removed")
}
