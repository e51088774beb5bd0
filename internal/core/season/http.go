// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package season

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/anicat/internal/platform/middleware"
	requestutil "github.com/taibuivan/anicat/internal/platform/request"
	"github.com/taibuivan/anicat/internal/platform/respond"
	"github.com/taibuivan/anicat/internal/platform/sec"
)

// Handler implements the HTTP layer for seasons.
type Handler struct {
	service *Service
}

// NewHandler constructs a season [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches season endpoints to the root API router. They span
// the /anime/{animeId}/seasons and /seasons prefixes.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/seasons", handler.listSeasons)
	api.Get("/seasons/{seasonId}", handler.getSeason)
	api.Get("/anime/{animeId}/seasons", handler.listAnimeSeasons)

	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/anime/{animeId}/seasons", handler.createSeason)
		admin.Put("/seasons/{seasonId}", handler.updateSeason)
		admin.Delete("/seasons/{seasonId}", handler.deleteSeason)
	})
}

// GET /api/seasons?animeId=
func (handler *Handler) listSeasons(writer http.ResponseWriter, request *http.Request) {
	handler.writeList(writer, request, requestutil.Query(request, "animeId"))
}

// GET /api/anime/{animeId}/seasons
func (handler *Handler) listAnimeSeasons(writer http.ResponseWriter, request *http.Request) {
	handler.writeList(writer, request, requestutil.ID(request, "animeId"))
}

func (handler *Handler) writeList(writer http.ResponseWriter, request *http.Request, animeID string) {
	seasons, err := handler.service.ListSeasons(request.Context(), animeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, seasons)
}

// GET /api/seasons/{seasonId}
func (handler *Handler) getSeason(writer http.ResponseWriter, request *http.Request) {
	season, err := handler.service.GetSeason(request.Context(), requestutil.ID(request, "seasonId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, season)
}

// POST /api/anime/{animeId}/seasons
func (handler *Handler) createSeason(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	season, err := handler.service.CreateSeason(request.Context(), requestutil.ID(request, "animeId"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, season)
}

// PUT /api/seasons/{seasonId}
func (handler *Handler) updateSeason(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	season, err := handler.service.UpdateSeason(request.Context(), requestutil.ID(request, "seasonId"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, season)
}

// DELETE /api/seasons/{seasonId}
func (handler *Handler) deleteSeason(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteSeason(request.Context(), requestutil.ID(request, "seasonId")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Season and all associated data removed")
}
