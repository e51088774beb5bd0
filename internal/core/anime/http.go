// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anime

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/anicat/internal/platform/middleware"
	requestutil "github.com/taibuivan/anicat/internal/platform/request"
	"github.com/taibuivan/anicat/internal/platform/respond"
	"github.com/taibuivan/anicat/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for anime discovery and management.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new anime [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the anime endpoints to the root API router.
//
// # Routing Strategy
//
//   - Discovery (Public): list with optional search, and get by id.
//   - Management (Restricted): requires [sec.RoleAdmin] for every mutation.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/anime", handler.listAnime)
	api.Get("/anime/{animeId}", handler.getAnime)

	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/anime", handler.createAnime)
		admin.Put("/anime/{animeId}", handler.updateAnime)
		admin.Delete("/anime/{animeId}", handler.deleteAnime)
	})
}

// # Discovery Endpoints

/*
GET /api/anime.

Request:
  - search: string (case-insensitive title substring)

Response:
  - 200: []Anime: hydrated, newest first
*/
func (handler *Handler) listAnime(writer http.ResponseWriter, request *http.Request) {
	list, err := handler.service.ListAnime(request.Context(), requestutil.Query(request, "search"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, list)
}

/*
GET /api/anime/{animeId}.

Response:
  - 200: Anime: hydrated
  - 404: Anime not found
*/
func (handler *Handler) getAnime(writer http.ResponseWriter, request *http.Request) {
	anime, err := handler.service.GetAnime(request.Context(), requestutil.ID(request, "animeId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, anime)
}

// # Mutation Endpoints

/*
POST /api/anime.

Request (Body):
  - Input: {title, description?, poster?, allDetails?, genreNames?}

Response:
  - 201: Anime: hydrated
  - 400: Validation failure or duplicate title
  - 401: Missing or invalid token
  - 403: Not an admin
*/
func (handler *Handler) createAnime(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	anime, err := handler.service.CreateAnime(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, anime)
}

/*
PUT /api/anime/{animeId}.

Description: Replaces the scalar fields. genreNames, when present, replaces
the genre set; omit it to keep the current genres.

Response:
  - 200: Anime: hydrated
  - 400: Validation failure or duplicate title
  - 404: Anime not found
*/
func (handler *Handler) updateAnime(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	anime, err := handler.service.UpdateAnime(request.Context(), requestutil.ID(request, "animeId"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, anime)
}

/*
DELETE /api/anime/{animeId}.

Response:
  - 200: {message: "Anime and all associated data removed"}
  - 404: Anime not found
*/
func (handler *Handler) deleteAnime(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteAnime(request.Context(), requestutil.ID(request, "animeId")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Anime and all associated data removed")
}
