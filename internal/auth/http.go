// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/anicat/internal/platform/middleware"
	requestutil "github.com/taibuivan/anicat/internal/platform/request"
	"github.com/taibuivan/anicat/internal/platform/respond"
)

// Handler implements the HTTP layer for authentication.
type Handler struct {
	authService       *Service
	allowRegistration bool
}

// NewHandler constructs a new auth [Handler].
func NewHandler(authService *Service, allowRegistration bool) *Handler {
	return &Handler{authService: authService, allowRegistration: allowRegistration}
}

// RegisterRoutes mounts the auth endpoints (mounted at /api/auth).
//
// # Routing Strategy
//
//   - Public: login, and register when sign-up is enabled.
//   - Authenticated: me.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/login", handler.login)
	if handler.allowRegistration {
		router.Post("/register", handler.register)
	}

	router.With(middleware.RequireAuth).Get("/me", handler.me)
}

// register handles POST /api/auth/register.
//
// # Returns
//   - 201 with {id, username, role, token}.
//   - 400 for invalid input or a taken username.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input Credentials
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, session)
}

// login handles POST /api/auth/login.
//
// # Returns
//   - 200 with {id, username, role, token}.
//   - 400 "Invalid credentials" without saying which part was wrong.
//   - 429 while the username is locked out.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input Credentials
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

// me handles GET /api/auth/me.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
