package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/internal/auth"
	"github.com/rustyeddy/tradejournal/journal"
)

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"max=100"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	User  journal.User `json:"user"`
	Token string       `json:"token"`
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !s.decode(w, r, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	u := journal.User{
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(r.Context(), &u); err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Info("user signed up", zap.String("user_id", u.ID))

	s.startSession(w, r, &u, http.StatusCreated)
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !s.decode(w, r, &req) {
		return
	}

	u, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, journal.ErrNotFound) {
		err = s.decoy.Check(req.Password)
		s.fail(w, r, newError(http.StatusUnauthorized, CodeUnauthorized, err.Error()))
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
		s.fail(w, r, newError(http.StatusUnauthorized, CodeUnauthorized, err.Error()))
		return
	}

	s.startSession(w, r, &u, http.StatusOK)
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request, u *journal.User, status int) {
	token, err := s.sessions.SetCookie(w, auth.ClaimsFor(u))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.Status(r, status)
	render.JSON(w, r, sessionResponse{User: *u, Token: token})
}

func (s *Server) signOut(w http.ResponseWriter, r *http.Request) {
	s.sessions.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	u, err := s.store.GetUser(r.Context(), claims.UserID)
	if errors.Is(err, journal.ErrNotFound) {
		s.sessions.ClearCookie(w)
		s.unauthorized(w, r)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{
		"user":      u,
		"hasAccess": u.HasAccess(),
	})
}
