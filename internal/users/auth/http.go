// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/constants"
	"github.com/taibuivan/kinoteka/internal/platform/ctxutil"
	"github.com/taibuivan/kinoteka/internal/platform/middleware"
	requestutil "github.com/taibuivan/kinoteka/internal/platform/request"
	"github.com/taibuivan/kinoteka/internal/platform/respond"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
	"github.com/taibuivan/kinoteka/internal/platform/session"
)

// # Contracts

// Sessions is the slice of the session manager the account pages need.
type Sessions interface {
	session.Flasher
	Login(ctx context.Context, writer http.ResponseWriter, userID string) (context.Context, error)
	Logout(ctx context.Context, writer http.ResponseWriter) (context.Context, error)
}

// OAuth bundles a provider with the signer of its state parameter.
type OAuth struct {
	Provider Provider
	States   *sec.StateService
}

// # Definitions & Constructors

// Handler implements the /accounts/ pages.
type Handler struct {
	service  *Service
	sessions Sessions
	oauth    *OAuth
}

// NewHandler constructs the account handler. oauth may be nil when no provider is configured.
func NewHandler(service *Service, sessions Sessions, oauth *OAuth) *Handler {
	return &Handler{service: service, sessions: sessions, oauth: oauth}
}

// RegisterRoutes mounts the account pages.
//
// # Endpoints
//   - GET|POST /accounts/register/               : Sign-up form.
//   - GET|POST /accounts/login/                  : Credential login.
//   - GET|POST /accounts/logout/                 : Ends the session.
//   - GET /accounts/profile/                     : Account page.
//   - GET /accounts/oauth/{provider}/login/      : Redirect to the provider.
//   - GET /accounts/oauth/{provider}/complete/   : Provider callback.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Anonymous
	router.Get(constants.RouteRegister, handler.registerForm)
	router.Post(constants.RouteRegister, handler.register)
	router.Get(constants.RouteLogin, handler.loginForm)
	router.Post(constants.RouteLogin, handler.login)

	if handler.oauth != nil {
		router.Get(handler.oauthPath("login"), handler.oauthLogin)
		router.Get(handler.oauthPath("complete"), handler.oauthComplete)
	}

	// Authenticated
	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth(constants.RouteLogin))

		member.Get(constants.RouteLogout, handler.logout)
		member.Post(constants.RouteLogout, handler.logout)
		member.Get(constants.RouteProfile, handler.profile)
	})
}

func (handler *Handler) oauthPath(step string) string {
	return "/accounts/oauth/" + handler.oauth.Provider.Name() + "/" + step + "/"
}

// # Page Payloads

type registerPage struct {
	Fields []string `json:"fields"`
}

type loginPage struct {
	Next     string `json:"next"`
	OAuthURL string `json:"oauth_url,omitempty"`
}

func (handler *Handler) newLoginPage(request *http.Request) loginPage {
	page := loginPage{Next: requestutil.SafeNext(request, constants.RouteIndex)}
	if handler.oauth != nil {
		page.OAuthURL = handler.oauthPath("login")
	}
	return page
}

// # Registration

func (handler *Handler) registerForm(writer http.ResponseWriter, request *http.Request) {
	if requestutil.Identity(request).Authenticated {
		respond.Redirect(writer, request, constants.RouteIndex)
		return
	}

	respond.Page(writer, registerPage{
		Fields: []string{FieldUsername, FieldEmail, FieldPassword1, FieldPassword2},
	}, handler.sessions.Messages(request.Context()))
}

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	if requestutil.Identity(request).Authenticated {
		respond.Redirect(writer, request, constants.RouteIndex)
		return
	}

	var input RegisterInput
	if err := requestutil.DecodeForm(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Register(request.Context(), input)
	if err != nil {
		handler.formInvalid(writer, request, registerPage{
			Fields: []string{FieldUsername, FieldEmail, FieldPassword1, FieldPassword2},
		}, err)
		return
	}

	ctx, err := handler.sessions.Login(request.Context(), writer, user.ID)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	handler.sessions.Flash(ctx, session.LevelSuccess, fmt.Sprintf(
		"Registration successful! Welcome, %s! A welcome email has been sent to %s.", user.Username, user.Email,
	))
	respond.Redirect(writer, request, constants.RouteIndex)
}

// # Login & Logout

func (handler *Handler) loginForm(writer http.ResponseWriter, request *http.Request) {
	if requestutil.Identity(request).Authenticated {
		respond.Redirect(writer, request, constants.RouteIndex)
		return
	}

	respond.Page(writer, handler.newLoginPage(request), handler.sessions.Messages(request.Context()))
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	if requestutil.Identity(request).Authenticated {
		respond.Redirect(writer, request, constants.RouteIndex)
		return
	}

	var input LoginInput
	if err := requestutil.DecodeForm(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Login(request.Context(), input)
	if err != nil {
		handler.formInvalid(writer, request, handler.newLoginPage(request), err)
		return
	}

	handler.signIn(writer, request, user, requestutil.SafeNext(request, constants.RouteIndex))
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	ctx, err := handler.sessions.Logout(request.Context(), writer)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	handler.sessions.Flash(ctx, session.LevelSuccess, "You have been logged out.")
	respond.Redirect(writer, request, constants.RouteIndex)
}

// signIn binds the user to a fresh session and redirects to next.
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request, user *User, next string) {
	ctx, err := handler.sessions.Login(request.Context(), writer, user.ID)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	handler.sessions.Flash(ctx, session.LevelSuccess, fmt.Sprintf("Welcome, %s!", user.Username))
	respond.Redirect(writer, request, next)
}

// formInvalid re-renders a form with its errors. Passwords are never echoed back.
func (handler *Handler) formInvalid(writer http.ResponseWriter, request *http.Request, page any, err error) {
	appError := apperr.As(err)
	if appError == nil || !appError.IsUserFacing() {
		respond.Error(writer, request, err)
		return
	}

	values := requestutil.FormValues(request, FieldPassword, FieldPassword1, FieldPassword2)
	respond.FormInvalid(writer, request, page, appError.WithValues(values), handler.sessions.Messages(request.Context()))
}

// # Profile

func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.service.Profile(request.Context(), requestutil.Identity(request).UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, profile, handler.sessions.Messages(request.Context()))
}

// # Third-Party Login

func (handler *Handler) oauthLogin(writer http.ResponseWriter, request *http.Request) {
	state, err := handler.oauth.States.Issue(
		ctxutil.GetSessionID(request.Context()),
		requestutil.SafeNext(request, constants.RouteIndex),
	)
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	http.Redirect(writer, request, handler.oauth.Provider.AuthCodeURL(state), http.StatusFound)
}

func (handler *Handler) oauthComplete(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)
	query := request.URL.Query()

	if providerError := query.Get("error"); providerError != "" {
		handler.sessions.Flash(ctx, session.LevelError, "Sign-in was cancelled.")
		respond.Redirect(writer, request, constants.RouteLogin)
		return
	}

	claims, err := handler.oauth.States.Verify(query.Get("state"), ctxutil.GetSessionID(ctx))
	if err != nil {
		logger.WarnContext(ctx, "oauth_state_rejected", "error", err)
		handler.sessions.Flash(ctx, session.LevelError, "Sign-in failed. Please try again.")
		respond.Redirect(writer, request, constants.RouteLogin)
		return
	}

	external, err := handler.oauth.Provider.Identify(ctx, query.Get("code"))
	if err != nil {
		logger.ErrorContext(ctx, "oauth_identify_failed", "error", err)
		handler.sessions.Flash(ctx, session.LevelError, "Sign-in failed. Please try again.")
		respond.Redirect(writer, request, constants.RouteLogin)
		return
	}

	user, err := handler.service.CompleteOAuth(ctx, external)
	if err != nil {
		appError := apperr.As(err)
		if appError == nil || !appError.IsUserFacing() {
			respond.Error(writer, request, err)
			return
		}
		handler.sessions.Flash(ctx, session.LevelError, appError.Message)
		respond.Redirect(writer, request, constants.RouteLogin)
		return
	}

	next := claims.Next
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = constants.RouteIndex
	}

	handler.signIn(writer, request, user, next)
}
