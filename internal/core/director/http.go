// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package director

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/constants"
	"github.com/taibuivan/kinoteka/internal/platform/middleware"
	requestutil "github.com/taibuivan/kinoteka/internal/platform/request"
	"github.com/taibuivan/kinoteka/internal/platform/respond"
	"github.com/taibuivan/kinoteka/internal/platform/session"
	"github.com/taibuivan/kinoteka/pkg/pagination"
)

type Handler struct {
	service *Service
	flasher session.Flasher
}

func NewHandler(service *Service, flasher session.Flasher) *Handler {
	return &Handler{service: service, flasher: flasher}
}

// RegisterRoutes mounts the public listing/detail pages and the manager-only add page.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get(constants.RouteDirectors, handler.listDirectors)
	router.Get("/director/{directorID}/", handler.getDirector)

	// Managers only
	router.Group(func(manager chi.Router) {
		manager.Use(middleware.RequireManager(constants.RouteLogin))

		manager.Get("/add/director/", handler.directorForm)
		manager.Post("/add/director/", handler.createDirector)
	})
}

func (handler *Handler) listDirectors(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	directors, total, err := handler.service.List(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, directors,
		pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total),
		handler.flasher.Messages(request.Context()),
	)
}

func (handler *Handler) getDirector(writer http.ResponseWriter, request *http.Request) {
	directorID, err := requestutil.IntID(request, "directorID", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.Get(request.Context(), directorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, detail, handler.flasher.Messages(request.Context()))
}

func (handler *Handler) directorForm(writer http.ResponseWriter, request *http.Request) {
	respond.Page(writer, map[string]any{
		"fields": []string{FieldName, FieldBio, FieldPhoto},
	}, handler.flasher.Messages(request.Context()))
}

func (handler *Handler) createDirector(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeForm(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	director, err := handler.service.Create(request.Context(), requestutil.Identity(request), input)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.IsUserFacing() {
			err = appError.WithValues(requestutil.FormValues(request))
		}
		respond.Error(writer, request, err)
		return
	}

	handler.flasher.Flash(request.Context(), session.LevelSuccess, fmt.Sprintf("Director %q added.", director.Name))
	respond.Redirect(writer, request, constants.RouteDirectors)
}
