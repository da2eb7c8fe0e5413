// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/kinoteka/internal/core/review"
	"github.com/taibuivan/kinoteka/internal/platform/apperr"
	"github.com/taibuivan/kinoteka/internal/platform/constants"
	"github.com/taibuivan/kinoteka/internal/platform/middleware"
	requestutil "github.com/taibuivan/kinoteka/internal/platform/request"
	"github.com/taibuivan/kinoteka/internal/platform/respond"
	"github.com/taibuivan/kinoteka/internal/platform/sec"
	"github.com/taibuivan/kinoteka/internal/platform/session"
	"github.com/taibuivan/kinoteka/pkg/pagination"
)

// reviewMarker is the name of the submit button of the review form.
const reviewMarker = "review_submit"

// ReviewBoard is the slice of the review service the movie page needs.
type ReviewBoard interface {
	Board(ctx context.Context, movieID int64) (*review.Board, error)
	Submit(ctx context.Context, identity sec.Identity, movieID int64, input review.SubmitInput) (*review.Review, error)
}

// # Definitions & Constructors

// Handler serves the catalog pages built around movies.
type Handler struct {
	movies  *Service
	top     *TopList
	reviews ReviewBoard
	flasher session.Flasher
}

// NewHandler constructs a movie page handler.
func NewHandler(movies *Service, top *TopList, reviews ReviewBoard, flasher session.Flasher) *Handler {
	return &Handler{movies: movies, top: top, reviews: reviews, flasher: flasher}
}

// RegisterRoutes mounts the movie pages.
//
// # Endpoints
//   - GET|POST /              : Catalog index and top-list actions.
//   - GET|POST /movie/{id}/   : Movie page, reviews and top-list actions.
//   - GET /top-five/          : The featured movies.
//   - GET|POST /add/movie/    : Manager-only creation form.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get(constants.RouteIndex, handler.index)
	router.Post(constants.RouteIndex, handler.indexAction)
	router.Get("/movie/{movieID}/", handler.detail)
	router.Post("/movie/{movieID}/", handler.detailAction)
	router.Get("/top-five/", handler.topFive)

	// Managers only
	router.Group(func(manager chi.Router) {
		manager.Use(middleware.RequireManager(constants.RouteLogin))

		manager.Get("/add/movie/", handler.movieForm)
		manager.Post("/add/movie/", handler.createMovie)
	})
}

// # Page Payloads

type indexPage struct {
	Movies      []*Movie `json:"movies"`
	Query       string   `json:"query"`
	TopCount    int      `json:"top_count"`
	TopCapacity int      `json:"top_capacity"`
	CanManage   bool     `json:"can_manage"`
}

type detailPage struct {
	Movie         *Movie           `json:"movie"`
	Reviews       []*review.Review `json:"reviews"`
	AverageRating float64          `json:"average_rating"`
	ReviewsCount  int              `json:"reviews_count"`
	CanReview     bool             `json:"can_review"`
	CanManage     bool             `json:"can_manage"`
}

type topFivePage struct {
	Movies   []*Movie `json:"movies"`
	Count    int      `json:"count"`
	Capacity int      `json:"capacity"`
}

type topActionForm struct {
	MovieID int64  `form:"movie_id"`
	Action  string `form:"action"`
}

type detailForm struct {
	Action string `form:"action"`
	Rating *int   `form:"rating"`
	Text   string `form:"text"`
}

// # Catalog Index

func (handler *Handler) index(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	paginationParams := pagination.FromRequest(request)
	query := requestutil.Query(request, "q")

	movies, total, err := handler.movies.List(ctx, Filter{Query: query}, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	topCount, err := handler.top.Count(ctx)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, indexPage{
		Movies:      movies,
		Query:       query,
		TopCount:    topCount,
		TopCapacity: handler.top.Capacity(),
		CanManage:   sec.IsManager(requestutil.Identity(request)),
	}, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total), handler.flasher.Messages(ctx))
}

func (handler *Handler) indexAction(writer http.ResponseWriter, request *http.Request) {
	var form topActionForm
	if err := requestutil.DecodeForm(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Incomplete forms are ignored and the index is shown again.
	if form.MovieID <= 0 || form.Action == "" {
		respond.Redirect(writer, request, constants.RouteIndex)
		return
	}

	handler.applyTopAction(writer, request, form.MovieID, form.Action, constants.RouteIndex)
}

// # Movie Page

func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	movieID, err := requestutil.IntID(request, "movieID", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.detailPage(request, movieID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, page, handler.flasher.Messages(request.Context()))
}

func (handler *Handler) detailAction(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	movieID, err := requestutil.IntID(request, "movieID", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var form detailForm
	if err := requestutil.DecodeForm(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	back := movieURL(movieID)

	switch {
	case form.Action == string(ActionAddToTop) || form.Action == string(ActionRemoveFromTop):
		handler.applyTopAction(writer, request, movieID, form.Action, back)

	case request.PostForm.Has(reviewMarker):
		identity := requestutil.Identity(request)

		_, err := handler.reviews.Submit(ctx, identity, movieID, review.SubmitInput{Rating: form.Rating, Text: form.Text})
		if err == nil {
			handler.flasher.Flash(ctx, session.LevelSuccess, "Your review has been added!")
			respond.Redirect(writer, request, back)
			return
		}

		appError := apperr.As(err)
		switch {
		case appError != nil && appError.Code == "UNAUTHORIZED":
			handler.flasher.Flash(ctx, session.LevelError, "Log in to leave a review.")
			respond.Redirect(writer, request, back)

		case appError != nil && appError.Code == "VALIDATION_ERROR":
			page, pageErr := handler.detailPage(request, movieID)
			if pageErr != nil {
				respond.Error(writer, request, pageErr)
				return
			}
			values := requestutil.FormValues(request)
			respond.FormInvalid(writer, request, page, appError.WithValues(values), handler.flasher.Messages(ctx))

		default:
			respond.Error(writer, request, err)
		}

	default:
		respond.Redirect(writer, request, back)
	}
}

func (handler *Handler) detailPage(request *http.Request, movieID int64) (*detailPage, error) {
	ctx := request.Context()

	movie, err := handler.movies.Get(ctx, movieID)
	if err != nil {
		return nil, err
	}

	board, err := handler.reviews.Board(ctx, movieID)
	if err != nil {
		return nil, err
	}

	identity := requestutil.Identity(request)

	return &detailPage{
		Movie:         movie,
		Reviews:       board.Reviews,
		AverageRating: board.AverageRating,
		ReviewsCount:  board.ReviewsCount,
		CanReview:     identity.Authenticated,
		CanManage:     sec.IsManager(identity),
	}, nil
}

// # Top List

func (handler *Handler) topFive(writer http.ResponseWriter, request *http.Request) {
	movies, err := handler.top.Movies(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, topFivePage{
		Movies:   movies,
		Count:    len(movies),
		Capacity: handler.top.Capacity(),
	}, handler.flasher.Messages(request.Context()))
}

// applyTopAction runs a top-list transition and reports it as a flash message.
func (handler *Handler) applyTopAction(writer http.ResponseWriter, request *http.Request, movieID int64, action, back string) {
	ctx := request.Context()

	transition, err := handler.top.Apply(ctx, requestutil.Identity(request), movieID, action)
	if err != nil {
		appError := apperr.As(err)
		if appError == nil || !appError.IsUserFacing() || appError.HTTPStatus == http.StatusNotFound {
			respond.Error(writer, request, err)
			return
		}

		message := appError.Message
		if appError.Code == "FORBIDDEN" {
			message = "Only managers can manage the top list!"
		}
		handler.flasher.Flash(ctx, session.LevelError, message)
		respond.Redirect(writer, request, back)
		return
	}

	level := session.LevelSuccess
	if !transition.Changed {
		level = session.LevelInfo
	}
	handler.flasher.Flash(ctx, level, transition.Message)
	respond.Redirect(writer, request, back)
}

// # Movie Creation

func (handler *Handler) movieForm(writer http.ResponseWriter, request *http.Request) {
	respond.Page(writer, map[string]any{
		"fields": []string{FieldTitle, FieldDescription, FieldYear, FieldPoster, FieldDirector, FieldActors},
	}, handler.flasher.Messages(request.Context()))
}

func (handler *Handler) createMovie(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeForm(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.movies.Create(request.Context(), requestutil.Identity(request), input)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.IsUserFacing() {
			err = appError.WithValues(requestutil.FormValues(request))
		}
		respond.Error(writer, request, err)
		return
	}

	handler.flasher.Flash(request.Context(), session.LevelSuccess, fmt.Sprintf("Movie %q added!", movie.Title))
	respond.Redirect(writer, request, movieURL(movie.ID))
}

func movieURL(id int64) string {
	return "/movie/" + strconv.FormatInt(id, 10) + "/"
}
