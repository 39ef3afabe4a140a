// package http implements the HTTP transport layer for the service.
// It handles incoming requests, decodes them, calls the appropriate service methods,
// and encodes the responses.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/apetrov/codetrack/internal/apperrors"
	"github.com/apetrov/codetrack/internal/domain"
	"github.com/apetrov/codetrack/internal/service"
	"github.com/apetrov/codetrack/internal/validation"
	"github.com/apetrov/codetrack/pkg/logger/sl"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DueReviewNotifier triggers the daily review-reminder dispatch.
type DueReviewNotifier interface {
	NotifyDueReviews(ctx context.Context) (service.DueReviewSummary, error)
}

// Server holds the dependencies for the HTTP server, including the logger and service interfaces.
type Server struct {
	log               *slog.Logger
	reviewService     service.ReviewService
	friendshipService service.FriendshipService
	notifierService   DueReviewNotifier
}

// NewServer creates a new instance of the HTTP server.
func NewServer(
	log *slog.Logger,
	rs service.ReviewService,
	fs service.FriendshipService,
	ns DueReviewNotifier,
) *Server {
	return &Server{
		log:               log,
		reviewService:     rs,
		friendshipService: fs,
		notifierService:   ns,
	}
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/solved/add", s.postSolvedAdd)
	mux.Post("/solved/review", s.postSolvedReview)
	mux.Get("/solved/due", s.getSolvedDue)

	mux.Get("/users/streak", s.getUsersStreak)

	mux.Post("/friends/request", s.postFriendsRequest)
	mux.Post("/friends/respond", s.postFriendsRespond)
	mux.Post("/friends/remove", s.postFriendsRemove)
	mux.Get("/friends/requests", s.getFriendsRequests)
	mux.Get("/friends/list", s.getFriendsList)

	mux.Post("/reviews/notify", s.postReviewsNotify)

	return mux
}

func (s *Server) postSolvedAdd(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.postSolvedAdd"

	var req recordSolveRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	item, err := s.reviewService.RecordSolve(
		r.Context(),
		req.UserID,
		req.ProblemName,
		domain.Difficulty(req.Difficulty),
		req.DifficultyRating,
	)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.SolvedItem{"item": item})
}

func (s *Server) postSolvedReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.postSolvedReview"

	var req completeReviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	item, err := s.reviewService.CompleteReview(r.Context(), req.ItemID, req.UserID, req.DifficultyRating)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.SolvedItem{"item": item})
}

func (s *Server) getSolvedDue(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getSolvedDue"

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		s.respondError(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}

	items, err := s.reviewService.ListDueToday(r.Context(), userID)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.SolvedItem{"items": items})
}

func (s *Server) getUsersStreak(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getUsersStreak"

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		s.respondError(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}

	streak, err := s.reviewService.CurrentStreak(r.Context(), userID)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]int{"streak": streak})
}

func (s *Server) postFriendsRequest(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.postFriendsRequest"

	var req sendFriendRequestRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	fr, err := s.friendshipService.SendRequest(r.Context(), req.SenderID, req.ReceiverID)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.FriendRequest{"request": fr})
}

func (s *Server) postFriendsRespond(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.postFriendsRespond"

	var req respondFriendRequestRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	fr, err := s.friendshipService.Respond(
		r.Context(),
		req.RequestID,
		domain.RequestStatus(req.Decision),
		req.UserID,
	)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.FriendRequest{"request": fr})
}

func (s *Server) postFriendsRemove(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.postFriendsRemove"

	var req removeFriendshipRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	if err := s.friendshipService.RemoveFriendship(r.Context(), req.FriendshipID, req.UserID); err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) getFriendsRequests(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getFriendsRequests"

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		s.respondError(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}

	reqs, err := s.friendshipService.ListPendingRequests(r.Context(), userID)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.FriendRequest{"requests": reqs})
}

func (s *Server) getFriendsList(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getFriendsList"

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		s.respondError(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}

	friends, err := s.friendshipService.ListFriends(r.Context(), userID)
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.FriendWithStats{"friends": friends})
}

func (s *Server) postReviewsNotify(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.postReviewsNotify"

	summary, err := s.notifierService.NotifyDueReviews(r.Context())
	if err != nil {
		s.handleServiceError(w, op, err)
		return
	}

	s.respond(w, http.StatusOK, summary)
}

// respond is a helper function to encode data to JSON and write it to the response.
// It centralizes setting the Content-Type header and writing the status code.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

// respondError is a convenience wrapper around respond for sending simple error messages.
func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	s.respond(w, code, map[string]string{"error": message})
}

// decodeAndValidate is a helper that deserializes a JSON request body into a struct
// and then runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

// decode is a helper function to decode a JSON request body.
func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all HTTP handlers.
// It logs the internal error and maps it to a user-friendly HTTP response.
func (s *Server) handleServiceError(w http.ResponseWriter, op string, err error) {
	log := s.log.With(slog.String("op", op))
	log.Error("service error occurred", sl.Err(err))

	var (
		duplicateErr *apperrors.DuplicateRequestError
		friendsErr   *apperrors.AlreadyFriendsError
		resolvedErr  *apperrors.AlreadyResolvedError
		validateErr  *validation.ValidationError
	)

	switch {
	case errors.As(err, &validateErr):
		wrappedErr := fmt.Errorf("%w: %s", apperrors.ErrValidation, validateErr.Error())
		s.respondError(w, http.StatusBadRequest, wrappedErr.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		s.respondError(w, http.StatusBadRequest, "invalid request body")
	case errors.Is(err, apperrors.ErrValidation):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, apperrors.ErrForbidden):
		s.respondError(w, http.StatusForbidden, "operation not permitted for this user")
	case errors.As(err, &duplicateErr):
		s.respondError(w, http.StatusConflict, "a pending friend request already exists between these users")
	case errors.As(err, &friendsErr):
		s.respondError(w, http.StatusConflict, "these users are already friends")
	case errors.As(err, &resolvedErr):
		s.respondError(w, http.StatusConflict, "friend request has already been resolved")
	default:
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
