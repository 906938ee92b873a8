package handler

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/sympathy-server/internal/api/grpc/matchapi"
	"github.com/dtroode/sympathy-server/internal/logger"
	"github.com/dtroode/sympathy-server/internal/model"
)

// ProfileService returns the caller's own profile.
type ProfileService interface {
	Me(ctx context.Context, profileID uuid.UUID) (model.Profile, error)
}

// MatchService records likes and lists mutual matches.
type MatchService interface {
	Like(ctx context.Context, sourceID, targetID uuid.UUID) (model.LikeResult, error)
	Matches(ctx context.Context, profileID uuid.UUID) ([]model.Match, error)
}

// Matchmaking handles candidate browsing and like endpoints.
type Matchmaking struct {
	candidates     model.CandidateFinder
	profiles       ProfileService
	matches        MatchService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewMatchmaking(
	candidates model.CandidateFinder,
	profiles ProfileService,
	matches MatchService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Matchmaking {
	return &Matchmaking{
		candidates:     candidates,
		profiles:       profiles,
		matches:        matches,
		contextManager: contextManager,
		logger:         logger,
	}
}

// ListCandidates browses profiles. Anonymous callers are allowed unless a distance filter is set.
func (h *Matchmaking) ListCandidates(ctx context.Context, req *matchapi.ListCandidatesRequest) (*matchapi.ListCandidatesResponse, error) {
	requester := h.requester(ctx)

	h.logger.Debug("Matchmaking handler: processing list candidates request",
		"requester", requester.String())

	sort, err := model.ParseSortOrder(req.Sort)
	if err != nil {
		return nil, handleError(err)
	}

	profiles, err := h.candidates.Find(ctx, requester, model.CandidateQuery{
		Gender:        model.Gender(req.Gender),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		CreatedAt:     req.CreatedAt,
		MaxDistanceKm: req.MaxDistanceKm,
		Email:         req.Email,
		Sort:          sort,
	})
	if err != nil {
		h.logger.Error("Matchmaking handler: list candidates failed",
			"requester", requester.String(),
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Debug("Matchmaking handler: list candidates completed",
		"requester", requester.String(),
		"count", len(profiles))

	return &matchapi.ListCandidatesResponse{Profiles: toProfiles(profiles)}, nil
}

// GetMe returns the authenticated profile.
func (h *Matchmaking) GetMe(ctx context.Context, _ *matchapi.Empty) (*matchapi.GetMeResponse, error) {
	profileID, ok := h.contextManager.GetProfileIDFromContext(ctx)
	if !ok {
		return nil, handleError(model.ErrUnauthenticated)
	}

	profile, err := h.profiles.Me(ctx, profileID)
	if err != nil {
		h.logger.Error("Matchmaking handler: get me failed",
			"profile_id", profileID.String(),
			"error", err.Error())
		return nil, handleError(err)
	}

	return &matchapi.GetMeResponse{Profile: toProfile(profile)}, nil
}

// Like records a like from the authenticated profile to the target.
func (h *Matchmaking) Like(ctx context.Context, req *matchapi.LikeRequest) (*matchapi.LikeResponse, error) {
	sourceID, ok := h.contextManager.GetProfileIDFromContext(ctx)
	if !ok {
		return nil, handleError(model.ErrUnauthenticated)
	}

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return nil, handleError(fmt.Errorf("%w: malformed target id", model.ErrInvalidArgument))
	}

	h.logger.Debug("Matchmaking handler: processing like request",
		"source_id", sourceID.String(),
		"target_id", targetID.String())

	result, err := h.matches.Like(ctx, sourceID, targetID)
	if err != nil {
		h.logger.Info("Matchmaking handler: like rejected",
			"source_id", sourceID.String(),
			"target_id", targetID.String(),
			"error", err.Error())
		return nil, handleError(err)
	}

	if result.PartialFailure() {
		h.logger.Warn("Matchmaking handler: match recorded without notification",
			"source_id", sourceID.String(),
			"target_id", targetID.String(),
			"error", result.NotificationErr.Error())
	}

	return &matchapi.LikeResponse{
		Outcome:            string(result.Outcome),
		Source:             toProfile(result.Source),
		Target:             toProfile(result.Target),
		NotificationFailed: result.PartialFailure(),
	}, nil
}

// ListMatches returns the mutual matches of the authenticated profile.
func (h *Matchmaking) ListMatches(ctx context.Context, _ *matchapi.Empty) (*matchapi.ListMatchesResponse, error) {
	profileID, ok := h.contextManager.GetProfileIDFromContext(ctx)
	if !ok {
		return nil, handleError(model.ErrUnauthenticated)
	}

	matches, err := h.matches.Matches(ctx, profileID)
	if err != nil {
		h.logger.Error("Matchmaking handler: list matches failed",
			"profile_id", profileID.String(),
			"error", err.Error())
		return nil, handleError(err)
	}

	return &matchapi.ListMatchesResponse{Matches: toMatches(matches)}, nil
}

func (h *Matchmaking) requester(ctx context.Context) model.Requester {
	if id, ok := h.contextManager.GetProfileIDFromContext(ctx); ok {
		return model.AuthenticatedAs(id)
	}
	return model.Anonymous()
}
