package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SortOrder is the direction of a listing by creation time.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder returns SortAsc for an empty value.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "":
		return SortAsc, nil
	case SortAsc, SortDesc:
		return SortOrder(s), nil
	default:
		return "", fmt.Errorf("%w: unknown sort order %q", ErrInvalidArgument, s)
	}
}

// CandidateQuery describes a candidate browsing request.
// Email switches the query to the single-profile lookup and ignores every other field.
type CandidateQuery struct {
	Gender        Gender
	FirstName     string
	LastName      string
	CreatedAt     *time.Time
	MaxDistanceKm *float64
	Email         string
	Sort          SortOrder
}

// Filter returns the store-level part of the query.
func (q CandidateQuery) Filter() ProfileFilter {
	return ProfileFilter{
		Gender:    q.Gender,
		FirstName: q.FirstName,
		LastName:  q.LastName,
		CreatedAt: q.CreatedAt,
		Sort:      q.Sort,
	}
}

// Requester is the identity a request runs under: either anonymous or an authenticated profile.
type Requester struct {
	id            uuid.UUID
	authenticated bool
}

// Anonymous returns a requester without identity.
func Anonymous() Requester {
	return Requester{}
}

// AuthenticatedAs returns a requester resolved to the given profile id.
func AuthenticatedAs(id uuid.UUID) Requester {
	return Requester{id: id, authenticated: true}
}

// ID returns the profile id and whether the requester is authenticated.
func (r Requester) ID() (uuid.UUID, bool) {
	return r.id, r.authenticated
}

// String returns the profile id or "anonymous".
func (r Requester) String() string {
	if !r.authenticated {
		return "anonymous"
	}
	return r.id.String()
}

// CandidateFinder runs candidate queries on behalf of a requester.
type CandidateFinder interface {
	Find(ctx context.Context, requester Requester, query CandidateQuery) ([]Profile, error)
}
