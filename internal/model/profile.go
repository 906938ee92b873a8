package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProfileStore defines persistence operations for client profiles.
type ProfileStore interface {
	Create(ctx context.Context, profile Profile) (Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (Profile, error)
	GetByEmail(ctx context.Context, email string) (Profile, error)
	List(ctx context.Context, filter ProfileFilter) ([]Profile, error)
}

// Gender enumerates supported profile genders.
type Gender string

const (
	// GenderMale is a male client.
	GenderMale Gender = "male"
	// GenderFemale is a female client.
	GenderFemale Gender = "female"
)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Position is a point on the globe in decimal degrees.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether both coordinates are within their ranges.
func (p Position) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

// Profile represents a registered client.
// Position is nil when the client did not share coordinates.
type Profile struct {
	ID           uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	Gender       Gender
	PhotoRef     *string
	Position     *Position
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPosition reports whether the profile carries coordinates.
func (p Profile) HasPosition() bool {
	return p.Position != nil
}

// ProfileFilter narrows a profile listing. Zero values are ignored.
type ProfileFilter struct {
	Gender    Gender
	FirstName string
	LastName  string
	CreatedAt *time.Time
	Sort      SortOrder
}

// Registration is the input of a sign-up. Photo holds the raw uploaded image and may be empty.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Gender    Gender
	Position  *Position
	Photo     []byte
}
