package matchapi

import "time"

// Empty is a message without fields.
type Empty struct{}

// Profile is the public projection of a profile. It never carries credentials.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Gender    string    `json:"gender"`
	PhotoRef  *string   `json:"photo_ref,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest creates a profile. Latitude and Longitude must be both set or both absent.
// Photo is the raw image, base64 encoded on the wire.
type RegisterRequest struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Gender    string   `json:"gender"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Photo     []byte   `json:"photo,omitempty"`
}

type RegisterResponse struct {
	Profile Profile `json:"profile"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	Profile      Profile `json:"profile"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RevokeTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ListCandidatesRequest browses profiles. Empty fields are not applied.
// A non-empty Email looks up a single profile and ignores every other field.
type ListCandidatesRequest struct {
	Gender        string     `json:"gender,omitempty"`
	FirstName     string     `json:"first_name,omitempty"`
	LastName      string     `json:"last_name,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	MaxDistanceKm *float64   `json:"max_distance_km,omitempty"`
	Email         string     `json:"email,omitempty"`
	Sort          string     `json:"sort,omitempty"`
}

type ListCandidatesResponse struct {
	Profiles []Profile `json:"profiles"`
}

type GetMeResponse struct {
	Profile Profile `json:"profile"`
}

type LikeRequest struct {
	TargetID string `json:"target_id"`
}

// LikeResponse reports the like outcome: "recorded" or "mutual_match".
// NotificationFailed is set when a mutual match was stored but notifying the parties failed.
type LikeResponse struct {
	Outcome            string  `json:"outcome"`
	Source             Profile `json:"source"`
	Target             Profile `json:"target"`
	NotificationFailed bool    `json:"notification_failed"`
}

type Match struct {
	Profile   Profile   `json:"profile"`
	MatchedAt time.Time `json:"matched_at"`
}

type ListMatchesResponse struct {
	Matches []Match `json:"matches"`
}
