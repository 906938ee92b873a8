package handler

import (
	"github.com/dtroode/sympathy-server/internal/api/grpc/matchapi"
	"github.com/dtroode/sympathy-server/internal/model"
)

func toProfile(p model.Profile) matchapi.Profile {
	out := matchapi.Profile{
		ID:        p.ID.String(),
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Gender:    string(p.Gender),
		PhotoRef:  p.PhotoRef,
		CreatedAt: p.CreatedAt.UTC(),
	}
	if p.Position != nil {
		lat, lon := p.Position.Latitude, p.Position.Longitude
		out.Latitude = &lat
		out.Longitude = &lon
	}
	return out
}

func toProfiles(in []model.Profile) []matchapi.Profile {
	out := make([]matchapi.Profile, 0, len(in))
	for _, p := range in {
		out = append(out, toProfile(p))
	}
	return out
}

func toMatches(in []model.Match) []matchapi.Match {
	out := make([]matchapi.Match, 0, len(in))
	for _, m := range in {
		out = append(out, matchapi.Match{Profile: toProfile(m.Profile), MatchedAt: m.MatchedAt.UTC()})
	}
	return out
}
