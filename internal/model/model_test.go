package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    SortOrder
		wantErr bool
	}{
		{in: "", want: SortAsc},
		{in: "asc", want: SortAsc},
		{in: "desc", want: SortDesc},
		{in: "DESC", wantErr: true},
		{in: "random", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortOrder(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequester(t *testing.T) {
	anon := Anonymous()
	_, ok := anon.ID()
	assert.False(t, ok)
	assert.Equal(t, "anonymous", anon.String())

	id := uuid.New()
	r := AuthenticatedAs(id)
	got, ok := r.ID()
	assert.True(t, ok)
	assert.Equal(t, id, got)
	assert.Equal(t, id.String(), r.String())
}

func TestStartOfDayUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	in := time.Date(2024, 5, 2, 1, 30, 0, 0, loc)

	got := StartOfDayUTC(in)

	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestPositionValid(t *testing.T) {
	assert.True(t, Position{Latitude: 0, Longitude: 0}.Valid())
	assert.True(t, Position{Latitude: -90, Longitude: 180}.Valid())
	assert.False(t, Position{Latitude: 91, Longitude: 0}.Valid())
	assert.False(t, Position{Latitude: 0, Longitude: -181}.Valid())
}

func TestGenderValid(t *testing.T) {
	assert.True(t, GenderMale.Valid())
	assert.True(t, GenderFemale.Valid())
	assert.False(t, Gender("other").Valid())
	assert.False(t, Gender("").Valid())
}
