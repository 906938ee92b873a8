package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/sympathy-server/internal/model"
)

var _ model.ProfileStore = (*ProfileRepository)(nil)

const profileColumns = `id, email, first_name, last_name, gender, photo_ref, latitude, longitude, password_hash, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type ProfileRepository struct {
	db *Connection
}

func NewProfileRepository(db *Connection) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, profile model.Profile) (model.Profile, error) {
	query := `
        INSERT INTO profiles (
            id, email, first_name, last_name, gender, photo_ref, latitude, longitude, password_hash, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$10)
        RETURNING ` + profileColumns

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	var lat, lon *float64
	if profile.Position != nil {
		lat, lon = &profile.Position.Latitude, &profile.Position.Longitude
	}

	row := r.db.QueryRow(ctx, query,
		profile.ID, profile.Email, profile.FirstName, profile.LastName, string(profile.Gender),
		profile.PhotoRef, lat, lon, profile.PasswordHash, profile.CreatedAt,
	)
	saved, err := scanProfile(row)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to create profile: %w", mapError(err))
	}
	return saved, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	p, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get profile by id: %w", mapError(err))
	}
	return p, nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`

	p, err := scanProfile(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get profile by email: %w", mapError(err))
	}
	return p, nil
}

func (r *ProfileRepository) List(ctx context.Context, filter model.ProfileFilter) ([]model.Profile, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]model.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}

// buildListQuery renders the filter into a parameterized statement.
// Name filters are case-insensitive substring matches.
func buildListQuery(filter model.ProfileFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Gender != "" {
		add("gender = $%d", string(filter.Gender))
	}
	if filter.FirstName != "" {
		add("first_name ILIKE '%%' || $%d || '%%'", likeEscaper.Replace(filter.FirstName))
	}
	if filter.LastName != "" {
		add("last_name ILIKE '%%' || $%d || '%%'", likeEscaper.Replace(filter.LastName))
	}
	if filter.CreatedAt != nil {
		add("created_at = $%d", *filter.CreatedAt)
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(profileColumns)
	b.WriteString(" FROM profiles")
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}

	dir := "ASC"
	if filter.Sort == model.SortDesc {
		dir = "DESC"
	}
	fmt.Fprintf(&b, " ORDER BY created_at %s, id %s", dir, dir)

	return b.String(), args
}

// scanProfile reads the profileColumns prefix of a row. Extra destinations receive the columns that follow.
func scanProfile(row pgx.Row, extra ...any) (model.Profile, error) {
	var (
		p        model.Profile
		gender   string
		lat, lon *float64
	)
	dest := []any{
		&p.ID, &p.Email, &p.FirstName, &p.LastName, &gender, &p.PhotoRef,
		&lat, &lon, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	if err != nil {
		return model.Profile{}, err
	}

	p.Gender = model.Gender(gender)
	if lat != nil && lon != nil {
		p.Position = &model.Position{Latitude: *lat, Longitude: *lon}
	}
	return p, nil
}
