package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/careline/social-api/internal/model"
	"github.com/careline/social-api/internal/repository"
	apperrors "github.com/careline/social-api/pkg/errors"
)

// Profiles are read joined to users so callers always see the username
// alongside the profile fields.
const profileColumns = `
	p.id, p.user_id, u.username, p.is_doctor, p.doctor_type, p.about_me,
	p.qualification, p.education, p.workplace, p.created_at, p.updated_at
`

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	query := `
		INSERT INTO profiles (id, user_id, is_doctor, doctor_type, about_me,
			qualification, education, workplace, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.IsDoctor,
		profile.DoctorType,
		profile.AboutMe,
		profile.Qualification,
		profile.Education,
		profile.Workplace,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *profileRepository) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles p JOIN users u ON u.id = p.user_id WHERE p.id = $1`
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("profile", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles p JOIN users u ON u.id = p.user_id WHERE p.user_id = $1`
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("profile", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by user: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	query := `
		UPDATE profiles
		SET about_me = $1, qualification = $2, education = $3, workplace = $4,
			doctor_type = $5, updated_at = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.AboutMe,
		profile.Qualification,
		profile.Education,
		profile.Workplace,
		profile.DoctorType,
		time.Now(),
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (r *profileRepository) SearchByUsername(ctx context.Context, fragment string) ([]*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles p JOIN users u ON u.id = p.user_id
		WHERE u.username LIKE '%' || $1 || '%' ESCAPE '\'`
	var profiles []*model.Profile
	err := r.db.SelectContext(ctx, &profiles, query, escapeLike(fragment))
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}
	return profiles, nil
}

// escapeLike neutralizes LIKE metacharacters so a fragment such as "100%"
// matches the literal text instead of everything.
func escapeLike(fragment string) string {
	fragment = strings.ReplaceAll(fragment, `\`, `\\`)
	fragment = strings.ReplaceAll(fragment, `%`, `\%`)
	fragment = strings.ReplaceAll(fragment, `_`, `\_`)
	return fragment
}

func (r *profileRepository) ListByRole(ctx context.Context, isDoctor bool) ([]*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles p JOIN users u ON u.id = p.user_id
		WHERE p.is_doctor = $1`
	var profiles []*model.Profile
	err := r.db.SelectContext(ctx, &profiles, query, isDoctor)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles by role: %w", err)
	}
	return profiles, nil
}
