package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"learning-advisor/internal/domain"
)

// ErrNotFound se devuelve cuando no hay registro para la clave pedida.
var ErrNotFound = errors.New("not found")

// ProfileRepository guarda el perfil completo de una sesión.
type ProfileRepository interface {
	Save(ctx context.Context, snapshot domain.ProfileSnapshot) error
	GetBySessionID(ctx context.Context, sessionID string) (domain.ProfileSnapshot, error)
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

func (r *PgProfileRepository) Save(ctx context.Context, snapshot domain.ProfileSnapshot) error {
	const query = `
		INSERT INTO profile_snapshots (
			session_id, degree, semester, gpa, skills, time_commitment,
			interests, target_domain, learning_goal, saved_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (session_id) DO UPDATE SET
			degree = EXCLUDED.degree,
			semester = EXCLUDED.semester,
			gpa = EXCLUDED.gpa,
			skills = EXCLUDED.skills,
			time_commitment = EXCLUDED.time_commitment,
			interests = EXCLUDED.interests,
			target_domain = EXCLUDED.target_domain,
			learning_goal = EXCLUDED.learning_goal,
			saved_at = EXCLUDED.saved_at
	`
	p := snapshot.Profile
	_, err := r.pool.Exec(ctx, query,
		snapshot.SessionID,
		p.Degree,
		p.Semester,
		p.GPA,
		nonNil(p.Skills),
		p.TimeCommitment,
		nonNil(p.Interests),
		p.TargetDomain,
		p.LearningGoal,
		snapshot.SavedAt,
	)
	return err
}

func (r *PgProfileRepository) GetBySessionID(ctx context.Context, sessionID string) (domain.ProfileSnapshot, error) {
	const query = `
		SELECT session_id, degree, semester, gpa, skills, time_commitment,
		       interests, target_domain, learning_goal, saved_at
		FROM profile_snapshots
		WHERE session_id = $1
	`
	var s domain.ProfileSnapshot
	err := r.pool.QueryRow(ctx, query, sessionID).Scan(
		&s.SessionID,
		&s.Profile.Degree,
		&s.Profile.Semester,
		&s.Profile.GPA,
		&s.Profile.Skills,
		&s.Profile.TimeCommitment,
		&s.Profile.Interests,
		&s.Profile.TargetDomain,
		&s.Profile.LearningGoal,
		&s.SavedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ProfileSnapshot{}, ErrNotFound
	}
	return s, err
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// NoopProfileRepository se usa cuando no hay DATABASE_URL.
type NoopProfileRepository struct{}

func (NoopProfileRepository) Save(context.Context, domain.ProfileSnapshot) error { return nil }

func (NoopProfileRepository) GetBySessionID(context.Context, string) (domain.ProfileSnapshot, error) {
	return domain.ProfileSnapshot{}, ErrNotFound
}
