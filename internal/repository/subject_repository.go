package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edu-platform/campus-timetable/internal/models"
)

// SubjectRepository handles persistence for subjects (the Course set of
// spec.md §4.1).
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// ListByCareerTerm returns active courses owned by a career for a term index,
// the Course set of spec.md §4.1.
func (r *SubjectRepository) ListByCareerTerm(ctx context.Context, careerID string, termIndex int) ([]models.Subject, error) {
	const query = `SELECT id, code, name, track, subject_group, career_id, term_index, weekly_hours, active, created_at, updated_at
FROM subjects WHERE career_id = $1 AND term_index = $2 AND active = true ORDER BY code ASC`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, careerID, termIndex); err != nil {
		return nil, fmt.Errorf("list career courses: %w", err)
	}
	return subjects, nil
}
