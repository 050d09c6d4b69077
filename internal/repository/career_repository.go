package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edu-platform/campus-timetable/internal/models"
)

// CareerRepository persists academic careers and instructor memberships.
type CareerRepository struct {
	db *sqlx.DB
}

// NewCareerRepository constructs the repository.
func NewCareerRepository(db *sqlx.DB) *CareerRepository {
	return &CareerRepository{db: db}
}

// FindByID loads a career by its identifier.
func (r *CareerRepository) FindByID(ctx context.Context, id string) (*models.Career, error) {
	const query = `SELECT id, code, name, chair_instructor_id, active, created_at, updated_at FROM careers WHERE id = $1`
	var career models.Career
	if err := r.db.GetContext(ctx, &career, query, id); err != nil {
		return nil, err
	}
	return &career, nil
}

// ListMemberInstructors returns active instructors who belong to the career,
// including the chair instructor if active (spec.md §4.1).
func (r *CareerRepository) ListMemberInstructors(ctx context.Context, careerID string) ([]models.Teacher, error) {
	const query = `
SELECT t.id, t.nip, t.email, t.full_name, t.phone, t.expertise, t.employment_class, t.active, t.created_at, t.updated_at
FROM teachers t
JOIN career_memberships cm ON cm.teacher_id = t.id
WHERE cm.career_id = $1 AND t.active = true`
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query, careerID); err != nil {
		return nil, fmt.Errorf("list career instructors: %w", err)
	}
	return teachers, nil
}

// ListCareerIDsForInstructor returns every career the instructor is a member of.
func (r *CareerRepository) ListCareerIDsForInstructor(ctx context.Context, teacherID string) ([]string, error) {
	const query = `SELECT career_id FROM career_memberships WHERE teacher_id = $1`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, teacherID); err != nil {
		return nil, fmt.Errorf("list instructor careers: %w", err)
	}
	return ids, nil
}
