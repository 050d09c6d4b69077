package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-platform/campus-timetable/internal/models"
)

type fakeBlackoutReader struct {
	rows []models.Assignment
	err  error
}

func (f *fakeBlackoutReader) ListBlackouts(ctx context.Context, academicPeriod, excludeCareerID string, teacherIDs []string) ([]models.Assignment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func TestConflictOracleBlackoutsGroupsByInstructor(t *testing.T) {
	reader := &fakeBlackoutReader{rows: []models.Assignment{
		{TeacherID: "t1", DayOfWeek: 0, TimeSlotID: "s1"},
		{TeacherID: "t1", DayOfWeek: 1, TimeSlotID: "s2"},
		{TeacherID: "t2", DayOfWeek: 0, TimeSlotID: "s1"},
	}}
	oracle := NewConflictOracle(reader)

	blackouts, err := oracle.Blackouts(context.Background(), "2026-1", "career-a", []string{"t1", "t2"})
	require.NoError(t, err)

	assert.True(t, blackouts["t1"][SlotKey{Day: 0, SlotID: "s1"}])
	assert.True(t, blackouts["t1"][SlotKey{Day: 1, SlotID: "s2"}])
	assert.True(t, blackouts["t2"][SlotKey{Day: 0, SlotID: "s1"}])
	assert.False(t, blackouts["t2"][SlotKey{Day: 1, SlotID: "s2"}])
}

func TestConflictOracleBlackoutsEmptyInstructors(t *testing.T) {
	oracle := NewConflictOracle(&fakeBlackoutReader{})
	blackouts, err := oracle.Blackouts(context.Background(), "2026-1", "career-a", nil)
	require.NoError(t, err)
	assert.Empty(t, blackouts)
}

func TestConflictOracleBlackoutsPropagatesError(t *testing.T) {
	oracle := NewConflictOracle(&fakeBlackoutReader{err: assert.AnError})
	_, err := oracle.Blackouts(context.Background(), "2026-1", "career-a", []string{"t1"})
	assert.Error(t, err)
}
