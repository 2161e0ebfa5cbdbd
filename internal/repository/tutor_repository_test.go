package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTutorRepositoryListBySubject(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTutorRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "major_ids", "subject_ids", "levels", "pricing", "monthly_price", "semester_price",
		"teaching_mode", "badge", "last_active_at", "created_at", "updated_at",
	}).AddRow(
		"t1", "u9", "{maj1}", "{subj-algo}", "{3,4}",
		[]byte(`{"subj-algo":{"monthly":120,"semester":400}}`), 100.0, 350.0,
		"both", "verified", now, now, now,
	)
	mock.ExpectQuery("(?s)SELECT (.+) FROM tutor_profiles(.+)WHERE subject_ids @> ARRAY\\[\\$1\\] OR pricing -> \\$1 IS NOT NULL(.+)LIMIT 100").
		WithArgs("subj-algo").
		WillReturnRows(rows)

	tutors, err := repo.ListBySubject(context.Background(), "subj-algo", 0)
	require.NoError(t, err)
	require.Len(t, tutors, 1)

	tutor := tutors[0]
	assert.Equal(t, []string{"3", "4"}, []string(tutor.Levels))
	pricing := tutor.PricingFor("subj-algo")
	assert.Equal(t, float64(120), pricing.Monthly)

	fallback := tutor.PricingFor("subj-other")
	assert.Equal(t, float64(100), fallback.Monthly)
	assert.NoError(t, mock.ExpectationsWereMet())
}
