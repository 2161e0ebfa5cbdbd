package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moltaqa/moltaqa-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func profileRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "college_id", "major_id", "level", "subject_ids", "study_modes",
		"status_for_partners", "status_for_help", "visible", "last_active_at", "created_at", "updated_at",
		"full_name", "gender", "major_name", "college_name",
	})
}

func TestProfileRepositoryFindByUserID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	now := time.Now()
	rows := profileRows().AddRow(
		"p1", "u1", "col1", "maj1", "3",
		"{subj-algo}", "{online}",
		"needExplain", "", true, nil, now, now,
		"Student One", "F", "Computer Science", "Engineering",
	)
	mock.ExpectQuery("(?s)SELECT (.+) FROM student_profiles p").
		WithArgs("u1").
		WillReturnRows(rows)

	detail, err := repo.FindByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "p1", detail.ID)
	assert.Equal(t, "maj1", detail.MajorID)
	assert.Equal(t, []string{"subj-algo"}, []string(detail.SubjectIDs))
	require.NotNil(t, detail.MajorName)
	assert.Equal(t, "Computer Science", *detail.MajorName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepositoryListVisible(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	now := time.Now()
	rows := profileRows().AddRow(
		"p1", "u1", "col1", "maj1", "3",
		"{}", "{}",
		"", "", true, nil, now, now,
		"Student One", "F", nil, nil,
	)
	mock.ExpectQuery("(?s)SELECT (.+) FROM student_profiles p(.+)WHERE p.visible = TRUE AND u.active = TRUE AND p.major_id = \\$1 AND p.user_id <> \\$2 ORDER BY p.created_at DESC LIMIT 20 OFFSET 0").
		WithArgs("maj1", "searcher").
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT\\(p.id\\) FROM student_profiles p").
		WithArgs("maj1", "searcher").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	profiles, total, err := repo.ListVisible(context.Background(), models.ProfileFilter{
		MajorID:       "maj1",
		VisibleOnly:   true,
		ExcludeUserID: "searcher",
		Page:          1,
		PageSize:      20,
	})
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepositoryListVisibleCapsPageSize(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	mock.ExpectQuery("(?s)SELECT (.+) FROM student_profiles p(.+)LIMIT 50 OFFSET 0").
		WillReturnRows(profileRows())
	mock.ExpectQuery("SELECT COUNT\\(p.id\\) FROM student_profiles p").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, _, err := repo.ListVisible(context.Background(), models.ProfileFilter{PageSize: 500})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepositoryListRecent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	now := time.Now()
	rows := profileRows().AddRow(
		"p1", "u1", "col1", "maj1", "3",
		"{}", "{}",
		"", "", true, nil, now, now,
		"Student One", "F", nil, nil,
	)
	mock.ExpectQuery("(?s)SELECT (.+) FROM student_profiles p(.+)ORDER BY p.created_at DESC LIMIT 6").
		WillReturnRows(rows)

	profiles, err := repo.ListRecent(context.Background(), 6)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	mock.ExpectExec("INSERT INTO student_profiles").
		WillReturnResult(sqlmock.NewResult(0, 1))

	profile := &models.StudentProfile{
		UserID:     "u1",
		CollegeID:  "col1",
		MajorID:    "maj1",
		Level:      "3",
		SubjectIDs: pq.StringArray{"subj-algo"},
		StudyModes: pq.StringArray{"online"},
		Visible:    true,
	}
	err := repo.Upsert(context.Background(), profile)
	require.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
	assert.False(t, profile.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepositoryTouchActivity(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	ts := time.Now().UTC()
	mock.ExpectExec("UPDATE student_profiles SET last_active_at").
		WithArgs(ts, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.TouchActivity(context.Background(), "u1", ts))
	assert.NoError(t, mock.ExpectationsWereMet())
}
