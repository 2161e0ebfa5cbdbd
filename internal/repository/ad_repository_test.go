package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moltaqa/moltaqa-api/internal/models"
)

func adRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "creator_id", "ad_type", "subject_id", "description", "options", "active", "created_at",
		"creator_name", "creator_gender", "creator_major_id", "creator_level", "last_active_at",
		"creator_college", "creator_major",
	})
}

func TestAdRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAdRepository(db)

	now := time.Now()
	rows := adRows().AddRow(
		"ad1", "u2", "partner", "subj-algo", "looking for a study partner",
		[]byte(`{"partner":{"readyToHelp":true,"mode":"online"}}`), true, now,
		"Candidate", "M", "maj1", "3", now,
		"Engineering", "Computer Science",
	)
	mock.ExpectQuery("(?s)SELECT (.+) FROM ads a(.+)WHERE 1=1 AND a.ad_type = \\$1 AND a.subject_id = \\$2 AND a.creator_id <> \\$3 AND a.active = TRUE ORDER BY a.created_at DESC LIMIT 100").
		WithArgs(models.AdTypePartner, "subj-algo", "u1").
		WillReturnRows(rows)

	ads, err := repo.List(context.Background(), models.AdFilter{
		AdType:         models.AdTypePartner,
		SubjectID:      "subj-algo",
		ExcludeCreator: "u1",
		ActiveOnly:     true,
	})
	require.NoError(t, err)
	require.Len(t, ads, 1)

	ad := ads[0]
	assert.Equal(t, "ad1", ad.ID)
	require.NotNil(t, ad.Options.Partner)
	assert.True(t, ad.Options.Partner.ReadyToHelp)
	assert.Equal(t, "online", ad.Options.Partner.Mode)
	require.NotNil(t, ad.CreatorMajorID)
	assert.Equal(t, "maj1", *ad.CreatorMajorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdRepositoryListCapsLimit(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAdRepository(db)

	mock.ExpectQuery("(?s)SELECT (.+) FROM ads a(.+)LIMIT 100").
		WillReturnRows(adRows())

	_, err := repo.List(context.Background(), models.AdFilter{Limit: 5000})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAdRepository(db)

	mock.ExpectExec("INSERT INTO ads").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ad := &models.Ad{
		CreatorID: "u1",
		AdType:    models.AdTypeHelp,
		SubjectID: "subj-algo",
		Options: models.AdOptions{
			Help: &models.HelpOptions{HelpSignals: models.HelpSignals{CanExplain: true}},
		},
		Active: true,
	}
	err := repo.Create(context.Background(), ad)
	require.NoError(t, err)
	assert.NotEmpty(t, ad.ID)
	assert.False(t, ad.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAdRepository(db)

	mock.ExpectExec("DELETE FROM ads WHERE id = \\$1 AND creator_id = \\$2").
		WithArgs("ad1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.Delete(context.Background(), "ad1", "u1")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestAdRepositoryDeleteNotOwned(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAdRepository(db)

	mock.ExpectExec("DELETE FROM ads WHERE id = \\$1 AND creator_id = \\$2").
		WithArgs("ad1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), "ad1", "intruder")
	require.NoError(t, err)
	assert.False(t, deleted)
}
