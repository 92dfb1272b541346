package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
)

func newApplicationRepoMock(t *testing.T) (*ApplicationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewApplicationRepository(db), mock
}

func TestAppendInsertsPendingRecord(t *testing.T) {
	repo, mock := newApplicationRepoMock(t)
	jobID := common.NewUUID()

	mock.ExpectExec(`INSERT INTO applications`).
		WithArgs(sqlmock.AnyArg(), jobID, "u1", "https://files.example.com/resumes/r.pdf", application.StatusPending, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec, err := repo.Append(context.Background(), application.Record{
		JobID:  jobID,
		UserID: "u1",
		Resume: "https://files.example.com/resumes/r.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, application.StatusPending, rec.Status)
	assert.NotEmpty(t, rec.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A conflicting pair inserts zero rows instead of erroring; that outcome
// must surface as the duplicate-application conflict.
func TestAppendZeroRowsMeansAlreadyApplied(t *testing.T) {
	repo, mock := newApplicationRepoMock(t)

	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Append(context.Background(), application.Record{JobID: common.NewUUID(), UserID: "u1", Resume: "r"})
	require.Error(t, err)
	assert.True(t, common.Is(err, common.CodeConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendForeignKeyViolations(t *testing.T) {
	cases := []struct {
		name       string
		constraint string
		wantCode   common.Code
	}{
		{"missing job", "applications_job_id_fkey", common.CodeNotFound},
		{"missing user", "applications_user_id_fkey", common.CodeUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newApplicationRepoMock(t)
			mock.ExpectExec(`INSERT INTO applications`).
				WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: tc.constraint})

			_, err := repo.Append(context.Background(), application.Record{JobID: common.NewUUID(), UserID: "u1", Resume: "r"})
			require.Error(t, err)
			assert.True(t, common.Is(err, tc.wantCode))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdateStatusUnknownPair(t *testing.T) {
	repo, mock := newApplicationRepoMock(t)
	jobID := common.NewUUID()

	mock.ExpectExec(`UPDATE applications SET status`).
		WithArgs(application.StatusAccepted, jobID, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), jobID, "ghost", application.StatusAccepted)
	require.Error(t, err)
	assert.True(t, common.Is(err, common.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusExistingPair(t *testing.T) {
	repo, mock := newApplicationRepoMock(t)
	jobID := common.NewUUID()

	mock.ExpectExec(`UPDATE applications SET status`).
		WithArgs(application.StatusRejected, jobID, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), jobID, "u1", application.StatusRejected))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserScansRows(t *testing.T) {
	repo, mock := newApplicationRepoMock(t)
	jobID := common.NewUUID()
	companyID := common.NewUUID()
	appliedAt := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(`SELECT j.id, j.title, j.location`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "location", "company_id", "name", "image", "status", "applied_at"}).
			AddRow(jobID.String(), "Frontend Developer", "Bangalore", companyID.String(), "Acme", "https://files.example.com/logos/a.png", "Pending", appliedAt))

	items, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, jobID, items[0].JobID)
	assert.Equal(t, "Acme", items[0].Company.Name)
	assert.Equal(t, application.StatusPending, items[0].Status)
	assert.Equal(t, appliedAt, items[0].AppliedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
