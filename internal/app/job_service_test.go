package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/common"
)

func validPostJobInput() PostJobInput {
	return PostJobInput{
		Title:       "Backend Developer",
		Description: "Build and run the jobs API.",
		Location:    "Hyderabad",
		Category:    "Programming",
		Level:       "Intermediate",
		Salary:      80000,
	}
}

func TestPostJobStartsVisible(t *testing.T) {
	repo := newFakeJobRepo()
	svc := NewJobService(repo)
	companyID := common.NewUUID()

	created, err := svc.Post(context.Background(), companyID, validPostJobInput())
	require.NoError(t, err)
	assert.True(t, created.Visible)
	assert.Equal(t, companyID, created.CompanyID)

	listed, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestPostJobValidation(t *testing.T) {
	svc := NewJobService(newFakeJobRepo())

	for name, mutate := range map[string]func(*PostJobInput){
		"missing title":    func(in *PostJobInput) { in.Title = "" },
		"missing location": func(in *PostJobInput) { in.Location = "" },
		"zero salary":      func(in *PostJobInput) { in.Salary = 0 },
		"negative salary":  func(in *PostJobInput) { in.Salary = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			input := validPostJobInput()
			mutate(&input)
			_, err := svc.Post(context.Background(), common.NewUUID(), input)
			require.Error(t, err)
			assert.True(t, common.Is(err, common.CodeValidation))
		})
	}
}

func TestToggleVisibilityTwiceRestores(t *testing.T) {
	repo := newFakeJobRepo()
	svc := NewJobService(repo)
	companyID := common.NewUUID()

	created, err := svc.Post(context.Background(), companyID, validPostJobInput())
	require.NoError(t, err)

	hidden, err := svc.ToggleVisibility(context.Background(), created.ID, companyID)
	require.NoError(t, err)
	assert.False(t, hidden.Visible)

	listed, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)

	shown, err := svc.ToggleVisibility(context.Background(), created.ID, companyID)
	require.NoError(t, err)
	assert.True(t, shown.Visible)
}

func TestToggleVisibilityByNonOwner(t *testing.T) {
	repo := newFakeJobRepo()
	svc := NewJobService(repo)

	created, err := svc.Post(context.Background(), common.NewUUID(), validPostJobInput())
	require.NoError(t, err)

	_, err = svc.ToggleVisibility(context.Background(), created.ID, common.NewUUID())
	require.Error(t, err)
	assert.True(t, common.Is(err, common.CodeForbidden))
	assert.True(t, repo.byID[created.ID].Visible)
}

func TestDeleteJobByNonOwner(t *testing.T) {
	repo := newFakeJobRepo()
	svc := NewJobService(repo)
	companyID := common.NewUUID()

	created, err := svc.Post(context.Background(), companyID, validPostJobInput())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID, common.NewUUID())
	require.Error(t, err)
	assert.True(t, common.Is(err, common.CodeForbidden))

	require.NoError(t, svc.Delete(context.Background(), created.ID, companyID))
	_, err = svc.Get(context.Background(), created.ID)
	require.Error(t, err)
	assert.True(t, common.Is(err, common.CodeNotFound))
}
