package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/joblynk/internal/logger"
	"github.com/yoockh/joblynk/internal/models"
	"github.com/yoockh/joblynk/internal/principal"
	"github.com/yoockh/joblynk/internal/utils"
)

type appFixture struct {
	svc      ApplicationService
	jobs     *fakeJobRepo
	apps     *fakeAppRepo
	activity *fakeActivityRepo
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()
	f := &appFixture{jobs: newFakeJobRepo(), activity: &fakeActivityRepo{}}
	f.apps = newFakeAppRepo(f.jobs)
	f.svc = NewApplicationService(f.apps, f.jobs, NewActivityService(f.activity, logger.Discard()))
	return f
}

func (f *appFixture) job(t *testing.T, recruiterID string) *models.Job {
	t.Helper()
	j := validJob(recruiterID, "Backend Engineer")
	j.Status = models.JobStatusActive
	require.NoError(t, f.jobs.Create(context.Background(), j))
	return j
}

func TestApplicationService_CreateOncePerPair(t *testing.T) {
	f := newAppFixture(t)
	ctx := principal.With(context.Background(), principal.Principal{UserID: "u-seek"})
	j := f.job(t, "r1")

	a, err := f.svc.Create(ctx, j.ID, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApplied, a.Status)
	assert.False(t, a.ApplicationDate.IsZero())

	_, err = f.svc.Create(ctx, j.ID, "s1")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
	assert.Equal(t, 409, utils.HTTPStatus(err))
	assert.Len(t, f.apps.apps, 1)

	// another seeker may still apply
	_, err = f.svc.Create(ctx, j.ID, "s2")
	require.NoError(t, err)

	require.Len(t, f.activity.events, 2)
	ev := f.activity.events[0]
	assert.Equal(t, models.ActivityApplicationCreated, ev.Action)
	assert.Equal(t, "r1", ev.RecruiterID)
	assert.Equal(t, "u-seek", ev.ActorID)
}

func TestApplicationService_CreateConstraintIsAuthoritative(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	j := f.job(t, "r1")

	_, err := f.svc.Create(ctx, j.ID, "s1")
	require.NoError(t, err)

	f.apps.skipExists = true
	_, err = f.svc.Create(ctx, j.ID, "s1")
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
	assert.Len(t, f.apps.apps, 1)
}

func TestApplicationService_CreateErrors(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "", "s1")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = f.svc.Create(ctx, "missing", "s1")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	assert.Empty(t, f.apps.apps)
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	j := f.job(t, "r1")

	a, err := f.svc.Create(ctx, j.ID, "s1")
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, a.ID, "Ghosted")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = f.svc.UpdateStatus(ctx, "missing", models.ApplicationHired)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	hired, err := f.svc.UpdateStatus(ctx, a.ID, models.ApplicationHired)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationHired, hired.Status)
	require.NotNil(t, hired.Job)
	assert.Equal(t, "r1", hired.Job.RecruiterID)

	// transitions are unguarded
	back, err := f.svc.UpdateStatus(ctx, a.ID, models.ApplicationApplied)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApplied, back.Status)

	last := f.activity.events[len(f.activity.events)-1]
	assert.Equal(t, models.ActivityApplicationStatusChanged, last.Action)
	assert.Equal(t, "Hired", last.From)
	assert.Equal(t, "Applied", last.To)

	page, err := f.svc.ListForSeeker(ctx, "s1", utils.Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Applications, 1)
	assert.Equal(t, models.ApplicationApplied, page.Applications[0].Status)
}

func TestApplicationService_ListForRecruiter(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	mine := f.job(t, "r1")
	theirs := f.job(t, "r2")

	for _, seeker := range []string{"s1", "s2", "s3"} {
		_, err := f.svc.Create(ctx, mine.ID, seeker)
		require.NoError(t, err)
	}
	_, err := f.svc.Create(ctx, theirs.ID, "s1")
	require.NoError(t, err)

	page, err := f.svc.ListForRecruiter(ctx, "r1", "", utils.Page{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Applications, 1)

	n, err := f.svc.RejectAllForJob(ctx, mine.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	rejected, err := f.svc.ListForRecruiter(ctx, "r1", models.ApplicationRejected, utils.Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, rejected.Total)

	other, err := f.svc.ListForRecruiter(ctx, "r2", models.ApplicationRejected, utils.Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, other.Total)
	assert.NotNil(t, other.Applications)

	_, err = f.svc.ListForRecruiter(ctx, "r1", "Ghosted", utils.Page{})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}
