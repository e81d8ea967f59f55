package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestEnumValidity(t *testing.T) {
	assert.True(t, JobTypeInternship.Valid())
	assert.False(t, JobType("freelance").Valid())

	for _, s := range []JobStatus{JobStatusDraft, JobStatusActive, JobStatusExpired, JobStatusFilled} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, JobStatus("archived").Valid())

	assert.True(t, ApplicationHired.Valid())
	assert.False(t, ApplicationStatus("hired").Valid())

	assert.True(t, RoleRecruiter.Valid())
	assert.False(t, Role("admin").Valid())
}

func TestUserHasRole(t *testing.T) {
	var nilUser *User
	assert.False(t, nilUser.HasRole(RoleSeeker))

	r := RoleSeeker
	u := &User{Role: &r}
	assert.True(t, u.HasRole(RoleSeeker))
	assert.False(t, u.HasRole(RoleRecruiter))
}

func TestStringArrayRoundTrip(t *testing.T) {
	v, err := StringArray{"go", "sql"}.Value()
	assert.NoError(t, err)
	assert.Equal(t, `{"go","sql"}`, v)

	var got StringArray
	assert.NoError(t, got.Scan([]byte(`{go,sql}`)))
	assert.Equal(t, StringArray{"go", "sql"}, got)

	nilV, err := StringArray(nil).Value()
	assert.NoError(t, err)
	assert.Nil(t, nilV)
}

func TestModelsParseAsGormSchemas(t *testing.T) {
	cache := &sync.Map{}
	for _, m := range []any{&User{}, &Seeker{}, &Recruiter{}, &Job{}, &Application{}} {
		_, err := schema.Parse(m, cache, schema.NamingStrategy{})
		require.NoError(t, err, "%T", m)
	}

	s, err := schema.Parse(&Job{}, cache, schema.NamingStrategy{})
	require.NoError(t, err)
	skills := s.LookUpField("Skills")
	require.NotNil(t, skills)
	assert.Equal(t, schema.DataType("text[]"), skills.DataType)
}
