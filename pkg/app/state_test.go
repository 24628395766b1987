package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestState_Login(t *testing.T) {
	s := NewState(time.Date(2025, 3, 17, 15, 0, 0, 0, time.UTC))
	assert.False(t, s.LoggedIn)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), s.Month)

	assert.ErrorIs(t, s.Login("demo", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, s.Login("admin", DemoPassword), ErrInvalidCredentials)
	assert.False(t, s.LoggedIn)

	assert.NoError(t, s.Login(DemoUser, DemoPassword))
	assert.True(t, s.LoggedIn)

	s.Logout()
	assert.False(t, s.LoggedIn)
}

func TestState_MonthNavigation(t *testing.T) {
	s := NewState(time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC))

	s.NextMonth()
	assert.Equal(t, "2025-01", s.Month.Format("2006-01"))

	s.NextMonth()
	s.NextMonth()
	assert.Equal(t, "2025-03", s.Month.Format("2006-01"))

	s.PrevMonth()
	assert.Equal(t, "2025-02", s.Month.Format("2006-01"))
}
