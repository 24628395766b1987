package app

import (
	"errors"
	"time"

	"github.com/unowned-ai/eduquest/pkg/calendar"
)

// Demo credentials accepted by Login.
const (
	DemoUser     = "demo"
	DemoPassword = "eduquest"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// State is the front-end session: whether the user is logged in and which
// month the calendar shows. It is owned by one front-end and never shared.
type State struct {
	LoggedIn bool      `json:"logged_in" yaml:"logged_in"`
	Month    time.Time `json:"month" yaml:"month"`
}

// NewState starts logged out on the month of now.
func NewState(now time.Time) *State {
	return &State{Month: calendar.FirstOfMonth(now)}
}

func (s *State) Login(user, password string) error {
	if user != DemoUser || password != DemoPassword {
		return ErrInvalidCredentials
	}
	s.LoggedIn = true
	return nil
}

func (s *State) Logout() {
	s.LoggedIn = false
}

func (s *State) NextMonth() {
	s.Month = calendar.ShiftMonth(s.Month, 1)
}

func (s *State) PrevMonth() {
	s.Month = calendar.ShiftMonth(s.Month, -1)
}
