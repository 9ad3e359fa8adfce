package api

import (
	"github.com/stretchr/testify/mock"

	"github.com/ayusman/rockpaper/internal/app"
)

// mockController is a testify mock of Controller.
type mockController struct {
	mock.Mock
}

func (m *mockController) Start() error {
	return m.Called().Error(0)
}

func (m *mockController) Stop() {
	m.Called()
}

func (m *mockController) Advance() {
	m.Called()
}

func (m *mockController) IsRunning() bool {
	return m.Called().Bool(0)
}

func (m *mockController) Latest() app.Frame {
	return m.Called().Get(0).(app.Frame)
}

func (m *mockController) Err() error {
	return m.Called().Error(0)
}

func (m *mockController) Settings() app.Settings {
	return m.Called().Get(0).(app.Settings)
}

func (m *mockController) ApplySettings(s app.Settings) error {
	return m.Called(s).Error(0)
}

func (m *mockController) ResetSettings() (app.Settings, error) {
	args := m.Called()
	return args.Get(0).(app.Settings), args.Error(1)
}

var _ Controller = (*mockController)(nil)
