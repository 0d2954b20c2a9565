package services

import "go.uber.org/atomic"

// AppState tracks whether the app UI is in the foreground.
type AppState struct {
	foreground atomic.Bool
}

func NewAppState() *AppState {
	return &AppState{}
}

func (a *AppState) IsForeground() bool {
	return a.foreground.Load()
}

func (a *AppState) SetForeground(foreground bool) {
	a.foreground.Store(foreground)
}
