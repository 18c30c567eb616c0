package render

import "pledger/internal/domain/entity"

// FormPage carries the inline error, if any, for the auth and creation forms.
type FormPage struct {
	Error string
}

// DashboardPage lists the signed-in user's commitments.
type DashboardPage struct {
	Username    string
	Commitments []*entity.Commitment
}

// ResolvePage shows a single commitment with the resolve form.
type ResolvePage struct {
	Error      string
	Commitment *entity.Commitment
}

// ErrorPage is rendered for unexpected failures.
type ErrorPage struct {
	Status  int
	Message string
}
