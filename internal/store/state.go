// Package store holds the application's state containers: the session,
// the product cache and the task list. Each container owns its collection
// and hands out copies.
package store

import "github.com/tgienger/crmdash/internal/api"

// State groups the containers passed to the views
type State struct {
	Auth     *AuthStore
	Products *ProductStore
	Tasks    *TaskStore
}

// Service is everything the remote containers need from the API client
type Service interface {
	Authenticator
	ProductService
}

// New wires the containers to svc
func New(svc Service) *State {
	return &State{
		Auth:     NewAuthStore(svc),
		Products: NewProductStore(svc),
		Tasks:    NewTaskStore(),
	}
}

var _ Service = (*api.Client)(nil)
