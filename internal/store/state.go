package store

import (
	"slices"

	"poketimes/internal/models"
)

// State is the application-visible data: the posts in the order received.
type State struct {
	Posts []models.Post
	// Loaded is set once a PostsReceived event has been applied.
	Loaded bool
}

// Empty returns the initial state.
func Empty() State {
	return State{}
}

// Loaded returns the state holding exactly posts.
func Loaded(posts []models.Post) State {
	return State{Posts: slices.Clone(posts), Loaded: true}
}

// HasPosts reports whether there is anything to show.
func (s State) HasPosts() bool {
	return len(s.Posts) > 0
}
