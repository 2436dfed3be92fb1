// Package store holds the application state and applies events to it.
package store

import (
	"fmt"

	"poketimes/internal/models"
)

// Event is a discrete notification that may update the state.
type Event interface {
	fmt.Stringer
	event()
}

// PostsReceived carries the posts delivered by the loader.
type PostsReceived struct {
	Posts []models.Post
}

// ViewPost is raised when a post's view action is requested.
type ViewPost struct {
	ID int
}

// DeletePost is raised when a post's delete action is requested.
type DeletePost struct {
	ID int
}

func (PostsReceived) event() {}
func (ViewPost) event()      {}
func (DeletePost) event()    {}

func (e PostsReceived) String() string {
	return fmt.Sprintf("PostsReceived(%d)", len(e.Posts))
}

func (e ViewPost) String() string {
	return fmt.Sprintf("ViewPost(%d)", e.ID)
}

func (e DeletePost) String() string {
	return fmt.Sprintf("DeletePost(%d)", e.ID)
}
