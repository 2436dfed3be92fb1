// Package models defines the data structures shared by the loader, store and renderer.
package models

import "strconv"

// Post represents one remote post record.
type Post struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	ID       int    `json:"id"`
	AuthorID int    `json:"userId"`
}

// Path returns the placeholder link target for the post.
func (p Post) Path() string {
	return "/posts/" + strconv.Itoa(p.ID)
}
