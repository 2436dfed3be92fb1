package store

// Reduce applies event to state and returns the resulting state.
// PostsReceived replaces the posts wholesale; ViewPost and DeletePost
// leave the state untouched.
func Reduce(state State, event Event) State {
	switch e := event.(type) {
	case PostsReceived:
		return Loaded(e.Posts)
	case ViewPost, DeletePost:
		return state
	}

	return state
}
