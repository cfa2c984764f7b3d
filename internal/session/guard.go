package session

// guard is an ownership token for one kind of request. Only the update
// goroutine touches it, so no locking is needed.
type guard struct {
	name string
	held bool
}

// acquire takes the token. It returns ok=false when the token is already
// held. The returned release func is safe to call more than once.
func (g *guard) acquire() (release func(), ok bool) {
	if g.held {
		return nil, false
	}
	g.held = true

	released := false
	return func() {
		if released {
			return
		}
		released = true
		g.held = false
	}, true
}

func (g *guard) active() bool {
	return g.held
}
