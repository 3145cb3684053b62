package garden

// Goal fires once when the tree count first reaches Target. A plant counts
// as soon as it is promoted to a tree.
type Goal struct {
	Target    int
	OnReached func(trees int)

	reached bool
}

// Check compares the current tree count with the target and reports whether
// the goal fired on this call.
func (g *Goal) Check(trees int) bool {
	if g.reached || g.Target <= 0 || trees < g.Target {
		return false
	}
	g.reached = true
	if g.OnReached != nil {
		g.OnReached(trees)
	}
	return true
}

// Reached reports whether the goal has fired.
func (g *Goal) Reached() bool { return g.reached }
