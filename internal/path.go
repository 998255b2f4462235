// Package internal holds helpers shared by the search strategies.
package internal

// ReconstructPath walks parent links back from goal until it reaches a state
// without a recorded parent, and returns the states in start-to-goal order.
// The parent relation must be acyclic.
func ReconstructPath[S comparable](parent map[S]S, goal S) []S {
	path := []S{goal}
	for current := goal; ; {
		previous, exists := parent[current]
		if !exists {
			break
		}
		path = append(path, previous)
		current = previous
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
