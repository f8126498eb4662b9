package dispatchers

import (
	"sort"
	"strings"
)

// levenshtein calculates the edit distance between two strings
func levenshtein(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

type similarity struct {
	name     string
	distance int
}

// FindSimilarCommands returns up to maxResults candidates within a small
// edit distance of input, closest first.
func FindSimilarCommands(input string, candidates []string, maxResults int) []string {
	if input == "" || maxResults <= 0 {
		return nil
	}

	const maxDistance = 3

	seen := make(map[string]bool)
	var found []similarity
	for _, name := range candidates {
		if seen[name] {
			continue
		}
		seen[name] = true
		dist := levenshtein(input, name)
		if dist <= maxDistance && dist > 0 {
			found = append(found, similarity{name: name, distance: dist})
		}
	}

	// Sort by distance (ascending), then alphabetically for stability
	sort.Slice(found, func(i, j int) bool {
		if found[i].distance != found[j].distance {
			return found[i].distance < found[j].distance
		}
		return found[i].name < found[j].name
	})

	if len(found) > maxResults {
		found = found[:maxResults]
	}

	result := make([]string, len(found))
	for i, s := range found {
		result[i] = s.name
	}
	return result
}

// CollectAllCommands returns the literal name of every registered command,
// e.g. "config get", deduplicated in tree order.
func CollectAllCommands(root *Node) []string {
	seen := make(map[string]bool)
	var names []string
	root.Walk(func(n *Node) {
		for _, leaf := range n.Leaves {
			if name := leaf.Name(); !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	})
	return names
}
