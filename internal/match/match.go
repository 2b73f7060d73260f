// Package match pairs items across two boards by the issue they track.
package match

import "ghprojsync/internal/service"

// Pair is a source item and the target item tracking the same issue.
type Pair struct {
	Source service.Item
	Target service.Item
}

// Result holds the pairs in source order and how many items on each side
// found no partner.
type Result struct {
	Pairs           []Pair
	UnmatchedSource int
	UnmatchedTarget int
}

// Items pairs every source item with the first target item, in fetch order,
// that has the same issue number, repository owner and repository name.
// Unmatched items are counted, not reported.
func Items(source, target []service.Item) Result {
	var res Result
	used := make([]bool, len(target))

	for _, s := range source {
		found := -1
		for i, t := range target {
			if sameIssue(s, t) {
				found = i
				break
			}
		}
		if found < 0 {
			res.UnmatchedSource++
			continue
		}
		used[found] = true
		res.Pairs = append(res.Pairs, Pair{Source: s, Target: target[found]})
	}

	for _, u := range used {
		if !u {
			res.UnmatchedTarget++
		}
	}
	return res
}

func sameIssue(a, b service.Item) bool {
	return a.IssueNumber == b.IssueNumber &&
		a.RepositoryOwner == b.RepositoryOwner &&
		a.RepositoryName == b.RepositoryName
}
