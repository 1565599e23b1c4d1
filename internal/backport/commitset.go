package backport

import "strings"

// CommitSet is an ordered list of commit identifiers without duplicates.
// The order is the order in which the commits must be replayed.
type CommitSet struct {
	shas []string
	seen map[string]struct{}
}

func NewCommitSet(shas ...string) *CommitSet {
	result := CommitSet{
		seen: make(map[string]struct{}, len(shas)),
	}

	for _, sha := range shas {
		result.Add(sha)
	}

	return &result
}

// Add appends a commit id to the set.
// It returns false if the id is already a member and the set is unchanged.
func (s *CommitSet) Add(sha string) bool {
	if _, exists := s.seen[sha]; exists {
		return false
	}

	s.seen[sha] = struct{}{}
	s.shas = append(s.shas, sha)

	return true
}

// SHAs returns the commit ids in replay order.
func (s *CommitSet) SHAs() []string {
	return s.shas
}

func (s *CommitSet) Len() int {
	return len(s.shas)
}

func (s *CommitSet) IsEmpty() bool {
	return len(s.shas) == 0
}

func (s *CommitSet) String() string {
	return strings.Join(s.shas, ", ")
}
