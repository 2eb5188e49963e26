// FILE: pkg/rag/rerank/reranker.go
// PURPOSE: Turn the noisy hybrid-search pool into a small, diverse context window

package rerank

import (
	"sort"
	"strings"

	"cv-insight-be/internal/entity"
	"cv-insight-be/pkg/rag/person"
)

const (
	// TopN is the size of the final context window.
	TopN = 25

	// MinPersons is the diversity guarantee for general-mode queries: when
	// the pool holds at least this many distinct persons, so does the result.
	MinPersons = 5

	// Per-person quota floors. The scarce floor applies when fewer than
	// MinPersons distinct persons exist, so the quota still fills TopN.
	quotaFloor       = 3
	quotaFloorScarce = 5

	// Candidate pool sizes requested from the search index per query mode.
	// General queries need a large pool because diversity selection below
	// discards most of it.
	PoolSizeSpecific = 25
	PoolSizeGeneral  = 200

	nameMatchBoost    = 0.3
	contentMatchBoost = 0.2
)

// Selection is the re-ranker output: an ordered context window plus the
// counters surfaced for observability and tests.
type Selection struct {
	Candidates      []*entity.Candidate
	InitialCount    int
	FilteredCount   int
	DistinctPersons int
}

// Reranker filters, boosts and bounds a candidate pool. Stateless and safe
// for concurrent use.
type Reranker struct {
	topN       int
	minPersons int
}

func New() *Reranker {
	return &Reranker{topN: TopN, minPersons: MinPersons}
}

// Rerank applies the mode-appropriate strategy. An empty result is not an
// error: the caller is expected to answer "insufficient information".
func (r *Reranker) Rerank(qc person.QueryContext, pool []*entity.Candidate) Selection {
	if qc.Mode == person.ModeSpecific && qc.TargetPerson != "" {
		return r.rerankSpecific(qc.TargetPerson, pool)
	}
	return r.rerankGeneral(pool)
}

// rerankSpecific keeps only candidates that mention the target person in
// their name metadata or raw content, then boosts by how many name tokens
// matched.
func (r *Reranker) rerankSpecific(target string, pool []*entity.Candidate) Selection {
	sel := Selection{InitialCount: len(pool)}
	tokens := person.Tokens(target)

	var survivors []*entity.Candidate
	for _, cand := range pool {
		if cand.Chunk == nil || strings.TrimSpace(cand.Chunk.Content) == "" {
			continue
		}
		nameMatches := countTokenMatches(tokens, person.Normalize(cand.Chunk.PersonName))
		contentMatches := countTokenMatches(tokens, person.Normalize(cand.Chunk.Content))
		if nameMatches == 0 && contentMatches == 0 {
			continue
		}
		cand.AdjustedScore = cand.Score * (1 + nameMatchBoost*float64(nameMatches) + contentMatchBoost*float64(contentMatches))
		survivors = append(survivors, cand)
	}
	sel.FilteredCount = len(survivors)

	if distinctPersonCount(survivors) <= 1 {
		// Single-person pool: the boost cannot change relative order in a
		// meaningful way, return the top N by original score.
		sortByScore(survivors)
	} else {
		sort.SliceStable(survivors, func(i, j int) bool {
			return survivors[i].AdjustedScore > survivors[j].AdjustedScore
		})
	}

	sel.Candidates = truncate(survivors, r.topN)
	sel.DistinctPersons = distinctPersonCount(sel.Candidates)
	return sel
}

// rerankGeneral retains every non-empty candidate and walks persons ranked
// by chunk count, pulling a per-person quota, so the final window spans at
// least MinPersons distinct persons whenever the pool allows it.
func (r *Reranker) rerankGeneral(pool []*entity.Candidate) Selection {
	sel := Selection{InitialCount: len(pool)}

	var survivors []*entity.Candidate
	for _, cand := range pool {
		if cand.Chunk == nil || strings.TrimSpace(cand.Chunk.Content) == "" {
			continue
		}
		survivors = append(survivors, cand)
	}
	sel.FilteredCount = len(survivors)
	sortByScore(survivors)

	groups := groupByPerson(survivors)
	if len(groups) <= 1 {
		sel.Candidates = truncate(survivors, r.topN)
		sel.DistinctPersons = distinctPersonCount(sel.Candidates)
		return sel
	}

	quota := r.personQuota(len(groups))

	var pulled []*entity.Candidate
	contributed := 0
	for _, g := range rankGroups(groups) {
		take := quota
		if take > len(g.candidates) {
			take = len(g.candidates)
		}
		pulled = append(pulled, g.candidates[:take]...)
		contributed++

		if contributed >= r.minPersons && len(pulled) >= r.topN {
			break
		}
	}

	// Fill any remaining slots by score so a thin walk still yields a full
	// window when the pool has enough chunks.
	if len(pulled) < r.topN {
		pulled = topUp(pulled, survivors, r.topN)
	}

	sortByScore(pulled)
	sel.Candidates = truncate(pulled, r.topN)
	sel.DistinctPersons = distinctPersonCount(sel.Candidates)
	return sel
}

// personQuota computes how many chunks each person may contribute. The
// floor is raised when fewer than MinPersons distinct persons exist, so the
// available persons can still fill the window.
func (r *Reranker) personQuota(distinct int) int {
	floor := quotaFloor
	if distinct < r.minPersons {
		floor = quotaFloorScarce
	}
	quota := r.topN / distinct
	if quota < floor {
		quota = floor
	}
	return quota
}

type personGroup struct {
	name       string
	candidates []*entity.Candidate // sorted by score desc
}

func groupByPerson(candidates []*entity.Candidate) map[string][]*entity.Candidate {
	groups := make(map[string][]*entity.Candidate)
	for _, cand := range candidates {
		key := person.Normalize(cand.Chunk.PersonName)
		groups[key] = append(groups[key], cand)
	}
	return groups
}

// rankGroups orders persons by chunk count descending (a proxy for depth of
// match), breaking ties by best score, then name, so selection stays
// deterministic.
func rankGroups(groups map[string][]*entity.Candidate) []personGroup {
	ranked := make([]personGroup, 0, len(groups))
	for name, cands := range groups {
		ranked = append(ranked, personGroup{name: name, candidates: cands})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if len(ranked[i].candidates) != len(ranked[j].candidates) {
			return len(ranked[i].candidates) > len(ranked[j].candidates)
		}
		if ranked[i].candidates[0].Score != ranked[j].candidates[0].Score {
			return ranked[i].candidates[0].Score > ranked[j].candidates[0].Score
		}
		return ranked[i].name < ranked[j].name
	})
	return ranked
}

func topUp(pulled, survivors []*entity.Candidate, n int) []*entity.Candidate {
	seen := make(map[*entity.Candidate]bool, len(pulled))
	for _, cand := range pulled {
		seen[cand] = true
	}
	for _, cand := range survivors {
		if len(pulled) >= n {
			break
		}
		if !seen[cand] {
			pulled = append(pulled, cand)
		}
	}
	return pulled
}

func countTokenMatches(tokens []string, haystack string) int {
	matches := 0
	for _, token := range tokens {
		if strings.Contains(haystack, token) {
			matches++
		}
	}
	return matches
}

func distinctPersonCount(candidates []*entity.Candidate) int {
	seen := make(map[string]bool)
	for _, cand := range candidates {
		seen[person.Normalize(cand.Chunk.PersonName)] = true
	}
	return len(seen)
}

func sortByScore(candidates []*entity.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

func truncate(candidates []*entity.Candidate, n int) []*entity.Candidate {
	if len(candidates) > n {
		return candidates[:n]
	}
	return candidates
}
