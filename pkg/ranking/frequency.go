package ranking

import "sort"

type (
	//KeyPair is a two part grouping key
	KeyPair struct {
		First  string
		Second string
	}

	//PairCount is how often a KeyPair occurred
	PairCount struct {
		First  string `json:"first"`
		Second string `json:"second"`
		Count  int    `json:"count"`
	}
)

// PairFrequency counts every distinct pair without any cap. The result is
// ordered by the group key: First, then Second, both lexicographically.
func PairFrequency(pairs []KeyPair) []PairCount {
	counts := make(map[KeyPair]int)
	for _, p := range pairs {
		counts[p]++
	}

	out := make([]PairCount, 0, len(counts))
	for p, c := range counts {
		out = append(out, PairCount{First: p.First, Second: p.Second, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].First != out[j].First {
			return out[i].First < out[j].First
		}
		return out[i].Second < out[j].Second
	})
	return out
}
