// Package ranking builds top-N frequency rankings of categorical values.
package ranking

import "sort"

const (
	// OthersLabel names the synthetic entry that collects everything past the top N
	OthersLabel = "Others"
	// OthersTag is the category tag of the synthetic entry in tagged rankings
	OthersTag = "INFO"
)

type (
	//Entry is one ranked value and how often it occurred
	Entry struct {
		Label string `json:"label"`
		Count int    `json:"count"`
		// Tag is the category of the value, empty for untagged rankings
		Tag string `json:"tag,omitempty"`
		// Others marks the synthetic remainder entry
		Others bool `json:"others,omitempty"`
	}

	//List is a ranking ordered by descending count
	List []Entry

	//Pair is a value together with its category tag
	Pair struct {
		Key string
		Tag string
	}
)

// Rank counts the distinct keys and sorts them by descending count. Keys with
// equal counts keep the order in which they were first seen. When there are
// more than n distinct keys, the top n are kept and the rest is summed into a
// trailing Others entry. An n below one disables the cap.
func Rank(keys []string, n int) List {
	pairs := make([]Pair, len(keys))
	for i, key := range keys {
		pairs[i] = Pair{Key: key}
	}
	return rank(pairs, n, "")
}

// RankTagged is Rank for tagged values. Every key carries the tag it was first
// seen with, the Others entry is tagged OthersTag.
func RankTagged(pairs []Pair, n int) List {
	return rank(pairs, n, OthersTag)
}

// NonEmpty drops empty keys. Filtering has to happen before ranking so empty
// values neither take a top N slot nor inflate the Others entry.
func NonEmpty(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if key != "" {
			out = append(out, key)
		}
	}
	return out
}

func rank(pairs []Pair, n int, othersTag string) List {
	index := make(map[string]int)
	var counted List
	for _, p := range pairs {
		if i, ok := index[p.Key]; ok {
			counted[i].Count++
			continue
		}
		index[p.Key] = len(counted)
		counted = append(counted, Entry{Label: p.Key, Count: 1, Tag: p.Tag})
	}

	// stable so first-seen order breaks ties
	sort.SliceStable(counted, func(i, j int) bool {
		return counted[i].Count > counted[j].Count
	})

	if n < 1 || len(counted) <= n {
		return counted
	}

	rest := 0
	for _, e := range counted[n:] {
		rest += e.Count
	}
	top := make(List, n, n+1)
	copy(top, counted[:n])
	return append(top, Entry{Label: OthersLabel, Count: rest, Tag: othersTag, Others: true})
}

// Total sums the counts of every entry, including Others
func (l List) Total() int {
	total := 0
	for _, e := range l {
		total += e.Count
	}
	return total
}

// Truncated reports whether the list ends with an Others entry
func (l List) Truncated() bool {
	return len(l) > 0 && l[len(l)-1].Others
}

// Top returns the entries without the synthetic Others entry
func (l List) Top() List {
	if l.Truncated() {
		return l[:len(l)-1]
	}
	return l
}

// Labels returns the x values of the chart
func (l List) Labels() []string {
	labels := make([]string, len(l))
	for i, e := range l {
		labels[i] = e.Label
	}
	return labels
}

// Counts returns the y values of the chart
func (l List) Counts() []int {
	counts := make([]int, len(l))
	for i, e := range l {
		counts[i] = e.Count
	}
	return counts
}

// Tags returns the category of every entry
func (l List) Tags() []string {
	tags := make([]string, len(l))
	for i, e := range l {
		tags[i] = e.Tag
	}
	return tags
}
