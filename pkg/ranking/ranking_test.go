package ranking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankFifteenDistinctIPs(t *testing.T) {
	var ips []string
	for i := 0; i < 15; i++ {
		ips = append(ips, fmt.Sprintf("10.0.0.%d", i))
	}

	list := Rank(ips, 10)
	require.Len(t, list, 11)
	last := list[10]
	assert.Equal(t, OthersLabel, last.Label)
	assert.Equal(t, 5, last.Count)
	assert.True(t, last.Others)
	assert.Equal(t, len(ips), list.Total())
	assert.True(t, list.Truncated())
	assert.Len(t, list.Top(), 10)

	// every count is one, so first-seen order is kept
	for i := 0; i < 10; i++ {
		assert.Equal(t, ips[i], list[i].Label)
	}
}

func TestRankWithoutTruncation(t *testing.T) {
	keys := []string{"b", "a", "b", "c", "a", "b"}
	list := Rank(keys, 10)

	assert.Equal(t, List{
		{Label: "b", Count: 3},
		{Label: "a", Count: 2},
		{Label: "c", Count: 1},
	}, list)
	assert.False(t, list.Truncated())
	assert.Equal(t, []string{"b", "a", "c"}, list.Labels())
	assert.Equal(t, []int{3, 2, 1}, list.Counts())
}

func TestRankExactlyN(t *testing.T) {
	keys := []string{"a", "b", "c"}
	list := Rank(keys, 3)
	assert.Len(t, list, 3, "n distinct keys do not produce an Others entry")
	assert.False(t, list.Truncated())
}

func TestRankTieBreakFirstSeen(t *testing.T) {
	keys := []string{"z", "y", "x", "y", "z", "x", "w"}
	list := Rank(keys, 2)
	require.Len(t, list, 3)
	assert.Equal(t, "z", list[0].Label)
	assert.Equal(t, "y", list[1].Label)
	assert.Equal(t, Entry{Label: OthersLabel, Count: 3, Others: true}, list[2])
}

func TestRankNoCap(t *testing.T) {
	keys := []string{"a", "b", "c", "d"}
	assert.Len(t, Rank(keys, 0), 4)
	assert.Len(t, Rank(keys, -1), 4)
	assert.Empty(t, Rank(nil, 10))
}

func TestRankTagged(t *testing.T) {
	var pairs []Pair
	for i := 0; i < 12; i++ {
		for j := 0; j <= i; j++ {
			pairs = append(pairs, Pair{Key: fmt.Sprintf("rule-%02d", i), Tag: "HIGH"})
		}
	}
	pairs = append(pairs, Pair{Key: "rule-11", Tag: "LOW"})

	list := RankTagged(pairs, 10)
	require.Len(t, list, 11)
	assert.Equal(t, "rule-11", list[0].Label)
	assert.Equal(t, 13, list[0].Count)
	assert.Equal(t, "HIGH", list[0].Tag, "the tag is the one seen first")
	assert.Equal(t, OthersTag, list[10].Tag)
	assert.Equal(t, 1+2, list[10].Count, "rule-00 and rule-01 are collapsed")
	assert.Equal(t, len(pairs), list.Total())
	assert.Len(t, list.Tags(), 11)
}

func TestNonEmptyBeforeRanking(t *testing.T) {
	countries := []string{"", "", "", "Russia", "Germany", "", "Russia"}
	list := Rank(NonEmpty(countries), 1)
	require.Len(t, list, 2)
	assert.Equal(t, Entry{Label: "Russia", Count: 2}, list[0])
	assert.Equal(t, 1, list[1].Count, "empty values never reach the Others entry")
}

func TestPairFrequency(t *testing.T) {
	pairs := []KeyPair{
		{"sqli", "curl/7.1"},
		{"xss", "Mozilla/5.0"},
		{"sqli", "curl/7.1"},
		{"sqli", ""},
		{"sqli", "Mozilla/5.0"},
	}
	assert.Equal(t, []PairCount{
		{First: "sqli", Second: "", Count: 1},
		{First: "sqli", Second: "Mozilla/5.0", Count: 1},
		{First: "sqli", Second: "curl/7.1", Count: 2},
		{First: "xss", Second: "Mozilla/5.0", Count: 1},
	}, PairFrequency(pairs))
	assert.Empty(t, PairFrequency(nil))
}
