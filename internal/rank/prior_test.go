package rank

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func permutations(n int) [][]int {
	if n == 1 {
		return [][]int{{1}}
	}
	var out [][]int
	for _, sub := range permutations(n - 1) {
		for i := 0; i <= len(sub); i++ {
			perm := make([]int, 0, n)
			perm = append(perm, sub[:i]...)
			perm = append(perm, n)
			perm = append(perm, sub[i:]...)
			out = append(out, perm)
		}
	}
	return out
}

func TestPriorScores(t *testing.T) {
	for _, ranks := range permutations(5) {
		scores := PriorScores(ranks)
		if len(scores) != len(ranks) {
			t.Fatalf("expected %d scores, got %d", len(ranks), len(scores))
		}

		if mean := stat.Mean(scores, nil); math.Abs(mean) > 1e-12 {
			t.Errorf("ranks %v: expected mean 0, got %v", ranks, mean)
		}

		best := 0
		for i, r := range ranks {
			if r < ranks[best] {
				best = i
			}
		}
		for i, s := range scores {
			if i != best && s >= scores[best] {
				t.Errorf("ranks %v: expected rank 1 to have the largest score, got scores %v", ranks, scores)
				break
			}
		}
	}
}

// The 2*stddev scaling leaves the scores with a sample standard deviation of
// exactly one half, independent of league size.
func TestPriorScoresScale(t *testing.T) {
	for n := 2; n <= 32; n *= 2 {
		ranks := make([]int, n)
		for i := range ranks {
			ranks[i] = i + 1
		}
		scores := PriorScores(ranks)
		_, stddev := stat.MeanStdDev(scores, nil)
		if math.Abs(stddev-0.5) > 1e-12 {
			t.Errorf("n=%d: expected stddev 0.5, got %v", n, stddev)
		}
	}
}
