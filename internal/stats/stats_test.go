package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountByIsTotalOverDomain(t *testing.T) {
	type item struct{ status string }
	domain := []string{"A", "B", "C"}

	items := []item{{"A"}, {"A"}, {"C"}}
	counts := CountBy(items, domain, func(i item) string { return i.status })

	assert.Equal(t, map[string]int{"A": 2, "B": 0, "C": 1}, counts)
}

func TestCountByEmptyInput(t *testing.T) {
	domain := []string{"X", "Y"}
	counts := CountBy(nil, domain, func(s string) string { return s })

	assert.Equal(t, map[string]int{"X": 0, "Y": 0}, counts)
}

func TestCountBySumsToInputLength(t *testing.T) {
	domain := []string{"A"}
	counts := CountBy([]string{"A", "Z"}, domain, func(s string) string { return s })

	assert.Equal(t, 1, counts["A"])
	assert.Equal(t, 1, counts["Z"], "keys outside the domain are still counted")

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, 2, total)
}
