// Package stats computes the chart series shown alongside the career list.
package stats

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/kailas-cloud/careercompass/internal/domain/career"
)

// DefaultTopN is the number of skills kept when topN <= 0.
const DefaultTopN = 15

// Count is one bar of a chart.
type Count struct {
	Label string
	Count int
}

// Growth summarizes numeric career_growth_score values.
type Growth struct {
	Parsed int
	Mean   float64
	Min    float64
	Max    float64
}

// Summary holds every chart series for a snapshot.
type Summary struct {
	Total        int
	Domains      []Count
	Skills       []Count
	DemandLevels []Count
	Growth       Growth
}

// Compute builds the summary for a snapshot. Skills are cut to the topN most frequent.
func Compute(s career.Snapshot, topN int) Summary {
	if topN <= 0 {
		topN = DefaultTopN
	}

	domains := newCounter()
	skills := newCounter()
	demand := newCounter()
	var growth Growth
	var sum float64

	for _, r := range s.Records() {
		for _, d := range splitList(r.DomainIndustries()) {
			domains.add(d)
		}
		for _, sk := range splitList(r.RequiredSkills()) {
			skills.add(sk)
		}
		if lvl := strings.TrimSpace(r.Value(career.FieldDemandLevel)); lvl != "" {
			demand.add(lvl)
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(r.Value(career.FieldGrowthScore)), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if growth.Parsed == 0 || v < growth.Min {
			growth.Min = v
		}
		if growth.Parsed == 0 || v > growth.Max {
			growth.Max = v
		}
		sum += v
		growth.Parsed++
	}
	if growth.Parsed > 0 {
		growth.Mean = sum / float64(growth.Parsed)
	}

	topSkills := skills.sorted()
	if len(topSkills) > topN {
		topSkills = topSkills[:topN]
	}

	return Summary{
		Total:        s.Len(),
		Domains:      domains.sorted(),
		Skills:       topSkills,
		DemandLevels: demand.sorted(),
		Growth:       growth,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// counter groups labels case-insensitively and keeps the first spelling seen.
type counter struct {
	order  []string
	labels map[string]string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{labels: map[string]string{}, counts: map[string]int{}}
}

func (c *counter) add(label string) {
	key := strings.ToLower(label)
	if _, ok := c.labels[key]; !ok {
		c.labels[key] = label
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// sorted returns counts by descending count, then label.
func (c *counter) sorted() []Count {
	out := make([]Count, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, Count{Label: c.labels[k], Count: c.counts[k]})
	}
	slices.SortStableFunc(out, func(a, b Count) int {
		if n := cmp.Compare(b.Count, a.Count); n != 0 {
			return n
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}
