// Package ranker orders a post collection for display. It is stateless:
// every call re-evaluates against the supplied clock, so age-sensitive views
// shift as time passes without any cache to invalidate.
package ranker

import (
	"math"
	"sort"
	"time"

	"humordrop/feed"
	"humordrop/scoring"
)

// Sort selects one of the three feed orderings.
type Sort string

const (
	SortHot      Sort = "Hot"
	SortNew      Sort = "New"
	SortTopToday Sort = "Top Today"
)

// Hot-ranking gravity: score decays with (ageHours+2)^1.8. The +2 offset
// keeps brand-new posts from dividing by a near-zero age.
const (
	hotGravity   = 1.8
	hotAgeOffset = 2.0
)

// Options configure one ranking pass. A zero Category means no filter; a
// zero Now means time.Now().
type Options struct {
	Sort     Sort
	Category feed.Category
	Now      time.Time
}

// Rank returns a new ordered slice; the input is never reordered. The
// category filter applies before sorting in every mode, and all sorts are
// stable so equal keys keep their incoming order.
func Rank(posts []*feed.Post, opts Options) []*feed.Post {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	out := make([]*feed.Post, 0, len(posts))
	for _, p := range posts {
		if p == nil {
			continue
		}
		if opts.Category != "" && p.Category != opts.Category {
			continue
		}
		out = append(out, p)
	}

	switch opts.Sort {
	case SortNew:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Created().After(out[j].Created())
		})
	case SortTopToday:
		cutoff := now.Add(-24 * time.Hour)
		recent := out[:0]
		for _, p := range out {
			if p.Created().After(cutoff) {
				recent = append(recent, p)
			}
		}
		out = recent
		sort.SliceStable(out, func(i, j int) bool {
			return scoring.ScorePost(out[i]) > scoring.ScorePost(out[j])
		})
	default: // SortHot
		hot := make(map[string]float64, len(out))
		for _, p := range out {
			hot[p.ID] = hotScore(p, now)
		}
		sort.SliceStable(out, func(i, j int) bool {
			return hot[out[i].ID] > hot[out[j].ID]
		})
	}
	return out
}

// hotScore divides the humor score by a super-linear age decay, so old
// high scorers eventually sink below fresh moderate scorers.
func hotScore(p *feed.Post, now time.Time) float64 {
	age := now.Sub(p.Created()).Hours()
	if age < 0 {
		age = 0
	}
	return float64(scoring.ScorePost(p)) / math.Pow(age+hotAgeOffset, hotGravity)
}
