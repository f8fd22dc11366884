// Package scoring converts raw reaction tallies into humor scores ("aura")
// and maps aggregate scores onto rank titles.
package scoring

import (
	"sort"
	"time"

	"humordrop/feed"
)

// ScorePost returns the weighted reaction total for a post: for every
// reaction entry, the type's point weight times the number of users holding
// it. Unknown reaction types contribute zero.
func ScorePost(p *feed.Post) int {
	if p == nil {
		return 0
	}
	total := 0
	for _, r := range p.Reactions {
		total += r.Type.Weight() * len(r.Users)
	}
	return total
}

// ScoreUser sums ScorePost over every non-anonymous post authored by userID.
// Anonymous posts keep their real author internally but never count toward
// authorship-linked scores; anonymity cannot be farmed for aura.
func ScoreUser(userID string, posts []*feed.Post) int {
	total := 0
	for _, p := range posts {
		if p == nil || p.IsAnonymous || p.Author == nil || p.Author.ID != userID {
			continue
		}
		total += ScorePost(p)
	}
	return total
}

// Level is one rung of the rank ladder.
type Level struct {
	Threshold int
	Title     string
}

// Levels is the rank ladder in ascending threshold order. The first
// threshold is zero, so every score resolves to a title.
var Levels = []Level{
	{0, "Amateur Humorist"},
	{100, "Local Wit"},
	{500, "Sarcasm Professional"},
	{1500, "Comedy Virtuoso"},
	{3000, "Certified Funny Person"},
	{10000, "Humor Deity"},
}

// LevelFor returns the title of the highest level whose threshold does not
// exceed score.
func LevelFor(score int) string {
	title := Levels[0].Title
	for _, lvl := range Levels {
		if score >= lvl.Threshold {
			title = lvl.Title
		} else {
			break
		}
	}
	return title
}

// Timeframe restricts which posts count toward a leaderboard.
type Timeframe string

const (
	TimeframeDaily  Timeframe = "Daily"
	TimeframeWeekly Timeframe = "Weekly"
	TimeframeAll    Timeframe = "All-Time"
)

// Entry is one leaderboard row.
type Entry struct {
	User  feed.User
	Score int
	Level string
}

// Leaderboard ranks users by aggregate score over posts created within the
// timeframe window ending at now, descending, dropping zero scorers. Ties
// keep the input user order.
func Leaderboard(users []feed.User, posts []*feed.Post, tf Timeframe, now time.Time) []Entry {
	eligible := posts
	if cutoff, bounded := timeframeCutoff(tf, now); bounded {
		eligible = make([]*feed.Post, 0, len(posts))
		for _, p := range posts {
			if p != nil && p.Created().After(cutoff) {
				eligible = append(eligible, p)
			}
		}
	}

	entries := make([]Entry, 0, len(users))
	for _, u := range users {
		score := ScoreUser(u.ID, eligible)
		if score <= 0 {
			continue
		}
		entries = append(entries, Entry{User: u, Score: score, Level: LevelFor(score)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}

func timeframeCutoff(tf Timeframe, now time.Time) (time.Time, bool) {
	switch tf {
	case TimeframeDaily:
		return now.Add(-24 * time.Hour), true
	case TimeframeWeekly:
		return now.Add(-7 * 24 * time.Hour), true
	}
	return time.Time{}, false
}
