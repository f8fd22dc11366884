package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"humordrop/feed"
)

func post(id, authorID string, anonymous bool, reactions ...feed.Reaction) *feed.Post {
	var author *feed.User
	if authorID != "" {
		author = &feed.User{ID: authorID, Handle: "user-" + authorID}
	}
	return &feed.Post{
		ID:          id,
		Author:      author,
		IsAnonymous: anonymous,
		Text:        "text",
		Category:    feed.CategoryTech,
		Reactions:   reactions,
		CreatedAt:   time.Now(),
	}
}

func TestScorePost_WeightedSum(t *testing.T) {
	p := post("p1", "u1", false,
		feed.Reaction{Type: feed.ReactionAmused, Users: []string{"a", "b"}}, // 2*5
		feed.Reaction{Type: feed.ReactionClever, Users: []string{}},         // 0*4
	)
	assert.Equal(t, 10, ScorePost(p))
}

func TestScorePost_AllTypes(t *testing.T) {
	p := post("p1", "u1", false,
		feed.Reaction{Type: feed.ReactionAmused, Users: []string{"a"}},
		feed.Reaction{Type: feed.ReactionClever, Users: []string{"b", "c"}},
		feed.Reaction{Type: feed.ReactionWow, Users: []string{"d", "e", "f"}},
	)
	assert.Equal(t, 5+8+6, ScorePost(p))
}

func TestScorePost_UnknownTypeScoresZero(t *testing.T) {
	p := post("p1", "u1", false,
		feed.Reaction{Type: "Bewildered", Users: []string{"a", "b", "c"}},
		feed.Reaction{Type: feed.ReactionWow, Users: []string{"d"}},
	)
	assert.Equal(t, 2, ScorePost(p))
}

func TestScorePost_NoReactions(t *testing.T) {
	assert.Equal(t, 0, ScorePost(post("p1", "u1", false)))
	assert.Equal(t, 0, ScorePost(nil))
}

func TestScoreUser_ExcludesAnonymousPosts(t *testing.T) {
	public := post("p1", "u1", false,
		feed.Reaction{Type: feed.ReactionAmused, Users: []string{"a", "b"}}) // 10
	anonymous := post("p2", "u1", true,
		feed.Reaction{Type: feed.ReactionAmused, Users: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}},
		feed.Reaction{Type: feed.ReactionClever, Users: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m"}},
	)

	require.Greater(t, ScorePost(anonymous), 100)
	assert.Equal(t, 10, ScoreUser("u1", []*feed.Post{public, anonymous}))
}

func TestScoreUser_OnlyCountsAuthor(t *testing.T) {
	posts := []*feed.Post{
		post("p1", "u1", false, feed.Reaction{Type: feed.ReactionWow, Users: []string{"a"}}),
		post("p2", "u2", false, feed.Reaction{Type: feed.ReactionAmused, Users: []string{"a"}}),
		post("p3", "", false, feed.Reaction{Type: feed.ReactionAmused, Users: []string{"a"}}),
	}
	assert.Equal(t, 2, ScoreUser("u1", posts))
	assert.Equal(t, 5, ScoreUser("u2", posts))
	assert.Equal(t, 0, ScoreUser("u3", posts))
}

func TestLevelFor_Thresholds(t *testing.T) {
	cases := []struct {
		score int
		title string
	}{
		{0, "Amateur Humorist"},
		{99, "Amateur Humorist"},
		{100, "Local Wit"},
		{499, "Local Wit"},
		{500, "Sarcasm Professional"},
		{1500, "Comedy Virtuoso"},
		{3000, "Certified Funny Person"},
		{9999, "Certified Funny Person"},
		{10000, "Humor Deity"},
		{1000000, "Humor Deity"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("score_%d", tc.score), func(t *testing.T) {
			assert.Equal(t, tc.title, LevelFor(tc.score))
		})
	}
}

func TestLevelFor_Monotonic(t *testing.T) {
	rank := func(title string) int {
		for i, lvl := range Levels {
			if lvl.Title == title {
				return i
			}
		}
		t.Fatalf("unknown title %q", title)
		return -1
	}
	prev := rank(LevelFor(0))
	for score := 1; score <= 12000; score += 7 {
		cur := rank(LevelFor(score))
		require.GreaterOrEqual(t, cur, prev, "level regressed at score %d", score)
		prev = cur
	}
}

func TestLeaderboard_OrdersAndFilters(t *testing.T) {
	users := []feed.User{
		{ID: "u1", Handle: "first"},
		{ID: "u2", Handle: "second"},
		{ID: "u3", Handle: "silent"},
	}
	posts := []*feed.Post{
		post("p1", "u1", false, feed.Reaction{Type: feed.ReactionWow, Users: []string{"a"}}),     // u1: 2
		post("p2", "u2", false, feed.Reaction{Type: feed.ReactionAmused, Users: []string{"a"}}), // u2: 5
	}

	entries := Leaderboard(users, posts, TimeframeAll, time.Now())
	require.Len(t, entries, 2, "zero scorers are dropped")
	assert.Equal(t, "u2", entries[0].User.ID)
	assert.Equal(t, "u1", entries[1].User.ID)
	assert.Equal(t, "Amateur Humorist", entries[0].Level)
}

func TestLeaderboard_TimeframeWindow(t *testing.T) {
	now := time.Now()
	old := post("p1", "u1", false, feed.Reaction{Type: feed.ReactionAmused, Users: []string{"a", "b", "c"}})
	old.CreatedAt = now.Add(-48 * time.Hour)
	fresh := post("p2", "u2", false, feed.Reaction{Type: feed.ReactionWow, Users: []string{"a"}})
	fresh.CreatedAt = now.Add(-1 * time.Hour)

	users := []feed.User{{ID: "u1"}, {ID: "u2"}}
	posts := []*feed.Post{old, fresh}

	daily := Leaderboard(users, posts, TimeframeDaily, now)
	require.Len(t, daily, 1)
	assert.Equal(t, "u2", daily[0].User.ID)

	weekly := Leaderboard(users, posts, TimeframeWeekly, now)
	require.Len(t, weekly, 2)
	assert.Equal(t, "u1", weekly[0].User.ID)
}

func TestLeaderboard_Empty(t *testing.T) {
	assert.Empty(t, Leaderboard(nil, nil, TimeframeAll, time.Now()))
}
