package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionTypeWeights(t *testing.T) {
	assert.Equal(t, 5, ReactionAmused.Weight())
	assert.Equal(t, 4, ReactionClever.Weight())
	assert.Equal(t, 2, ReactionWow.Weight())
	assert.Equal(t, 0, ReactionType("Bewildered").Weight(), "unknown types score zero by policy")
	assert.False(t, ReactionType("Bewildered").Known())
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryTech.Valid())
	assert.False(t, Category("Knock Knock").Valid())
	assert.False(t, Category("").Valid())
}

func TestPostCreated_PrefersTimestamp(t *testing.T) {
	echo := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	stored := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

	p := &Post{Timestamp: echo, CreatedAt: stored}
	assert.Equal(t, echo, p.Created())

	p = &Post{CreatedAt: stored}
	assert.Equal(t, stored, p.Created())
}

func TestReactionBy(t *testing.T) {
	p := &Post{Reactions: []Reaction{
		{Type: ReactionAmused, Users: []string{"a"}},
		{Type: ReactionClever, Users: []string{"b"}},
	}}

	held, ok := p.ReactionBy("b")
	require.True(t, ok)
	assert.Equal(t, ReactionClever, held)

	_, ok = p.ReactionBy("c")
	assert.False(t, ok)
}

func TestClone_IsDeep(t *testing.T) {
	author := &User{ID: "u1", Handle: "someone"}
	p := &Post{
		ID:     "p1",
		Author: author,
		Reactions: []Reaction{
			{Type: ReactionAmused, Users: []string{"a"}},
		},
		Comments: []Comment{
			{ID: "c1", Text: "hi", Replies: []Comment{{ID: "c2", Text: "yo"}}},
		},
	}

	cp := p.Clone()
	cp.Author.Handle = "changed"
	cp.Reactions[0].Users[0] = "z"
	cp.Comments[0].Replies[0].Text = "edited"

	assert.Equal(t, "someone", p.Author.Handle)
	assert.Equal(t, "a", p.Reactions[0].Users[0])
	assert.Equal(t, "yo", p.Comments[0].Replies[0].Text)
}

func TestValidateDraft(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		category Category
		wantErr  bool
	}{
		{"valid", "my keyboard has a sense of humor", CategoryTech, false},
		{"empty text", "", CategoryTech, true},
		{"whitespace text", "   \n\t", CategoryTech, true},
		{"missing category", "funny", "", true},
		{"unknown category", "funny", Category("Knock Knock"), true},
		{"banned word", "I hate Mondays", CategoryLife, true},
		{"banned word mixed case", "HaTe this", CategoryLife, true},
		{"banned inside word", "whatever, haters gonna", CategoryLife, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDraft(tc.text, tc.category)
			if tc.wantErr {
				var verr *ValidationError
				require.Error(t, err)
				assert.ErrorAs(t, err, &verr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDraft_LengthCap(t *testing.T) {
	long := make([]rune, MaxPostLen+1)
	for i := range long {
		long[i] = 'h'
	}
	assert.Error(t, ValidateDraft(string(long), CategoryTech))
	assert.NoError(t, ValidateDraft(string(long[:MaxPostLen]), CategoryTech))
}

func TestValidateReply(t *testing.T) {
	assert.NoError(t, ValidateReply("nice one"))
	assert.Error(t, ValidateReply(""))
	assert.Error(t, ValidateReply("full of hate"))

	long := make([]rune, MaxReplyLen+1)
	for i := range long {
		long[i] = 'r'
	}
	assert.Error(t, ValidateReply(string(long)))
	assert.NoError(t, ValidateReply(string(long[:MaxReplyLen])))
}

func TestSanitize_StripsMarkup(t *testing.T) {
	assert.Equal(t, "hello", Sanitize("<b>hello</b>"))
	assert.Equal(t, "", Sanitize("<script>alert(1)</script>"), "script content is dropped entirely")
	assert.Equal(t, "a < b", Sanitize("a < b"))
}
