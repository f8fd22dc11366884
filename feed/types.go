package feed

import "time"

// ReactionType identifies one of the fixed reaction kinds a user can hold on
// a post. Each kind carries a static point weight used for humor scoring.
type ReactionType string

const (
	ReactionAmused ReactionType = "Amused"
	ReactionClever ReactionType = "Clever"
	ReactionWow    ReactionType = "...Wow"
)

// Weight returns the point value one user holding this reaction contributes
// to a post's humor score. Types this client does not know (the backend may
// grow new ones before the client does) score zero.
func (t ReactionType) Weight() int {
	switch t {
	case ReactionAmused:
		return 5
	case ReactionClever:
		return 4
	case ReactionWow:
		return 2
	}
	return 0
}

// Known reports whether t is a reaction type this client understands.
func (t ReactionType) Known() bool {
	switch t {
	case ReactionAmused, ReactionClever, ReactionWow:
		return true
	}
	return false
}

// ReactionTypes returns all reaction types in display order.
func ReactionTypes() []ReactionType {
	return []ReactionType{ReactionAmused, ReactionClever, ReactionWow}
}

// Category is one of the fixed humor categories a post is filed under.
type Category string

const (
	CategoryRoasts    Category = "Roasts & Burns"
	CategoryDating    Category = "Relationship & Dating Humor"
	CategoryTech      Category = "Tech & Geek Humor"
	CategoryLife      Category = "Office & College Life"
	CategoryPolitical Category = "Political Satire"
	CategoryRandom    Category = "Random & Toilet Humor"
)

// Categories returns all post categories in display order.
func Categories() []Category {
	return []Category{
		CategoryRoasts,
		CategoryDating,
		CategoryTech,
		CategoryLife,
		CategoryPolitical,
		CategoryRandom,
	}
}

// Valid reports whether c is a member of the fixed category set.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// HumorTag is the self-declared humor style on a user profile.
type HumorTag string

const (
	TagSarcastic HumorTag = "Sarcastic"
	TagDark      HumorTag = "Dark"
	TagWholesome HumorTag = "Wholesome"
	TagDry       HumorTag = "Dry"
	TagGenZ      HumorTag = "Gen Z"
	TagSavage    HumorTag = "Savage"
	TagPunny     HumorTag = "Punny"
)

// HumorTags returns all humor style tags in display order.
func HumorTags() []HumorTag {
	return []HumorTag{TagSarcastic, TagDark, TagWholesome, TagDry, TagGenZ, TagSavage, TagPunny}
}

// User is the client's cached copy of a profile; the backend owns the record.
type User struct {
	ID            string   `json:"id"`
	Handle        string   `json:"handle"`
	Bio           string   `json:"bio,omitempty"`
	ProfilePicURL string   `json:"profilePicUrl,omitempty"`
	HumorTag      HumorTag `json:"humorTag"`
}

// Reaction is one reaction type on a post together with the ids of every
// user currently holding it. A user id appears in at most one Reaction's
// list per post.
type Reaction struct {
	Type  ReactionType `json:"type"`
	Users []string     `json:"users"`
}

// Comment is a reply in a post's thread. Replies nest recursively; comments
// are appended, never deleted. Comment reactions exist in the data model but
// do not feed scoring.
type Comment struct {
	ID        string     `json:"id"`
	Author    User       `json:"author"`
	Text      string     `json:"text"`
	Reactions []Reaction `json:"reactions,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
	Replies   []Comment  `json:"replies,omitempty"`
}

// Post is a humor drop. Author stays populated even on anonymous posts (the
// backend needs it); presentation and scoring must treat anonymous posts as
// authorless.
type Post struct {
	ID          string     `json:"id"`
	Author      *User      `json:"author"`
	IsAnonymous bool       `json:"isAnonymous"`
	Text        string     `json:"text"`
	Category    Category   `json:"category"`
	Reactions   []Reaction `json:"reactions"`
	Comments    []Comment  `json:"comments"`
	// Timestamp is set on posts echoed back by the compose endpoint;
	// CreatedAt/UpdatedAt come from the stored record.
	Timestamp time.Time  `json:"timestamp,omitzero"`
	CreatedAt time.Time  `json:"createdAt,omitzero"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Created returns the post's creation time, preferring the compose-echo
// Timestamp over the stored CreatedAt when both are present.
func (p *Post) Created() time.Time {
	if !p.Timestamp.IsZero() {
		return p.Timestamp
	}
	return p.CreatedAt
}

// ReactionBy returns the reaction type userID currently holds on the post.
func (p *Post) ReactionBy(userID string) (ReactionType, bool) {
	for _, r := range p.Reactions {
		for _, id := range r.Users {
			if id == userID {
				return r.Type, true
			}
		}
	}
	return "", false
}

// Clone returns a deep copy of the post. Comments share no backing arrays
// with the original, so a clone can be mutated freely.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Author != nil {
		author := *p.Author
		cp.Author = &author
	}
	if p.UpdatedAt != nil {
		at := *p.UpdatedAt
		cp.UpdatedAt = &at
	}
	cp.Reactions = cloneReactions(p.Reactions)
	cp.Comments = cloneComments(p.Comments)
	return &cp
}

func cloneReactions(rs []Reaction) []Reaction {
	if rs == nil {
		return nil
	}
	out := make([]Reaction, len(rs))
	for i, r := range rs {
		out[i] = Reaction{Type: r.Type, Users: append([]string(nil), r.Users...)}
	}
	return out
}

func cloneComments(cs []Comment) []Comment {
	if cs == nil {
		return nil
	}
	out := make([]Comment, len(cs))
	for i, c := range cs {
		out[i] = c
		out[i].Reactions = cloneReactions(c.Reactions)
		out[i].Replies = cloneComments(c.Replies)
	}
	return out
}
