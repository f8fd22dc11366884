// Package reaction implements the per-post, per-user reaction toggle as a
// pure structural update: at most one active reaction per user, applied to a
// fresh snapshot so the caller keeps the pre-update copy for rollback.
package reaction

import (
	"sync"

	"humordrop/feed"
)

// ApplyToggle returns a new post with userID's reaction state advanced:
// selecting a type the user does not hold moves their membership to it
// (removing any previously held type), selecting the currently held type
// again clears it. The input post is never mutated.
func ApplyToggle(p *feed.Post, userID string, t feed.ReactionType) *feed.Post {
	next := p.Clone()
	held, hadReaction := next.ReactionBy(userID)

	if hadReaction {
		removeUser(next, held, userID)
	}
	if !hadReaction || held != t {
		addUser(next, t, userID)
	}
	return next
}

func removeUser(p *feed.Post, t feed.ReactionType, userID string) {
	for i := range p.Reactions {
		if p.Reactions[i].Type != t {
			continue
		}
		users := p.Reactions[i].Users
		for j, id := range users {
			if id == userID {
				p.Reactions[i].Users = append(users[:j], users[j+1:]...)
				return
			}
		}
	}
}

func addUser(p *feed.Post, t feed.ReactionType, userID string) {
	for i := range p.Reactions {
		if p.Reactions[i].Type != t {
			continue
		}
		for _, id := range p.Reactions[i].Users {
			if id == userID {
				return
			}
		}
		p.Reactions[i].Users = append(p.Reactions[i].Users, userID)
		return
	}
	p.Reactions = append(p.Reactions, feed.Reaction{Type: t, Users: []string{userID}})
}

// Versions counts local reaction mutations per post id. A confirmation
// request captures the version at send time; if the post has been mutated
// again before the response lands, the response is stale and gets dropped
// instead of clobbering the newer local state.
type Versions struct {
	mu sync.Mutex
	v  map[string]uint64
}

// NewVersions returns an empty version tracker.
func NewVersions() *Versions {
	return &Versions{v: make(map[string]uint64)}
}

// Bump records a new local mutation of postID and returns the new version.
func (vs *Versions) Bump(postID string) uint64 {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.v[postID]++
	return vs.v[postID]
}

// Current returns the latest version recorded for postID (zero if none).
func (vs *Versions) Current(postID string) uint64 {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.v[postID]
}

// Forget drops tracking for postID, e.g. after the post is deleted.
func (vs *Versions) Forget(postID string) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	delete(vs.v, postID)
}
