// Package client is the orchestrator: it owns the in-memory post and user
// collections, applies optimistic reaction updates against them, and keeps
// them reconciled with the canonical state the backend returns. Durable
// state lives on the server; everything here is rebuildable by Refresh.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"humordrop/api"
	"humordrop/feed"
	"humordrop/ranker"
	"humordrop/reaction"
	"humordrop/scoring"
	"humordrop/session"
	"humordrop/thread"
)

// Client holds one user's live view of the feed.
type Client struct {
	deps    Deps
	session *session.Session
	storage session.Storage

	mu       sync.Mutex
	posts    []*feed.Post
	users    []feed.User
	versions *reaction.Versions
}

// New wires a Client. storage may be nil when session persistence is not
// wanted (tests).
func New(deps Deps, sess *session.Session, storage session.Storage) *Client {
	return &Client{
		deps:     deps,
		session:  sess,
		storage:  storage,
		versions: reaction.NewVersions(),
	}
}

// Session exposes the injected session.
func (c *Client) Session() *session.Session {
	return c.session
}

// Login authenticates, begins the session and persists it.
func (c *Client) Login(ctx context.Context, handle, password string) (feed.User, error) {
	user, token, err := c.deps.Auth.Login(ctx, handle, password)
	if err != nil {
		return feed.User{}, fmt.Errorf("logging in: %w", err)
	}
	c.beginSession(user, token)
	return user, nil
}

// Signup registers an account, begins the session and persists it.
func (c *Client) Signup(ctx context.Context, handle, password string, tag feed.HumorTag) (feed.User, error) {
	user, token, err := c.deps.Auth.Signup(ctx, handle, password, tag)
	if err != nil {
		return feed.User{}, fmt.Errorf("signing up: %w", err)
	}
	c.beginSession(user, token)
	return user, nil
}

func (c *Client) beginSession(user feed.User, token string) {
	c.session.Begin(user, token)
	if c.storage != nil {
		if err := c.session.Persist(c.storage); err != nil {
			slog.Warn("failed to persist session", "error", err)
		}
	}
}

// Logout ends the session, clears persisted identity and drops local state.
func (c *Client) Logout() {
	c.session.End()
	if c.storage != nil {
		if err := c.storage.ClearSession(); err != nil {
			slog.Warn("failed to clear persisted session", "error", err)
		}
	}
	c.mu.Lock()
	c.posts = nil
	c.users = nil
	c.versions = reaction.NewVersions()
	c.mu.Unlock()
}

// Refresh replaces the local post and user collections from the backend.
func (c *Client) Refresh(ctx context.Context) error {
	posts, err := c.deps.Posts.Posts(ctx)
	if err != nil {
		return fmt.Errorf("fetching posts: %w", err)
	}
	users, err := c.deps.Users.Users(ctx)
	if err != nil {
		return fmt.Errorf("fetching users: %w", err)
	}
	c.mu.Lock()
	c.posts = posts
	c.users = users
	c.mu.Unlock()
	return nil
}

// Posts returns a copy of the current post collection.
func (c *Client) Posts() []*feed.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*feed.Post(nil), c.posts...)
}

// Users returns a copy of the current user collection.
func (c *Client) Users() []feed.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]feed.User(nil), c.users...)
}

// Post returns the local copy of one post.
func (c *Client) Post(postID string) (*feed.Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.posts {
		if p.ID == postID {
			return p, true
		}
	}
	return nil, false
}

// Feed returns the ranked, filtered view of the current posts.
func (c *Client) Feed(opts ranker.Options) []*feed.Post {
	return ranker.Rank(c.Posts(), opts)
}

// Thread builds the comment arena for one post.
func (c *Client) Thread(postID string) (*thread.Tree, bool) {
	p, ok := c.Post(postID)
	if !ok {
		return nil, false
	}
	return thread.Build(p), true
}

// Leaderboard ranks the known users over the current posts.
func (c *Client) Leaderboard(tf scoring.Timeframe) []scoring.Entry {
	c.mu.Lock()
	users := append([]feed.User(nil), c.users...)
	posts := append([]*feed.Post(nil), c.posts...)
	c.mu.Unlock()
	return scoring.Leaderboard(users, posts, tf, time.Now())
}

// UserScore returns the user's aggregate humor score and level title.
func (c *Client) UserScore(userID string) (int, string) {
	score := scoring.ScoreUser(userID, c.Posts())
	return score, scoring.LevelFor(score)
}

// CreatePost validates, sanitizes and submits a new post; the created record
// is prepended locally.
func (c *Client) CreatePost(ctx context.Context, text string, category feed.Category, anonymous bool) (*feed.Post, error) {
	text = feed.Sanitize(text)
	if err := feed.ValidateDraft(text, category); err != nil {
		return nil, err
	}
	post, err := c.deps.Posts.CreatePost(ctx, api.Draft{Text: text, Category: category, IsAnonymous: anonymous})
	if err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}
	c.mu.Lock()
	c.posts = append([]*feed.Post{post}, c.posts...)
	c.mu.Unlock()
	return post, nil
}

// UpdatePost validates and submits an edit; the canonical record replaces
// the local copy.
func (c *Client) UpdatePost(ctx context.Context, postID, text string, category feed.Category, anonymous bool) (*feed.Post, error) {
	text = feed.Sanitize(text)
	if err := feed.ValidateDraft(text, category); err != nil {
		return nil, err
	}
	post, err := c.deps.Posts.UpdatePost(ctx, postID, api.Draft{Text: text, Category: category, IsAnonymous: anonymous})
	if err != nil {
		return nil, fmt.Errorf("updating post %s: %w", postID, err)
	}
	c.replacePost(post)
	return post, nil
}

// DeletePost removes a post remotely and locally.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	if err := c.deps.Posts.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("deleting post %s: %w", postID, err)
	}
	c.mu.Lock()
	kept := c.posts[:0]
	for _, p := range c.posts {
		if p.ID != postID {
			kept = append(kept, p)
		}
	}
	c.posts = kept
	c.versions.Forget(postID)
	c.mu.Unlock()
	return nil
}

// Reply submits a comment on a post (parentCommentID "" targets the post
// itself). Comments are never applied speculatively: the canonical post the
// server returns replaces the local copy.
func (c *Client) Reply(ctx context.Context, postID, parentCommentID, text string) (*feed.Post, error) {
	text = feed.Sanitize(text)
	if err := feed.ValidateReply(text); err != nil {
		return nil, err
	}
	post, err := c.deps.Posts.AddComment(ctx, postID, text, parentCommentID)
	if err != nil {
		return nil, fmt.Errorf("adding reply to post %s: %w", postID, err)
	}
	c.replacePost(post)
	return post, nil
}

// React toggles the current user's reaction on a post. The toggle is applied
// optimistically to the local copy before the confirmation request goes out.
// On failure the pre-toggle snapshot is restored and the error returned for
// the caller to surface; nothing retries automatically. A confirmation that
// arrives after a newer local toggle on the same post is discarded, since
// applying it would clobber the newer state.
func (c *Client) React(ctx context.Context, postID string, t feed.ReactionType) error {
	user, ok := c.session.User()
	if !ok {
		return fmt.Errorf("not logged in")
	}

	c.mu.Lock()
	snapshot, found := c.findLocked(postID)
	if !found {
		c.mu.Unlock()
		return fmt.Errorf("unknown post %s", postID)
	}
	optimistic := reaction.ApplyToggle(snapshot, user.ID, t)
	c.replaceLocked(optimistic)
	sent := c.versions.Bump(postID)
	c.mu.Unlock()

	canonical, err := c.deps.Posts.React(ctx, postID, t)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions.Current(postID) != sent {
		// A newer toggle superseded this request; its own confirmation
		// will reconcile the post.
		slog.Debug("discarding stale reaction response", "post_id", postID)
		return nil
	}
	if err != nil {
		c.replaceLocked(snapshot)
		return fmt.Errorf("saving reaction on post %s: %w", postID, err)
	}
	c.replaceLocked(canonical)
	return nil
}

func (c *Client) replacePost(post *feed.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaceLocked(post)
}

func (c *Client) findLocked(postID string) (*feed.Post, bool) {
	for _, p := range c.posts {
		if p.ID == postID {
			return p, true
		}
	}
	return nil, false
}

func (c *Client) replaceLocked(post *feed.Post) {
	for i, p := range c.posts {
		if p.ID == post.ID {
			c.posts[i] = post
			return
		}
	}
}
