// Package api is the REST client for the Humor Drop backend. Routes and
// shapes mirror the server contract; everything else (scoring, ranking,
// optimistic state) lives above this layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"humordrop/feed"
	"humordrop/session"
)

// DefaultBaseURL is where a locally run backend listens.
const DefaultBaseURL = "http://localhost:3001/api"

// ErrUnreachable marks a network-level failure: the request never produced
// an HTTP response. Distinct from StatusError, which the server sent.
var ErrUnreachable = errors.New("server unreachable")

// StatusError is a non-2xx response carrying the server's message string.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// Draft is the writable part of a post.
type Draft struct {
	Text        string        `json:"text"`
	Category    feed.Category `json:"category"`
	IsAnonymous bool          `json:"isAnonymous"`
}

// Client talks to the backend. All methods attach the session's bearer token
// when one is present, and a fresh request id for log correlation.
type Client struct {
	http    *http.Client
	baseURL string
	session *session.Session
}

// New creates a Client. A nil httpClient falls back to http.DefaultClient.
func New(httpClient *http.Client, baseURL string, sess *session.Session) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		session: sess,
	}
}

type credentials struct {
	Handle   string        `json:"handle"`
	Password string        `json:"password"`
	HumorTag feed.HumorTag `json:"humorTag,omitempty"`
}

// authResponse is a user record with the issued token alongside.
type authResponse struct {
	feed.User
	Token string `json:"token"`
}

// Login exchanges credentials for a user record and bearer token.
func (c *Client) Login(ctx context.Context, handle, password string) (feed.User, string, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", credentials{Handle: handle, Password: password}, &resp)
	if err != nil {
		return feed.User{}, "", err
	}
	return resp.User, resp.Token, nil
}

// Signup registers a new account and returns the user record and token.
func (c *Client) Signup(ctx context.Context, handle, password string, tag feed.HumorTag) (feed.User, string, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", credentials{Handle: handle, Password: password, HumorTag: tag}, &resp)
	if err != nil {
		return feed.User{}, "", err
	}
	return resp.User, resp.Token, nil
}

// Posts fetches the full post collection.
func (c *Client) Posts(ctx context.Context) ([]*feed.Post, error) {
	var posts []*feed.Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Post fetches a single post by id.
func (c *Client) Post(ctx context.Context, postID string) (*feed.Post, error) {
	var post feed.Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+postID, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Users fetches the full user collection.
func (c *Client) Users(ctx context.Context) ([]feed.User, error) {
	var users []feed.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreatePost submits a new post and returns the created record.
func (c *Client) CreatePost(ctx context.Context, draft Draft) (*feed.Post, error) {
	var post feed.Post
	if err := c.do(ctx, http.MethodPost, "/posts", draft, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost replaces a post's writable fields and returns the updated record.
func (c *Client) UpdatePost(ctx context.Context, postID string, draft Draft) (*feed.Post, error) {
	var post feed.Post
	if err := c.do(ctx, http.MethodPut, "/posts/"+postID, draft, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+postID, nil, nil)
}

// React toggles the caller's reaction on a post and returns the canonical
// post. The server is the source of truth for reaction counts; concurrent
// users may have altered the same post.
func (c *Client) React(ctx context.Context, postID string, t feed.ReactionType) (*feed.Post, error) {
	body := struct {
		ReactionType feed.ReactionType `json:"reactionType"`
	}{t}
	var post feed.Post
	if err := c.do(ctx, http.MethodPost, "/posts/"+postID+"/react", body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// AddComment appends a reply to a post. An empty parentCommentID targets the
// post itself (a top-level comment) and is sent as null. Returns the
// canonical post with the new comment inserted.
func (c *Client) AddComment(ctx context.Context, postID, text, parentCommentID string) (*feed.Post, error) {
	body := struct {
		Text            string  `json:"text"`
		ParentCommentID *string `json:"parentCommentId"`
	}{Text: text}
	if parentCommentID != "" {
		body.ParentCommentID = &parentCommentID
	}
	var post feed.Post
	if err := c.do(ctx, http.MethodPost, "/posts/"+postID+"/comments", body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Notifications fetches the caller's notifications.
func (c *Client) Notifications(ctx context.Context) ([]feed.Notification, error) {
	var ns []feed.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

// MarkNotificationRead marks one notification read.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) (*feed.Notification, error) {
	var n feed.Notification
	if err := c.do(ctx, http.MethodPatch, "/notifications/"+notificationID+"/read", nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkAllNotificationsRead marks every notification read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPatch, "/notifications/read-all", nil, nil)
}

// UnreadCount fetches the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/notifications/unread-count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// do runs one request/response cycle. Transport failures wrap
// ErrUnreachable; non-2xx responses become a StatusError with the server's
// message when one can be decoded. A nil out discards the body, and an empty
// or non-JSON body with a nil-friendly status is not an error.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnreachable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Message: serverMessage(resp.Body)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

func serverMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil || payload.Message == "" {
		return "something went wrong with the request"
	}
	return payload.Message
}
