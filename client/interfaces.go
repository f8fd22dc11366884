package client

import (
	"context"

	"humordrop/api"
	"humordrop/feed"
)

// AuthService signs users in and up.
type AuthService interface {
	Login(ctx context.Context, handle, password string) (feed.User, string, error)
	Signup(ctx context.Context, handle, password string, tag feed.HumorTag) (feed.User, string, error)
}

// PostService is the backend surface for posts and reactions.
type PostService interface {
	Posts(ctx context.Context) ([]*feed.Post, error)
	CreatePost(ctx context.Context, draft api.Draft) (*feed.Post, error)
	UpdatePost(ctx context.Context, postID string, draft api.Draft) (*feed.Post, error)
	DeletePost(ctx context.Context, postID string) error
	React(ctx context.Context, postID string, t feed.ReactionType) (*feed.Post, error)
	AddComment(ctx context.Context, postID, text, parentCommentID string) (*feed.Post, error)
}

// UserService fetches profiles.
type UserService interface {
	Users(ctx context.Context) ([]feed.User, error)
}

// Deps are the collaborators the client needs; *api.Client satisfies all of
// them.
type Deps struct {
	Auth  AuthService
	Posts PostService
	Users UserService
}
