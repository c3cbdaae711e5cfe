// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/teamup/models"
)

// TokenSource supplies the current bearer credential. Implemented by
// session.Store; absent credential means anonymous.
type TokenSource interface {
	Credential() (string, bool)
}

// Client is the transport wrapper for the matchmaking backend. It attaches
// the bearer credential, bounds every call with the configured timeout, and
// classifies HTTP outcomes into the package error taxonomy.
type Client struct {
	base    string
	http    *http.Client
	tokens  TokenSource
	timeout time.Duration
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		timeout: timeout,
	}
}

// do issues one request and decodes the response into out (if non-nil).
// authed calls fail with ErrUnauthenticated before touching the network when
// no credential is present.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var token string
	if authed {
		t, ok := c.tokens.Credential()
		if !ok {
			return ErrUnauthenticated
		}
		token = t
	}

	var buf *bytes.Buffer
	if body != nil {
		buf = &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	} else {
		buf = bytes.NewBuffer(nil)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		slog.Warn("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer res.Body.Close()

	slog.Debug("request completed",
		"method", method,
		"path", path,
		"status", res.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrServer, err)
		}
		return nil
	}

	return classify(res)
}

// classify maps a non-success response onto the error taxonomy, keeping the
// server's message when the body carries one.
func classify(res *http.Response) error {
	var body models.ErrorResponse
	msg := http.StatusText(res.StatusCode)
	if err := json.NewDecoder(res.Body).Decode(&body); err == nil && body.Message != "" {
		msg = body.Message
	}

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthenticated, msg)
	case res.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case res.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	default:
		return fmt.Errorf("%w: %d %s", ErrServer, res.StatusCode, msg)
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, true)
}

// Authentication (anonymous calls)

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var res models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/login", req, &res, false)
	return res, err
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var res models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/register", req, &res, false)
	return res, err
}

func (c *Client) Me(ctx context.Context) (models.MeResponse, error) {
	var res models.MeResponse
	err := c.get(ctx, "/user/me", &res)
	return res, err
}

// Teams

func (c *Client) Team(ctx context.Context, teamID int64) (models.TeamResponse, error) {
	var res models.TeamResponse
	err := c.get(ctx, fmt.Sprintf("/teams/%d", teamID), &res)
	return res, err
}

func (c *Client) Teams(ctx context.Context) ([]models.Team, error) {
	var res []models.Team
	err := c.get(ctx, "/teams", &res)
	return res, err
}

func (c *Client) JoinTeam(ctx context.Context, teamID int64) error {
	return c.post(ctx, "/teams/join", models.JoinTeamRequest{ID: teamID}, nil)
}

func (c *Client) LeaveTeam(ctx context.Context, teamID int64) error {
	return c.post(ctx, "/teams/leave", models.LeaveTeamRequest{ID: teamID}, nil)
}

func (c *Client) CreateTeam(ctx context.Context, req models.CreateTeamRequest) (models.CreateTeamResponse, error) {
	var res models.CreateTeamResponse
	err := c.post(ctx, "/teams/create", req, &res)
	return res, err
}

// Join requests (admin side)

func (c *Client) PendingRequests(ctx context.Context) ([]models.Notification, error) {
	var res []models.Notification
	err := c.get(ctx, "/teams/my_team_request", &res)
	return res, err
}

func (c *Client) ApproveRequest(ctx context.Context, requestID int64) error {
	return c.post(ctx, fmt.Sprintf("/teams/approve/%d", requestID), nil, nil)
}

func (c *Client) RejectRequest(ctx context.Context, requestID int64) error {
	return c.post(ctx, fmt.Sprintf("/teams/reject/%d", requestID), nil, nil)
}

// Comments and votes

func (c *Client) Comments(ctx context.Context, gameID int64) ([]models.Comment, error) {
	var res []models.Comment
	err := c.get(ctx, fmt.Sprintf("/game_info/%d/comments", gameID), &res)
	return res, err
}

func (c *Client) PostComment(ctx context.Context, gameID int64, content string) (models.Comment, error) {
	var res models.Comment
	err := c.post(ctx, fmt.Sprintf("/game_info/%d/comments", gameID), models.PostCommentRequest{Content: content}, &res)
	return res, err
}

// Vote actions for the action-suffix encoding.
const (
	VoteActionLike      = "like"
	VoteActionDislike   = "dislike"
	VoteActionUnlike    = "unlike"
	VoteActionUndislike = "undislike"
)

func (c *Client) VoteComment(ctx context.Context, commentID int64, action string) error {
	return c.post(ctx, fmt.Sprintf("/game_info/comments/%d/%s", commentID, action), nil, nil)
}

// Grading

func (c *Client) SubmitGrade(ctx context.Context, req models.SubmitGradeRequest) error {
	return c.post(ctx, "/grades", req, nil)
}
