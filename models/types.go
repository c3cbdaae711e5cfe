// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Join request status constants
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Viewer vote states
const (
	VoteNone    = "none"
	VoteLike    = "like"
	VoteDislike = "dislike"
)

// Request types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type JoinTeamRequest struct {
	ID int64 `json:"id"`
}

type LeaveTeamRequest struct {
	ID int64 `json:"id"`
}

type CreateTeamRequest struct {
	Name        string   `json:"teamName"`
	Size        int      `json:"teamSize"`
	Description string   `json:"description"`
	GameID      int64    `json:"gameId"`
	Schedule    Schedule `json:"schedule"`
}

type PostCommentRequest struct {
	Content string `json:"content"`
}

type SubmitGradeRequest struct {
	TeammateID int64 `json:"teammateId"`
	Rating     int   `json:"rating"`
}

// Response types

type AuthResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

type TeamResponse struct {
	Team    Team     `json:"team"`
	Members []Member `json:"members"`
}

type CreateTeamResponse struct {
	Team Team `json:"team"`
}

type MeResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Schedule struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = Sunday, matching time.Weekday
	StartTime string `json:"startTime"` // "15:04" wall-clock
	EndTime   string `json:"endTime"`
}

type Team struct {
	ID          int64    `json:"id"`
	Name        string   `json:"teamName"`
	Size        int      `json:"teamSize"`
	Description string   `json:"description"`
	GameID      int64    `json:"gameId"`
	Schedule    Schedule `json:"schedule"`
	CreatorID   int64    `json:"creatorId"`
}

type Member struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type JoinRequest struct {
	ID          int64  `json:"id"`
	TeamID      int64  `json:"teamId"`
	RequesterID int64  `json:"requesterId"`
	Status      string `json:"status"`
}

// Notification is the administrator-facing view of a pending join request.
// It exists only while the underlying request is pending.
type Notification struct {
	RequestID int64  `json:"requestId"`
	Team      Team   `json:"team"`
	Requester Member `json:"requester"`
}

type Comment struct {
	ID           int64  `json:"id"`
	GameID       int64  `json:"gameId"`
	AuthorID     int64  `json:"authorId"`
	Author       string `json:"author"`
	Content      string `json:"content"`
	LikeCount    int    `json:"likeCount"`
	DislikeCount int    `json:"dislikeCount"`
	ViewerVote   string `json:"viewerVote"`
}

// LocalTeamRecord is a team snapshot persisted locally when remote creation
// fails. Invisible to other clients until synced.
type LocalTeamRecord struct {
	ID        string            `json:"id"` // locally generated, never a server id
	Team      CreateTeamRequest `json:"team"`
	Members   []string          `json:"members"` // creator username only at creation
	CreatedAt time.Time         `json:"createdAt"`
}

// Grade is a one-shot teammate rating.
type Grade struct {
	TeammateID  int64     `json:"teammateId"`
	Rating      int       `json:"rating"` // 1-5 stars
	SubmittedAt time.Time `json:"submittedAt"`
	Synced      bool      `json:"synced"`
}
