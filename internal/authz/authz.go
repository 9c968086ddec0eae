// Package authz is the pure authorization engine for boards, tasks and
// comments. It operates on already-loaded resource snapshots and performs
// no I/O; callers resolve existence first (NotFound) and consult this
// package second (Forbidden), so the 404-before-403 ordering stays with
// the services.
package authz

import "github.com/google/uuid"

// Action identifies an operation on a resource kind
type Action string

const (
	ActionBoardRead   Action = "board:read"
	ActionBoardUpdate Action = "board:update"
	ActionBoardDelete Action = "board:delete"

	ActionTaskRead   Action = "task:read"
	ActionTaskCreate Action = "task:create"
	ActionTaskUpdate Action = "task:update"
	ActionTaskDelete Action = "task:delete"

	ActionCommentRead   Action = "comment:read"
	ActionCommentCreate Action = "comment:create"
	ActionCommentDelete Action = "comment:delete"
)

// Decision is the outcome of an authorization check
type Decision int

const (
	Deny Decision = iota
	Allow
)

// Allowed reports whether the decision permits the action
func (d Decision) Allowed() bool {
	return d == Allow
}

// Snapshot carries the relation ids of a loaded resource. Board fields
// are always set; task and comment fields only for the respective kinds.
type Snapshot struct {
	BoardOwnerID   uuid.UUID
	BoardMemberIDs []uuid.UUID

	TaskAssigneeID *uuid.UUID
	TaskReviewerID *uuid.UUID
	TaskAuthorID   uuid.UUID

	CommentAuthorID uuid.UUID
}

// predicate is a single relation test between principal and snapshot
type predicate func(principal uuid.UUID, s Snapshot) bool

func isBoardOwner(principal uuid.UUID, s Snapshot) bool {
	return principal == s.BoardOwnerID
}

func isBoardMember(principal uuid.UUID, s Snapshot) bool {
	for _, id := range s.BoardMemberIDs {
		if id == principal {
			return true
		}
	}
	return false
}

func isAssignee(principal uuid.UUID, s Snapshot) bool {
	return s.TaskAssigneeID != nil && principal == *s.TaskAssigneeID
}

func isReviewer(principal uuid.UUID, s Snapshot) bool {
	return s.TaskReviewerID != nil && principal == *s.TaskReviewerID
}

func isTaskAuthor(principal uuid.UUID, s Snapshot) bool {
	return principal == s.TaskAuthorID
}

func isCommentAuthor(principal uuid.UUID, s Snapshot) bool {
	return principal == s.CommentAuthorID
}

// rules is the declarative rule table: per action, an ordered predicate
// chain combined with OR. Board create is absent on purpose — any
// authenticated principal may create a board and becomes its owner.
var rules = map[Action][]predicate{
	ActionBoardRead:   {isBoardOwner, isBoardMember},
	ActionBoardUpdate: {isBoardOwner, isBoardMember},
	ActionBoardDelete: {isBoardOwner},

	ActionTaskRead:   {isBoardOwner, isBoardMember},
	ActionTaskCreate: {isBoardOwner, isBoardMember},
	ActionTaskUpdate: {isAssignee, isReviewer},
	ActionTaskDelete: {isTaskAuthor, isBoardOwner},

	ActionCommentRead:   {isBoardOwner, isBoardMember},
	ActionCommentCreate: {isBoardOwner, isBoardMember},
	ActionCommentDelete: {isCommentAuthor},
}

// Decide evaluates the rule chain for the action against the snapshot.
// Unknown actions deny.
func Decide(principal uuid.UUID, action Action, s Snapshot) Decision {
	for _, pred := range rules[action] {
		if pred(principal, s) {
			return Allow
		}
	}
	return Deny
}
