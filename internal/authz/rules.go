// Package authz is the single source of truth for access decisions over
// boards, tasks, and comments. All rules are pure predicates over entities the
// caller has already loaded; they perform no I/O.
package authz

import "taskboard/internal/model"

// IsMember reports whether the user appears in the board's member set. The
// board owner is not implicitly a member.
func IsMember(board *model.Board, userID uint) bool {
	for _, m := range board.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// CanAccessBoard allows the owner and every member to read a board and create
// tasks on it.
func CanAccessBoard(userID uint, board *model.Board) bool {
	return board.OwnerID == userID || IsMember(board, userID)
}

// CanMutateBoard restricts board updates and deletion to the owner.
func CanMutateBoard(userID uint, board *model.Board) bool {
	return board.OwnerID == userID
}

// CanAccessTask allows the task owner, assignee, and reviewer.
func CanAccessTask(userID uint, task *model.Task) bool {
	if task.OwnerID == userID {
		return true
	}
	if task.AssigneeID != nil && *task.AssigneeID == userID {
		return true
	}
	if task.ReviewerID != nil && *task.ReviewerID == userID {
		return true
	}
	return false
}

// CanMutateTask is identical to CanAccessTask: anyone who may read a task may
// also update or delete it.
func CanMutateTask(userID uint, task *model.Task) bool {
	return CanAccessTask(userID, task)
}

// CanDeleteComment allows the comment author and the task owner. The rule does
// not consult board membership, so a comment stays deletable by the task owner
// after the author leaves the board.
func CanDeleteComment(userID uint, comment *model.Comment, task *model.Task) bool {
	return comment.AuthorID == userID || task.OwnerID == userID
}
