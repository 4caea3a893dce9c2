// Package view holds the output shapes of the API. Each view is built from
// already-loaded entities by a pure projection function; handlers never
// serialize models directly.
package view

import (
	"time"

	"taskboard/internal/model"
)

const dateLayout = "2006-01-02"

// UserCompact is the short user representation embedded in board and task
// responses.
type UserCompact struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
}

// BoardSummary is the list/create representation of a board, carrying the
// derived counts.
type BoardSummary struct {
	ID                 uint   `json:"id"`
	Title              string `json:"title"`
	MemberCount        int    `json:"member_count"`
	TicketCount        int64  `json:"ticket_count"`
	TasksToDoCount     int64  `json:"tasks_to_do_count"`
	TasksHighPrioCount int64  `json:"tasks_high_prio_count"`
	OwnerID            uint   `json:"owner_id"`
}

// BoardDetail is the single-board representation with member and task details.
type BoardDetail struct {
	ID      uint          `json:"id"`
	Title   string        `json:"title"`
	OwnerID uint          `json:"owner_id"`
	Members []UserCompact `json:"members"`
	Tasks   []TaskCompact `json:"tasks"`
}

// BoardDetailWithOwner is the update response, carrying full owner and member
// objects instead of the task list.
type BoardDetailWithOwner struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	OwnerData   UserCompact   `json:"owner_data"`
	MembersData []UserCompact `json:"members_data"`
}

// TaskCompact is the task representation embedded in board detail responses.
type TaskCompact struct {
	ID            uint         `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Status        string       `json:"status"`
	Priority      string       `json:"priority"`
	Assignee      *UserCompact `json:"assignee"`
	Reviewer      *UserCompact `json:"reviewer"`
	DueDate       string       `json:"due_date"`
	CommentsCount int64        `json:"comments_count"`
}

// TaskDetail is the standalone task representation, additionally naming the
// board the task belongs to.
type TaskDetail struct {
	ID            uint         `json:"id"`
	Board         uint         `json:"board"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Status        string       `json:"status"`
	Priority      string       `json:"priority"`
	Assignee      *UserCompact `json:"assignee"`
	Reviewer      *UserCompact `json:"reviewer"`
	DueDate       string       `json:"due_date"`
	CommentsCount int64        `json:"comments_count"`
}

// Comment is the response representation of a comment; the author appears as
// a display name.
type Comment struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
}

// NewUserCompact projects a user.
func NewUserCompact(u *model.User) UserCompact {
	return UserCompact{ID: u.ID, Email: u.Email, Fullname: u.Fullname}
}

func newUserCompactPtr(u *model.User) *UserCompact {
	if u == nil {
		return nil
	}
	c := NewUserCompact(u)
	return &c
}

// NewBoardSummary projects a board with its read-time stats.
func NewBoardSummary(b *model.Board, stats *model.TaskStats) BoardSummary {
	return BoardSummary{
		ID:                 b.ID,
		Title:              b.Title,
		MemberCount:        len(b.Members),
		TicketCount:        stats.TicketCount,
		TasksToDoCount:     stats.ToDoCount,
		TasksHighPrioCount: stats.HighPrioCount,
		OwnerID:            b.OwnerID,
	}
}

// NewBoardDetail projects a board with its members and task list.
func NewBoardDetail(b *model.Board, tasks []TaskCompact) BoardDetail {
	members := make([]UserCompact, 0, len(b.Members))
	for i := range b.Members {
		members = append(members, NewUserCompact(&b.Members[i]))
	}
	if tasks == nil {
		tasks = []TaskCompact{}
	}
	return BoardDetail{
		ID:      b.ID,
		Title:   b.Title,
		OwnerID: b.OwnerID,
		Members: members,
		Tasks:   tasks,
	}
}

// NewBoardDetailWithOwner projects a board with full owner and member objects.
func NewBoardDetailWithOwner(b *model.Board) BoardDetailWithOwner {
	members := make([]UserCompact, 0, len(b.Members))
	for i := range b.Members {
		members = append(members, NewUserCompact(&b.Members[i]))
	}
	return BoardDetailWithOwner{
		ID:          b.ID,
		Title:       b.Title,
		OwnerData:   NewUserCompact(&b.Owner),
		MembersData: members,
	}
}

// NewTaskCompact projects a task for embedding in a board detail.
func NewTaskCompact(t *model.Task, commentsCount int64) TaskCompact {
	return TaskCompact{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        t.Status,
		Priority:      t.Priority,
		Assignee:      newUserCompactPtr(t.Assignee),
		Reviewer:      newUserCompactPtr(t.Reviewer),
		DueDate:       t.DueDate.Format(dateLayout),
		CommentsCount: commentsCount,
	}
}

// NewTaskDetail projects a standalone task.
func NewTaskDetail(t *model.Task, commentsCount int64) TaskDetail {
	return TaskDetail{
		ID:            t.ID,
		Board:         t.BoardID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        t.Status,
		Priority:      t.Priority,
		Assignee:      newUserCompactPtr(t.Assignee),
		Reviewer:      newUserCompactPtr(t.Reviewer),
		DueDate:       t.DueDate.Format(dateLayout),
		CommentsCount: commentsCount,
	}
}

// NewComment projects a comment; the author renders as their display name,
// falling back to the email when no name is set.
func NewComment(c *model.Comment) Comment {
	author := c.Author.Fullname
	if author == "" {
		author = c.Author.Email
	}
	return Comment{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		Author:    author,
		Content:   c.Content,
	}
}
