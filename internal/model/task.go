package model

import "time"

// Task belongs to exactly one board, set at creation and immutable afterwards.
// Assignee and reviewer are optional and must be members of the task's board at
// assignment time; deleting either user clears the reference instead of
// cascading.
type Task struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	BoardID     uint      `json:"board_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"size:1000"`
	Status      string    `json:"status" gorm:"size:20;not null;index"`
	Priority    string    `json:"priority" gorm:"size:20;not null;index"`
	AssigneeID  *uint     `json:"assignee_id" gorm:"index"`
	ReviewerID  *uint     `json:"reviewer_id" gorm:"index"`
	OwnerID     uint      `json:"owner_id" gorm:"not null;index"`
	DueDate     time.Time `json:"due_date" gorm:"type:date;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Board    Board     `json:"-" gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
	Assignee *User     `json:"-" gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL"`
	Reviewer *User     `json:"-" gorm:"foreignKey:ReviewerID;constraint:OnDelete:SET NULL"`
	Owner    User      `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}
