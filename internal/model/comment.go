package model

import "time"

// Comment is an append-only entry on a task. Comments are never edited; they
// are deleted either by their author or by the task owner, and cascade with
// the task.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TaskID    uint      `json:"task_id" gorm:"not null;index"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task   Task `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Author User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
