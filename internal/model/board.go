package model

import "time"

// Board is the top-level grouping for tasks. It always has exactly one owner;
// the owner is not required to appear in the member set.
type Board struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	OwnerID   uint      `json:"owner_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner   User   `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Members []User `json:"-" gorm:"many2many:board_members"`
	Tasks   []Task `json:"-" gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE"`
}

// TaskStats holds per-board task counts computed at read time.
type TaskStats struct {
	TicketCount   int64
	ToDoCount     int64
	HighPrioCount int64
}
