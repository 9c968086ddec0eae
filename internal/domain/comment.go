package domain

import "github.com/google/uuid"

// Comment represents a comment on a task.
// TaskID and AuthorID never change after creation.
type Comment struct {
	BaseModel
	TaskID   uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_task_id" json:"task_id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_author_id" json:"author_id"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	Task     Task      `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"task,omitempty"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
