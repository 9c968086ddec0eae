package domain

import "github.com/google/uuid"

// Board represents a kanban board owned by a user and shared with members
type Board struct {
	BaseModel
	Title   string        `gorm:"type:varchar(255);not null" json:"title"`
	OwnerID uuid.UUID     `gorm:"type:uuid;not null;index:idx_boards_owner_id" json:"owner_id"`
	Owner   User          `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Members []BoardMember `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Tasks   []Task        `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

// BoardMember represents a user's membership on a board.
// Invariant: the owner is always present in the member set; the board
// service re-injects it on every write.
type BoardMember struct {
	BaseModel
	BoardID uuid.UUID `gorm:"type:uuid;not null;index:idx_board_members_board_id;uniqueIndex:uq_board_members_board_user" json:"board_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_board_members_user_id;uniqueIndex:uq_board_members_board_user" json:"user_id"`
	User    User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Board   Board     `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"board,omitempty"`
}

// MemberIDs returns the user ids of the board's member set
func (b *Board) MemberIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(b.Members))
	for _, m := range b.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}

// HasMember reports whether the user belongs to the board's member set
func (b *Board) HasMember(userID uuid.UUID) bool {
	for _, m := range b.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}

// TableName specifies the table name for BoardMember
func (BoardMember) TableName() string {
	return "board_members"
}
