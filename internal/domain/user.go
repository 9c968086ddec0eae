package domain

// User represents a registered account
type User struct {
	BaseModel
	FullName     string `gorm:"type:varchar(255);not null" json:"fullname"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
