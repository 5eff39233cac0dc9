package model

import "time"

// role（0=一般 / 1=管理者）
const (
	RoleUser  = 0
	RoleAdmin = 1
)

type User struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	LastNameFather string    `gorm:"type:varchar(100);not null;column:last_name_father" json:"lstF"`
	LastNameMother string    `gorm:"type:varchar(100);not null;column:last_name_mother" json:"lstM"`
	Address        string    `gorm:"type:varchar(255);not null" json:"address"`
	Email          string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"type:varchar(255);not null" json:"-"`
	Phone          string    `gorm:"type:varchar(20);not null" json:"phone"`
	Payment        string    `gorm:"type:varchar(100);not null" json:"payment"`
	Role           int       `gorm:"not null;default:0" json:"role"`
	RememberToken  string    `gorm:"type:varchar(100)" json:"-"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
