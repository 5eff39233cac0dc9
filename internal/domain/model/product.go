package model

import "time"

// 在庫（stock）はカート追加時の上限チェックにだけ使う。
// 注文確定では減算しない。
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Price       float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Description string    `gorm:"type:varchar(255);not null" json:"description"`
	Stock       int64     `gorm:"not null" json:"stock"`
	ImageURL    string    `gorm:"type:varchar(255);not null;column:img" json:"img"`
	CategoryID  *int64    `gorm:"index" json:"category_id,omitempty"`
	BrandID     *int64    `gorm:"index" json:"brand_id,omitempty"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
