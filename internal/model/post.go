package model

import "time"

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  string    `gorm:"size:255" json:"image_url"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Creator   User      `gorm:"foreignKey:UserID" json:"creator"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostPage is one page of the post feed plus the overall count, the unit
// both the resolvers and the feed cache traffic in.
type PostPage struct {
	Posts      []Post `json:"posts"`
	TotalPosts int64  `json:"total_posts"`
}
