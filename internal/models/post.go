package models

import "time"

// PostDateLayout is the display format stamped onto a post at creation time.
// The date is stored as the rendered string, not a timestamp.
const PostDateLayout = "January 02, 2006"

// BlogPost is a published article. Its author is set at creation and never
// reassigned.
type BlogPost struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"unique;not null" json:"title"`
	Subtitle string `gorm:"not null" json:"subtitle"`
	Date     string `gorm:"not null" json:"date"`
	Body     string `gorm:"type:text;not null" json:"body"`
	ImageURL string `gorm:"not null" json:"image_url"`
	AuthorID uint   `gorm:"not null" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	// Comments is populated on single-post reads.
	Comments  []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the legacy table name.
func (BlogPost) TableName() string { return "blog_posts" }
