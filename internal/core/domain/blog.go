package domain

import "time"

// Post is a published blog entry.
type Post struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Summary   string    `json:"summary" bson:"summary"`
	Content   string    `json:"content" bson:"content"`
	Author    string    `json:"author" bson:"author"`
	ImageURL  string    `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Comment is a visitor comment on a blog post. New comments start pending
// and only appear publicly once an admin approves them.
type Comment struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	PostID    string    `json:"postId" bson:"post_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Website   string    `json:"website,omitempty" bson:"website,omitempty"`
	Comment   string    `json:"comment" bson:"comment"`
	Pending   bool      `json:"pending" bson:"pending"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
