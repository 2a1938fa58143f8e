package domain

import "time"

// Post is a community-hub feed entry written by a participant or by the shared
// community account.
type Post struct {
	ID         string
	AuthorKind PrincipalKind
	AuthorID   string
	Body       string
	Hashtags   []string
	LikeCount  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Comment is a reply on a post.
type Comment struct {
	ID         string
	PostID     string
	AuthorKind PrincipalKind
	AuthorID   string
	Body       string
	CreatedAt  time.Time
}
