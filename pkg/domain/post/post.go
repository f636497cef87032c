package post

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AuthorID           uuid.UUID `json:"author_id" gorm:"type:uuid;index"`
	Content            string    `json:"content"`
	LikeCount          int       `json:"like_count"`
	CommentCount       int       `json:"comment_count"`
	ModerationSeverity int       `json:"moderation_severity"`
	Flagged            bool      `json:"flagged"`
	Approved           bool      `json:"approved"`
	CreatedAt          time.Time `json:"created_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return nil
}

func (p *Post) TableName() string {
	return "public.posts"
}

// Engagement is the combined reaction count used by the risk profiler.
func (p *Post) Engagement() int {
	return p.LikeCount + p.CommentCount
}
