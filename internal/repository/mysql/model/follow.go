package model

import "time"

// Follow is one directed edge of the social graph. The composite unique
// index keeps at most one edge per ordered (follower, followed) pair.
type Follow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	FollowerID int64     `gorm:"column:follower_id;not null;uniqueIndex:uniq_follow_pair;index"`
	FollowedID int64     `gorm:"column:followed_id;not null;uniqueIndex:uniq_follow_pair;index"`
	CreatedAt  time.Time `gorm:"type:datetime"`
}

func (Follow) TableName() string {
	return "follow"
}
