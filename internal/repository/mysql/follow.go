package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/quillhaven/quillhaven/domain"
	"github.com/quillhaven/quillhaven/internal/repository/mysql/model"
)

type followRepository struct {
	DB *gorm.DB
}

var _ domain.FollowRepository = (*followRepository)(nil)

// NewFollowRepository 创建关注关系存储层
func NewFollowRepository(db *gorm.DB) *followRepository {
	return &followRepository{DB: db}
}

func (f *followRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	var n int64
	err := f.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&n).
		Error
	return n > 0, err
}

func (f *followRepository) Add(ctx context.Context, followerID, followedID int64) error {
	edge := &model.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
	}
	err := f.DB.WithContext(ctx).Create(edge).Error
	if isDuplicateKey(err) {
		// the unique pair index already holds this edge
		return domain.ErrConflict
	}
	return err
}

func (f *followRepository) Remove(ctx context.Context, followerID, followedID int64) error {
	result := f.DB.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&model.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (f *followRepository) FollowersOf(ctx context.Context, profileID int64) ([]int64, error) {
	var ids []int64
	err := f.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("followed_id = ?", profileID).
		Order("created_at DESC").
		Pluck("follower_id", &ids).
		Error
	return ids, err
}

func (f *followRepository) FollowingOf(ctx context.Context, profileID int64) ([]int64, error) {
	var ids []int64
	err := f.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", profileID).
		Order("created_at DESC").
		Pluck("followed_id", &ids).
		Error
	return ids, err
}

func (f *followRepository) Atomic(ctx context.Context, fn func(repo domain.FollowRepository) error) error {
	return f.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&followRepository{DB: tx})
	})
}
