package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/quillhaven/quillhaven/domain"
	"github.com/quillhaven/quillhaven/internal/repository/mysql/model"
)

type favoriteRepository struct {
	DB *gorm.DB
}

var _ domain.FavoriteRepository = (*favoriteRepository)(nil)

func NewFavoriteRepository(db *gorm.DB) *favoriteRepository {
	return &favoriteRepository{DB: db}
}

func (f *favoriteRepository) Exists(ctx context.Context, articleID, userID int64) (bool, error) {
	var n int64
	err := f.DB.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Count(&n).
		Error
	return n > 0, err
}

func (f *favoriteRepository) Add(ctx context.Context, fav *domain.Favorite) error {
	row := model.NewFavoriteFromDomain(fav)
	err := f.DB.WithContext(ctx).Create(row).Error
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ErrConflict
		}
		return err
	}
	fav.ID = row.ID
	fav.CreatedAt = row.CreatedAt
	return nil
}

func (f *favoriteRepository) Remove(ctx context.Context, articleID, userID int64) error {
	result := f.DB.WithContext(ctx).
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (f *favoriteRepository) FetchByUser(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := f.DB.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("article_id", &ids).
		Error
	return ids, err
}
