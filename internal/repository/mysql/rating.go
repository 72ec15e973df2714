package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quillhaven/quillhaven/domain"
	"github.com/quillhaven/quillhaven/internal/repository/mysql/model"
)

type ratingRepository struct {
	DB *gorm.DB
}

var _ domain.RatingRepository = (*ratingRepository)(nil)

func NewRatingRepository(db *gorm.DB) *ratingRepository {
	return &ratingRepository{DB: db}
}

func (r *ratingRepository) Get(ctx context.Context, articleID, userID int64) (domain.Rating, error) {
	var row model.Rating
	err := r.DB.WithContext(ctx).
		First(&row, "article_id = ? AND user_id = ?", articleID, userID).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Rating{}, domain.ErrNotFound
		}
		return domain.Rating{}, err
	}
	return row.ToDomain(), nil
}

// Upsert relies on the unique (article_id, user_id) index: re-rating
// updates the score in place.
func (r *ratingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	row := model.NewRatingFromDomain(rating)
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "article_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).
		Create(row).
		Error
	if err != nil {
		return err
	}
	rating.ID = row.ID
	return nil
}

func (r *ratingRepository) Report(ctx context.Context, articleID int64) (domain.RatingReport, error) {
	var res struct {
		Average float64
		Count   int64
	}
	err := r.DB.WithContext(ctx).
		Model(&model.Rating{}).
		Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS count").
		Where("article_id = ?", articleID).
		Scan(&res).
		Error
	if err != nil {
		return domain.RatingReport{}, err
	}
	return domain.RatingReport{
		ArticleID: articleID,
		Average:   res.Average,
		Count:     res.Count,
	}, nil
}
