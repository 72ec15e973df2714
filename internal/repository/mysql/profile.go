package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/quillhaven/quillhaven/domain"
	"github.com/quillhaven/quillhaven/internal/repository/mysql/model"
)

type profileRepository struct {
	DB *gorm.DB
}

var _ domain.ProfileRepository = (*profileRepository)(nil)

// NewProfileRepository 创建作者主页存储层
func NewProfileRepository(db *gorm.DB) *profileRepository {
	return &profileRepository{DB: db}
}

func (p *profileRepository) GetByUserID(ctx context.Context, userID int64) (domain.Profile, error) {
	var row model.Profile
	if err := p.DB.WithContext(ctx).First(&row, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, err
	}
	return row.ToDomain(), nil
}

// GetByUsername 连表查 user 拿用户名
func (p *profileRepository) GetByUsername(ctx context.Context, username string) (domain.Profile, error) {
	type profileWithName struct {
		model.Profile
		Username string
	}

	var row profileWithName
	err := p.DB.WithContext(ctx).
		Model(&model.Profile{}).
		Select("profile.*, user.username AS username").
		Joins("JOIN user ON user.id = profile.user_id").
		Where("user.username = ?", username).
		First(&row).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, err
	}

	res := row.ToDomain()
	res.Username = row.Username
	return res, nil
}

func (p *profileRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	type profileWithName struct {
		model.Profile
		Username string
	}

	var rows []profileWithName
	err := p.DB.WithContext(ctx).
		Model(&model.Profile{}).
		Select("profile.*, user.username AS username").
		Joins("JOIN user ON user.id = profile.user_id").
		Where("profile.id IN ?", ids).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Profile, len(rows))
	for i := range rows {
		res[i] = rows[i].ToDomain()
		res[i].Username = rows[i].Username
	}
	return res, nil
}

func (p *profileRepository) FetchOthers(ctx context.Context, excludeUserID int64) ([]domain.Profile, error) {
	type profileWithName struct {
		model.Profile
		Username string
	}

	var rows []profileWithName
	err := p.DB.WithContext(ctx).
		Model(&model.Profile{}).
		Select("profile.*, user.username AS username").
		Joins("JOIN user ON user.id = profile.user_id").
		Where("profile.user_id <> ?", excludeUserID).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Profile, len(rows))
	for i := range rows {
		res[i] = rows[i].ToDomain()
		res[i].Username = rows[i].Username
	}
	return res, nil
}

func (p *profileRepository) Update(ctx context.Context, pr *domain.Profile) error {
	row := model.NewProfileFromDomain(pr)
	result := p.DB.WithContext(ctx).Model(&row).Updates(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
