package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/quillhaven/quillhaven/domain"
	"github.com/quillhaven/quillhaven/internal/repository/mysql/model"
	"github.com/sirupsen/logrus"
)

type preferenceRepository struct {
	DB *gorm.DB
}

var _ domain.PreferenceRepository = (*preferenceRepository)(nil)

// NewPreferenceRepository 创建偏好(点赞/点踩)存储层
func NewPreferenceRepository(db *gorm.DB) *preferenceRepository {
	return &preferenceRepository{DB: db}
}

func (p *preferenceRepository) Find(ctx context.Context, kind domain.SubjectKind, subjectID, userID int64) (domain.Preference, error) {
	var row model.Preference
	err := p.DB.WithContext(ctx).
		First(&row, "subject_kind = ? AND subject_id = ? AND user_id = ?", int8(kind), subjectID, userID).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Preference{}, domain.ErrNotFound
		}
		return domain.Preference{}, err
	}
	return row.ToDomain(), nil
}

// Create inserts the row. When the unique index on (subject_kind,
// subject_id, user_id) rejects it, we lost a first-reaction race: the
// surviving row is flipped to the requested value instead, once. A second
// constraint violation is a broken invariant and surfaces as such.
func (p *preferenceRepository) Create(ctx context.Context, pref *domain.Preference) error {
	row := model.NewPreferenceFromDomain(pref)
	err := p.DB.WithContext(ctx).Create(row).Error
	if err == nil {
		pref.ID = row.ID
		pref.CreatedAt = row.CreatedAt
		return nil
	}

	if !isDuplicateKey(err) {
		return err
	}

	logrus.Warnf("preference create race on %s %d by user %d, retrying as update",
		pref.SubjectKind, pref.SubjectID, pref.UserID)

	var existing model.Preference
	findErr := p.DB.WithContext(ctx).
		First(&existing, "subject_kind = ? AND subject_id = ? AND user_id = ?",
			row.SubjectKind, row.SubjectID, row.UserID).
		Error
	if findErr != nil {
		return domain.ErrDuplicatePreference
	}

	result := p.DB.WithContext(ctx).
		Model(&model.Preference{}).
		Where("id = ?", existing.ID).
		Update("value", row.Value)
	if result.Error != nil {
		return result.Error
	}

	pref.ID = existing.ID
	pref.CreatedAt = existing.CreatedAt
	return nil
}

func (p *preferenceRepository) UpdateValue(ctx context.Context, id int64, value domain.PreferenceValue) error {
	result := p.DB.WithContext(ctx).
		Model(&model.Preference{}).
		Where("id = ?", id).
		Update("value", int8(value))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (p *preferenceRepository) Delete(ctx context.Context, id int64) error {
	result := p.DB.WithContext(ctx).Delete(&model.Preference{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (p *preferenceRepository) Count(ctx context.Context, kind domain.SubjectKind, subjectID int64, value domain.PreferenceValue) (int64, error) {
	var n int64
	err := p.DB.WithContext(ctx).
		Model(&model.Preference{}).
		Where("subject_kind = ? AND subject_id = ? AND value = ?", int8(kind), subjectID, int8(value)).
		Count(&n).
		Error
	return n, err
}

// Atomic hands fn a repository bound to one transaction, so the engine's
// read-decide-write runs serializably against the identifying tuple.
func (p *preferenceRepository) Atomic(ctx context.Context, fn func(repo domain.PreferenceRepository) error) error {
	return p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&preferenceRepository{DB: tx})
	})
}
