package model

import (
	"time"

	"github.com/quillhaven/quillhaven/domain"
)

// Preference stores one like/dislike row per (subject_kind, subject_id,
// user_id). The composite unique index is the storage-level guard that makes
// a first-reaction race resolve to exactly one surviving row.
type Preference struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	SubjectKind int8      `gorm:"column:subject_kind;not null;uniqueIndex:uniq_pref_subject_user"`
	SubjectID   int64     `gorm:"column:subject_id;not null;uniqueIndex:uniq_pref_subject_user"`
	UserID      int64     `gorm:"column:user_id;not null;uniqueIndex:uniq_pref_subject_user"`
	Value       int8      `gorm:"column:value;not null"`
	CreatedAt   time.Time `gorm:"type:datetime"`
}

func (Preference) TableName() string {
	return "preference"
}

func (m *Preference) ToDomain() domain.Preference {
	return domain.Preference{
		ID:          m.ID,
		SubjectKind: domain.SubjectKind(m.SubjectKind),
		SubjectID:   m.SubjectID,
		UserID:      m.UserID,
		Value:       domain.PreferenceValue(m.Value),
		CreatedAt:   m.CreatedAt,
	}
}

func NewPreferenceFromDomain(p *domain.Preference) *Preference {
	return &Preference{
		ID:          p.ID,
		SubjectKind: int8(p.SubjectKind),
		SubjectID:   p.SubjectID,
		UserID:      p.UserID,
		Value:       int8(p.Value),
		CreatedAt:   p.CreatedAt,
	}
}
