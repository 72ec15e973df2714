package model

import (
	"time"

	"github.com/quillhaven/quillhaven/domain"
)

type Profile struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uniq_profile_user"`
	Bio       string    `gorm:"type:text"`
	Image     string    `gorm:"type:varchar(512)"`
	FirstName string    `gorm:"column:first_name;type:varchar(50)"`
	LastName  string    `gorm:"column:last_name;type:varchar(50)"`
	Company   string    `gorm:"type:varchar(100)"`
	Location  string    `gorm:"type:varchar(100)"`
	CreatedAt time.Time `gorm:"type:datetime"`
	UpdatedAt time.Time `gorm:"type:datetime"`
}

func (Profile) TableName() string {
	return "profile"
}

func (m *Profile) ToDomain() domain.Profile {
	return domain.Profile{
		ID:        m.ID,
		UserID:    m.UserID,
		Bio:       m.Bio,
		Image:     m.Image,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Company:   m.Company,
		Location:  m.Location,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewProfileFromDomain(p *domain.Profile) *Profile {
	return &Profile{
		ID:        p.ID,
		UserID:    p.UserID,
		Bio:       p.Bio,
		Image:     p.Image,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Company:   p.Company,
		Location:  p.Location,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
