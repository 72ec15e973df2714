package request

import "github.com/quillhaven/quillhaven/domain"

type Profile struct {
	Bio       string `json:"bio" binding:"max=2000"`
	Image     string `json:"image" binding:"omitempty,url,max=512"`
	FirstName string `json:"first_name" binding:"max=50"`
	LastName  string `json:"last_name" binding:"max=50"`
	Company   string `json:"company" binding:"max=100"`
	Location  string `json:"location" binding:"max=100"`
}

// ToDomain: Request -> Domain
func (r *Profile) ToDomain() domain.Profile {
	return domain.Profile{
		Bio:       r.Bio,
		Image:     r.Image,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Company:   r.Company,
		Location:  r.Location,
	}
}
