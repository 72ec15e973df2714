package response

import "github.com/quillhaven/quillhaven/domain"

type Profile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Location  string `json:"location"`
	Following bool   `json:"following"`
}

// NewProfileFromDomain: Domain -> Response
func NewProfileFromDomain(p *domain.Profile) Profile {
	return Profile{
		ID:        p.ID,
		Username:  p.Username,
		Bio:       p.Bio,
		Image:     p.Image,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Company:   p.Company,
		Location:  p.Location,
		Following: p.Following,
	}
}
