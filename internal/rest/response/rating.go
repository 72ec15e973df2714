package response

import "github.com/quillhaven/quillhaven/domain"

type Rating struct {
	ArticleID int64   `json:"article_id"`
	Average   float64 `json:"average"`
	Count     int64   `json:"count"`
}

// NewRatingFromDomain: Domain -> Response
func NewRatingFromDomain(r domain.RatingReport) Rating {
	return Rating{
		ArticleID: r.ArticleID,
		Average:   r.Average,
		Count:     r.Count,
	}
}
