package response

import "github.com/quillhaven/quillhaven/domain"

type Reaction struct {
	State        string `json:"state"`
	LikeCount    int64  `json:"like_count"`
	DislikeCount int64  `json:"dislike_count"`
}

// NewReactionFromDomain: Domain -> Response
func NewReactionFromDomain(r domain.ReactionResult) Reaction {
	return Reaction{
		State:        r.State.String(),
		LikeCount:    r.LikeCount,
		DislikeCount: r.DislikeCount,
	}
}
