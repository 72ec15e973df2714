package request

type Rating struct {
	Score float64 `json:"score" binding:"required,min=1,max=5"`
}
