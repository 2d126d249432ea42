package progress

import "math"

// Weights of each activity kind, in engagement points.
const (
	PageVisitWeight   = 5
	PostCreatedWeight = 15
	CommentWeight     = 10
	LikeGivenWeight   = 3

	// maxPoints is what "full engagement" means: points/maxPoints is the
	// progress percentage before clamping.
	maxPoints = 200

	// fullExplorationBonus multiplies the percentage once every site
	// section has been visited, regardless of raw point total.
	fullExplorationBonus = 1.2
)

// Summary is the user-facing progress result. Points are the raw weighted
// score, only the percentage is displayed directly.
type Summary struct {
	Points     int64   `json:"activity_points"`
	Percentage float64 `json:"progress_percentage"`
}

// Score converts aggregated activity counts into engagement points and a
// progress percentage in [0, 100].
//
// ResourcesAccessed deliberately contributes nothing: resource pages are a
// subset of the pages already counted through PagesVisited, counting them
// again would double-count.
func Score(activity Activity) Summary {
	points := activity.PostsCount*PostCreatedWeight +
		activity.CommentsCount*CommentWeight +
		activity.LikesCount*LikeGivenWeight +
		int64(activity.PagesVisited)*PageVisitWeight

	percentage := math.Min(float64(points)/maxPoints*100, 100)

	if activity.PagesVisited == len(Pages) && len(Pages) > 0 {
		percentage = math.Min(percentage*fullExplorationBonus, 100)
	}

	// A percentage must always be a number, whatever the inputs were.
	if math.IsNaN(percentage) || math.IsInf(percentage, 0) || percentage < 0 {
		percentage = 0
	}

	return Summary{
		Points:     points,
		Percentage: math.Round(percentage*100) / 100,
	}
}
