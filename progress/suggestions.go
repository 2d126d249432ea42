package progress

import "gorm.io/gorm"

const maxSuggestions = 3

// Activity-volume thresholds for the nudge suggestions.
const (
	morePostsThreshold    = 3
	moreCommentsThreshold = 5
	moreLikesThreshold    = 10
)

// SuggestNextActions returns at most three suggestions of what the user
// should do next, highest value first: unvisited resource sections, then
// unvisited general sections, then activity nudges.
func SuggestNextActions(db *gorm.DB, userID string) []string {
	return nextActions(Aggregate(db, userID))
}

func nextActions(activity Activity) []string {
	suggestions := []string{}

	for _, key := range resourcePageOrder {
		if _, visited := activity.VisitedPages[key]; !visited {
			suggestions = append(suggestions, "Explore os recursos: "+ResourcePages[key])
		}
	}

	for _, key := range pageOrder {
		if IsResourcePage(key) {
			continue
		}
		if _, visited := activity.VisitedPages[key]; !visited {
			suggestions = append(suggestions, "Visite a página: "+Pages[key])
		}
	}

	if activity.PostsCount == 0 {
		suggestions = append(suggestions, "Crie seu primeiro post na comunidade")
	} else if activity.PostsCount < morePostsThreshold {
		suggestions = append(suggestions, "Crie mais posts para aumentar sua participação")
	}

	if activity.CommentsCount == 0 {
		suggestions = append(suggestions, "Comente em algum post da comunidade")
	} else if activity.CommentsCount < moreCommentsThreshold {
		suggestions = append(suggestions, "Participe mais das discussões comentando em posts")
	}

	if activity.LikesCount < moreLikesThreshold {
		suggestions = append(suggestions, "Curta posts e comentários que você gostar")
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}
