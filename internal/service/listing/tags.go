package listing

import "github.com/mekedron/daleeli/internal/domain"

const (
	hiddenGemMinRating  = 4.5
	hiddenGemMaxReviews = 300
	trendingMinReviews  = 3000
	popularMinRating    = 4.8
)

// InferTags applies the classification rules in order. Tags are additive.
func InferTags(rating float64, reviews int, index int) []domain.Tag {
	tags := []domain.Tag{}
	if rating > hiddenGemMinRating && reviews < hiddenGemMaxReviews {
		tags = append(tags, domain.TagHiddenGem)
	}
	if reviews > trendingMinReviews {
		tags = append(tags, domain.TagTrending)
	}
	if rating > popularMinRating {
		tags = append(tags, domain.TagPopular)
	}
	if index == 0 {
		tags = append(tags, domain.TagPersonalized)
	}
	return tags
}
