package domain

// Tag classifies a listing.
type Tag string

const (
	TagHiddenGem    Tag = "hiddenGem"
	TagTrending     Tag = "trending"
	TagPopular      Tag = "popular"
	TagPersonalized Tag = "personalized"
)

// BusinessListing is a normalized recommendation card.
type BusinessListing struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	Category      string   `json:"category" yaml:"category"`
	Rating        float64  `json:"rating" yaml:"rating"`
	ReviewsCount  int      `json:"reviews_count" yaml:"reviews_count"`
	Address       string   `json:"address" yaml:"address"`
	MapURL        string   `json:"map_url,omitempty" yaml:"map_url,omitempty"`
	ImageURL      string   `json:"image_url" yaml:"image_url"`
	PriceLevel    string   `json:"price_level,omitempty" yaml:"price_level,omitempty"`
	IsOpen        bool     `json:"is_open" yaml:"is_open"`
	PhoneNumber   string   `json:"phone_number" yaml:"phone_number"`
	Website       string   `json:"website" yaml:"website"`
	OpeningHours  []string `json:"opening_hours" yaml:"opening_hours"`
	ReviewSnippet string   `json:"review_snippet" yaml:"review_snippet"`
	Distance      string   `json:"distance" yaml:"distance"`
	DistanceNum   float64  `json:"distance_num" yaml:"distance_num"`
	Tags          []Tag    `json:"tags" yaml:"tags"`
}

// HasTag reports whether the listing carries tag.
func (b BusinessListing) HasTag(tag Tag) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Recommendation is the result of one grounded search.
type Recommendation struct {
	Text        string            `json:"text" yaml:"text"`
	Businesses  []BusinessListing `json:"businesses" yaml:"businesses"`
	DirectMatch *BusinessListing  `json:"direct_match,omitempty" yaml:"direct_match,omitempty"`
}

// ErrorKind classifies failed recommendation calls.
type ErrorKind string

const (
	ErrorKindNone        ErrorKind = ""
	ErrorKindKeyNotFound ErrorKind = "key_not_found"
	ErrorKindGeneric     ErrorKind = "generic"
)
