package cli

import (
	"fmt"
	"strings"

	"github.com/mekedron/daleeli/internal/domain"
	"github.com/mekedron/daleeli/internal/service/output"
	"github.com/mekedron/daleeli/internal/service/presenter"
	"github.com/mekedron/daleeli/internal/service/recommend"
)

type searchView struct {
	Query       string                   `json:"query" yaml:"query"`
	Text        string                   `json:"text" yaml:"text"`
	Highlight   *presenter.Highlight     `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	DirectMatch *domain.BusinessListing  `json:"direct_match,omitempty" yaml:"direct_match,omitempty"`
	Businesses  []domain.BusinessListing `json:"businesses" yaml:"businesses"`
	Total       int                      `json:"total" yaml:"total"`
	MapURL      string                   `json:"map_url" yaml:"map_url"`
	Location    *domain.Location         `json:"location,omitempty" yaml:"location,omitempty"`
}

func buildSearchView(rc *runContext, q string, rec domain.Recommendation, opts presenter.Options) searchView {
	view := searchView{
		Query:       q,
		Text:        rec.Text,
		DirectMatch: rec.DirectMatch,
		Businesses:  presenter.Present(rec.Businesses, opts),
		Total:       len(rec.Businesses),
		MapURL:      presenter.MapURL(rec, q, rc.location, rc.country, rc.lang),
		Location:    rc.location,
	}
	if highlight, ok := presenter.HighlightFor(rec, rc.lang); ok {
		view.Highlight = &highlight
	}
	return view
}

func (rc *runContext) searchWarnings() []string {
	if rc.location == nil {
		return []string{rc.content.LocationError}
	}
	return []string{}
}

func (rc *runContext) renderSearch(title string, view searchView) error {
	return rc.render(func() string {
		return buildSearchTable(rc, title, view)
	}, view, rc.searchWarnings())
}

func buildSearchTable(rc *runContext, title string, view searchView) string {
	var b strings.Builder
	if view.Highlight != nil {
		b.WriteString("* ")
		b.WriteString(view.Highlight.Text)
		b.WriteByte('\n')
	}
	if len(view.Businesses) == 0 {
		b.WriteString(title)
		b.WriteByte('\n')
		b.WriteString(rc.content.NoResults)
		return b.String()
	}

	headers := []string{"ID", "Name", "Rating", "Reviews", "Distance", rc.content.Filters.OpenNow, "Phone", "Tags"}
	rows := make([][]string, 0, len(view.Businesses))
	for _, listing := range view.Businesses {
		tags := make([]string, 0, len(listing.Tags))
		for _, tag := range listing.Tags {
			tags = append(tags, rc.content.TagLabel(tag))
		}
		tagText := "-"
		if len(tags) > 0 {
			tagText = strings.Join(tags, ", ")
		}
		rows = append(rows, []string{
			listing.ID,
			listing.Name,
			fmt.Sprintf("%.1f", listing.Rating),
			fmt.Sprintf("%d", listing.ReviewsCount),
			listing.Distance,
			yesNo(listing.IsOpen),
			listing.PhoneNumber,
			tagText,
		})
	}
	b.WriteString(output.RenderTable(title, headers, rows))
	b.WriteString("\n\nMap: ")
	b.WriteString(view.MapURL)
	if view.DirectMatch != nil {
		b.WriteString("\nWebsite: ")
		b.WriteString(view.DirectMatch.Website)
		b.WriteString("\nHours: ")
		b.WriteString(strings.Join(view.DirectMatch.OpeningHours, "; "))
		b.WriteString("\nReview: ")
		b.WriteString(view.DirectMatch.ReviewSnippet)
	}
	return b.String()
}

func runSearch(rc *runContext, deps Dependencies, req recommend.Request, opts presenter.Options, title string) error {
	if deps.Recommender == nil {
		return rc.emitError(codeUpstream, "Search service is not configured.")
	}
	rec, err := deps.Recommender.Recommend(rc.ctx(), req)
	if err != nil {
		return rc.emitSearchError(err)
	}
	return rc.renderSearch(title, buildSearchView(rc, req.Query, rec, opts))
}

func parsePresenterOptions(sortValue string, openNow bool) (presenter.Options, error) {
	sortBy, err := presenter.ParseSort(sortValue)
	if err != nil {
		return presenter.Options{}, err
	}
	return presenter.Options{OpenNow: openNow, SortBy: sortBy}, nil
}
