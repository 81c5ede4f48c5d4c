package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mekedron/daleeli/internal/domain"
	"github.com/mekedron/daleeli/internal/service/output"
	"github.com/mekedron/daleeli/internal/service/recommend"
)

func newSearchCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var query string
	var category string
	var sortValue string
	var openNow bool
	var direct bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search places near a location.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext(cmd, flags)
			if err != nil {
				return err
			}
			opts, err := parsePresenterOptions(sortValue, openNow)
			if err != nil {
				return err
			}

			q := strings.TrimSpace(query)
			if q == "" {
				q = strings.TrimSpace(strings.Join(args, " "))
			}
			limit := 0
			if strings.TrimSpace(category) != "" {
				if q != "" {
					return rc.emitError(codeInvalidArgument, "Use either a query or --category, not both.")
				}
				found, ok := domain.FindCategory(category)
				if !ok {
					return rc.emitError(codeInvalidArgument, fmt.Sprintf("Unknown category %q. Run `daleeli categories` to list them.", category))
				}
				q = found.Label(rc.lang)
				limit = recommend.NearbyLimit
			}
			if q == "" {
				return rc.emitError(codeInvalidArgument, requiredArg("query"))
			}
			if direct {
				limit = recommend.NearbyLimit
			}

			if err := rc.resolveLocation(deps); err != nil {
				return err
			}
			req := recommend.Request{
				Query:         q,
				Location:      rc.location,
				Language:      rc.lang,
				CountryCode:   rc.country,
				IsDirectMatch: direct,
				Limit:         limit,
			}
			return runSearch(rc, deps, req, opts, fmt.Sprintf("%s: %s", rc.content.Title, q))
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search query (alternative to positional words)")
	cmd.Flags().StringVar(&category, "category", "", "Search an explore category by id")
	cmd.Flags().BoolVar(&direct, "direct", false, "Look up one specific place instead of nearby alternatives")
	cmd.Flags().StringVar(&sortValue, "sort", "", "Secondary sort after distance: rating or popularity")
	cmd.Flags().BoolVar(&openNow, "open-now", false, "Only include places open now")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newNearbyCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var sortValue string
	var openNow bool

	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "Show the top tourist spots around the current location.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := newRunContext(cmd, flags)
			if err != nil {
				return err
			}
			opts, err := parsePresenterOptions(sortValue, openNow)
			if err != nil {
				return err
			}
			if err := rc.resolveLocation(deps); err != nil {
				return err
			}
			if rc.location == nil {
				return rc.emitError(codeLocationResolve, rc.content.LocationError)
			}
			req := recommend.NearbyRequest(rc.location, rc.lang, rc.country)
			return runSearch(rc, deps, req, opts, rc.content.NearbyTitle)
		},
	}

	cmd.Flags().StringVar(&sortValue, "sort", "", "Secondary sort after distance: rating or popularity")
	cmd.Flags().BoolVar(&openNow, "open-now", false, "Only include places open now")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newCategoriesCommand(_ Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List explore categories usable with search --category.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := newRunContext(cmd, flags)
			if err != nil {
				return err
			}
			items := make([]map[string]any, 0, len(domain.Categories))
			rows := make([][]string, 0, len(domain.Categories))
			for _, category := range domain.Categories {
				label := category.Label(rc.lang)
				items = append(items, map[string]any{"id": category.ID, "label": label})
				rows = append(rows, []string{category.ID, label})
			}
			return rc.render(func() string {
				return output.RenderTable(rc.content.CategoriesTitle, []string{"ID", "Label"}, rows)
			}, map[string]any{"categories": items}, nil)
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}
