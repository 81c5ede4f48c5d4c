package cli

import (
	"bufio"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mekedron/daleeli/internal/domain"
	"github.com/mekedron/daleeli/internal/service/output"
	"github.com/mekedron/daleeli/internal/service/presenter"
	"github.com/mekedron/daleeli/internal/service/query"
	"github.com/mekedron/daleeli/internal/service/recommend"
	"github.com/mekedron/daleeli/internal/service/suggest"
)

func newExploreCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var sortValue string
	var openNow bool

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Run one search per stdin line; the last line issued wins.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := newRunContext(cmd, flags)
			if err != nil {
				return err
			}
			opts, err := parsePresenterOptions(sortValue, openNow)
			if err != nil {
				return err
			}
			if deps.Recommender == nil {
				return rc.emitError(codeUpstream, "Search service is not configured.")
			}
			if err := rc.resolveLocation(deps); err != nil {
				return err
			}

			tracker := recommend.NewTracker()
			var wg sync.WaitGroup
			lastQuery := ""
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				q := strings.TrimSpace(scanner.Text())
				if q == "" {
					continue
				}
				lastQuery = q
				req := recommend.Request{
					Query:       q,
					Location:    rc.location,
					Language:    rc.lang,
					CountryCode: rc.country,
				}
				token := tracker.Begin()
				wg.Add(1)
				go func() {
					defer wg.Done()
					applied := tracker.Settle(rc.ctx(), token, deps.Recommender, req)
					if deps.Logger != nil {
						deps.Logger.WithFields(logrus.Fields{"query": req.Query, "token": token, "applied": applied}).Debug("explore search settled")
					}
				}()
			}
			wg.Wait()
			if err := scanner.Err(); err != nil {
				return err
			}
			if lastQuery == "" {
				return rc.emitError(codeInvalidArgument, "No queries on stdin.")
			}

			state := tracker.Snapshot()
			if state.Results == nil {
				return rc.emitKindError(state.LastError)
			}
			view := buildSearchView(rc, lastQuery, *state.Results, opts)
			warnings := rc.searchWarnings()
			if state.LastError != domain.ErrorKindNone {
				warnings = append(warnings, rc.content.ErrorMessage(state.LastError))
			}
			return rc.render(func() string {
				return buildSearchTable(rc, rc.content.Title+": "+lastQuery, view)
			}, view, warnings)
		},
	}

	cmd.Flags().StringVar(&sortValue, "sort", "", "Secondary sort after distance: rating or popularity")
	cmd.Flags().BoolVar(&openNow, "open-now", false, "Only include places open now")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newSuggestCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var watch bool

	cmd := &cobra.Command{
		Use:   "suggest [partial query]",
		Short: "Autocomplete a partial search query.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext(cmd, flags)
			if err != nil {
				return err
			}
			if deps.Suggester == nil {
				return rc.emitError(codeUpstream, "Suggestion service is not configured.")
			}
			if err := rc.resolveLocation(deps); err != nil {
				return err
			}

			if !watch {
				partial := strings.Join(args, " ")
				return renderSuggestions(rc, partial, deps.Suggester.Suggest(rc.ctx(), partial, rc.location, rc.lang, rc.country))
			}

			var writeMu sync.Mutex
			var renderErr error
			debouncer := suggest.NewDebouncer(deps.SuggestSettle)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				partial := scanner.Text()
				debouncer.Trigger(func() {
					suggestions := deps.Suggester.Suggest(rc.ctx(), partial, rc.location, rc.lang, rc.country)
					writeMu.Lock()
					defer writeMu.Unlock()
					if err := renderSuggestions(rc, partial, suggestions); err != nil && renderErr == nil {
						renderErr = err
					}
				})
			}
			debouncer.Flush()
			if err := scanner.Err(); err != nil {
				return err
			}
			return renderErr
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Read keystroke snapshots from stdin, one per line, and debounce them")
	addGlobalFlags(cmd, &flags)
	return cmd
}

func renderSuggestions(rc *runContext, partial string, suggestions []domain.SearchSuggestion) error {
	data := map[string]any{"query": partial, "suggestions": suggestions}
	return rc.render(func() string {
		rows := make([][]string, 0, len(suggestions))
		for _, s := range suggestions {
			rows = append(rows, []string{string(s.Type), s.Text})
		}
		title := "> " + partial
		if len(rows) == 0 {
			return title
		}
		return output.RenderTable(title, []string{"Type", "Suggestion"}, rows)
	}, data, nil)
}

type locateView struct {
	Location    domain.Location `json:"location" yaml:"location"`
	CountryCode string          `json:"country_code" yaml:"country_code"`
	CountryName string          `json:"country_name" yaml:"country_name"`
	Flag        string          `json:"flag" yaml:"flag"`
	MapURL      string          `json:"map_url" yaml:"map_url"`
}

func newLocateCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Resolve and save the current location and country.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := newRunContext(cmd, flags)
			if err != nil {
				return err
			}
			if err := rc.resolveLocation(deps); err != nil {
				return err
			}
			if rc.location == nil {
				return rc.emitError(codeLocationResolve, rc.content.LocationError)
			}
			if err := saveLocation(rc, deps); err != nil {
				return rc.emitError(codeSession, err.Error())
			}

			view := locateView{
				Location:    *rc.location,
				CountryCode: rc.country,
				CountryName: query.CountryName(rc.country),
				Flag:        domain.FlagEmoji(rc.country),
				MapURL:      presenter.MapURL(domain.Recommendation{}, "", rc.location, rc.country, rc.lang),
			}
			return rc.render(func() string {
				country := view.CountryCode
				if country == "" {
					country = "-"
				}
				rows := [][]string{
					{"Location", view.Location.String()},
					{"Country", strings.TrimSpace(view.Flag + " " + country)},
					{"Region", view.CountryName},
					{"Map", view.MapURL},
				}
				return output.RenderTable("", []string{"Field", "Value"}, rows)
			}, view, nil)
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

func saveLocation(rc *runContext, deps Dependencies) error {
	if deps.Sessions == nil {
		return nil
	}
	session, err := deps.Sessions.LoadOrEmpty(rc.ctx())
	if err != nil {
		return err
	}
	loc := *rc.location
	session.LastLocation = &loc
	if rc.country != "" {
		session.CountryCode = rc.country
	}
	return deps.Sessions.Save(rc.ctx(), session)
}
