package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mekedron/daleeli/internal/domain"
	"github.com/mekedron/daleeli/internal/gateway/gemini"
	"github.com/mekedron/daleeli/internal/service/locale"
	"github.com/mekedron/daleeli/internal/service/output"
	"github.com/mekedron/daleeli/internal/service/recommend"
)

const (
	codeInvalidArgument = "DALEELI_INVALID_ARGUMENT"
	codeLocationResolve = "DALEELI_LOCATION_RESOLVE_ERROR"
	codeKeyNotFound     = "DALEELI_KEY_NOT_FOUND"
	codeUpstream        = "DALEELI_UPSTREAM_ERROR"
	codeAccount         = "DALEELI_ACCOUNT_ERROR"
	codeSession         = "DALEELI_SESSION_ERROR"
)

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}

type globalFlags struct {
	Format  string
	Lang    string
	Country string
	Address string
	Lat     float64
	Lon     float64
	Output  string
	Verbose bool
}

const sharedGlobalFlagAnnotation = "daleeli_shared_global"

func addGlobalFlags(cmd *cobra.Command, flags *globalFlags) {
	addSharedGlobalFlag(cmd, "format", func() {
		cmd.Flags().StringVar(&flags.Format, "format", "table", "Output format: table, json, or yaml.")
	})
	addSharedGlobalFlag(cmd, "lang", func() {
		cmd.Flags().StringVar(&flags.Lang, "lang", "en", "Interface and prompt language: en or ar.")
	})
	addSharedGlobalFlag(cmd, "country", func() {
		cmd.Flags().StringVar(&flags.Country, "country", "", "ISO country code override, for example KW. Defaults to the detected country.")
	})
	addSharedGlobalFlag(cmd, "address", func() {
		cmd.Flags().StringVar(&flags.Address, "address", "", "Address to search around. Geocoded to coordinates. Cannot be combined with --lat/--lon.")
	})
	addSharedGlobalFlag(cmd, "lat", func() {
		cmd.Flags().Float64Var(&flags.Lat, "lat", 0, "Latitude to search around (requires --lon).")
	})
	addSharedGlobalFlag(cmd, "lon", func() {
		cmd.Flags().Float64Var(&flags.Lon, "lon", 0, "Longitude to search around (requires --lat).")
	})
	addSharedGlobalFlag(cmd, "output", func() {
		cmd.Flags().StringVar(&flags.Output, "output", "", "Also write the rendered output to this file.")
	})
	addSharedGlobalFlag(cmd, "verbose", func() {
		cmd.Flags().BoolVar(&flags.Verbose, "verbose", false, "Enable debug logging and detailed error diagnostics.")
	})
}

func addSharedGlobalFlag(cmd *cobra.Command, name string, register func()) {
	if cmd.Flags().Lookup(name) != nil {
		return
	}
	register()
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		return
	}
	if flag.Annotations == nil {
		flag.Annotations = map[string][]string{}
	}
	flag.Annotations[sharedGlobalFlagAnnotation] = []string{"true"}
}

// runContext carries the parsed shared flags of one invocation.
type runContext struct {
	cmd      *cobra.Command
	flags    globalFlags
	format   output.Format
	lang     domain.Language
	country  string
	location *domain.Location
	content  locale.Content
}

func newRunContext(cmd *cobra.Command, flags globalFlags) (*runContext, error) {
	format, err := output.ParseFormat(flags.Format)
	if err != nil {
		return nil, err
	}
	lang, err := domain.ParseLanguage(flags.Lang)
	if err != nil {
		return nil, err
	}
	return &runContext{
		cmd:     cmd,
		flags:   flags,
		format:  format,
		lang:    lang,
		country: strings.ToUpper(strings.TrimSpace(flags.Country)),
		content: locale.For(lang),
	}, nil
}

func (rc *runContext) ctx() context.Context {
	return rc.cmd.Context()
}

func (rc *runContext) writeTable(text string) error {
	return output.WriteOutput(rc.cmd.OutOrStdout(), text, rc.flags.Output)
}

func (rc *runContext) writeData(data any, warnings []string) error {
	env := output.BuildEnvelope(string(rc.lang), rc.country, data, warnings, nil)
	rendered, err := output.RenderPayload(env, rc.format)
	if err != nil {
		return err
	}
	return output.WriteOutput(rc.cmd.OutOrStdout(), rendered, rc.flags.Output)
}

// render writes table for table format and data otherwise.
func (rc *runContext) render(table func() string, data any, warnings []string) error {
	if rc.format == output.FormatTable {
		return rc.writeTable(table())
	}
	return rc.writeData(data, warnings)
}

func (rc *runContext) emitError(code string, message string) error {
	if rc.format == output.FormatTable {
		if err := output.WriteOutput(rc.cmd.OutOrStdout(), message, rc.flags.Output); err != nil {
			return err
		}
		return &exitError{code: 1}
	}
	env := output.BuildEnvelope(string(rc.lang), rc.country, nil, []string{}, output.ErrorPayload(code, message, nil))
	rendered, err := output.RenderPayload(env, rc.format)
	if err != nil {
		return err
	}
	if err := output.WriteOutput(rc.cmd.OutOrStdout(), rendered, rc.flags.Output); err != nil {
		return err
	}
	return &exitError{code: 1}
}

// emitSearchError maps a failed search to its error kind and the localized
// message for it.
func (rc *runContext) emitSearchError(err error) error {
	kind := recommend.ClassifyError(err)
	code := codeUpstream
	if kind == domain.ErrorKindKeyNotFound {
		code = codeKeyNotFound
	}
	message := rc.content.ErrorMessage(kind)
	if rc.flags.Verbose {
		message = fmt.Sprintf("%s (%v)", message, err)
	} else {
		var upstream *gemini.UpstreamRequestError
		if errors.As(err, &upstream) && upstream.StatusCode > 0 {
			message = fmt.Sprintf("%s (status %d, use --verbose for details)", message, upstream.StatusCode)
		}
	}
	return rc.emitError(code, message)
}

func (rc *runContext) emitKindError(kind domain.ErrorKind) error {
	code := codeUpstream
	if kind == domain.ErrorKindKeyNotFound {
		code = codeKeyNotFound
	}
	return rc.emitError(code, rc.content.ErrorMessage(kind))
}

// resolveLocation applies --address or --lat/--lon, falling back to the
// saved location. A nil location without error means none is known.
// Freshly resolved locations update the detected country unless --country
// is set.
func (rc *runContext) resolveLocation(deps Dependencies) error {
	address := strings.TrimSpace(rc.flags.Address)
	latSet := rc.cmd.Flags().Changed("lat")
	lonSet := rc.cmd.Flags().Changed("lon")

	var fresh *domain.Location
	switch {
	case address != "" && (latSet || lonSet):
		return rc.emitError(codeInvalidArgument, "Do not combine --address with --lat/--lon. Use either --address or both --lat and --lon.")
	case address != "":
		if deps.Location == nil {
			return rc.emitError(codeLocationResolve, "Location resolver is not available.")
		}
		location, err := deps.Location.Get(rc.ctx(), address)
		if err != nil {
			return rc.emitError(codeLocationResolve, err.Error())
		}
		fresh = &location
	case latSet != lonSet:
		return rc.emitError(codeInvalidArgument, "Both --lat and --lon must be provided together.")
	case latSet:
		if rc.flags.Lat < -90 || rc.flags.Lat > 90 || rc.flags.Lon < -180 || rc.flags.Lon > 180 {
			return rc.emitError(codeInvalidArgument, "Coordinates are out of range.")
		}
		fresh = &domain.Location{Latitude: rc.flags.Lat, Longitude: rc.flags.Lon}
	}

	session := rc.loadSession(deps)
	if fresh == nil {
		rc.location = session.LastLocation
		if rc.country == "" {
			rc.country = session.CountryCode
		}
		return nil
	}

	rc.location = fresh
	if rc.country == "" {
		if deps.Countries != nil {
			rc.country = deps.Countries.Detect(rc.ctx(), *fresh)
		} else {
			rc.country = session.CountryCode
		}
	}
	return nil
}

func (rc *runContext) loadSession(deps Dependencies) domain.Session {
	if deps.Sessions == nil {
		return domain.Session{}
	}
	session, err := deps.Sessions.LoadOrEmpty(rc.ctx())
	if err != nil {
		if deps.Logger != nil {
			deps.Logger.WithError(err).Warn("ignoring unreadable session")
		}
		return domain.Session{}
	}
	return session
}

func requiredArg(name string) string {
	return fmt.Sprintf("%s is required", name)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
