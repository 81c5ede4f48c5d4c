package cli

import (
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

const (
	devVersion         = "dev"
	goDevelMainVersion = "(devel)"
	vcsRevisionKey     = "vcs.revision"
	vcsModifiedKey     = "vcs.modified"
)

var readBuildInfo = debug.ReadBuildInfo

// resolvedVersion prefers an injected release version, then the module
// version, then the VCS revision recorded by the toolchain.
func resolvedVersion(raw string) string {
	injected := strings.TrimSpace(raw)
	if injected != "" && injected != devVersion {
		return injected
	}
	if info, ok := readBuildInfo(); ok && info != nil {
		if v := strings.TrimSpace(info.Main.Version); v != "" && v != goDevelMainVersion {
			return v
		}
		if revision, dirty := buildRevision(info.Settings); revision != "" {
			if dirty {
				return revision + "-dirty"
			}
			return revision
		}
	}
	if injected != "" {
		return injected
	}
	return devVersion
}

func buildRevision(settings []debug.BuildSetting) (revision string, dirty bool) {
	for _, setting := range settings {
		switch setting.Key {
		case vcsRevisionKey:
			revision = strings.TrimSpace(setting.Value)
		case vcsModifiedKey:
			dirty = strings.EqualFold(strings.TrimSpace(setting.Value), "true")
		}
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	return revision, dirty
}

func newVersionCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show build information.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := newRunContext(cmd, flags)
			if err != nil {
				return err
			}
			data := map[string]any{
				"version":    resolvedVersion(deps.Version),
				"go_version": runtime.Version(),
				"platform":   runtime.GOOS + "/" + runtime.GOARCH,
			}
			return rc.render(func() string {
				return data["version"].(string) + " (" + runtime.Version() + ", " + data["platform"].(string) + ")"
			}, data, nil)
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}
