// Package cli implements the nested-subcommand dispatcher (C12): global
// flags attached to the root flaggy parser, one flaggy.Subcommand per entry
// in SPEC_FULL.md §6's command-surface table, each loading config (C11),
// constructing logging (C13), and calling into the matching cmd/* package.
// Grounded on the teacher's main.go flaggy usage, generalized from a
// single-mode TUI launcher into a full subcommand tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/integrii/flaggy"

	"github.com/ModOrganizer2/mob/cmd/build"
	"github.com/ModOrganizer2/mob/cmd/list"
	"github.com/ModOrganizer2/mob/cmd/options"
	releasecmd "github.com/ModOrganizer2/mob/cmd/release"
	"github.com/ModOrganizer2/mob/internal/app"
	"github.com/ModOrganizer2/mob/internal/config"
	"github.com/ModOrganizer2/mob/internal/logging"
)

// globalFlags mirrors SPEC_FULL.md §6's "Global flags (apply to every
// command)" table.
type globalFlags struct {
	iniFiles      []string
	noDefaultInis bool
	dry           bool
	logLevel      int
	fileLogLevel  int
	logFile       string
	destination   string
	setOverrides  []string
}

// Run parses os.Args and dispatches to the matched subcommand. It returns
// the process exit code, per SPEC_FULL.md §6's "0 on success, non-zero on
// any failure" contract.
func Run(ctx context.Context) int {
	gf := &globalFlags{fileLogLevel: -1}

	flaggy.SetName("mob")
	flaggy.SetDescription("Build-automation orchestrator for the native desktop application build pipeline")
	flaggy.DefaultParser.AdditionalHelpPrepend = "https://github.com/ModOrganizer2/mob"

	flaggy.StringSlice(&gf.iniFiles, "", "ini", "Additional layered config file (repeatable)")
	flaggy.Bool(&gf.noDefaultInis, "", "no-default-inis", "Disable auto-discovery of the default config file")
	flaggy.Bool(&gf.dry, "", "dry", "Dry-run everywhere")
	flaggy.Int(&gf.logLevel, "", "log-level", "Console verbosity (0-6)")
	flaggy.Int(&gf.fileLogLevel, "", "file-log-level", "File verbosity (falls back to console level)")
	flaggy.String(&gf.logFile, "", "log-file", "Write log to file")
	flaggy.String(&gf.destination, "", "destination", "Override the prefix path")
	flaggy.StringSlice(&gf.setOverrides, "", "set", "Direct override of any config key (KEY=VALUE, repeatable)")
	flaggy.SetVersion(options.Version)

	buildSC, buildOpts := newBuildSubcommand()
	listSC, listOpts := newListSubcommand()
	releaseDevSC, releaseOfficialSC, releaseOpts := newReleaseSubcommands()
	gitSC, gitSubs := newGitSubcommand()
	prSC, prSubs := newPRSubcommand()
	txSC, txSubs := newTxSubcommand()
	cmakeSC, cmakeSubs := newCmakeConfigSubcommand()
	optionsSC := flaggy.NewSubcommand("options")
	optionsSC.Description = "Print the effective config"
	inisSC := flaggy.NewSubcommand("inis")
	inisSC.Description = "Print loaded config files"
	versionSC := flaggy.NewSubcommand("version")
	versionSC.Description = "Print version"

	flaggy.AttachSubcommand(buildSC, 1)
	flaggy.AttachSubcommand(listSC, 1)
	releaseSC := flaggy.NewSubcommand("release")
	releaseSC.Description = "Build and archive a release"
	releaseSC.AttachSubcommand(releaseDevSC, 1)
	releaseSC.AttachSubcommand(releaseOfficialSC, 1)
	flaggy.AttachSubcommand(releaseSC, 1)
	flaggy.AttachSubcommand(gitSC, 1)
	flaggy.AttachSubcommand(prSC, 1)
	flaggy.AttachSubcommand(txSC, 1)
	flaggy.AttachSubcommand(cmakeSC, 1)
	flaggy.AttachSubcommand(optionsSC, 1)
	flaggy.AttachSubcommand(inisSC, 1)
	flaggy.AttachSubcommand(versionSC, 1)

	flaggy.Parse()

	if gf.destination != "" {
		gf.setOverrides = append(gf.setOverrides, "paths/prefix="+gf.destination)
	}
	if gf.dry {
		gf.setOverrides = append(gf.setOverrides, "global/dry=true")
	}

	switch {
	case versionSC.Used:
		options.PrintVersion(os.Stdout)
		return 0
	case optionsSC.Used:
		return runWithApp(gf, func(a *app.App) error { return options.PrintOptions(os.Stdout, a.Tree) })
	case inisSC.Used:
		return runInis(gf)
	case buildSC.Used:
		return runWithApp(gf, func(a *app.App) error { return build.Run(ctx, a, resolveBuildOptions(buildOpts)) })
	case listSC.Used:
		return runWithApp(gf, func(a *app.App) error { return list.Run(os.Stdout, a, resolveListOptions(listOpts)) })
	case releaseDevSC.Used:
		releaseOpts.Mode = "devbuild"
		return runWithApp(gf, func(a *app.App) error { return releasecmd.Run(ctx, a, *releaseOpts) })
	case releaseOfficialSC.Used:
		releaseOpts.Mode = "official"
		return runWithApp(gf, func(a *app.App) error { return releasecmd.Run(ctx, a, *releaseOpts) })
	case gitSubs.used():
		return runWithApp(gf, func(a *app.App) error { return dispatchGit(ctx, a, gitSubs) })
	case prSubs.used():
		return runWithApp(gf, func(a *app.App) error { return dispatchPR(ctx, a, prSubs) })
	case txSubs.used():
		return runWithApp(gf, func(a *app.App) error { return dispatchTx(ctx, a, txSubs) })
	case cmakeSubs.used():
		return runWithApp(gf, func(a *app.App) error { return dispatchCmakeConfig(os.Stdout, a, cmakeSubs) })
	default:
		flaggy.ShowHelpAndExit("no subcommand given")
		return 1
	}
}

func loadAndBuildApp(gf *globalFlags) (*app.App, []string, error) {
	tree, loaded, err := config.Load(gf.iniFiles, gf.noDefaultInis, gf.setOverrides)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(logging.Options{
		ConsoleLevel: gf.logLevel,
		FileLevel:    gf.fileLogLevel,
		FilePath:     gf.logFile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to construct logger: %w", err)
	}

	a := app.New(tree, logger.WithField("component", "mob"), tree.Global.Dry)
	return a, loaded, nil
}

func runWithApp(gf *globalFlags, fn func(a *app.App) error) int {
	a, _, err := loadAndBuildApp(gf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := fn(a); err != nil {
		fmt.Fprintln(os.Stderr, errorChain(err))
		return 1
	}
	return 0
}

func runInis(gf *globalFlags) int {
	_, loaded, err := loadAndBuildApp(gf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	options.PrintInis(os.Stdout, loaded)
	return 0
}

// errorChain renders the full cause chain to match SPEC_FULL.md §6's "full
// cause chain" exit-code contract.
func errorChain(err error) string {
	var b strings.Builder
	b.WriteString(err.Error())
	for e := err; e != nil; {
		unwrapped, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		inner := unwrapped.Unwrap()
		if inner == nil {
			break
		}
		b.WriteString("\ncaused by: ")
		b.WriteString(inner.Error())
		e = inner
	}
	return b.String()
}
