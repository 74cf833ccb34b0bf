package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/integrii/flaggy"

	"github.com/ModOrganizer2/mob/cmd/build"
	"github.com/ModOrganizer2/mob/cmd/cmakeconfig"
	gitcmd "github.com/ModOrganizer2/mob/cmd/git"
	"github.com/ModOrganizer2/mob/cmd/list"
	prcmd "github.com/ModOrganizer2/mob/cmd/pr"
	releasecmd "github.com/ModOrganizer2/mob/cmd/release"
	txcmd "github.com/ModOrganizer2/mob/cmd/tx"
	"github.com/ModOrganizer2/mob/internal/app"
)

// --- build ---

type buildSubcommandOpts struct {
	sc          *flaggy.Subcommand
	tasks       []string
	redownload  bool
	reextract   bool
	reconfigure bool
	rebuild     bool
	full        bool
	noClean     bool
	noFetch     bool
	noBuild     bool
}

func newBuildSubcommand() (*flaggy.Subcommand, *buildSubcommandOpts) {
	sc := flaggy.NewSubcommand("build")
	sc.Description = "Run the orchestrator on built-in tasks filtered by patterns/aliases"
	opts := &buildSubcommandOpts{sc: sc}
	sc.StringSlice(&opts.tasks, "t", "task", "Task name/pattern/alias to build (repeatable); trailing positional args after -- are also treated as patterns")
	sc.Bool(&opts.redownload, "", "redownload", "Clean: redownload")
	sc.Bool(&opts.reextract, "", "reextract", "Clean: reextract")
	sc.Bool(&opts.reconfigure, "", "reconfigure", "Clean: reconfigure")
	sc.Bool(&opts.rebuild, "", "rebuild", "Clean: rebuild")
	sc.Bool(&opts.full, "", "full", "Clean: all of the above")
	sc.Bool(&opts.noClean, "", "no-clean", "Skip the clean phase")
	sc.Bool(&opts.noFetch, "", "no-fetch", "Skip the fetch phase")
	sc.Bool(&opts.noBuild, "", "no-build", "Skip the build-and-install phase")
	return sc, opts
}

func resolveBuildOptions(opts *buildSubcommandOpts) build.Options {
	patterns := append([]string{}, opts.tasks...)
	patterns = append(patterns, opts.sc.TrailingArguments...)
	return build.Options{
		Patterns:    patterns,
		Redownload:  opts.redownload,
		Reextract:   opts.reextract,
		Reconfigure: opts.reconfigure,
		Rebuild:     opts.rebuild,
		Full:        opts.full,
		NoClean:     opts.noClean,
		NoFetch:     opts.noFetch,
		NoBuild:     opts.noBuild,
	}
}

// --- list ---

type listSubcommandOpts struct {
	sc          *flaggy.Subcommand
	showAliases bool
	aliasesOnly bool
}

func newListSubcommand() (*flaggy.Subcommand, *listSubcommandOpts) {
	sc := flaggy.NewSubcommand("list")
	sc.Description = "Print task names"
	opts := &listSubcommandOpts{sc: sc}
	sc.Bool(&opts.showAliases, "a", "all", "Include parallel pseudo-tasks (none are registered, so the output is unchanged)")
	sc.Bool(&opts.aliasesOnly, "i", "aliases", "Print aliases instead of task names")
	return sc, opts
}

func resolveListOptions(opts *listSubcommandOpts) list.Options {
	return list.Options{
		Patterns:    opts.sc.TrailingArguments,
		ShowAliases: opts.showAliases,
		AliasesOnly: opts.aliasesOnly,
	}
}

// --- release ---

func newReleaseSubcommands() (dev, official *flaggy.Subcommand, opts *releasecmd.Options) {
	opts = &releasecmd.Options{}

	dev = flaggy.NewSubcommand("devbuild")
	dev.Description = "Archive the current install tree without a full rebuild"
	attachReleaseFlags(dev, opts)

	official = flaggy.NewSubcommand("official")
	official.Description = "Validate branch, rebuild, and archive an official release"
	attachReleaseFlags(official, opts)
	official.String(&opts.Branch, "b", "branch", "Required branch every subproject must have on its remote")

	return dev, official, opts
}

func attachReleaseFlags(sc *flaggy.Subcommand, opts *releasecmd.Options) {
	sc.String(&opts.Version, "", "version", "Explicit version override")
	sc.String(&opts.Suffix, "", "suffix", "Archive-name suffix")
	sc.String(&opts.OutputDir, "o", "output-dir", "Explicit output directory")
	sc.Bool(&opts.Force, "f", "force", "Overwrite existing archives")
	sc.Bool(&opts.Installer, "", "installer", "Copy the built installer (from --installer-src) into the output directory")
	sc.Bool(&opts.NoInstaller, "", "no-installer", "Suppress installer copy even if --installer is set")
	sc.String(&opts.InstallerSrc, "", "installer-src", "Path to the built installer to copy")
}

// --- git ---

type gitSubcommands struct {
	setRemotes *flaggy.Subcommand
	addRemote  *flaggy.Subcommand
	ignoreTS   *flaggy.Subcommand
	branches   *flaggy.Subcommand

	newOrigin  string
	remoteName string
	remoteURL  string
}

func (g *gitSubcommands) used() bool {
	return g.setRemotes.Used || g.addRemote.Used || g.ignoreTS.Used || g.branches.Used
}

func newGitSubcommand() (*flaggy.Subcommand, *gitSubcommands) {
	parent := flaggy.NewSubcommand("git")
	parent.Description = "Per-repository VCS maintenance"

	subs := &gitSubcommands{}

	subs.setRemotes = flaggy.NewSubcommand("set-remotes")
	subs.setRemotes.Description = "Rename origin to upstream, add a new origin"
	subs.setRemotes.String(&subs.newOrigin, "", "origin", "New origin URL")
	parent.AttachSubcommand(subs.setRemotes, 1)

	subs.addRemote = flaggy.NewSubcommand("add-remote")
	subs.addRemote.Description = "Add a named remote across every task's repo"
	subs.addRemote.String(&subs.remoteName, "", "name", "Remote name")
	subs.addRemote.String(&subs.remoteURL, "", "url", "Remote URL")
	parent.AttachSubcommand(subs.addRemote, 1)

	subs.ignoreTS = flaggy.NewSubcommand("ignore-ts")
	subs.ignoreTS.Description = "Mark translation source files assume-unchanged"
	parent.AttachSubcommand(subs.ignoreTS, 1)

	subs.branches = flaggy.NewSubcommand("branches")
	subs.branches.Description = "Print the current branch of every task's repo"
	parent.AttachSubcommand(subs.branches, 1)

	return parent, subs
}

func dispatchGit(ctx context.Context, a *app.App, subs *gitSubcommands) error {
	switch {
	case subs.setRemotes.Used:
		return gitcmd.SetRemotes(ctx, a, gitcmd.SetRemotesOptions{NewOriginURL: subs.newOrigin})
	case subs.addRemote.Used:
		return gitcmd.AddRemote(ctx, a, gitcmd.AddRemoteOptions{Name: subs.remoteName, URL: subs.remoteURL})
	case subs.ignoreTS.Used:
		return gitcmd.IgnoreTS(ctx, a, subs.ignoreTS.TrailingArguments)
	case subs.branches.Used:
		branches, err := gitcmd.Branches(ctx, a)
		if err != nil {
			return err
		}
		for path, branch := range branches {
			fmt.Printf("%s: %s\n", path, branch)
		}
		return nil
	default:
		return fmt.Errorf("git: no subcommand given")
	}
}

// --- pr ---

type prSubcommands struct {
	find   *flaggy.Subcommand
	pull   *flaggy.Subcommand
	revert *flaggy.Subcommand

	number   int
	taskName string
	baseRef  string
}

func (p *prSubcommands) used() bool { return p.find.Used || p.pull.Used || p.revert.Used }

func newPRSubcommand() (*flaggy.Subcommand, *prSubcommands) {
	parent := flaggy.NewSubcommand("pr")
	parent.Description = "Inspect/apply an external pull request across affected repos"

	subs := &prSubcommands{}

	subs.find = flaggy.NewSubcommand("find")
	subs.find.Description = "List open pull requests against the configured upstream"
	parent.AttachSubcommand(subs.find, 1)

	subs.pull = flaggy.NewSubcommand("pull")
	subs.pull.Description = "Fetch and check out a pull request's head ref"
	subs.pull.Int(&subs.number, "n", "number", "Pull request number")
	subs.pull.String(&subs.taskName, "", "task", "Task whose repo to apply the PR to")
	parent.AttachSubcommand(subs.pull, 1)

	subs.revert = flaggy.NewSubcommand("revert")
	subs.revert.Description = "Check a task's repo back onto a base ref"
	subs.revert.String(&subs.taskName, "", "task", "Task whose repo to revert")
	subs.revert.String(&subs.baseRef, "", "base", "Base ref to revert to")
	parent.AttachSubcommand(subs.revert, 1)

	return parent, subs
}

func dispatchPR(ctx context.Context, a *app.App, subs *prSubcommands) error {
	switch {
	case subs.find.Used:
		infos, err := prcmd.Find(ctx, a)
		if err != nil {
			return err
		}
		for _, info := range infos {
			fmt.Printf("#%d %s (%s -> %s)\n", info.Number, info.Title, info.HeadRef, info.BaseRef)
		}
		return nil
	case subs.pull.Used:
		return prcmd.Pull(ctx, a, subs.number, subs.taskName)
	case subs.revert.Used:
		return prcmd.Revert(ctx, a, subs.taskName, subs.baseRef)
	default:
		return fmt.Errorf("pr: no subcommand given")
	}
}

// --- tx ---

type txSubcommands struct {
	get   *flaggy.Subcommand
	build *flaggy.Subcommand
}

func (t *txSubcommands) used() bool { return t.get.Used || t.build.Used }

func newTxSubcommand() (*flaggy.Subcommand, *txSubcommands) {
	parent := flaggy.NewSubcommand("tx")
	parent.Description = "Invoke the translation client directly"

	subs := &txSubcommands{}

	subs.get = flaggy.NewSubcommand("get")
	subs.get.Description = "Pull translations (tx init/configure/pull)"
	parent.AttachSubcommand(subs.get, 1)

	subs.build = flaggy.NewSubcommand("build")
	subs.build.Description = "Compile pulled translations"
	parent.AttachSubcommand(subs.build, 1)

	return parent, subs
}

func dispatchTx(ctx context.Context, a *app.App, subs *txSubcommands) error {
	switch {
	case subs.get.Used:
		return txcmd.Get(ctx, a)
	case subs.build.Used:
		return txcmd.Build(ctx, a)
	default:
		return fmt.Errorf("tx: no subcommand given")
	}
}

// --- cmake-config ---

type cmakeSubcommands struct {
	prefixPath    *flaggy.Subcommand
	installPrefix *flaggy.Subcommand
	sep           string
}

func (c *cmakeSubcommands) used() bool { return c.prefixPath.Used || c.installPrefix.Used }

func newCmakeConfigSubcommand() (*flaggy.Subcommand, *cmakeSubcommands) {
	parent := flaggy.NewSubcommand("cmake-config")
	parent.Description = "Emit configure variables for external consumers"

	subs := &cmakeSubcommands{sep: string(os.PathListSeparator)}

	subs.prefixPath = flaggy.NewSubcommand("prefix-path")
	subs.prefixPath.Description = "Print the composite CMAKE_PREFIX_PATH"
	subs.prefixPath.String(&subs.sep, "", "sep", "Path-list separator")
	parent.AttachSubcommand(subs.prefixPath, 1)

	subs.installPrefix = flaggy.NewSubcommand("install-prefix")
	subs.installPrefix.Description = "Print the configured install prefix"
	parent.AttachSubcommand(subs.installPrefix, 1)

	return parent, subs
}

func dispatchCmakeConfig(w io.Writer, a *app.App, subs *cmakeSubcommands) error {
	switch {
	case subs.prefixPath.Used:
		fmt.Fprintln(w, cmakeconfig.PrefixPath(a, subs.sep))
		return nil
	case subs.installPrefix.Used:
		fmt.Fprintln(w, cmakeconfig.InstallPrefix(a))
		return nil
	default:
		return fmt.Errorf("cmake-config: no subcommand given")
	}
}
