package help_test

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/toejough/rawcmd/internal/core"
	"github.com/toejough/rawcmd/internal/help"
)

func TestUsageShowsEveryArgument(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(help.Usage(connect())).To(Equal("connect [--verbose] --port <u16> [--timeout <timeout>] <host>"))
	g.Expect(help.Usage(remote().Commands[0], "app")).To(Equal("app remote [-a] <action>"))
}

func TestCommandHelpSections(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	out := help.CommandHelp(connect()).WithStyles(help.PlainStyles()).Render()

	g.Expect(out).To(HavePrefix("Connect to a host\n\nUsage:\n  connect "))
	g.Expect(out).To(ContainSubstring("Arguments:\n  <host>    Host name (required)\n"))
	g.Expect(out).To(ContainSubstring("-v, --verbose"))
	g.Expect(out).To(ContainSubstring("-p, --port <u16>       Port (required)"))
	g.Expect(out).To(ContainSubstring("--timeout <timeout>    (default: 30s)"))
	g.Expect(out).To(ContainSubstring("Examples:\n  Basic usage:\n    connect --port <u16> <host>\n"))
	g.Expect(out).To(ContainSubstring("connect --port <u16> <host> --verbose --timeout 30s"))
	g.Expect(out).NotTo(ContainSubstring("Actions:"))
}

func TestCommandHelpListsSubcommands(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	out := help.CommandHelp(remote().Commands[0]).WithStyles(help.PlainStyles()).Render()

	g.Expect(out).To(ContainSubstring("Actions:\n  list      List entries\n  remove    Remove an entry\n"))
	g.Expect(out).To(ContainSubstring("remote list"))
}

func TestStyledHelpStripsToPlain(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	styled := help.CommandHelp(connect()).Render()
	plain := help.CommandHelp(connect()).WithStyles(help.PlainStyles()).Render()

	g.Expect(ansi.Strip(styled)).To(Equal(plain))
}

func TestNamespaceHelp(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	out := help.NamespaceHelp(remote().Commands[0].Sub.Namespace, "").WithStyles(help.PlainStyles()).Render()

	g.Expect(out).To(Equal("Actions:\n  list      List entries\n  remove    Remove an entry\n"))
}

func TestMatchCommands(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ns := core.NewNamespace("Commands", connect(), remote().Commands[0])

	paths := func(pattern string) []string {
		matches, err := help.MatchCommands(ns, pattern)
		g.Expect(err).NotTo(HaveOccurred())

		out := make([]string, 0, len(matches))
		for _, m := range matches {
			out = append(out, m.Path)
		}

		return out
	}

	g.Expect(paths("*")).To(Equal([]string{"connect", "remote"}))
	g.Expect(paths("**")).To(Equal([]string{"connect", "remote", "remote/list", "remote/remove"}))
	g.Expect(paths("remote/*")).To(Equal([]string{"remote/list", "remote/remove"}))
	g.Expect(paths("**/re*")).To(Equal([]string{"remote", "remote/remove"}))
	g.Expect(paths("{connect,remote/list}")).To(Equal([]string{"connect", "remote/list"}))

	_, err := help.MatchCommands(ns, "[")
	g.Expect(err).To(MatchError(help.ErrBadPattern))
}

func TestMatchCommandsReachesDeepTrees(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	depth := core.DefaultMaxDepth + 4
	leaf := &core.Command{Name: "leaf"}
	ns := core.NewNamespace("Commands", leaf)

	for range depth - 1 {
		ns = core.NewNamespace("Commands", &core.Command{
			Name: "level",
			Sub:  &core.SubcommandSpec{Field: "next", Namespace: ns},
		})
	}

	g.Expect(ns.Validate(depth)).To(Succeed())

	matches, err := help.MatchCommands(ns, "**/leaf")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(matches).To(HaveLen(1))
	g.Expect(matches[0].Command).To(BeIdenticalTo(leaf))
	g.Expect(strings.Count(matches[0].Path, "/")).To(Equal(depth - 1))
}

func TestMatchCommandsStopsAtCycles(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	loop := &core.Command{Name: "loop"}
	ns := core.NewNamespace("Commands", loop)
	loop.Sub = &core.SubcommandSpec{Field: "next", Namespace: ns}

	matches, err := help.MatchCommands(ns, "**")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(matches).To(HaveLen(1))
	g.Expect(matches[0].Path).To(Equal("loop"))
}

func TestFind(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ns := core.NewNamespace("Commands", connect(), remote().Commands[0])

	cmd, err := help.Find(ns, "remote/remove")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cmd.Name).To(Equal("remove"))

	cmd, err = help.Find(ns, "remote list")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cmd.Name).To(Equal("list"))

	_, err = help.Find(ns, "connect/x")
	g.Expect(err).To(MatchError(core.ErrUnknownCommand))

	_, err = help.Find(ns, "nope")
	g.Expect(err).To(MatchError(core.ErrUnknownCommand))

	_, err = help.Find(ns, " / ")
	g.Expect(err).To(MatchError(help.ErrBadPattern))
}

func TestSuggest(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ns := core.NewNamespace("Commands",
		&core.Command{Name: "connect"},
		&core.Command{Name: "config"},
		&core.Command{Name: "list"},
	)

	g.Expect(help.Suggest("conect", ns)).To(Equal([]string{"connect"}))
	g.Expect(help.Suggest("lsit", ns)).To(Equal([]string{"list"}))
	g.Expect(help.Suggest("co", ns)).To(ConsistOf("connect", "config"))
	g.Expect(help.Suggest("zzzzzz", ns)).To(BeEmpty())
	g.Expect(help.Suggest("", ns)).To(BeEmpty())
}

func TestProperty_Suggest(t *testing.T) {
	t.Parallel()

	t.Run("ExactNameIsFirst", func(t *testing.T) {
		t.Parallel()
		rapid.Check(t, func(t *rapid.T) {
			g := NewWithT(t)

			names := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z]{2,8}`), 1, 6, rapid.ID[string]).Draw(t, "names")
			cmds := make([]*core.Command, 0, len(names))

			for _, name := range names {
				cmds = append(cmds, &core.Command{Name: name})
			}

			pick := rapid.SampledFrom(names).Draw(t, "pick")

			got := help.Suggest(pick, core.NewNamespace("Commands", cmds...))
			g.Expect(got).NotTo(BeEmpty())
			g.Expect(got[0]).To(Equal(pick))
			g.Expect(len(got)).To(BeNumerically("<=", 3))
		})
	})
}

func connect() *core.Command {
	return &core.Command{
		Name: "connect",
		Help: "Connect to a host",
		Args: []core.ArgSpec{
			core.Flag("verbose", 'v', "verbose"),
			core.Option("port", 'p', "port", core.Uint(16), core.WithPlaceholder("<u16>"), core.WithHelp("Port")),
			core.Option("timeout", 0, "timeout", core.Duration(), core.WithDefault(30*time.Second)),
			core.Positional("host", core.String(), core.WithHelp("Host name")),
		},
	}
}

func remote() *core.Namespace {
	actions := core.NewNamespace("Actions",
		&core.Command{Name: "list", Help: "List entries"},
		&core.Command{Name: "remove", Help: "Remove an entry"},
	)

	return core.NewNamespace("Commands", &core.Command{
		Name: "remote",
		Args: []core.ArgSpec{core.Flag("all", 'a', "")},
		Sub:  &core.SubcommandSpec{Field: "action", Namespace: actions},
	})
}
