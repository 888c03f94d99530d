package complete_test

import (
	"strings"
	"testing"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/toejough/rawcmd/internal/complete"
	"github.com/toejough/rawcmd/internal/core"
)

func TestComplete(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		line string
		want []string
	}{
		{"empty line lists commands", "", []string{"connect", "remote"}},
		{"command prefix", "re", []string{"remote"}},
		{"no match", "x", nil},
		{"new word after command", "connect ", []string{"--verbose", "-v", "--port", "-p"}},
		{"long option prefix", "connect --p", []string{"--port"}},
		{"short option prefix", "connect -", []string{"--verbose", "-v", "--port", "-p"}},
		{"value expected after long", "connect --port ", nil},
		{"value expected after short group", "connect -vp ", nil},
		{"value given inline", "connect --port=80 ", []string{"--verbose", "-v", "--port", "-p"}},
		{"value consumed", "connect -p 80 -", []string{"--verbose", "-v", "--port", "-p"}},
		{"flag does not wait", "connect -v ", []string{"--verbose", "-v", "--port", "-p"}},
		{"subcommand names", "remote ", []string{"list", "remove", "-a"}},
		{"subcommand prefix", "remote l", []string{"list"}},
		{"nested options", "remote -a list --", []string{"--all"}},
		{"nested positional", "remote remove ", nil},
		{"unknown subcommand", "remote nope ", nil},
		{"unknown command", "nope ", nil},
		{"values only after double dash", "connect -- -", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			g.Expect(complete.Complete(namespace(), tc.line)).To(Equal(tc.want))
		})
	}
}

func TestProgram(t *testing.T) {
	t.Parallel()

	subcommands := []string{"complete", "help", "parse", "repl"}

	cases := []struct {
		name string
		line string
		want []string
	}{
		{"program only", "rawcmd", nil},
		{"own subcommands", "rawcmd ", subcommands},
		{"own subcommand prefix", "rawcmd pa", []string{"parse"}},
		{"global flags", "rawcmd --sc", []string{"--schema"}},
		{"global flag value pending", "rawcmd --schema ", nil},
		{"skips global flags", "rawcmd -s x.hcl --no-color re", []string{"repl"}},
		{"skips deprecated boolean", "rawcmd --plain --log-level debug r", []string{"repl"}},
		{"removed flag stops", "rawcmd --file x ", nil},
		{"parse completes schema", "rawcmd -s x.hcl parse ", []string{"connect", "remote"}},
		{"parse nested", "rawcmd --schema=x.hcl parse remote l", []string{"list"}},
		{"other subcommands stop", "rawcmd help ", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			g.Expect(complete.Program(namespace(), tc.line, subcommands)).To(Equal(tc.want))
		})
	}
}

func TestScript(t *testing.T) {
	t.Parallel()

	for _, shell := range complete.Shells() {
		t.Run(shell, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			var out strings.Builder
			g.Expect(complete.Script(&out, shell, "mycli")).To(Succeed())
			g.Expect(out.String()).To(ContainSubstring("mycli complete"))
			g.Expect(out.String()).NotTo(ContainSubstring("%!"))
		})
	}

	g := NewWithT(t)
	g.Expect(complete.Script(&strings.Builder{}, "tcsh", "mycli")).To(MatchError(complete.ErrUnsupportedShell))
}

func TestProperty_Completion(t *testing.T) {
	t.Parallel()

	t.Run("CandidatesShareThePrefix", func(t *testing.T) {
		t.Parallel()
		rapid.Check(t, func(t *rapid.T) {
			g := NewWithT(t)

			head := rapid.SampledFrom([]string{"", "connect ", "connect -v ", "remote ", "remote -a list "}).Draw(t, "head")
			prefix := rapid.StringMatching(`-{0,2}[a-z]{0,3}`).Draw(t, "prefix")

			for _, c := range complete.Complete(namespace(), head+prefix) {
				g.Expect(c).To(HavePrefix(prefix))
			}
		})
	})

	t.Run("EveryCommandNameCompletesToItself", func(t *testing.T) {
		t.Parallel()
		rapid.Check(t, func(t *rapid.T) {
			g := NewWithT(t)

			name := rapid.SampledFrom(namespace().Names()).Draw(t, "name")
			cut := rapid.IntRange(1, len(name)).Draw(t, "cut")

			g.Expect(complete.Complete(namespace(), name[:cut])).To(ContainElement(name))
		})
	})
}

func namespace() *core.Namespace {
	actions := core.NewNamespace("Actions",
		&core.Command{Name: "list", Args: []core.ArgSpec{core.Flag("all", 0, "all")}},
		&core.Command{Name: "remove", Args: []core.ArgSpec{core.Positional("name", core.String())}},
	)

	return core.NewNamespace("Commands",
		&core.Command{
			Name: "connect",
			Args: []core.ArgSpec{
				core.Flag("verbose", 'v', "verbose"),
				core.Option("port", 'p', "port", core.Uint(16)),
				core.Positional("host", core.String()),
			},
		},
		&core.Command{
			Name: "remote",
			Args: []core.ArgSpec{core.Flag("all", 'a', "")},
			Sub:  &core.SubcommandSpec{Field: "action", Namespace: actions},
		},
	)
}
