package tokenize_test

import (
	"strings"
	"testing"
	"unsafe"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/toejough/rawcmd/internal/core"
	"github.com/toejough/rawcmd/internal/tokenize"
)

func TestSplitClassifiesTokens(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		line string
		cmd  string
		want []core.Arg
	}{
		{"name only", "status", "status", nil},
		{"value", "get key", "get", []core.Arg{core.ValueArg("key")}},
		{"long", "connect --port 80", "connect", []core.Arg{core.LongOption("port"), core.ValueArg("80")}},
		{"long with value", "connect --port=80", "connect", []core.Arg{core.LongOption("port"), core.ValueArg("80")}},
		{"short group", "ls -la", "ls", []core.Arg{core.ShortOption('l'), core.ShortOption('a')}},
		{"dash alone", "cat -", "cat", []core.Arg{core.ValueArg("-")}},
		{"negative number", "move -5", "move", []core.Arg{core.ValueArg("-5")}},
		{
			"double dash",
			"run -- --not-an-option -x",
			"run",
			[]core.Arg{core.DoubleDash(), core.ValueArg("--not-an-option"), core.ValueArg("-x")},
		},
		{"double quoted", `say "hello world"`, "say", []core.Arg{core.ValueArg("hello world")}},
		{"single quoted", `say 'a "b"'`, "say", []core.Arg{core.ValueArg(`a "b"`)}},
		{"quoted dash is value", `say "--x"`, "say", []core.Arg{core.ValueArg("--x")}},
		{"escaped space", `say a\ b`, "say", []core.Arg{core.ValueArg("a b")}},
		{"extra spaces", "  get \t  key  ", "get", []core.Arg{core.ValueArg("key")}},
		{"utf8 short", "opt -ж", "opt", []core.Arg{core.ShortOption('ж')}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			name, rest, ok := tokenize.Split(tc.line)
			g.Expect(ok).To(BeTrue())
			g.Expect(name).To(Equal(tc.cmd))
			g.Expect(rest.All()).To(Equal(tc.want))
		})
	}
}

func TestSplitBlankLine(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, _, ok := tokenize.Split("   \t")
	g.Expect(ok).To(BeFalse())
}

func TestPlainWordsBorrowFromLine(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	line := "connect localhost"
	_, rest, _ := tokenize.Split(line)

	arg, ok := rest.Next()
	g.Expect(ok).To(BeTrue())
	g.Expect(unsafe.StringData(arg.Text)).To(BeIdenticalTo(unsafe.StringData(line[8:])))
}

func TestTokensAreLazy(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, rest, _ := tokenize.Split("remote list --all")

	ns := core.NewNamespace("Commands", &core.Command{
		Name: "remote",
		Sub: &core.SubcommandSpec{Field: "action", Namespace: core.NewNamespace("Actions",
			&core.Command{Name: "list", Args: []core.ArgSpec{core.Flag("all", 0, "all")}},
		)},
	})

	v, err := core.Parse(ns, core.NewRawCommand("remote", rest))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(v.Sub.Bool("all")).To(BeTrue())

	_, more := rest.Next()
	g.Expect(more).To(BeFalse())
}

func TestFromWordsClassifiesLikeALine(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	words, _ := tokenize.Fields(`--port=80 -vx "a b" -- -q`)
	g.Expect(tokenize.FromWords(words).All()).To(Equal([]core.Arg{
		core.LongOption("port"),
		core.ValueArg("80"),
		core.ShortOption('v'),
		core.ShortOption('x'),
		core.ValueArg("a b"),
		core.DoubleDash(),
		core.ValueArg("-q"),
	}))
	g.Expect(tokenize.FromWords(nil).All()).To(BeEmpty())
}

func TestFieldsKeepsEmptyQuotedWordsLikeSplit(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	line := `set "" '' x`

	words, _ := tokenize.Fields(line)
	g.Expect(words).To(Equal([]string{"set", "", "", "x"}))

	name, rest, ok := tokenize.Split(line)
	g.Expect(ok).To(BeTrue())
	g.Expect(name).To(Equal(words[0]))
	g.Expect(rest.All()).To(Equal(tokenize.FromWords(words[1:]).All()))
}

func TestFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		line    string
		words   []string
		atNewWd bool
	}{
		{"", nil, false},
		{"app ", []string{"app"}, true},
		{"app con", []string{"app", "con"}, false},
		{`app "a b`, []string{"app", "a b"}, false},
		{`app a\ b `, []string{"app", "a b"}, true},
		{`app x\`, []string{"app", `x\`}, false},
		{`say "" x`, []string{"say", "", "x"}, false},
		{`say '' `, []string{"say", ""}, true},
		{`say "`, []string{"say", ""}, false},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			words, atNewWord := tokenize.Fields(tc.line)
			g.Expect(words).To(Equal(tc.words))
			g.Expect(atNewWord).To(Equal(tc.atNewWd))
		})
	}
}

func TestProperty_Tokenize(t *testing.T) {
	t.Parallel()

	t.Run("PlainWordsSurviveAsValues", func(t *testing.T) {
		t.Parallel()
		rapid.Check(t, func(t *rapid.T) {
			g := NewWithT(t)

			words := rapid.SliceOfN(rapid.StringMatching(`[a-z0-9_.]{1,8}`), 1, 8).Draw(t, "words")

			name, rest, ok := tokenize.Split(strings.Join(words, " "))
			g.Expect(ok).To(BeTrue())
			g.Expect(name).To(Equal(words[0]))

			args := rest.All()
			g.Expect(args).To(HaveLen(len(words) - 1))

			for i, arg := range args {
				g.Expect(arg).To(Equal(core.ValueArg(words[i+1])))
			}
		})
	})

	t.Run("FieldsMatchesSplitForPlainWords", func(t *testing.T) {
		t.Parallel()
		rapid.Check(t, func(t *rapid.T) {
			g := NewWithT(t)

			words := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,6}`), 1, 6).Draw(t, "words")

			got, atNewWord := tokenize.Fields(strings.Join(words, " ") + " ")
			g.Expect(got).To(Equal(words))
			g.Expect(atNewWord).To(BeTrue())
		})
	})
}
