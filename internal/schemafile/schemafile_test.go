package schemafile_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/rawcmd/internal/core"
	"github.com/toejough/rawcmd/internal/schemafile"
	"github.com/toejough/rawcmd/internal/tokenize"
)

func TestLoadBuildsNamespace(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ns, err := schemafile.Load(filepath.Join("testdata", "commands.hcl"))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ns.Title).To(Equal("Commands"))
	g.Expect(ns.Names()).To(Equal([]string{"connect", "remote", "net", "echo"}))

	connect := ns.Commands[0]
	g.Expect(connect.Help).To(Equal("Connect to a host"))
	g.Expect(connect.Args).To(HaveLen(3))
	g.Expect(connect.Args[0].Kind).To(Equal(core.SpecFlag))
	g.Expect(connect.Args[0].Short).To(Equal('v'))
	g.Expect(connect.Args[1].Kind).To(Equal(core.SpecOption))
	g.Expect(connect.Args[1].HasDefault).To(BeTrue())
	g.Expect(connect.Args[1].Default).To(Equal(uint16(8080)))
	g.Expect(connect.Args[2].Kind).To(Equal(core.SpecPositional))
	g.Expect(connect.Args[2].Help).To(Equal("Host name"))

	remote := ns.Commands[1]
	g.Expect(remote.Sub.Field).To(Equal("action"))
	g.Expect(remote.Sub.Namespace.Title).To(Equal("Actions"))
	g.Expect(remote.Sub.Namespace.Names()).To(Equal([]string{"list", "remove"}))

	g.Expect(ns.Commands[2].Sub.Replaces()).To(BeTrue())
	g.Expect(ns.Commands[3].Tuple).To(BeTrue())
}

func TestLoadedSchemaParses(t *testing.T) {
	t.Parallel()

	ns, err := schemafile.Load(filepath.Join("testdata", "commands.hcl"))
	NewWithT(t).Expect(err).NotTo(HaveOccurred())

	cases := []struct {
		line string
		want string
	}{
		{"connect -v localhost", `connect{verbose: true, port: 8080, host: "localhost"}`},
		{"connect --port=80 h", `connect{verbose: false, port: 80, host: "h"}`},
		{"remote -a list --all", `remote{all: true, action: list{all: true}}`},
		{"net down", `net down`},
		{"echo hi !", `echo("hi", '!')`},
		{"echo hi", `echo("hi", none)`},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			name, rest, ok := tokenize.Split(tc.line)
			g.Expect(ok).To(BeTrue())

			v, err := core.Parse(ns, core.NewRawCommand(name, rest))
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(v.String()).To(Equal(tc.want))
		})
	}
}

func TestLoadRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `command "x" {`, "failed to parse"},
		{"unknown attribute", `command "x" { colour = "red" }`, "failed to decode"},
		{"missing kind", `
command "x" {
  arg "a" {}
}`, "failed to decode"},
		{"unknown kind", `
command "x" {
  arg "a" { kind = "switch" }
}`, `unknown kind "switch"`},
		{"unknown type", `
command "x" {
  arg "a" {
    kind = "positional"
    type = "u7"
  }
}`, `unknown type "u7"`},
		{"flag default", `
command "x" {
  arg "a" {
    kind    = "flag"
    long    = "a"
    default = true
  }
}`, "takes no type or default"},
		{"long short", `
command "x" {
  arg "a" {
    kind  = "flag"
    short = "ab"
  }
}`, "must be one character"},
		{"bad default", `
command "x" {
  arg "a" {
    kind    = "option"
    long    = "a"
    type    = "u8"
    default = 300
  }
}`, "default of"},
		{"list default", `
command "x" {
  arg "a" {
    kind    = "option"
    long    = "a"
    default = [1]
  }
}`, "cannot use"},
		{"duplicate command", `
command "x" {}
command "x" {}`, `duplicate command "x"`},
		{"two subcommand blocks", `
command "x" {
  subcommand {
    command "a" {}
  }
  subcommand {
    command "b" {}
  }
}`, "failed to decode"},
		{"record needs one command", `
command "x" {
  subcommand {
    record = true
    command "a" {}
    command "b" {}
  }
}`, "exactly one command"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			_, err := schemafile.LoadBytes([]byte(tc.src), "inline.hcl")
			g.Expect(err).To(MatchError(core.ErrInvalidSchema))
			g.Expect(err.Error()).To(ContainSubstring(tc.want))
		})
	}
}

func TestLoadNestingBound(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	src := `
command "a" {
  subcommand {
    command "b" {
      subcommand {
        command "c" {}
      }
    }
  }
}`

	_, err := schemafile.Loader{MaxDepth: 2}.LoadBytes([]byte(src), "deep.hcl")
	g.Expect(err).To(MatchError(core.ErrNestingTooDeep))

	_, err = schemafile.Loader{MaxDepth: 3}.LoadBytes([]byte(src), "deep.hcl")
	g.Expect(err).NotTo(HaveOccurred())
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := schemafile.Load(filepath.Join(t.TempDir(), "none.hcl"))
	g.Expect(err).To(MatchError(schemafile.ErrRead))
	g.Expect(err).To(MatchError(os.ErrNotExist))
}
