// Package rawcmd parses raw command lines into typed command values using schemas.
//
// A schema is a Namespace of Commands. Each Command declares flags, options and
// positional fields, and optionally a subcommand field that dispatches into a nested
// Namespace. Schemas are built in Go with Flag, Option and Positional, or loaded from
// an HCL file with LoadSchema.
//
//	ns := rawcmd.NewNamespace("Commands", &rawcmd.Command{
//		Name: "connect",
//		Args: []rawcmd.ArgSpec{
//			rawcmd.Flag("verbose", 'v', "verbose"),
//			rawcmd.Option("port", 'p', "port", rawcmd.Uint(16), rawcmd.WithDefault(uint16(8080))),
//			rawcmd.Positional("host", rawcmd.String()),
//		},
//	})
//
//	v, err := rawcmd.Parse(ns, "connect -v localhost")
//	// v.String() == `connect{verbose: true, port: 8080, host: "localhost"}`
//
// Parsed values can be copied into tagged structs with Bind.
package rawcmd
