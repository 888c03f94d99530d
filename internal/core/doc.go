// Package core implements schema-driven command parsing.
//
// A Namespace holds Command schemas. Parse resolves a RawCommand's dispatch name in a
// namespace and runs a small state machine over the command's tokens: flags set
// booleans, options await one value, values fill positionals in order or name a
// subcommand, which takes over the remaining tokens. Schemas are immutable once built
// and may be shared by any number of concurrent parses.
package core
