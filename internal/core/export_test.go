package core

// Exported variables.
var (
	CamelToKebabForTest = camelToKebab
)
