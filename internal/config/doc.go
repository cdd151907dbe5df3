// Package config loads the settings of the site forms server and its
// terminal client.
//
// Values are layered: built-in [Defaults] first, then environment
// variables, then command-line flags, then the JSON file named by CONFIG or
// -config. A later layer only overrides the fields it actually sets. After
// merging, locales, the public URL, the wizard page key and the shared
// content keys are normalized and the result is validated.
//
// [GetServerConfig] additionally requires a database DSN, an upload
// directory and a token signing key. [GetClientConfig] returns the narrow
// [ClientConfig] view the terminal wizard works with, and [GetAdminConfig]
// the view of the schema publishing tool.
package config
