// Package config loads and validates videodub's TOML configuration.
//
// Configuration is resolved from an explicit path, then
// ~/.config/videodub/config.toml, then a videodub.toml in the working
// directory. Missing files are not an error: defaults apply and the caller
// learns whether a file existed. All path values support ~ expansion and are
// normalized to absolute paths.
package config
