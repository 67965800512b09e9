// Package file provides file-based configuration adapters: engine
// tuning from a TOML file and the predefined reply sets from a
// user-editable JSON file.
package file
