// Package file persists configuration to the local filesystem.
//
// ConfigStore reads and writes config.toml, PromptStore the user-editable
// prompt templates in prompts.toml. Both live in the quarry state directory.
package file
