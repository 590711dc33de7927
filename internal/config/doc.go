// Package config loads application configuration from environment
// variables (prefix FINLENS) merged with an optional YAML file, and
// validates the result. Environment values take precedence over file
// values, which take precedence over compiled defaults.
package config
