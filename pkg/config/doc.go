// Package config provides the termicon configuration file.
//
// A configuration is a YAML document of kind Configuration. It is checked
// against a JSON schema reflected from [Config], then decoded and validated.
// Errors carry the location of the offending value in the source.
package config
