// Package config manages user-level settings stored at ~/.extgen/config.yaml.
// It provides the default repository facts (org, repo, ruleset location,
// publisher) and the host repository layout used when generating extensions.
// Every key can also be set through an EXTGEN_ environment variable.
package config
