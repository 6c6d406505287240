package config

import "github.com/ariel-frischer/relnotes/internal/notes"

// AllBranchesWildcard as the branch disables base-branch filtering.
const AllBranchesWildcard = "*"

// GetDefaults returns the default configuration values as flat koanf keys.
func GetDefaults() map[string]interface{} {
	defaults := map[string]interface{}{
		"branch":        "master",
		"title_prefix":  "Bumped version to",
		"release_label": "release-note",
		"site_url":      notes.DefaultSiteURL,
		"wrap_width":    notes.DefaultWrapWidth,
		"api_url":       "",
		"token":         "",
		"log_level":     "warn",
	}
	for key, titles := range notes.DefaultSections() {
		defaults["sections."+key+".devsite"] = titles.Devsite
		defaults["sections."+key+".github"] = titles.GitHub
	}
	return defaults
}

// GetDefaultConfigTemplate returns a commented config template listing every option.
func GetDefaultConfigTemplate() string {
	return `# relnotes configuration
# Project: .relnotes.yml   User: ~/.config/relnotes/config.yml
# Every key can also be set with a RELNOTES_<KEY> environment variable.

branch: master                        # Base branch to scan; "*" for all branches
title_prefix: "Bumped version to"     # Title prefix of the version-bump pull request (default cutoff)
release_label: release-note           # Only pull requests with this label contribute notes
site_url: https://firebase.google.com # Documentation site whose links are made relative
wrap_width: 80                        # Documentation-site column limit (-1 disables wrapping)
api_url: ""                           # GitHub Enterprise API URL (empty = github.com)
log_level: warn                       # debug | info | warn | error

# Conventional-commit scopes that get their own section
sections:
  auth:
    devsite: "{{auth}}"
    github: Authentication
  fcm:
    devsite: "{{messaging_longer}}"
    github: Cloud Messaging
`
}
