// Package gitconfig reads and writes the git settings that carry pairing state.
//
// Client talks to the git executable through execshell. Applier builds on any
// ConfigurationPort to set the commit author, maintain the co-author trailer in
// the commit-message template and point commit.template at that file.
package gitconfig
