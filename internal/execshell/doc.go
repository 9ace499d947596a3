// Package execshell runs the external git executable on behalf of gitpair.
//
// ShellExecutor wraps a CommandRunner with structured logging, lifecycle observers, and typed
// errors for non-zero exits. OSCommandRunner is the os/exec backed runner used outside tests.
package execshell
