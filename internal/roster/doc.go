// Package roster persists the collaborators available for commit attribution.
//
// Entries live one per line in a flat file using the `name:<email>` encoding. Store operates on
// an afero filesystem so callers can point it at the working directory or an isolated fixture.
package roster
