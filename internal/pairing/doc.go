// Package pairing implements the interactive roster workflows: adding and
// removing collaborators and choosing the author and co-author for the
// current repository.
package pairing
