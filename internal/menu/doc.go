// Package menu turns a catalog into something a user can pick from.
//
// A Session keeps the query typed so far and ranks catalog entries against it
// with fuzzy matching. Every time the query changes, each entry that still
// matches has its relevance counter bumped, so entries that survive a longer
// stretch of typing float above equally scored ones.
//
// Once an entry is chosen, Resolve splits the command line the way a POSIX
// shell would, finds the program in search path order and Exec replaces the
// current process with it.
package menu
