// Package notes keeps the client-side copy of the signed-in user's notes.
//
// A Controller holds the authoritative list, refreshes it from the backend
// on a timer and shortly after every change, and derives the filtered view
// from the current search term and category. The backend always wins: every
// successful fetch replaces the list wholesale.
package notes
