// Package models defines the client-side data model of GophNotes: the
// authenticated user, notes with their categories, drafts sent to the
// backend, and the pure search/category filter over a note list.
package models
