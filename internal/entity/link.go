// Package entity defines the entities and errors used in the application.
// It includes the Link struct, which represents a shortened link, the click
// events recorded against it, and the errors shared by every layer.
package entity

import "time"

// Link represents a shortened link.
type Link struct {
	ID          string    // ID is the opaque unique identifier of the link.
	ShortCode   string    // ShortCode is the generated code assigned to every link.
	CustomAlias string    // CustomAlias is the optional user-chosen key; empty when absent.
	LongURL     string    // LongURL is the destination the link redirects to.
	Title       string    // Title is the owner-supplied label of the link.
	OwnerID     string    // OwnerID references the user who created the link.
	ClickCount  int64     // ClickCount is the number of recorded visits.
	CreatedAt   time.Time // CreatedAt is the timestamp when the link was created.
	UpdatedAt   time.Time // UpdatedAt is the timestamp when the link was last updated.
}

// Key returns the effective lookup key of the link: the custom alias when
// present, otherwise the short code.
func (l *Link) Key() string {
	if l.CustomAlias != "" {
		return l.CustomAlias
	}
	return l.ShortCode
}

// Keys returns every key the link occupies in the shared key space.
func (l *Link) Keys() []string {
	if l.CustomAlias != "" {
		return []string{l.ShortCode, l.CustomAlias}
	}
	return []string{l.ShortCode}
}
