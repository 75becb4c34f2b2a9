// Package model defines domain entities for the application.
package model

import "time"

// User is the per-FID record. Created lazily on a user's first action and
// kept for the lifetime of the process.
type User struct {
	FID string `json:"fid"`

	// Address is the custody address resolved from the identity provider.
	// Set on first successful resolution and never re-resolved afterwards.
	Address string `json:"address"`

	// Lists maps category name to the most recently submitted item list.
	// Last write per category wins; no history is retained.
	Lists map[string][]string `json:"lists"`

	LastCheckin *time.Time `json:"last_checkin,omitempty"`
	LastShare   *time.Time `json:"last_share,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// List returns the user's latest list for a category, or nil.
func (u *User) List(category string) []string {
	if u.Lists == nil {
		return nil
	}
	return u.Lists[category]
}

// SetList overwrites the user's list for a category (full replace).
func (u *User) SetList(category string, items []string) {
	if u.Lists == nil {
		u.Lists = make(map[string][]string)
	}
	u.Lists[category] = items
}
