package domain

import "time"

// Client is a customer of the freelancer, owned by a profile.
type Client struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	TypeID    *int64
	TypeName  string
	Active    bool
	SignedUp  time.Time
	ProfileID int64

	// Populated on list/detail reads.
	ProjectCount       int
	ActiveProjectCount int
}

// ClientFilter narrows client listings.
type ClientFilter struct {
	Search string
	TypeID int64
	Active *bool
}

// ClientStats aggregates a profile's client counts.
type ClientStats struct {
	Total    int
	Active   int
	Inactive int
}
