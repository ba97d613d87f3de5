package model

import (
	"fmt"
	"time"
)

// MasterTag is the root node of the tag taxonomy
type MasterTag struct {
	ID          string     `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description,omitempty" db:"description"`
	Color       *string    `json:"color,omitempty" db:"color"`
	Icon        *string    `json:"icon,omitempty" db:"icon"`
	IsClosed    bool       `json:"isClosed" db:"is_closed"`
	ClosedAt    *time.Time `json:"closedAt,omitempty" db:"closed_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`

	BranchTags []*BranchTag `json:"branchTags,omitempty" db:"-"`
}

// BranchTag is a sibling classifier under a MasterTag
type BranchTag struct {
	ID          string    `json:"id" db:"id"`
	MasterTagID string    `json:"masterTagId" db:"master_tag_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// PrimaryTag is one instance of a named tag under a MasterTag.
// Names are not unique; InstanceIndex and DisplayName are derived at read time.
type PrimaryTag struct {
	ID          string    `json:"id" db:"id"`
	MasterTagID string    `json:"masterTagId" db:"master_tag_id"`
	Name        string    `json:"name" db:"name"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	InstanceIndex   int             `json:"instanceIndex,omitempty" db:"-"`
	DisplayName     string          `json:"displayName,omitempty" db:"-"`
	ImpressionCount int             `json:"impressionCount" db:"-"`
	SecondaryTags   []*SecondaryTag `json:"secondaryTags,omitempty" db:"-"`
}

// SecondaryTag is a leaf classifier under a PrimaryTag
type SecondaryTag struct {
	ID           string    `json:"id" db:"id"`
	PrimaryTagID string    `json:"primaryTagId" db:"primary_tag_id"`
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// DisplayName renders a primary tag name with its instance index, e.g. "Pricing (2)"
func DisplayName(name string, instanceIndex int) string {
	return fmt.Sprintf("%s (%d)", name, instanceIndex)
}
