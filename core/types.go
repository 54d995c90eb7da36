// File: types.go
// Role: Entity types, roles, colors and sentinel errors.

package core

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sentinel errors for core store operations.
var (
	// ErrItemNotFound indicates an operation referenced a non-existent item.
	ErrItemNotFound = errors.New("core: item not found")

	// ErrDuplicateID indicates that an id is already taken.
	ErrDuplicateID = errors.New("core: duplicate id")

	// ErrRoleMismatch indicates an item was used in the wrong role.
	ErrRoleMismatch = errors.New("core: item role mismatch")

	// ErrDomainNotFound indicates an operation referenced a non-existent domain.
	ErrDomainNotFound = errors.New("core: domain not found")

	// ErrDomainInUse indicates a domain still owns items.
	ErrDomainInUse = errors.New("core: domain still owns items")

	// ErrGroupingNotFound indicates the grouping is not in the domain's list.
	ErrGroupingNotFound = errors.New("core: grouping not found")

	// ErrDefaultGrouping indicates an attempt to remove a default grouping.
	ErrDefaultGrouping = errors.New("core: default grouping cannot be removed")

	// ErrGroupingInUse indicates items still reference the grouping.
	ErrGroupingInUse = errors.New("core: grouping still referenced by items")

	// ErrKeyCollision indicates a rekey would map two connections onto one key.
	ErrKeyCollision = errors.New("core: connection key collision")

	// ErrInvalidWeight indicates a NaN or infinite connection weight.
	ErrInvalidWeight = errors.New("core: invalid connection weight")
)

// ID identifies items, groupings and domains. Ids are allocated by a Session
// and never reused within it. NoID (zero) means "no reference".
type ID int64

// NoID is the zero id used for absent references (e.g. an item without alias).
const NoID ID = 0

// Role tells whether an item is a row or a column of the matrix.
type Role uint8

const (
	// RoleRow marks a row item.
	RoleRow Role = iota + 1
	// RoleCol marks a column item.
	RoleCol
)

// String returns "row" or "col".
func (r Role) String() string {
	switch r {
	case RoleRow:
		return "row"
	case RoleCol:
		return "col"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Other returns the opposite role.
func (r Role) Other() Role {
	if r == RoleRow {
		return RoleCol
	}

	return RoleRow
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if r != RoleRow && r != RoleCol {
		return nil, fmt.Errorf("core: cannot marshal %s", r)
	}

	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "row":
		*r = RoleRow
	case "col", "column":
		*r = RoleCol
	default:
		return fmt.Errorf("core: unknown role %q", string(b))
	}

	return nil
}

// Color is an RGB color with channels in [0,1].
type Color struct {
	R float64 `yaml:"r" json:"r" validate:"gte=0,lte=1"`
	G float64 `yaml:"g" json:"g" validate:"gte=0,lte=1"`
	B float64 `yaml:"b" json:"b" validate:"gte=0,lte=1"`
}

// Common colors.
var (
	White = Color{R: 1, G: 1, B: 1}
	Black = Color{}
)

// Item is one row or column record of a matrix.
//
// In symmetric and multi-domain matrices every row has exactly one column
// partner; Alias holds the partner's id on both records.
type Item struct {
	// ID is unique within the matrix.
	ID ID
	// Alias is the paired record's id, NoID when the item is not aliased.
	Alias ID
	// Role is RoleRow or RoleCol.
	Role Role
	// Name is the display name.
	Name string
	// SortIndex orders items for display; any finite value is legal.
	SortIndex float64
	// Domain owns the grouping list Group is drawn from.
	Domain ID
	// Group references a grouping in Domain's list.
	Group ID
}

// ConnKey addresses a connection by its row and column item ids.
type ConnKey struct {
	Row ID
	Col ID
}

// Connection is a weighted dependency from a row item to a column item.
type Connection struct {
	Row        ID
	Col        ID
	Name       string
	Weight     float64
	Interfaces []string
}

// Key returns the (row, col) key of c.
func (c Connection) Key() ConnKey { return ConnKey{Row: c.Row, Col: c.Col} }

// Equal reports whether c and o share key, name, weight and interface tags.
func (c Connection) Equal(o Connection) bool {
	return c.Key() == o.Key() && c.Name == o.Name && c.Weight == o.Weight &&
		slices.Equal(c.Interfaces, o.Interfaces)
}

// clone returns c with its own Interfaces slice.
func (c Connection) clone() Connection {
	if c.Interfaces != nil {
		c.Interfaces = append([]string(nil), c.Interfaces...)
	}

	return c
}

// Grouping is a named, colored category assigned to items.
type Grouping struct {
	ID        ID
	Name      string
	Color     Color
	FontColor Color
}

// Domain is a top-level partition with its own private grouping list.
// Symmetric matrices own one domain, asymmetric matrices own one per role.
type Domain struct {
	// Grouping carries the domain's own identity, name and colors.
	Grouping
	// DefaultGroup is the grouping new items receive; it is always in Groupings.
	DefaultGroup ID
	// Groupings is the ordered list of groupings available to the domain's items.
	Groupings []Grouping
}

// Group returns the grouping with the given id.
func (d Domain) Group(id ID) (Grouping, bool) {
	for _, g := range d.Groupings {
		if g.ID == id {
			return g, true
		}
	}

	return Grouping{}, false
}

// clone returns d with its own Groupings slice.
func (d Domain) clone() Domain {
	d.Groupings = append([]Grouping(nil), d.Groupings...)

	return d
}

// NormalizeInterfaces returns tags with empty and duplicate entries removed,
// keeping first-seen order.
func NormalizeInterfaces(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}

	return out
}
