// SPDX-License-Identifier: MIT
// Package matrix: the closed variant set and its operation table.
//
// Variants differ in three structural points only: whether items come in
// alias pairs, whether domains can be managed, and how transpose and
// redistribution treat rows and columns. Everything else is shared code that
// consults the table, so invariant checks live in one place.

package matrix

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/dsm/core"
)

// Variant is the closed set of matrix kinds.
type Variant uint8

const (
	// Symmetric matrices pair every row with a column alias in one domain.
	Symmetric Variant = iota + 1
	// Asymmetric matrices hold independent rows and columns, one domain each.
	Asymmetric
	// MultiDomain matrices pair items like Symmetric across several domains.
	MultiDomain
)

// String returns the lowercase variant name.
func (v Variant) String() string {
	switch v {
	case Symmetric:
		return "symmetric"
	case Asymmetric:
		return "asymmetric"
	case MultiDomain:
		return "multi-domain"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// Valid reports whether v is one of the defined variants.
func (v Variant) Valid() bool {
	_, ok := variantTable[v]

	return ok
}

// Aliased reports whether v pairs rows with column aliases.
func (v Variant) Aliased() bool { return variantTable[v].aliased }

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, uint8(v))
	}

	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "symmetric":
		*v = Symmetric
	case "asymmetric":
		*v = Asymmetric
	case "multi-domain", "multidomain", "multi_domain":
		*v = MultiDomain
	default:
		return fmt.Errorf("%w: %q", ErrUnknownVariant, string(b))
	}

	return nil
}

// ParseVariant converts a textual name into a Variant.
func ParseVariant(s string) (Variant, error) {
	var v Variant
	err := v.UnmarshalText([]byte(s))

	return v, err
}

// variantOps is the per-variant behavior table.
type variantOps struct {
	// aliased: items come in row/column pairs sharing name, sort index,
	// grouping and domain.
	aliased bool
	// domains: AddDomain/RemoveDomain/CreateDomainItem/zoom are allowed.
	domains bool
	// domainCount checks the number of domains a valid matrix holds.
	domainCount func(n int) bool
	// createItem inserts one logical item and returns its primary (row or
	// requested role) id.
	createItem func(m *Matrix, role core.Role, domain core.ID, name string) (core.ID, error)
	// transpose records the changes that swap rows and columns.
	transpose func(m *Matrix) error
	// sortRoles lists the role sets redistribution walks; aliases follow rows.
	sortRoles []core.Role
}

// sharedOps returns the aliased behavior used by Symmetric and MultiDomain.
func sharedOps() variantOps {
	return variantOps{
		aliased:     true,
		domainCount: func(n int) bool { return n == 1 },
		createItem:  createPair,
		transpose:   transposeMirror,
		sortRoles:   []core.Role{core.RoleRow},
	}
}

// variantTable is built once from shared defaults plus per-variant overrides.
// It is filled in init because the table's functions reach back into it.
var variantTable map[Variant]variantOps

func init() { variantTable = buildVariantTable() }

func buildVariantTable() map[Variant]variantOps {
	sym := sharedOps()

	asym := sharedOps()
	asym.aliased = false
	asym.domainCount = func(n int) bool { return n == 2 }
	asym.createItem = createSingle
	asym.transpose = transposeRoles
	asym.sortRoles = []core.Role{core.RoleRow, core.RoleCol}

	md := sharedOps()
	md.domains = true
	md.domainCount = func(n int) bool { return n >= 1 }

	return map[Variant]variantOps{
		Symmetric:   sym,
		Asymmetric:  asym,
		MultiDomain: md,
	}
}
