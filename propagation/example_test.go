package propagation_test

import (
	"fmt"

	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/matrix"
	"github.com/katalvlaran/dsm/propagation"
)

// ExampleAnalyze shows two levels of propagation from a row item.
func ExampleAnalyze() {
	m, _ := matrix.New(core.NewSession(), matrix.Asymmetric)
	a, _ := m.CreateItem(core.RoleRow, "A")
	b, _ := m.CreateItem(core.RoleCol, "B")
	c, _ := m.CreateItem(core.RoleRow, "C")
	_ = m.ModifyConnection(a, b, "", 2, nil)
	_ = m.ModifyConnection(c, b, "", 3, nil)

	res, _ := propagation.Analyze(m, a, propagation.WithLevels(2))
	for lvl := 1; lvl <= 2; lvl++ {
		for id, v := range res.Levels[lvl] {
			it, _ := m.Item(id)
			fmt.Printf("level %d: %s %.1f\n", lvl, it.Name, v)
		}
	}

	// Output:
	// level 1: B 2.0
	// level 2: C 3.0
}
