// SPDX-License-Identifier: MIT
package problemfile_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/katalvlaran/lincanon/canon"
	"github.com/katalvlaran/lincanon/problemfile"
)

// ExampleDecode builds I·x + [3 4]ᵀ from YAML and writes its canonical form.
func ExampleDecode() {
	doc, err := problemfile.Decode(strings.NewReader(`
variables: [{id: 0, shape: [2, 1]}]
nodes:
  - {name: r, kind: sum, args: [y, c]}
  - {name: y, kind: mul, args: [x], data: [[1, 0], [0, 1]]}
  - {name: x, kind: variable, var: 0}
  - {name: c, kind: dense_const, data: [[3], [4]]}
root: r
`))
	if err != nil {
		fmt.Println(err)
		return
	}
	g, err := doc.Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	pd, err := canon.Build(g.Roots, g.Order)
	if err != nil {
		fmt.Println(err)
		return
	}
	if err = problemfile.WriteAffine(os.Stdout, pd, g.RootNames); err != nil {
		fmt.Println(err)
	}
	// Output:
	// A:
	//   rows: 2
	//   cols: 2
	//   col_ptr: [0, 1, 2]
	//   row_idx: [0, 1]
	//   vals: [1, 1]
	// b: [3, 4]
	// row_offsets: [0, 2]
	// roots: [r]
}
