// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"symaths"
)

// main builds a short fixed sequence of expressions directly through the
// facade (there is no text parser here — that front end is a separate
// concern) and prints each alongside its sorted, reduced, expanded, and
// differentiated forms.
func main() {
	if err := symaths.WithLibrary(run); err != nil {
		color.Red("error: %s", err)
		os.Exit(1)
	}
}

func run(l *symaths.Library) error {
	x, err := l.Symbol("x")
	if err != nil {
		return err
	}
	xe := x.Expression()

	two, err := l.Const(2)
	if err != nil {
		return err
	}
	three, err := l.Const(3)
	if err != nil {
		return err
	}
	ten, err := l.Const(10)
	if err != nil {
		return err
	}

	// (3 + x + 10)
	unsorted, err := three.Add(xe, ten)
	if err != nil {
		return err
	}
	if err := showLine("sum", unsorted, x); err != nil {
		return err
	}

	// 2 * x^2 + 9 * x
	xSq, err := xe.Pow(two)
	if err != nil {
		return err
	}
	quadTerm, err := two.Mul(xSq)
	if err != nil {
		return err
	}
	nine, err := l.Const(9)
	if err != nil {
		return err
	}
	linTerm, err := nine.Mul(xe)
	if err != nil {
		return err
	}
	poly, err := quadTerm.Add(linTerm)
	if err != nil {
		return err
	}
	if err := showLine("polynomial", poly, x); err != nil {
		return err
	}

	// 5 * (x + 3), expanded
	xPlus3, err := xe.Add(three)
	if err != nil {
		return err
	}
	five, err := l.Const(5)
	if err != nil {
		return err
	}
	product, err := five.Mul(xPlus3)
	if err != nil {
		return err
	}
	if err := showLine("product", product, x); err != nil {
		return err
	}

	sinX, err := symaths.Sin(xe)
	if err != nil {
		return err
	}
	return showLine("trig", sinX, x)
}

func showLine(label string, e symaths.Expression, wrt symaths.Symbol) error {
	color.Cyan("%s: %s\n", label, e)

	sorted, err := e.Sort()
	if err != nil {
		return err
	}
	fmt.Printf("  sort      -> %s\n", sorted)

	reduced, err := e.Reduce()
	if err != nil {
		return err
	}
	fmt.Printf("  reduce    -> %s\n", reduced)

	expanded, err := e.Expand()
	if err != nil {
		return err
	}
	fmt.Printf("  expand    -> %s\n", expanded)

	derivative, err := e.Differentiate(wrt)
	if err != nil {
		return err
	}
	color.Green("  d/dx      -> %s\n", derivative)
	return nil
}
