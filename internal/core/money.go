package core

import "fmt"

// Money is an amount in cents.
type Money struct {
	Cents int64
}

func Cents(c int64) Money { return Money{Cents: c} }

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }

func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

// String formats the amount with two decimals, e.g. 1234 -> "12.34".
func (m Money) String() string {
	c := m.Cents
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
