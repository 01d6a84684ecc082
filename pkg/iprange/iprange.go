// Package iprange expands dotted-quad range specifications such as
// "192.168.1-2.5-6" into literal addresses.
package iprange

import (
	"errors"
	"fmt"
	"iter"
	"math/bits"
	"strconv"
	"strings"
)

// DefaultLimit caps how many addresses ExpandAll will materialise.
const DefaultLimit = 1 << 20

var (
	// ErrMalformed is returned for specs that are not four integer or lo-hi tokens.
	ErrMalformed = errors.New("malformed range spec")
	// ErrTooLarge is returned when an expansion exceeds its limit.
	ErrTooLarge = errors.New("range expansion too large")
)

// Octet is an inclusive bound pair for one position of the address.
type Octet struct {
	Lo int
	Hi int
}

func (o Octet) size() uint64 {
	if o.Lo > o.Hi {
		return 0
	}
	return uint64(o.Hi-o.Lo) + 1
}

// Range is a parsed spec. Values outside 0-255 are kept as given.
type Range struct {
	Spec   string
	Octets [4]Octet
}

// Parse converts a spec into a Range.
func Parse(spec string) (Range, error) {
	r := Range{Spec: spec}
	tokens := strings.Split(strings.TrimSpace(spec), ".")
	if len(tokens) != 4 {
		return r, fmt.Errorf("%w %q: expected 4 octets, got %d", ErrMalformed, spec, len(tokens))
	}
	for i, token := range tokens {
		octet, err := parseOctet(token)
		if err != nil {
			return r, fmt.Errorf("%w %q: %v", ErrMalformed, spec, err)
		}
		r.Octets[i] = octet
	}
	return r, nil
}

func parseOctet(token string) (Octet, error) {
	lo, hi, isRange := strings.Cut(token, "-")
	from, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return Octet{}, fmt.Errorf("invalid octet %q", token)
	}
	if !isRange {
		return Octet{Lo: from, Hi: from}, nil
	}
	to, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return Octet{}, fmt.Errorf("invalid octet %q", token)
	}
	return Octet{Lo: from, Hi: to}, nil
}

// Len returns the number of addresses the range expands to. A range with
// lo > hi on any octet has length zero. The result saturates at MaxUint64.
func (r Range) Len() uint64 {
	total := uint64(1)
	for _, o := range r.Octets {
		hi, lo := bits.Mul64(total, o.size())
		if hi != 0 {
			return ^uint64(0)
		}
		total = lo
	}
	return total
}

// values yields Lo through Hi inclusive. The bound is tested before the
// increment so Hi = MaxInt terminates.
func (o Octet) values() iter.Seq[int] {
	return func(yield func(int) bool) {
		if o.Lo > o.Hi {
			return
		}
		for v := o.Lo; ; v++ {
			if !yield(v) || v == o.Hi {
				return
			}
		}
	}
}

// All yields every address of the range, first octet outermost.
func (r Range) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		a, b, c, d := r.Octets[0], r.Octets[1], r.Octets[2], r.Octets[3]
		for w := range a.values() {
			for x := range b.values() {
				for y := range c.values() {
					for z := range d.values() {
						if !yield(fmt.Sprintf("%d.%d.%d.%d", w, x, y, z)) {
							return
						}
					}
				}
			}
		}
	}
}

// ParseAll parses every spec, stopping at the first malformed one.
func ParseAll(specs []string) ([]Range, error) {
	ranges := make([]Range, 0, len(specs))
	for _, spec := range specs {
		r, err := Parse(spec)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// Expand lazily yields the expansion of every range in order.
func Expand(ranges []Range) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, r := range ranges {
			for addr := range r.All() {
				if !yield(addr) {
					return
				}
			}
		}
	}
}

// ExpandAll parses and materialises specs. The combined size is checked
// before any address is produced; limit <= 0 disables the check.
func ExpandAll(specs []string, limit int) ([]string, error) {
	ranges, err := ParseAll(specs)
	if err != nil {
		return nil, err
	}

	var total uint64
	for _, r := range ranges {
		n := r.Len()
		if total+n < total {
			total = ^uint64(0)
			break
		}
		total += n
	}
	if limit > 0 && total > uint64(limit) {
		return nil, fmt.Errorf("%w: %d addresses exceed limit of %d", ErrTooLarge, total, limit)
	}

	var out []string
	if limit > 0 {
		out = make([]string, 0, int(total))
	}
	for addr := range Expand(ranges) {
		out = append(out, addr)
	}
	return out, nil
}
