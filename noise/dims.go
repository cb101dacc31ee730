package noise

import (
	"fmt"
	"strconv"
	"strings"
)

// Dims is a volume size (H, W, D). Its text form is "HxWxD"; commas and
// spaces work as separators too.
type Dims [3]int

func ParseDims(s string) (Dims, error) {
	var d Dims
	parts := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == 'x' || r == 'X' || r == ',' || r == ' '
	})
	if len(parts) != 3 {
		return d, fmt.Errorf("size %q: want HxWxD", s)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return d, fmt.Errorf("size %q: %w", s, err)
		}
		d[i] = n
	}
	return d, nil
}

func (d Dims) String() string { return fmt.Sprintf("%dx%dx%d", d[0], d[1], d[2]) }

// IsZero reports an unset size.
func (d Dims) IsZero() bool { return d == Dims{} }

func (d Dims) Validate() error { return checkDims(d[0], d[1], d[2]) }

// Set implements flag.Value.
func (d *Dims) Set(s string) error {
	v, err := ParseDims(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// UnmarshalText lets env parsing fill a Dims.
func (d *Dims) UnmarshalText(b []byte) error { return d.Set(string(b)) }
