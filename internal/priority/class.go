package priority

import (
	"fmt"
	"strconv"
	"strings"
)

// Class is a CPU priority class as encoded in CpuPriorityClass.
// The numeric values are the codes the Windows loader expects.
type Class uint32

const (
	Default     Class = 0 // no override; never written
	Idle        Class = 1
	Normal      Class = 2
	High        Class = 3
	Realtime    Class = 4
	BelowNormal Class = 5
	AboveNormal Class = 6
)

// Choices lists the classes in the order they are offered to the operator.
var Choices = []Class{Default, Idle, BelowNormal, Normal, AboveNormal, High, Realtime}

// Valid reports whether c is one of the six storable classes.
func (c Class) Valid() bool {
	return c >= Idle && c <= AboveNormal
}

// IsDefault reports whether c means "no override".
func (c Class) IsDefault() bool {
	return c == Default
}

// Code returns the value stored in the registry.
func (c Class) Code() uint32 {
	return uint32(c)
}

// String returns the display name used in the list.
func (c Class) String() string {
	switch c {
	case Default:
		return "Default"
	case Idle:
		return "Idle"
	case BelowNormal:
		return "Below Normal"
	case Normal:
		return "Normal"
	case AboveNormal:
		return "Above Normal"
	case High:
		return "High"
	case Realtime:
		return "Realtime"
	default:
		return "(Unknown)"
	}
}

// ChoiceLabel returns the label shown in the priority picker.
func (c Class) ChoiceLabel() string {
	switch c {
	case Default:
		return "0 - Default (System Managed)"
	case Realtime:
		return "4 - Realtime (Not Recommend)"
	default:
		return fmt.Sprintf("%d - %s", c.Code(), c.String())
	}
}

// Slug returns a lowercase, hyphenated identifier ("above-normal").
func (c Class) Slug() string {
	return strings.ReplaceAll(strings.ToLower(c.String()), " ", "-")
}

// ChoiceIndex returns the position of c in Choices, or 0 (Default) when c
// is not a known class.
func ChoiceIndex(c Class) int {
	for i, choice := range Choices {
		if choice == c {
			return i
		}
	}
	return 0
}

// Parse accepts a class name ("high", "Below Normal", "below-normal",
// "belownormal"), "default", or a numeric code.
func Parse(s string) (Class, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		c := Class(n)
		if c.IsDefault() || c.Valid() {
			return c, nil
		}
		return Default, fmt.Errorf("unknown priority code %d", n)
	}

	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
	for _, c := range Choices {
		if strings.ReplaceAll(c.Slug(), "-", "") == key {
			return c, nil
		}
	}
	return Default, fmt.Errorf("unknown priority %q", s)
}

// ParseStored is Parse for values that came from the registry: any numeric
// code is accepted, known or not.
func ParseStored(s string) (Class, error) {
	if n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32); err == nil {
		return Class(n), nil
	}
	return Parse(s)
}
