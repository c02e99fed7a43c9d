package order

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"parcel/internal/pkg/errs"
)

const (
	// MaxSizeIndex is the largest accepted sum of package dimensions.
	MaxSizeIndex = 150
	// MaxWeight is the largest accepted package weight.
	MaxWeight = 30.0
)

// Size holds the three package dimensions.
type Size [3]int

// Index is the sum of the dimensions, the figure size classes are based on.
func (s Size) Index() int {
	return s[0] + s[1] + s[2]
}

// Package describes the physical shipment of an order. It is owned by exactly
// one Order. Only the content description may change after construction.
type Package struct {
	size        Size
	weight      float64
	value       float64
	description string
	dangerous   bool
	fragile     bool
}

// PackageSnapshot is the persisted form of a Package.
type PackageSnapshot struct {
	Size               Size    `json:"size"`
	Weight             float64 `json:"weight"`
	Value              float64 `json:"value"`
	ContentDescription string  `json:"content_description"`
	IsDangerous        bool    `json:"is_dangerous"`
	IsFragile          bool    `json:"is_fragile"`
}

// NewPackage validates and creates a package.
//
// Parameters:
//   - size: dimensions, each positive, summing to at most MaxSizeIndex
//   - weight: positive, at most MaxWeight
//   - value: declared value, not negative
//   - description: free text describing the content
//   - dangerous, fragile: handling flags that add surcharges to the fee
//
// Returns:
//   - *Package: the package
//   - error: joined validation errors
func NewPackage(size Size, weight float64, value float64, description string, dangerous bool, fragile bool) (*Package, error) {
	p := &Package{
		description: strings.TrimSpace(description),
		dangerous:   dangerous,
		fragile:     fragile,
	}

	if err := errors.Join(
		p.setSize(size),
		p.setWeight(weight),
		p.setValue(value),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePackage rebuilds a package from its snapshot.
func RestorePackage(s PackageSnapshot) (*Package, error) {
	return NewPackage(s.Size, s.Weight, s.Value, s.ContentDescription, s.IsDangerous, s.IsFragile)
}

func (p *Package) Size() Size {
	return p.size
}

func (p *Package) Weight() float64 {
	return p.weight
}

func (p *Package) Value() float64 {
	return p.value
}

func (p *Package) Description() string {
	return p.description
}

func (p *Package) IsDangerous() bool {
	return p.dangerous
}

func (p *Package) IsFragile() bool {
	return p.fragile
}

// AddDescription appends text to the content description, separated by a space.
func (p *Package) AddDescription(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if p.description == "" {
		p.description = text
		return
	}
	p.description += " " + text
}

// Snapshot returns the persisted form of the package.
func (p *Package) Snapshot() PackageSnapshot {
	return PackageSnapshot{
		Size:               p.size,
		Weight:             p.weight,
		Value:              p.value,
		ContentDescription: p.description,
		IsDangerous:        p.dangerous,
		IsFragile:          p.fragile,
	}
}

func (p *Package) setSize(size Size) error {
	for i, d := range size {
		if d <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("package size",
				fmt.Errorf("dimension %d is %d, must be greater than 0", i+1, d))
		}
		if d > MaxSizeIndex {
			return errs.NewValueIsOutOfRangeError("package size index", d, 1, MaxSizeIndex)
		}
	}
	if size.Index() > MaxSizeIndex {
		return errs.NewValueIsOutOfRangeError("package size index", size.Index(), 3, MaxSizeIndex)
	}
	p.size = size
	return nil
}

func (p *Package) setWeight(weight float64) error {
	if math.IsNaN(weight) || weight <= 0 || weight > MaxWeight {
		return errs.NewValueIsOutOfRangeErrorWithCause("package weight", weight, 0, MaxWeight,
			errors.New("weight must be greater than 0"))
	}
	p.weight = weight
	return nil
}

func (p *Package) setValue(value float64) error {
	if math.IsNaN(value) || value < 0 {
		return errs.NewValueIsInvalidErrorWithCause("package value", fmt.Errorf("%v is not a number of at least 0", value))
	}
	p.value = value
	return nil
}
