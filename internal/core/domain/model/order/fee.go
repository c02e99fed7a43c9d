package order

import (
	"fmt"
	"strings"

	"parcel/internal/core/domain/model/location"
	"parcel/internal/pkg/errs"
)

const (
	// DangerousSurcharge is added to the fee of packages flagged as dangerous.
	DangerousSurcharge = 500.0
	// FragileSurcharge is added to the fee of packages flagged as fragile.
	FragileSurcharge = 100.0
)

// Service is the delivery speed a customer pays for. Each service has a fee
// multiplier and a number of days between collection and due date.
type Service int

const (
	UnknownService Service = iota
	OverNight
	Express
	Standard
	Economy
)

var services = map[Service]struct {
	name       string
	multiplier float64
	days       int
}{
	OverNight: {name: "over_night", multiplier: 2.5, days: 1},
	Express:   {name: "express", multiplier: 1.8, days: 2},
	Standard:  {name: "standard", multiplier: 1.2, days: 7},
	Economy:   {name: "economy", multiplier: 1.0, days: 14},
}

// ParseService reads a service name such as "express" or "over_night".
func ParseService(s string) (Service, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	for service, def := range services {
		if def.name == name {
			return service, nil
		}
	}
	return UnknownService, errs.NewValueIsInvalidErrorWithCause("service", fmt.Errorf("%q is not a service", s))
}

func (s Service) Validate() error {
	if _, ok := services[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("service", fmt.Errorf("%d is not a valid service", s))
	}
	return nil
}

func (s Service) String() string {
	if def, ok := services[s]; ok {
		return def.name
	}
	return "unknown"
}

// Multiplier is the service component of the fee.
func (s Service) Multiplier() float64 {
	return services[s].multiplier
}

// Days is the offset between collection and due date.
func (s Service) Days() int {
	return services[s].days
}

// SizeClass buckets packages by the sum of their dimensions.
type SizeClass int

const (
	UnknownSize SizeClass = iota
	Envelope
	SmallBox
	MediumBox
	BigBox
)

var sizeClasses = []struct {
	class     SizeClass
	name      string
	threshold int
	fee       float64
}{
	{class: Envelope, name: "envelope", threshold: 60, fee: 60},
	{class: SmallBox, name: "small_box", threshold: 90, fee: 120},
	{class: MediumBox, name: "medium_box", threshold: 120, fee: 250},
	{class: BigBox, name: "big_box", threshold: 150, fee: 450},
}

// ClassifySize returns the smallest class whose threshold is at least the size index.
func ClassifySize(index int) (SizeClass, error) {
	for _, c := range sizeClasses {
		if index <= c.threshold {
			return c.class, nil
		}
	}
	return UnknownSize, errs.NewValueIsOutOfRangeError("size index", index, 0, MaxSizeIndex)
}

func (c SizeClass) Fee() float64 {
	for _, def := range sizeClasses {
		if def.class == c {
			return def.fee
		}
	}
	return 0
}

func (c SizeClass) String() string {
	for _, def := range sizeClasses {
		if def.class == c {
			return def.name
		}
	}
	return "unknown"
}

// WeightClass buckets packages by weight.
type WeightClass int

const (
	UnknownWeight WeightClass = iota
	ExtraLight
	Light
	Heavy
	ExtraHeavy
)

var weightClasses = []struct {
	class     WeightClass
	name      string
	threshold float64
	fee       float64
}{
	{class: ExtraLight, name: "extra_light", threshold: 0.5, fee: 60},
	{class: Light, name: "light", threshold: 5, fee: 120},
	{class: Heavy, name: "heavy", threshold: 15, fee: 250},
	{class: ExtraHeavy, name: "extra_heavy", threshold: 30, fee: 450},
}

// ClassifyWeight returns the smallest class whose threshold is at least the weight.
func ClassifyWeight(weight float64) (WeightClass, error) {
	for _, c := range weightClasses {
		if weight <= c.threshold {
			return c.class, nil
		}
	}
	return UnknownWeight, errs.NewValueIsOutOfRangeError("weight", weight, 0, MaxWeight)
}

func (c WeightClass) Fee() float64 {
	for _, def := range weightClasses {
		if def.class == c {
			return def.fee
		}
	}
	return 0
}

func (c WeightClass) String() string {
	for _, def := range weightClasses {
		if def.class == c {
			return def.name
		}
	}
	return "unknown"
}

// CalculateFee prices a shipment:
//
//	service multiplier × distance factor
//	+ max(size class fee, weight class fee)
//	+ DangerousSurcharge if dangerous
//	+ FragileSurcharge if fragile
//
// Packages built by NewPackage always fall into a size and weight class.
func CalculateFee(service Service, origin location.Location, destination location.Location, pkg *Package) float64 {
	sizeClass, _ := ClassifySize(pkg.Size().Index())
	weightClass, _ := ClassifyWeight(pkg.Weight())

	total := service.Multiplier()*distanceFactor(origin, destination) + max(sizeClass.Fee(), weightClass.Fee())
	if pkg.IsDangerous() {
		total += DangerousSurcharge
	}
	if pkg.IsFragile() {
		total += FragileSurcharge
	}
	return total
}

// distanceFactor is a flat rate until route distances are available.
func distanceFactor(_ location.Location, _ location.Location) float64 {
	return 1
}
