package order

import (
	"fmt"

	"parcel/internal/pkg/errs"
)

// Status is the delivery status of an order. It changes only when a history
// entry is logged:
//
//	Normal ──A at destination──> Delivered
//	   │
//	   ├──C──> Broken
//	   ├──M──> Missing
//	   └──D──> Delayed
//
// Later reports may move an order out of any status; for example a delayed
// order that arrives at its destination becomes delivered.
type Status int

const (
	// Unknown catches uninitialised Status values.
	Unknown Status = iota
	Normal
	Delivered
	Delayed
	Broken
	Missing
)

var statusNames = map[Status]string{
	Normal:    "normal",
	Delivered: "delivered",
	Delayed:   "delayed",
	Broken:    "broken",
	Missing:   "missing",
}

// ParseStatus reads the persisted form produced by String.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsFinal reports whether the package has left the delivery flow.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Broken || s == Missing
}
