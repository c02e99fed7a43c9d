package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/location"
	"parcel/internal/core/domain/model/vehicle"
	"parcel/internal/pkg/errs"
)

// TimestampLayout is the layout used when an entry is rendered.
const TimestampLayout = "2006-01-02 15:04:05.000000-07:00"

// EntryKind discriminates the Entry variants.
type EntryKind int

const (
	UnknownEntry EntryKind = iota
	ArrivalEntry
	TransitEntry
	OtherEntry
)

func (k EntryKind) String() string {
	switch k {
	case ArrivalEntry:
		return "arrival"
	case TransitEntry:
		return "transit"
	case OtherEntry:
		return "other"
	case UnknownEntry:
	}
	return "unknown"
}

func ParseEntryKind(s string) (EntryKind, error) {
	for _, k := range []EntryKind{ArrivalEntry, TransitEntry, OtherEntry} {
		if k.String() == s {
			return k, nil
		}
	}
	return UnknownEntry, errs.NewValueIsInvalidErrorWithCause("entry kind", fmt.Errorf("%q is not an entry kind", s))
}

// Entry is one immutable record of an order's history. It is one of:
//   - Arrival: the package arrived at a location
//   - Transit: the package left origin on a vehicle bound for destination
//   - Other: any other event, described by a summary and a detail
//
// Every entry carries the signature of whoever reported it and the time it was recorded.
type Entry struct {
	id          kernel.UUID
	kind        EntryKind
	signature   string
	recordedAt  time.Time
	carrier     vehicle.Carrier
	origin      location.Location
	destination location.Location
	summary     string
	detail      string
}

// EntryState carries every field of an Entry, for persistence adapters.
type EntryState struct {
	ID          kernel.UUID
	Kind        EntryKind
	Signature   string
	RecordedAt  time.Time
	Carrier     vehicle.Carrier
	Origin      location.Location
	Destination location.Location
	Summary     string
	Detail      string
}

// NewArrival records the package arriving at a location.
func NewArrival(signature string, at location.Location, recordedAt time.Time) (Entry, error) {
	e := Entry{
		id:          kernel.NewUUID(),
		kind:        ArrivalEntry,
		signature:   strings.TrimSpace(signature),
		recordedAt:  recordedAt,
		destination: at,
	}
	if err := errors.Join(e.validateCommon(), at.Validate()); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// NewTransit records the package leaving origin on a vehicle bound for destination.
func NewTransit(signature string, carrier vehicle.Carrier, origin location.Location, destination location.Location, recordedAt time.Time) (Entry, error) {
	e := Entry{
		id:          kernel.NewUUID(),
		kind:        TransitEntry,
		signature:   strings.TrimSpace(signature),
		recordedAt:  recordedAt,
		carrier:     carrier,
		origin:      origin,
		destination: destination,
	}
	if err := errors.Join(e.validateCommon(), carrier.Validate(), origin.Validate(), destination.Validate()); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// NewOther records a free-form event. An empty detail defaults to the summary.
func NewOther(signature string, summary string, detail string, recordedAt time.Time) (Entry, error) {
	summary = strings.TrimSpace(summary)
	detail = strings.TrimSpace(detail)
	if detail == "" {
		detail = summary
	}
	e := Entry{
		id:         kernel.NewUUID(),
		kind:       OtherEntry,
		signature:  strings.TrimSpace(signature),
		recordedAt: recordedAt,
		summary:    summary,
		detail:     detail,
	}
	var err error
	if summary == "" {
		err = errs.NewValueIsRequiredError("summary")
	}
	if err = errors.Join(e.validateCommon(), err); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// RestoreEntry rebuilds an entry from persistence, keeping its identity and timestamp.
func RestoreEntry(s EntryState) (Entry, error) {
	var (
		e   Entry
		err error
	)
	switch s.Kind {
	case ArrivalEntry:
		e, err = NewArrival(s.Signature, s.Destination, s.RecordedAt)
	case TransitEntry:
		e, err = NewTransit(s.Signature, s.Carrier, s.Origin, s.Destination, s.RecordedAt)
	case OtherEntry:
		e, err = NewOther(s.Signature, s.Summary, s.Detail, s.RecordedAt)
	case UnknownEntry:
		err = errs.NewValueIsInvalidErrorWithCause("entry kind", fmt.Errorf("%d is not an entry kind", s.Kind))
	}
	if err != nil {
		return Entry{}, err
	}
	if err = s.ID.Validate(); err != nil {
		return Entry{}, err
	}
	e.id = s.ID
	return e, nil
}

func (e Entry) ID() kernel.UUID {
	return e.id
}

func (e Entry) Kind() EntryKind {
	return e.kind
}

func (e Entry) Signature() string {
	return e.signature
}

func (e Entry) RecordedAt() time.Time {
	return e.recordedAt
}

// Carrier is set for transit entries only.
func (e Entry) Carrier() vehicle.Carrier {
	return e.carrier
}

// Origin is set for transit entries only.
func (e Entry) Origin() location.Location {
	return e.origin
}

// Destination is the arrival location of an arrival entry, or the target of a transit entry.
func (e Entry) Destination() location.Location {
	return e.destination
}

func (e Entry) Summary() string {
	return e.summary
}

func (e Entry) Detail() string {
	return e.detail
}

// State exposes every field of the entry for persistence adapters.
func (e Entry) State() EntryState {
	return EntryState{
		ID:          e.id,
		Kind:        e.kind,
		Signature:   e.signature,
		RecordedAt:  e.recordedAt,
		Carrier:     e.carrier,
		Origin:      e.origin,
		Destination: e.destination,
		Summary:     e.summary,
		Detail:      e.detail,
	}
}

// Summarize describes the event without its timestamp.
func (e Entry) Summarize() string {
	switch e.kind {
	case ArrivalEntry:
		return fmt.Sprintf("The package arrived at %s.", e.destination)
	case TransitEntry:
		return fmt.Sprintf("The package was shipped out of %s on %s, bound for %s.", e.origin, e.carrier, e.destination)
	case OtherEntry:
		return e.summary + ". " + e.detail
	case UnknownEntry:
	}
	return ""
}

// String renders the entry as a history line prefixed with its timestamp.
func (e Entry) String() string {
	return e.recordedAt.Format(TimestampLayout) + " " + e.Summarize()
}

func (e Entry) validateCommon() error {
	var err error
	if e.signature == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("signature"))
	}
	if e.recordedAt.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("timestamp"))
	}
	return err
}
