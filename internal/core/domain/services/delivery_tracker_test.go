package services_test

import (
	"errors"
	"testing"
	"time"

	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/staff"
	"parcel/internal/core/domain/services"
	"parcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryTracker_FullRoute(t *testing.T) {
	tracker := services.NewDeliveryTracker()
	hub := newRepository(t, "Repo1")
	van := newVan(t, "VAN-1")
	clerk := newMember(t, "S00002", staff.RepoStaff, "Repo1")
	driver := newMember(t, "S00003", staff.Driver, "VAN-1")
	o := newOrder(t, 1, order.InAdvance, order.Standard)

	require.NoError(t, tracker.ReportArrival(clerk, o, hub, now.Add(time.Hour)))
	assert.True(t, hub.Holds(o.ID()))
	assert.Equal(t, order.Normal, o.Status())

	require.NoError(t, tracker.ReportTransit(driver, o, van, hub, now.Add(2*time.Hour)))
	assert.False(t, hub.Holds(o.ID()))
	assert.True(t, van.Carries(o.ID()))
	assert.Equal(t, "The package was shipped out of Repo0 on minivan (VAN-1), bound for 5th Avenue 1.", o.LastLog().Summarize())

	require.NoError(t, tracker.ReportDelivered(driver, o, van, now.Add(3*time.Hour)))
	assert.False(t, van.Carries(o.ID()))
	assert.Equal(t, order.Delivered, o.Status())
	assert.Len(t, o.AllLogs(), 4)
	assert.Equal(t, "S00003", o.LastLog().Signature())
}

func TestDeliveryTracker_Permissions(t *testing.T) {
	tracker := services.NewDeliveryTracker()
	hub := newRepository(t, "Repo1")
	van := newVan(t, "VAN-1")

	t.Run("driver cannot report arrival", func(t *testing.T) {
		o := newOrder(t, 2, order.InAdvance, order.Standard)
		driver := newMember(t, "S00003", staff.Driver, "VAN-1")

		err := tracker.ReportArrival(driver, o, hub, now)

		assert.True(t, errors.Is(err, errs.ErrAccessDenied))
		assert.Len(t, o.AllLogs(), 1)
	})

	t.Run("clerk of another repository cannot report arrival", func(t *testing.T) {
		o := newOrder(t, 3, order.InAdvance, order.Standard)
		clerk := newMember(t, "S00004", staff.RepoStaff, "Repo9")

		err := tracker.ReportArrival(clerk, o, hub, now)

		assert.True(t, errors.Is(err, errs.ErrAccessDenied))
		assert.False(t, hub.Holds(o.ID()))
	})

	t.Run("driver of another vehicle cannot load", func(t *testing.T) {
		o := newOrder(t, 4, order.InAdvance, order.Standard)
		driver := newMember(t, "S00005", staff.Driver, "TRK-2")

		err := tracker.ReportTransit(driver, o, van, nil, now)

		assert.True(t, errors.Is(err, errs.ErrAccessDenied))
		assert.False(t, van.Carries(o.ID()))
	})

	t.Run("customer service cannot report damage", func(t *testing.T) {
		o := newOrder(t, 5, order.InAdvance, order.Standard)
		cs := newMember(t, "S00006", staff.CustomerService, "")

		assert.True(t, errors.Is(tracker.ReportDamage(cs, o, "dented", now), errs.ErrAccessDenied))
		assert.Equal(t, order.Normal, o.Status())
	})
}

func TestDeliveryTracker_DeliverNotOnBoard(t *testing.T) {
	tracker := services.NewDeliveryTracker()
	van := newVan(t, "VAN-1")
	driver := newMember(t, "S00003", staff.Driver, "VAN-1")
	o := newOrder(t, 6, order.OnDelivery, order.Express)

	err := tracker.ReportDelivered(driver, o, van, now)

	assert.True(t, errors.Is(err, errs.ErrObjectNotFound))
	assert.Equal(t, order.Normal, o.Status())
	assert.Len(t, o.AllLogs(), 1)
}

func TestDeliveryTracker_DamageAndLoss(t *testing.T) {
	tracker := services.NewDeliveryTracker()
	driver := newMember(t, "S00003", staff.Driver, "VAN-1")

	broken := newOrder(t, 7, order.InAdvance, order.Standard)
	require.NoError(t, tracker.ReportDamage(driver, broken, "Box crushed", now))
	assert.Equal(t, order.Broken, broken.Status())
	assert.Equal(t, "Damage Reported. Box crushed", broken.LastLog().Summarize())

	lost := newOrder(t, 8, order.InAdvance, order.Standard)
	require.NoError(t, tracker.ReportLoss(driver, lost, "", now))
	assert.Equal(t, order.Missing, lost.Status())
	assert.Equal(t, "Loss Reported. Loss Reported", lost.LastLog().Summarize())
}

func TestDeliveryTracker_FlagDelayed(t *testing.T) {
	tracker := services.NewDeliveryTracker()
	o := newOrder(t, 9, order.InAdvance, order.OverNight)

	flagged, err := tracker.FlagDelayed(o, o.DueAt())
	require.NoError(t, err)
	assert.False(t, flagged)

	flagged, err = tracker.FlagDelayed(o, o.DueAt().Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, flagged)
	assert.Equal(t, order.Delayed, o.Status())
	assert.Equal(t, services.SystemSignature, o.LastLog().Signature())

	flagged, err = tracker.FlagDelayed(o, o.DueAt().Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, flagged)
}
