package services_test

import (
	"testing"

	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingPolicy_OnPlacement(t *testing.T) {
	policy := services.NewBillingPolicy()

	t.Run("in advance bills and issues", func(t *testing.T) {
		c := newCustomer(t, order.InAdvance)
		o := newOrder(t, 1, order.InAdvance, order.Standard)

		b, err := policy.OnPlacement(c, o, now)

		require.NoError(t, err)
		require.NotNil(t, b)
		assert.True(t, b.IsIssued())
		assert.True(t, o.IsBilled())
	})

	t.Run("monthly aggregates without issuing", func(t *testing.T) {
		c := newCustomer(t, order.Monthly)

		b1, err := policy.OnPlacement(c, newOrder(t, 1, order.Monthly, order.Standard), now)
		require.NoError(t, err)
		b2, err := policy.OnPlacement(c, newOrder(t, 2, order.Monthly, order.Standard), now)
		require.NoError(t, err)

		assert.Same(t, b1, b2)
		assert.False(t, b1.IsIssued())
		assert.Len(t, b1.Manifest(), 2)
	})

	t.Run("on delivery waits", func(t *testing.T) {
		c := newCustomer(t, order.OnDelivery)
		o := newOrder(t, 1, order.OnDelivery, order.Standard)

		b, err := policy.OnPlacement(c, o, now)

		require.NoError(t, err)
		assert.Nil(t, b)
		assert.False(t, o.IsBilled())
	})
}

func TestBillingPolicy_OnDelivery(t *testing.T) {
	policy := services.NewBillingPolicy()
	c := newCustomer(t, order.OnDelivery)
	o := newOrder(t, 1, order.OnDelivery, order.Standard)

	b, err := policy.OnDelivery(c, o, now)
	require.NoError(t, err)
	assert.Nil(t, b, "not delivered yet")

	_, err = o.NewLog(order.LogArrival, "S00003", now, order.LogArgs{Destination: o.Destination()})
	require.NoError(t, err)

	b, err = policy.OnDelivery(c, o, now)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.True(t, b.IsIssued())

	again, err := policy.OnDelivery(c, o, now)
	require.NoError(t, err)
	assert.Same(t, b, again)
	assert.Equal(t, 1, c.BillCount())
}

func TestBillingPolicy_IssueMonthly(t *testing.T) {
	policy := services.NewBillingPolicy()
	c := newCustomer(t, order.Monthly)
	_, err := policy.OnPlacement(c, newOrder(t, 1, order.Monthly, order.Standard), now)
	require.NoError(t, err)

	issued, err := policy.IssueMonthly(c, now)

	require.NoError(t, err)
	require.Len(t, issued, 1)
	assert.True(t, issued[0].IsIssued())
	assert.Empty(t, c.OpenMonthlyBills())

	issued, err = policy.IssueMonthly(c, now)
	require.NoError(t, err)
	assert.Empty(t, issued)
}
