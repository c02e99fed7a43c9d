package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type MockMonthlyBillsIssuer struct{ mock.Mock }

func (m *MockMonthlyBillsIssuer) Handle(ctx context.Context, cmd commands.IssueMonthlyBillsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockDelayedOrdersFlagger struct{ mock.Mock }

func (m *MockDelayedOrdersFlagger) Handle(ctx context.Context, cmd commands.FlagDelayedOrdersCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockOrdersFlusher struct{ mock.Mock }

func (m *MockOrdersFlusher) Handle(ctx context.Context, cmd commands.FlushOrdersCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func TestMonthlyBillingJob_RunOnce(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	issuer := new(MockMonthlyBillsIssuer)
	issuer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.IssueMonthlyBillsCommand) bool {
		return cmd.At().Equal(fixedNow)
	})).Return(3, nil).Once()

	job := jobs.NewMonthlyBillingJob(issuer, jobs.DefaultMonthlyBillingSchedule, clock, zap.New(core))

	assert.Equal(t, 3, job.RunOnce(t.Context()))
	issuer.AssertExpectations(t)

	finished := logs.FilterMessage("job run finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, "monthly_billing_job", finished[0].ContextMap()["component"])
}

func TestDelayedOrdersJob_RunOnce_LogsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	flagger := new(MockDelayedOrdersFlagger)
	flagger.On("Handle", mock.Anything, mock.Anything).Return(1, errors.New("db down")).Once()

	job := jobs.NewDelayedOrdersJob(flagger, jobs.DefaultDelayedOrdersSchedule, clock, zap.New(core))

	assert.Equal(t, 1, job.RunOnce(t.Context()))
	failed := logs.FilterMessage("job run failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "db down", failed[0].ContextMap()["error"])
}

func TestOrdersFlushJob_QuietWhenNothingToFlush(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	flusher := new(MockOrdersFlusher)
	flusher.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Once()

	job := jobs.NewOrdersFlushJob(flusher, jobs.DefaultOrdersFlushSchedule, zap.New(core))

	assert.Zero(t, job.RunOnce(t.Context()))
	assert.Zero(t, logs.FilterMessage("job run finished").Len())
}

func TestScheduledJob_RunsOnSchedule(t *testing.T) {
	flusher := new(MockOrdersFlusher)
	ran := make(chan struct{}, 1)
	flusher.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Run(func(mock.Arguments) {
		select {
		case ran <- struct{}{}:
		default:
		}
	})

	job := jobs.NewOrdersFlushJob(flusher, "* * * * * *", zap.NewNop())
	require.NoError(t, job.Start())
	defer job.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestJobManager_StartAll_InvalidSchedule(t *testing.T) {
	flusher := new(MockOrdersFlusher)
	flusher.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()

	manager := jobs.NewJobManager(
		new(MockMonthlyBillsIssuer),
		new(MockDelayedOrdersFlagger),
		flusher,
		jobs.Schedules{DelayedOrders: "every hour"},
		nil,
	)

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "delayed orders job")
}

func TestJobManager_StopAll_FlushesOnce(t *testing.T) {
	flusher := new(MockOrdersFlusher)
	flusher.On("Handle", mock.Anything, mock.Anything).Return(2, nil).Once()
	issuer := new(MockMonthlyBillsIssuer)
	issuer.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()
	flagger := new(MockDelayedOrdersFlagger)
	flagger.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()

	manager := jobs.NewJobManager(
		issuer,
		flagger,
		flusher,
		jobs.Schedules{OrdersFlush: "0 0 0 1 1 *"},
		zap.NewNop(),
	)
	require.NoError(t, manager.StartAll())

	manager.StopAll(t.Context())

	flusher.AssertExpectations(t)
}
