package order_test

import (
	"fmt"
	"testing"

	"onlineshop/internal/core/domain/model/order"
	"onlineshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, 1, int(order.Pending))
	assert.Equal(t, 2, int(order.Delivered))
	assert.Equal(t, 3, int(order.Canceled))
	assert.Equal(t, 4, int(order.Returned))
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.Delivered, order.Canceled, order.Returned} {
			require.NoError(t, status.Validate(), status.String())
		}
	})

	t.Run("should reject invalid statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(5), order.Status(100)} {
			t.Run(fmt.Sprintf("value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", order.Pending.String())
	assert.Equal(t, "Delivered", order.Delivered.String())
	assert.Equal(t, "Canceled", order.Canceled.String())
	assert.Equal(t, "Returned", order.Returned.String())
	assert.Equal(t, "Unknown", order.Unknown.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatus_DerivedFlags(t *testing.T) {
	testCases := []struct {
		status    order.Status
		delivered bool
		canceled  bool
		returned  bool
	}{
		{order.Pending, false, false, false},
		{order.Delivered, true, false, false},
		{order.Canceled, false, true, false},
		{order.Returned, true, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.status.String(), func(t *testing.T) {
			assert.Equal(t, tc.delivered, tc.status.IsDelivered())
			assert.Equal(t, tc.canceled, tc.status.IsCanceled())
			assert.Equal(t, tc.returned, tc.status.IsReturned())
			assert.False(t, tc.status.IsCanceled() && tc.status.IsDelivered(), "canceled and delivered are exclusive")
		})
	}
}

func TestStatus_Apply(t *testing.T) {
	testCases := []struct {
		action   order.Action
		from     order.Status
		expected order.Status
		failure  error
	}{
		{order.ActionDeliver, order.Pending, order.Delivered, nil},
		{order.ActionDeliver, order.Delivered, order.Delivered, nil},
		{order.ActionDeliver, order.Canceled, order.Unknown, errs.ErrOrderCanceled},
		{order.ActionDeliver, order.Returned, order.Returned, nil},

		{order.ActionCancel, order.Pending, order.Canceled, nil},
		{order.ActionCancel, order.Delivered, order.Unknown, errs.ErrOrderAlreadyDelivered},
		{order.ActionCancel, order.Canceled, order.Canceled, nil},
		{order.ActionCancel, order.Returned, order.Unknown, errs.ErrOrderAlreadyDelivered},

		{order.ActionReturn, order.Pending, order.Unknown, errs.ErrOrderNotDeliveredYet},
		{order.ActionReturn, order.Delivered, order.Returned, nil},
		{order.ActionReturn, order.Canceled, order.Unknown, errs.ErrOrderCanceled},
		{order.ActionReturn, order.Returned, order.Unknown, errs.ErrOrderAlreadyReturned},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s from %s", tc.action, tc.from), func(t *testing.T) {
			next, err := tc.from.Apply(tc.action)

			if tc.failure != nil {
				require.ErrorIs(t, err, tc.failure)
				assert.True(t, errs.IsBusinessFailure(err))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.expected, next)
		})
	}
}

func TestStatus_Apply_UnknownStatus(t *testing.T) {
	for _, action := range []order.Action{order.ActionDeliver, order.ActionCancel, order.ActionReturn} {
		_, err := order.Unknown.Apply(action)

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.False(t, errs.IsBusinessFailure(err))
	}
}

func TestStatus_TransitionShortcuts(t *testing.T) {
	next, err := order.Pending.Deliver()
	require.NoError(t, err)
	assert.Equal(t, order.Delivered, next)

	next, err = order.Pending.Cancel()
	require.NoError(t, err)
	assert.Equal(t, order.Canceled, next)

	next, err = order.Delivered.Return()
	require.NoError(t, err)
	assert.Equal(t, order.Returned, next)
}
