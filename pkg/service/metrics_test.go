package service

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gropc-project/gropc-go/pkg/subscription"
)

func TestGatewayMetricsSubscriptions(t *testing.T) {
	m, err := NewGatewayMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.SubscriptionOpened()
	m.SubscriptionOpened()
	m.SubscriptionClosed(subscription.ReasonUnsubscribed)
	m.NotificationSent()
	m.NotificationSent()
	m.NotificationDropped("read")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.subscriptionsActive))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.subscriptionsOpened))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.subscriptionsClosed.WithLabelValues(subscription.ReasonUnsubscribed)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.notificationsSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notificationsDropped.WithLabelValues("read")))
}

func TestGatewayMetricsRequests(t *testing.T) {
	m, err := NewGatewayMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.ObserveRead(nil, time.Millisecond)
	m.ObserveRead(errors.New("disconnected"), time.Millisecond)
	m.ObserveWrite("WRONG_TYPE", 2*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.readsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.readsTotal.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.writesTotal.WithLabelValues("WRONG_TYPE")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requestDurationSecond))
}

func TestGatewayMetricsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewGatewayMetrics(reg)
	require.NoError(t, err)

	_, err = NewGatewayMetrics(reg)
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}
