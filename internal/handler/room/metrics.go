package room

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricOpenConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chatroom_open_connections",
		Help: "Currently open websocket connections, joined or not.",
	})

	metricJoinedUsers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chatroom_joined_users",
		Help: "Sessions that hold a display name.",
	})

	metricMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatroom_messages_total",
		Help: "Chat messages accepted and broadcast.",
	})

	metricDeliveryDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatroom_delivery_drops_total",
		Help: "Frames dropped because a session's outbound queue was full.",
	})
)
