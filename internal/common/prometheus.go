package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"

	RealtimeEventTotal     = "realtime_events_total"
	RealtimeDroppedTotal   = "realtime_dropped_messages_total"
	RealtimePrizeClaimed   = "realtime_prize_claimed_total"
	RealtimeOpenSessions   = "realtime_open_sessions"
	RealtimeActiveRooms    = "realtime_active_rooms"
	RealtimeEventDurations = "realtime_event_duration_seconds"
)

var (
	PromGauges = map[string]*prometheus.GaugeVec{
		RealtimeOpenSessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: RealtimeOpenSessions,
			Help: "Number of open websocket sessions",
		}, []string{}),
		RealtimeActiveRooms: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: RealtimeActiveRooms,
			Help: "Number of hunt rooms with at least one session",
		}, []string{}),
	}

	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		RealtimeEventTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RealtimeEventTotal,
			Help: "Count of inbound realtime events",
		}, []string{"event", "result"}),
		RealtimeDroppedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RealtimeDroppedTotal,
			Help: "Count of outbound messages dropped because of a full session buffer",
		}, []string{"event"}),
		RealtimePrizeClaimed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RealtimePrizeClaimed,
			Help: "Count of hunt prizes claimed",
		}, []string{}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
		RealtimeEventDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: RealtimeEventDurations,
			Help: "Duration of inbound realtime event handling",
		}, []string{"event"}),
	}
)
