// Package metrics, Prometheus metriklerini tanımlar ve /metrics endpoint'ini sağlar.
//
// promauto ile tanımlanan metrikler default registry'ye otomatik kaydolur —
// Handler() bu registry'yi expose eder.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ConnectionsActive, o an açık WebSocket bağlantı sayısı.
	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pulse_ws_connections_active",
		Help: "Number of currently open WebSocket connections.",
	})

	// UsersOnline, en az bir bağlantısı olan kullanıcı sayısı.
	UsersOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pulse_ws_users_online",
		Help: "Number of users with at least one open connection.",
	})

	// RoomsActive, en az bir üyesi olan oda sayısı.
	RoomsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pulse_ws_rooms_active",
		Help: "Number of rooms with at least one member.",
	})

	// EventsEmitted, gönderilen WebSocket event sayısı (op'a göre).
	EventsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_ws_events_emitted_total",
		Help: "Total number of WebSocket events emitted, by operation.",
	}, []string{"op"})

	// MessagesRelayed, kalıcılaştırılıp dağıtılan mesaj sayısı.
	MessagesRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pulse_messages_relayed_total",
		Help: "Total number of chat messages persisted and relayed.",
	})

	// NotificationsCreated, oluşturulan bildirim sayısı (türe göre).
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_notifications_created_total",
		Help: "Total number of notifications created, by type.",
	}, []string{"type"})

	// SlowClientsDropped, send buffer'ı dolduğu için düşürülen bağlantı sayısı.
	SlowClientsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pulse_ws_slow_clients_dropped_total",
		Help: "Total number of connections dropped because their send buffer was full.",
	})
)

// Handler, Prometheus scrape endpoint'i için http.Handler döner.
func Handler() http.Handler {
	return promhttp.Handler()
}
