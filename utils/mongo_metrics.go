package utils

import (
	"sync/atomic"

	"go.mongodb.org/mongo-driver/event"
)

// MongoPoolStats tracks connection pool activity through the driver's pool
// monitor. The health endpoint exposes a snapshot of these counters.
type MongoPoolStats struct {
	ActiveConnections  int64 `json:"active_connections"`
	CreatedConnections int64 `json:"created_connections"`
	ClosedConnections  int64 `json:"closed_connections"`
}

var poolStats MongoPoolStats

// MongoPoolMonitor returns the event monitor wired into the client options.
func MongoPoolMonitor() *event.PoolMonitor {
	return &event.PoolMonitor{
		Event: func(evt *event.PoolEvent) {
			switch evt.Type {
			case event.ConnectionCreated:
				atomic.AddInt64(&poolStats.CreatedConnections, 1)
			case event.ConnectionClosed:
				atomic.AddInt64(&poolStats.ClosedConnections, 1)
			case event.GetSucceeded:
				atomic.AddInt64(&poolStats.ActiveConnections, 1)
			case event.ConnectionReturned:
				atomic.AddInt64(&poolStats.ActiveConnections, -1)
			}
		},
	}
}

func GetMongoPoolStats() MongoPoolStats {
	return MongoPoolStats{
		ActiveConnections:  atomic.LoadInt64(&poolStats.ActiveConnections),
		CreatedConnections: atomic.LoadInt64(&poolStats.CreatedConnections),
		ClosedConnections:  atomic.LoadInt64(&poolStats.ClosedConnections),
	}
}
