package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventSimulatePool          EventType = "simulate-pool"
	EventPoolSimulated         EventType = "pool-simulated"
	EventChampionshipSimulated EventType = "championship-simulated"
)

// SimulatePoolRequest asks a worker to run a batch simulation of one pool.
type SimulatePoolRequest struct {
	PoolID         int64 `msgpack:"pool_id"`
	NumSimulations int   `msgpack:"num_simulations"`
}
