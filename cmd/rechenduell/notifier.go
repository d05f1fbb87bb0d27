package main

//go:generate mockgen -source=notifier.go -destination=notifier_mock_test.go -package=main

// Notifier delivers events to player connections. Broadcast fan-out is keyed
// by explicit connection ids so the RoomManager stays the single source of
// room membership. Implementations must not block: the manager calls these
// while holding its room lock.
type Notifier interface {

	// Unicast delivers an event to a single connection. Unknown connection
	// ids are ignored.
	Unicast(connID string, event Event)

	// Broadcast delivers an event to every listed connection, skipping ids
	// that are no longer connected.
	Broadcast(connIDs []string, event Event)
}
