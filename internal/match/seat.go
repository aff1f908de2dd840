package match

// Seat is the delivery side of a connected player. The websocket layer
// implements it; tests implement it with an in-memory recorder.
type Seat interface {
	PlayerID() string
	Rating() int

	// Send marshals and queues a message, dropping it if the client's
	// buffer is full.
	Send(v interface{})

	// SendState queues a pre-marshaled state update. Only the latest
	// queued update is kept per client.
	SendState(data []byte)
}
