package core

// Frame is a single encoded signaling message.
type Frame []byte

// SignalConn abstracts the signaling transport endpoint of one connection.
// Owned by the adapter; the adapter must Close() it.
type SignalConn interface {
	// TrySend enqueues a frame without blocking. Frames enqueued on the
	// same connection are delivered in enqueue order.
	TrySend(Frame) error
	Close()
}
