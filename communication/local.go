package communication

import (
	"io"
	"sync"
)

// LocalCommunicator connects a player and a referee running in the same
// process. Messages are passed as values, without encoding.
type LocalCommunicator struct {
	in     <-chan Message
	out    chan<- Message
	mu     sync.Mutex
	closed bool
}

// NewLocalPair returns the two ends of an in-process connection. What one
// end sends the other receives, in order.
func NewLocalPair(buffer int) (*LocalCommunicator, *LocalCommunicator) {
	a := make(chan Message, buffer)
	b := make(chan Message, buffer)
	return &LocalCommunicator{in: a, out: b}, &LocalCommunicator{in: b, out: a}
}

// Send blocks while the peer's buffer is full. Sending after Close fails
// with io.ErrClosedPipe.
func (c *LocalCommunicator) Send(m Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return io.ErrClosedPipe
	}
	c.out <- m
	return nil
}

// Receive blocks until a message arrives or the other end closes.
func (c *LocalCommunicator) Receive() (Message, error) {
	m, ok := <-c.in
	if !ok {
		return nil, io.EOF
	}
	return m, nil
}

// Close tells the other end that nothing more will be sent.
func (c *LocalCommunicator) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.out)
	}
	return nil
}
