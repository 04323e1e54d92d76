package communication

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Communicator abstracts the channel to the referee.
type Communicator interface {
	Send(m Message) error
	Receive() (Message, error)
}

type streamCommunicator struct {
	scanner *bufio.Scanner
	w       *bufio.Writer
}

// NewStreamCommunicator talks the line protocol over r and w, typically
// stdin and stdout.
func NewStreamCommunicator(r io.Reader, w io.Writer) Communicator {
	return &streamCommunicator{
		scanner: bufio.NewScanner(r),
		w:       bufio.NewWriter(w),
	}
}

func (c *streamCommunicator) Send(m Message) error {
	if _, err := c.w.WriteString(m.Serialize() + "\n"); err != nil {
		return fmt.Errorf("failed to send %T: %w", m, err)
	}
	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("failed to send %T: %w", m, err)
	}
	return nil
}

// Receive returns the next message, skipping blank lines. It returns io.EOF
// once the other side closes the stream.
func (c *streamCommunicator) Receive() (Message, error) {
	for c.scanner.Scan() {
		line := c.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		return Parse(line)
	}
	if err := c.scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to receive: %w", err)
	}
	return nil, io.EOF
}
