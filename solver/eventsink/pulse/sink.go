package pulse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hotdrink-go/hotdrink/solver/schedule"
)

// Options configures the Pulse-backed schedule.Sink.
type Options struct {
	// Client publishes to Pulse streams. Required.
	Client Client
	// StreamID derives the target stream name from an event. Defaults to
	// "component/<Component>".
	StreamID func(schedule.Event) (string, error)
	// MarshalEnvelope overrides envelope serialization, primarily for tests.
	MarshalEnvelope func(Envelope) ([]byte, error)
}

// Envelope wraps a solver event for transmission over a Pulse stream.
type Envelope struct {
	Kind       string    `json:"kind"`
	Component  string    `json:"component"`
	Variable   string    `json:"variable"`
	Generation int       `json:"generation"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// Sink publishes schedule.Event values into Pulse streams. It implements
// schedule.Sink. Safe for concurrent Send calls.
type Sink struct {
	client          Client
	streamID        func(schedule.Event) (string, error)
	marshalEnvelope func(Envelope) ([]byte, error)
}

// NewSink constructs a Pulse-backed schedule.Sink. Options.Client is
// required; StreamID and MarshalEnvelope default to the built-ins.
func NewSink(opts Options) (*Sink, error) {
	if opts.Client == nil {
		return nil, errors.New("pulse client is required")
	}
	s := &Sink{
		client:          opts.Client,
		streamID:        defaultStreamID,
		marshalEnvelope: defaultMarshal,
	}
	if opts.StreamID != nil {
		s.streamID = opts.StreamID
	}
	if opts.MarshalEnvelope != nil {
		s.marshalEnvelope = opts.MarshalEnvelope
	}
	return s, nil
}

// Send publishes e to the stream derived from it, wrapped in an Envelope and
// marshaled to JSON.
func (s *Sink) Send(e schedule.Event) error {
	ctx := context.Background()
	streamName, err := s.streamID(e)
	if err != nil {
		return err
	}
	stream, err := s.client.Stream(streamName)
	if err != nil {
		return err
	}
	id := e.Identifier()
	env := Envelope{
		Kind:       string(e.Kind()),
		Component:  id.Component,
		Variable:   id.Variable,
		Generation: e.Generation(),
		Timestamp:  time.Now().UTC(),
		Payload:    e.Payload(),
	}
	payload, err := s.marshalEnvelope(env)
	if err != nil {
		return err
	}
	_, err = stream.Add(ctx, env.Kind, payload)
	return err
}

// Close is a no-op: the underlying Client owns the Redis connection.
func (s *Sink) Close() error { return nil }

func defaultStreamID(e schedule.Event) (string, error) {
	id := e.Identifier()
	if id.Component == "" {
		return "", errors.New("event missing component identifier")
	}
	return fmt.Sprintf("component/%s", id.Component), nil
}

func defaultMarshal(env Envelope) ([]byte, error) {
	return json.Marshal(env)
}
