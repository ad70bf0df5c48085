package pulse

import (
	"context"
	"testing"

	"github.com/hotdrink-go/hotdrink/solver/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStream struct {
	added []string
}

func (f *fakeStream) Add(ctx context.Context, event string, payload []byte) (string, error) {
	f.added = append(f.added, event)
	return "1-0", nil
}
func (f *fakeStream) Destroy(ctx context.Context) error { return nil }

type fakeClient struct {
	streams map[string]*fakeStream
}

func newFakeClient() *fakeClient { return &fakeClient{streams: make(map[string]*fakeStream)} }

func (f *fakeClient) Stream(name string) (Stream, error) {
	s, ok := f.streams[name]
	if !ok {
		s = &fakeStream{}
		f.streams[name] = s
	}
	return s, nil
}
func (f *fakeClient) Close(ctx context.Context) error { return nil }

func TestSink_SendPublishesToDerivedStream(t *testing.T) {
	fc := newFakeClient()
	sink, err := NewSink(Options{Client: fc})
	require.NoError(t, err)

	id := schedule.Identifier{Component: "comp", Variable: "a"}
	require.NoError(t, sink.Send(schedule.NewReadyEvent(id, 1, 42)))

	s := fc.streams["component/comp"]
	require.NotNil(t, s)
	assert.Equal(t, []string{"ready"}, s.added)
}

func TestSink_SendWithoutComponentFails(t *testing.T) {
	fc := newFakeClient()
	sink, err := NewSink(Options{Client: fc})
	require.NoError(t, err)

	err = sink.Send(schedule.NewReadyEvent(schedule.Identifier{}, 1, 1))
	assert.Error(t, err)
}
