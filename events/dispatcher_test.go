package events_test

import (
	"context"
	"testing"

	"github.com/crewline/crewline/events"
	"github.com/crewline/crewline/events/event"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type recordingListener struct {
	forEvent events.EventName
	received []events.Event
}

func (r *recordingListener) ForEvent() events.EventName { return r.forEvent }

func (r *recordingListener) Handle(_ context.Context, ev events.Event) error {
	r.received = append(r.received, ev)
	return nil
}

type panickyListener struct {
	forEvent events.EventName
}

func (p *panickyListener) ForEvent() events.EventName { return p.forEvent }

func (p *panickyListener) Handle(_ context.Context, _ events.Event) error {
	panic("listener blew up")
}

func TestDispatchDeliversRestaurantCreated(t *testing.T) {
	assert := assert.New(t)
	dispatcher := events.NewDispatcher(zaptest.NewLogger(t))
	listener := &recordingListener{forEvent: event.RestaurantCreatedEvent}
	dispatcher.Register(listener)

	dispatcher.Dispatch(context.Background(), &event.RestaurantCreated{
		RestaurantID:   3,
		RestaurantName: "Pasta Paradise",
		OwnerID:        2,
	})

	if assert.Len(listener.received, 1) {
		created := listener.received[0].(*event.RestaurantCreated)
		assert.Equal("Pasta Paradise", created.RestaurantName)
		assert.Equal(event.RestaurantCreatedEvent, created.Name())
	}
}

func TestDispatchSurvivesPanickingListener(t *testing.T) {
	assert := assert.New(t)
	dispatcher := events.NewDispatcher(zaptest.NewLogger(t))
	after := &recordingListener{forEvent: event.RestaurantCreatedEvent}
	dispatcher.Register(&panickyListener{forEvent: event.RestaurantCreatedEvent}, after)

	dispatcher.Dispatch(context.Background(), &event.RestaurantCreated{
		RestaurantID:   3,
		RestaurantName: "Pasta Paradise",
		OwnerID:        2,
	})

	assert.Len(after.received, 1)
}
