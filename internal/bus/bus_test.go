package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := New()

	var first, second []Event
	b.Subscribe(func(e Event) { first = append(first, e) })
	b.Subscribe(func(e Event) { second = append(second, e) })

	b.Publish(NavigateToCompany{CompanyID: 7})
	b.Publish(NavigateToMessage{MessageID: 3})

	assert.Equal(t, []Event{NavigateToCompany{CompanyID: 7}, NavigateToMessage{MessageID: 3}}, first)
	assert.Equal(t, first, second)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()

	var got []Event
	unsub := b.Subscribe(func(e Event) { got = append(got, e) })

	b.Publish(NavigateToCompany{CompanyID: 1})
	unsub()
	b.Publish(NavigateToCompany{CompanyID: 2})

	assert.Len(t, got, 1)
	assert.Equal(t, NavigateToCompany{CompanyID: 1}, got[0])
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	b := New()
	unsub := b.Subscribe(func(Event) {})
	unsub()
	unsub()

	// Remaining subscribers are unaffected.
	delivered := false
	b.Subscribe(func(Event) { delivered = true })
	b.Publish(NavigateToMessage{MessageID: 1})
	assert.True(t, delivered)
}

func TestPublishWithNoSubscribers(t *testing.T) {
	b := New()
	assert.NotPanics(t, func() { b.Publish(NavigateToCompany{CompanyID: 1}) })
}
