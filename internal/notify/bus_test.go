package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinecone-io/ragcli/internal/notify"
)

func TestBusNotify(t *testing.T) {
	tests := map[string]struct {
		setup     func(bus *notify.Bus, calls *[]string)
		notify    string
		expCalls  []string
	}{
		"Callbacks run in registration order": {
			setup: func(bus *notify.Bus, calls *[]string) {
				bus.Subscribe("docs", func() { *calls = append(*calls, "first") })
				bus.Subscribe("docs", func() { *calls = append(*calls, "second") })
				bus.Subscribe("docs", func() { *calls = append(*calls, "third") })
			},
			notify:   "docs",
			expCalls: []string{"first", "second", "third"},
		},

		"Only the notified namespace fires": {
			setup: func(bus *notify.Bus, calls *[]string) {
				bus.Subscribe("docs", func() { *calls = append(*calls, "docs") })
				bus.Subscribe("other", func() { *calls = append(*calls, "other") })
			},
			notify:   "docs",
			expCalls: []string{"docs"},
		},

		"Namespace without subscribers is a no-op": {
			setup:    func(bus *notify.Bus, calls *[]string) {},
			notify:   "docs",
			expCalls: nil,
		},

		"A panicking callback doesn't stop the rest": {
			setup: func(bus *notify.Bus, calls *[]string) {
				bus.Subscribe("docs", func() { *calls = append(*calls, "first") })
				bus.Subscribe("docs", func() { panic("boom") })
				bus.Subscribe("docs", func() { *calls = append(*calls, "third") })
			},
			notify:   "docs",
			expCalls: []string{"first", "third"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			bus, err := notify.NewBus(notify.BusConfig{})
			require.NoError(t, err)

			var calls []string
			test.setup(bus, &calls)

			bus.Notify(test.notify)

			assert.Equal(t, test.expCalls, calls)
		})
	}
}

func TestBusUnsubscribe(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	bus, err := notify.NewBus(notify.BusConfig{})
	require.NoError(err)

	var calls []string
	bus.Subscribe("docs", func() { calls = append(calls, "first") })
	unsubscribe := bus.Subscribe("docs", func() { calls = append(calls, "second") })
	bus.Subscribe("docs", func() { calls = append(calls, "third") })

	unsubscribe()
	bus.Notify("docs")

	// The removed callback must not fire, the others keep their order.
	assert.Equal([]string{"first", "third"}, calls)

	// Unsubscribing twice is harmless.
	unsubscribe()
	bus.Notify("docs")
	assert.Equal([]string{"first", "third", "first", "third"}, calls)
}

func TestPanel(t *testing.T) {
	assert := assert.New(t)

	panel := notify.NewPanel()

	// No handler registered: no-op.
	assert.False(panel.Open())

	var opened []string
	unregisterA := panel.Register(func() { opened = append(opened, "a") })
	panel.Register(func() { opened = append(opened, "b") })

	// Last registered wins.
	assert.True(panel.Open())
	assert.Equal([]string{"b"}, opened)

	// Removing a non-active handler keeps the active one.
	unregisterA()
	assert.True(panel.Open())
	assert.Equal([]string{"b", "b"}, opened)
}
