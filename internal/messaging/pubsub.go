package messaging

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// PubSub is an in-process message bus. Delivery is best-effort: events that
// cannot be handled are dropped, never retried.
type PubSub struct {
	channel *gochannel.GoChannel
}

// NewPubSub creates an in-process pub/sub with a small output buffer so
// publishing never blocks request handling.
func NewPubSub() *PubSub {
	channel := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NopLogger{},
	)

	return &PubSub{channel: channel}
}

// Publisher returns the publishing side of the bus.
func (p *PubSub) Publisher() message.Publisher {
	return p.channel
}

// Subscriber returns the subscribing side of the bus.
func (p *PubSub) Subscriber() message.Subscriber {
	return p.channel
}

// Shutdown closes the bus.
func (p *PubSub) Shutdown() error {
	return p.channel.Close()
}
