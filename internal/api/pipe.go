// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"encoding/json"
	"sync"

	"fanline/cli/internal/apierr"
)

// Pipe accumulates commands to send in a single HTTP request. A Pipe is safe
// for concurrent use by multiple goroutines sharing the same instance; the
// append order of commands is the order they go on the wire, which is what
// reply correlation relies on. Do not keep adding to a Pipe while it is being
// sent if you need a stable snapshot: build, send, discard.
type Pipe struct {
	mu       sync.Mutex
	commands []Command
}

// Reset allows to clear the accumulated command buffer.
func (p *Pipe) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.commands = nil
}

// Add appends a command to the buffer. The error return is part of the
// contract for batch implementations whose lock can break (kind
// LockContention); with this implementation it is always nil.
func (p *Pipe) Add(cmd Command) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.commands = append(p.commands, cmd)
	return nil
}

// snapshot returns a copy of the buffered commands in append order.
func (p *Pipe) snapshot() []Command {
	p.mu.Lock()
	defer p.mu.Unlock()
	commands := make([]Command, len(p.commands))
	copy(commands, p.commands)
	return commands
}

// AddPublish adds a publish command to the command buffer but does not
// actually send the request to the server until the Pipe is explicitly sent.
// The data must be valid JSON text.
func (p *Pipe) AddPublish(channel string, data []byte, opts ...PublishOption) error {
	if !json.Valid(data) {
		return apierr.New(apierr.MalformedPayload, "publish data is not valid JSON")
	}
	var options PublishOptions
	for _, opt := range opts {
		opt(&options)
	}
	return p.Add(Command{
		Method: "publish",
		Params: PublishRequest{
			Channel:        channel,
			Data:           json.RawMessage(data),
			PublishOptions: options,
		},
	})
}

// AddBroadcast adds a broadcast command to the command buffer but does not
// actually send the request to the server until the Pipe is explicitly sent.
// The data must be valid JSON text.
func (p *Pipe) AddBroadcast(channels []string, data []byte, opts ...PublishOption) error {
	if !json.Valid(data) {
		return apierr.New(apierr.MalformedPayload, "broadcast data is not valid JSON")
	}
	var options PublishOptions
	for _, opt := range opts {
		opt(&options)
	}
	return p.Add(Command{
		Method: "broadcast",
		Params: BroadcastRequest{
			Channels:       channels,
			Data:           json.RawMessage(data),
			PublishOptions: options,
		},
	})
}

// AddSubscribe adds a subscribe command to the command buffer but does not
// actually send the request to the server until the Pipe is explicitly sent.
func (p *Pipe) AddSubscribe(channel, user string, opts ...SubscribeOption) error {
	var options SubscribeOptions
	for _, opt := range opts {
		opt(&options)
	}
	return p.Add(Command{
		Method: "subscribe",
		Params: SubscribeRequest{
			Channel:          channel,
			User:             user,
			SubscribeOptions: options,
		},
	})
}

// AddUnsubscribe adds an unsubscribe command to the command buffer but does
// not actually send the request to the server until the Pipe is explicitly
// sent.
func (p *Pipe) AddUnsubscribe(channel, user string, opts ...UnsubscribeOption) error {
	var options UnsubscribeOptions
	for _, opt := range opts {
		opt(&options)
	}
	return p.Add(Command{
		Method: "unsubscribe",
		Params: UnsubscribeRequest{
			Channel:            channel,
			User:               user,
			UnsubscribeOptions: options,
		},
	})
}

// AddDisconnect adds a disconnect command to the command buffer but does not
// actually send the request to the server until the Pipe is explicitly sent.
func (p *Pipe) AddDisconnect(user string, opts ...DisconnectOption) error {
	var options DisconnectOptions
	for _, opt := range opts {
		opt(&options)
	}
	return p.Add(Command{
		Method: "disconnect",
		Params: DisconnectRequest{
			User:              user,
			DisconnectOptions: options,
		},
	})
}

// AddPresence adds a presence command to the command buffer but does not
// actually send the request to the server until the Pipe is explicitly sent.
func (p *Pipe) AddPresence(channel string) error {
	return p.Add(Command{
		Method: "presence",
		Params: PresenceRequest{Channel: channel},
	})
}

// AddPresenceStats adds a presence stats command to the command buffer but
// does not actually send the request to the server until the Pipe is
// explicitly sent.
func (p *Pipe) AddPresenceStats(channel string) error {
	return p.Add(Command{
		Method: "presence_stats",
		Params: PresenceStatsRequest{Channel: channel},
	})
}

// AddHistory adds a history command to the command buffer but does not
// actually send the request to the server until the Pipe is explicitly sent.
func (p *Pipe) AddHistory(channel string, opts ...HistoryOption) error {
	var options HistoryOptions
	for _, opt := range opts {
		opt(&options)
	}
	return p.Add(Command{
		Method: "history",
		Params: HistoryRequest{
			Channel:        channel,
			HistoryOptions: options,
		},
	})
}

// AddHistoryRemove adds a history remove command to the command buffer but
// does not actually send the request to the server until the Pipe is
// explicitly sent.
func (p *Pipe) AddHistoryRemove(channel string) error {
	return p.Add(Command{
		Method: "history_remove",
		Params: HistoryRemoveRequest{Channel: channel},
	})
}

// AddChannels adds a channels command to the command buffer but does not
// actually send the request to the server until the Pipe is explicitly sent.
func (p *Pipe) AddChannels(opts ...ChannelsOption) error {
	var options ChannelsOptions
	for _, opt := range opts {
		opt(&options)
	}
	return p.Add(Command{
		Method: "channels",
		Params: ChannelsRequest{Pattern: options.Pattern},
	})
}

// AddInfo adds an info command to the command buffer but does not actually
// send the request to the server until the Pipe is explicitly sent.
func (p *Pipe) AddInfo() error {
	return p.Add(Command{
		Method: "info",
		Params: InfoRequest{},
	})
}
