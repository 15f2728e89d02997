// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import "encoding/json"

// Options are expressed as functional mutators applied to a default-valued
// options struct. Applying two mutators that touch the same field is
// last-write-wins. Unset optional fields are omitted from serialization,
// never emitted as null.

// PublishOptions define per-publish customizations. Shared by publish and
// broadcast commands.
type PublishOptions struct {
	// SkipHistory skips adding the publication to the channel history stream.
	SkipHistory bool `json:"skip_history,omitempty"`
}

// PublishOption is a functional option over PublishOptions.
type PublishOption func(*PublishOptions)

// WithSkipHistory allows to set the skip_history field.
func WithSkipHistory(skip bool) PublishOption {
	return func(opts *PublishOptions) {
		opts.SkipHistory = skip
	}
}

// StreamPosition describes a position inside a channel publication stream.
type StreamPosition struct {
	Offset uint64 `json:"offset,omitempty"`
	Epoch  string `json:"epoch,omitempty"`
}

// SubscribeOptions define per-subscription options.
type SubscribeOptions struct {
	// Info defines custom channel information, zero value means none.
	Info json.RawMessage `json:"info,omitempty"`
	// Presence turns on participating in channel presence.
	Presence bool `json:"presence,omitempty"`
	// JoinLeave enables sending join and leave messages for this client in
	// the channel.
	JoinLeave bool `json:"join_leave,omitempty"`
	// Position makes the client additionally sync its position inside the
	// stream to prevent message loss. Only makes sense in channels that
	// maintain a publication history stream.
	Position bool `json:"position,omitempty"`
	// Recover turns on recovery for the channel: the client will try to
	// recover missed messages automatically upon resubscribe after a
	// reconnect. Implies position tracking inside the stream.
	Recover bool `json:"recover,omitempty"`
	// Data to send to the client with the subscribe push.
	Data json.RawMessage `json:"data,omitempty"`
	// RecoverSince subscribes the client recovering from a certain
	// StreamPosition.
	RecoverSince *StreamPosition `json:"recover_since,omitempty"`
	// ClientID of a concrete connection to subscribe.
	ClientID string `json:"client_id,omitempty"`
}

// SubscribeOption is a functional option over SubscribeOptions.
type SubscribeOption func(*SubscribeOptions)

// WithSubscribeInfo allows to set custom channel info.
func WithSubscribeInfo(chanInfo json.RawMessage) SubscribeOption {
	return func(opts *SubscribeOptions) {
		opts.Info = chanInfo
	}
}

// WithPresence allows to enable presence for the subscription.
func WithPresence(enabled bool) SubscribeOption {
	return func(opts *SubscribeOptions) {
		opts.Presence = enabled
	}
}

// WithJoinLeave allows to enable join/leave messages for the subscription.
func WithJoinLeave(enabled bool) SubscribeOption {
	return func(opts *SubscribeOptions) {
		opts.JoinLeave = enabled
	}
}

// WithPosition allows to enable stream position tracking.
func WithPosition(enabled bool) SubscribeOption {
	return func(opts *SubscribeOptions) {
		opts.Position = enabled
	}
}

// WithRecover allows to enable automatic recovery for the subscription.
func WithRecover(enabled bool) SubscribeOption {
	return func(opts *SubscribeOptions) {
		opts.Recover = enabled
	}
}

// WithSubscribeData allows to set data sent with the subscribe push.
func WithSubscribeData(data json.RawMessage) SubscribeOption {
	return func(opts *SubscribeOptions) {
		opts.Data = data
	}
}

// WithRecoverSince allows to subscribe recovering from a stream position.
func WithRecoverSince(since *StreamPosition) SubscribeOption {
	return func(opts *SubscribeOptions) {
		opts.RecoverSince = since
	}
}

// WithSubscribeClient allows to subscribe a concrete client connection only.
func WithSubscribeClient(clientID string) SubscribeOption {
	return func(opts *SubscribeOptions) {
		opts.ClientID = clientID
	}
}

// UnsubscribeOptions define per-unsubscribe options.
type UnsubscribeOptions struct {
	// ClientID of a concrete connection to unsubscribe.
	ClientID string `json:"client_id,omitempty"`
}

// UnsubscribeOption is a functional option over UnsubscribeOptions.
type UnsubscribeOption func(*UnsubscribeOptions)

// WithUnsubscribeClient allows to unsubscribe a concrete client connection
// only.
func WithUnsubscribeClient(clientID string) UnsubscribeOption {
	return func(opts *UnsubscribeOptions) {
		opts.ClientID = clientID
	}
}

// Disconnect describes the disconnect push sent to closing connections.
type Disconnect struct {
	Code      uint32 `json:"code,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Reconnect bool   `json:"reconnect,omitempty"`
}

// DisconnectOptions define per-disconnect options.
type DisconnectOptions struct {
	// Disconnect object to use instead of the server default.
	Disconnect *Disconnect `json:"disconnect,omitempty"`
	// ClientWhitelist lists client ids that must stay connected.
	ClientWhitelist []string `json:"client_whitelist,omitempty"`
	// ClientID of a concrete connection to disconnect.
	ClientID string `json:"client_id,omitempty"`
}

// DisconnectOption is a functional option over DisconnectOptions.
type DisconnectOption func(*DisconnectOptions)

// WithDisconnect allows to set a custom disconnect object.
func WithDisconnect(disconnect *Disconnect) DisconnectOption {
	return func(opts *DisconnectOptions) {
		opts.Disconnect = disconnect
	}
}

// WithDisconnectClient allows to disconnect a concrete client connection
// only.
func WithDisconnectClient(clientID string) DisconnectOption {
	return func(opts *DisconnectOptions) {
		opts.ClientID = clientID
	}
}

// WithDisconnectClientWhitelist allows to keep the listed client connections
// open.
func WithDisconnectClientWhitelist(whitelist []string) DisconnectOption {
	return func(opts *DisconnectOptions) {
		opts.ClientWhitelist = whitelist
	}
}

// NoLimit can be passed to WithLimit to ask for the full history stream.
const NoLimit = -1

// HistoryOptions define per-history options.
type HistoryOptions struct {
	// Since returns publications after this position only.
	Since *StreamPosition `json:"since,omitempty"`
	// Limit caps the number of publications returned. Zero means no
	// publications (only the current stream position), NoLimit means all.
	Limit int32 `json:"limit,omitempty"`
	// Reverse iterates the stream from the most recent publication.
	Reverse bool `json:"reverse,omitempty"`
}

// HistoryOption is a functional option over HistoryOptions.
type HistoryOption func(*HistoryOptions)

// WithLimit allows to set the history limit.
func WithLimit(limit int32) HistoryOption {
	return func(opts *HistoryOptions) {
		opts.Limit = limit
	}
}

// WithSince allows to set the history stream position.
func WithSince(since *StreamPosition) HistoryOption {
	return func(opts *HistoryOptions) {
		opts.Since = since
	}
}

// WithReverse allows to iterate the history stream in reverse.
func WithReverse(reverse bool) HistoryOption {
	return func(opts *HistoryOptions) {
		opts.Reverse = reverse
	}
}

// ChannelsOptions define per-channels options.
type ChannelsOptions struct {
	// Pattern filters returned channels by glob pattern.
	Pattern string `json:"pattern,omitempty"`
}

// ChannelsOption is a functional option over ChannelsOptions.
type ChannelsOption func(*ChannelsOptions)

// WithPattern allows to set the channels filter pattern.
func WithPattern(pattern string) ChannelsOption {
	return func(opts *ChannelsOptions) {
		opts.Pattern = pattern
	}
}
