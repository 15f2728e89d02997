// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package api implements the client for the Fanline server HTTP API.
//
// Commands are built as typed values, accumulated in a Pipe and sent to the
// server as one HTTP request; the newline-delimited reply stream is matched
// back to the submitted commands by position.
package api

import (
	"encoding/json"
	"fmt"
)

// Command represents a single API command to send. The method selects the
// server operation; the params shape depends on the method.
type Command struct {
	Method string `json:"method"`
	Params any    `json:"params"`
}

// Error represents an API request error reported by the server for one
// command.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %d", e.Message, e.Code)
}

// Reply is a server response to one command. Either Error is set or Result
// holds the method-specific result payload.
type Reply struct {
	Error  *Error          `json:"error,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

// ClientInfo represents information about one client connection to the
// server. It appears in messages published by clients, join/leave events and
// presence data.
type ClientInfo struct {
	User     string          `json:"user"`
	Client   string          `json:"client"`
	ConnInfo json.RawMessage `json:"conn_info,omitempty"`
	ChanInfo json.RawMessage `json:"chan_info,omitempty"`
}

// Publication represents a message published into a channel.
type Publication struct {
	Offset uint64          `json:"offset"`
	Data   json.RawMessage `json:"data"`
	Info   *ClientInfo     `json:"info,omitempty"`
}

// NodeInfo contains information and statistics about one Fanline node.
type NodeInfo struct {
	// UID is a unique id of the running node.
	UID string `json:"uid"`
	// Name of the node (config defined or generated automatically).
	Name string `json:"name"`
	// Version of the node.
	Version string `json:"version"`
	// NumClients is the number of clients connected to the node.
	NumClients int64 `json:"num_clients"`
	// NumUsers is the number of unique users connected to the node.
	NumUsers int64 `json:"num_users"`
	// NumChannels is the number of channels on the node.
	NumChannels int64 `json:"num_channels"`
	// Uptime of the node in seconds.
	Uptime int64 `json:"uptime"`
}

// InfoResult is a result of the info command.
type InfoResult struct {
	Nodes []NodeInfo `json:"nodes"`
}

// PublishResult is a result of the publish command.
type PublishResult struct {
	Offset uint64 `json:"offset"`
	Epoch  string `json:"epoch"`
}

// PublishResponse is one per-channel response inside a broadcast result.
type PublishResponse struct {
	Error  *Error        `json:"error,omitempty"`
	Result PublishResult `json:"result"`
}

// BroadcastResult is a result of the broadcast command. Responses are ordered
// the same way as the channels passed to broadcast.
type BroadcastResult struct {
	Responses []PublishResponse `json:"responses"`
}

// PresenceResult is a result of the presence command, keyed by client id.
type PresenceResult struct {
	Presence map[string]ClientInfo `json:"presence"`
}

// PresenceStatsResult is a result of the presence_stats command.
type PresenceStatsResult struct {
	NumUsers   int32 `json:"num_users"`
	NumClients int32 `json:"num_clients"`
}

// HistoryResult is a result of the history command.
type HistoryResult struct {
	Publications []Publication `json:"publications"`
	Offset       uint64        `json:"offset"`
	Epoch        string        `json:"epoch"`
}

// ChannelInfo describes one active channel in a channels result.
type ChannelInfo struct {
	NumClients int32 `json:"num_clients"`
}

// ChannelsResult is a result of the channels command, keyed by channel name.
type ChannelsResult struct {
	Channels map[string]ChannelInfo `json:"channels"`
}

// PublishRequest is the params payload of a publish command.
type PublishRequest struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
	PublishOptions
}

// BroadcastRequest is the params payload of a broadcast command.
type BroadcastRequest struct {
	Channels []string        `json:"channels"`
	Data     json.RawMessage `json:"data"`
	PublishOptions
}

// SubscribeRequest is the params payload of a subscribe command.
type SubscribeRequest struct {
	Channel string `json:"channel"`
	User    string `json:"user"`
	SubscribeOptions
}

// UnsubscribeRequest is the params payload of an unsubscribe command.
type UnsubscribeRequest struct {
	Channel string `json:"channel"`
	User    string `json:"user"`
	UnsubscribeOptions
}

// DisconnectRequest is the params payload of a disconnect command.
type DisconnectRequest struct {
	User string `json:"user"`
	DisconnectOptions
}

// PresenceRequest is the params payload of a presence command.
type PresenceRequest struct {
	Channel string `json:"channel"`
}

// PresenceStatsRequest is the params payload of a presence_stats command.
type PresenceStatsRequest struct {
	Channel string `json:"channel"`
}

// HistoryRequest is the params payload of a history command.
type HistoryRequest struct {
	Channel string `json:"channel"`
	HistoryOptions
}

// HistoryRemoveRequest is the params payload of a history_remove command.
type HistoryRemoveRequest struct {
	Channel string `json:"channel"`
}

// ChannelsRequest is the params payload of a channels command.
type ChannelsRequest struct {
	Pattern string `json:"pattern,omitempty"`
}

// InfoRequest is the params payload of an info command.
type InfoRequest struct{}
