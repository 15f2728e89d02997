// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"fanline/cli/internal/apierr"
)

// Config holds the connection configuration for a Client.
type Config struct {
	// Addr is the Fanline API endpoint.
	Addr string
	// GetAddr, when set, is called before every API request to extract the
	// endpoint. The Addr field is ignored in that case. Nil means using the
	// static Addr field.
	GetAddr func() (string, error)
	// Key is the Fanline API key. Empty means no Authorization header.
	Key string
	// HTTPClient is a custom HTTP client to use for requests,
	// DefaultHTTPClient is used when nil.
	HTTPClient *http.Client
}

// Client is an API client for a Fanline server. It is safe for concurrent
// use; every send is an independent HTTP round trip drawn from the underlying
// client's connection pool.
type Client struct {
	endpoint    string
	getEndpoint func() (string, error)
	apiKey      string

	mu         sync.RWMutex
	httpClient *http.Client
}

// DefaultHTTPClient returns the HTTP client used when Config.HTTPClient is
// nil: a fixed 1 second per-request timeout and up to 100 idle connections
// per host.
func DefaultHTTPClient() *http.Client {
	return &http.Client{
		Timeout: time.Second,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 100,
		},
	}
}

// New creates a new Client instance from config.
func New(config Config) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = DefaultHTTPClient()
	}
	return &Client{
		endpoint:    config.Addr,
		getEndpoint: config.GetAddr,
		apiKey:      config.Key,
		httpClient:  httpClient,
	}
}

// SetHTTPClient allows to swap the HTTP client used for requests.
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.httpClient = httpClient
}

func (c *Client) client() *http.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.httpClient
}

// Pipe allows to create a new pipe to send several commands in one HTTP
// request.
func (c *Client) Pipe() *Pipe {
	return &Pipe{}
}

// Send serializes commands as newline-delimited JSON, issues a single HTTP
// POST to the configured endpoint and decodes the reply stream. It performs
// exactly one network round trip regardless of the number of commands and
// never retries. Replies come back in command order; Send itself does not
// check the count, SendPipe does.
func (c *Client) Send(ctx context.Context, commands []Command) ([]Reply, error) {
	lines := make([][]byte, 0, len(commands))
	for _, cmd := range commands {
		line, err := json.Marshal(cmd)
		if err != nil {
			return nil, fmt.Errorf("encode command: %w", err)
		}
		lines = append(lines, line)
	}
	body := bytes.Join(lines, []byte("\n"))

	endpoint := c.endpoint
	if c.getEndpoint != nil {
		var err error
		endpoint, err = c.getEndpoint()
		if err != nil {
			return nil, apierr.Wrap(apierr.EndpointResolution, "resolve API endpoint", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "apikey "+c.apiKey)
	}

	resp, err := c.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierr.Wrap(apierr.StatusCode, "request rejected", &apierr.StatusCodeError{
			Code: resp.StatusCode,
			Body: string(respBody),
		})
	}

	// One reply per line; blank lines (including a trailing one) are not
	// replies.
	var replies []Reply
	for _, line := range bytes.Split(respBody, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var reply Reply
		if err := json.Unmarshal(line, &reply); err != nil {
			return nil, apierr.Wrap(apierr.MalformedResponse, "undecodable reply line", err)
		}
		replies = append(replies, reply)
	}
	return replies, nil
}

// SendPipe sends the accumulated commands of a pipe in one request. It fails
// with kind EmptyBatch before any network I/O when the pipe holds no
// commands, and with kind MalformedResponse when the server returns a reply
// count different from the command count. On success the replies are
// positionally aligned with the pipe's commands; per-command errors inside
// the replies are the caller's to inspect.
func (c *Client) SendPipe(ctx context.Context, pipe *Pipe) ([]Reply, error) {
	commands := pipe.snapshot()
	if len(commands) == 0 {
		return nil, apierr.New(apierr.EmptyBatch, "no commands in pipe")
	}

	replies, err := c.Send(ctx, commands)
	if err != nil {
		return nil, err
	}
	if len(replies) != len(commands) {
		return nil, apierr.New(apierr.MalformedResponse,
			fmt.Sprintf("%d replies for %d commands", len(replies), len(commands)))
	}
	return replies, nil
}

// sendSingle sends a one-command pipe and returns its reply, surfacing a
// server-reported command error as kind RemoteError.
func (c *Client) sendSingle(ctx context.Context, pipe *Pipe) (Reply, error) {
	replies, err := c.SendPipe(ctx, pipe)
	if err != nil {
		return Reply{}, err
	}
	if len(replies) == 0 {
		return Reply{}, apierr.New(apierr.NoReply, "no reply from server")
	}
	reply := replies[0]
	if reply.Error != nil {
		return Reply{}, apierr.Wrap(apierr.RemoteError, "server returned error", reply.Error)
	}
	return reply, nil
}

// Publish allows to publish data to a channel. The data must be valid JSON
// text.
func (c *Client) Publish(ctx context.Context, channel string, data []byte, opts ...PublishOption) (PublishResult, error) {
	pipe := c.Pipe()
	if err := pipe.AddPublish(channel, data, opts...); err != nil {
		return PublishResult{}, err
	}
	reply, err := c.sendSingle(ctx, pipe)
	if err != nil {
		return PublishResult{}, err
	}
	return DecodePublish(reply.Result)
}

// Broadcast allows to publish the same data into many channels.
func (c *Client) Broadcast(ctx context.Context, channels []string, data []byte, opts ...PublishOption) (BroadcastResult, error) {
	pipe := c.Pipe()
	if err := pipe.AddBroadcast(channels, data, opts...); err != nil {
		return BroadcastResult{}, err
	}
	reply, err := c.sendSingle(ctx, pipe)
	if err != nil {
		return BroadcastResult{}, err
	}
	return DecodeBroadcast(reply.Result)
}

// Subscribe allows to subscribe a user to a channel (server-side
// subscription).
func (c *Client) Subscribe(ctx context.Context, channel, user string, opts ...SubscribeOption) error {
	pipe := c.Pipe()
	if err := pipe.AddSubscribe(channel, user, opts...); err != nil {
		return err
	}
	_, err := c.sendSingle(ctx, pipe)
	return err
}

// Unsubscribe allows to unsubscribe a user from a channel.
func (c *Client) Unsubscribe(ctx context.Context, channel, user string, opts ...UnsubscribeOption) error {
	pipe := c.Pipe()
	if err := pipe.AddUnsubscribe(channel, user, opts...); err != nil {
		return err
	}
	_, err := c.sendSingle(ctx, pipe)
	return err
}

// Disconnect allows to close all connections of a user to the server.
func (c *Client) Disconnect(ctx context.Context, user string, opts ...DisconnectOption) error {
	pipe := c.Pipe()
	if err := pipe.AddDisconnect(user, opts...); err != nil {
		return err
	}
	_, err := c.sendSingle(ctx, pipe)
	return err
}

// Presence returns channel presence information.
func (c *Client) Presence(ctx context.Context, channel string) (PresenceResult, error) {
	pipe := c.Pipe()
	if err := pipe.AddPresence(channel); err != nil {
		return PresenceResult{}, err
	}
	reply, err := c.sendSingle(ctx, pipe)
	if err != nil {
		return PresenceResult{}, err
	}
	return DecodePresence(reply.Result)
}

// PresenceStats returns short channel presence information (counters only).
func (c *Client) PresenceStats(ctx context.Context, channel string) (PresenceStatsResult, error) {
	pipe := c.Pipe()
	if err := pipe.AddPresenceStats(channel); err != nil {
		return PresenceStatsResult{}, err
	}
	reply, err := c.sendSingle(ctx, pipe)
	if err != nil {
		return PresenceStatsResult{}, err
	}
	return DecodePresenceStats(reply.Result)
}

// History returns channel history.
func (c *Client) History(ctx context.Context, channel string, opts ...HistoryOption) (HistoryResult, error) {
	pipe := c.Pipe()
	if err := pipe.AddHistory(channel, opts...); err != nil {
		return HistoryResult{}, err
	}
	reply, err := c.sendSingle(ctx, pipe)
	if err != nil {
		return HistoryResult{}, err
	}
	return DecodeHistory(reply.Result)
}

// HistoryRemove removes channel history.
func (c *Client) HistoryRemove(ctx context.Context, channel string) error {
	pipe := c.Pipe()
	if err := pipe.AddHistoryRemove(channel); err != nil {
		return err
	}
	_, err := c.sendSingle(ctx, pipe)
	return err
}

// Channels returns information about active channels (with one or more
// subscribers) on the server.
func (c *Client) Channels(ctx context.Context, opts ...ChannelsOption) (ChannelsResult, error) {
	pipe := c.Pipe()
	if err := pipe.AddChannels(opts...); err != nil {
		return ChannelsResult{}, err
	}
	reply, err := c.sendSingle(ctx, pipe)
	if err != nil {
		return ChannelsResult{}, err
	}
	return DecodeChannels(reply.Result)
}

// Info returns information about server nodes.
func (c *Client) Info(ctx context.Context) (InfoResult, error) {
	pipe := c.Pipe()
	if err := pipe.AddInfo(); err != nil {
		return InfoResult{}, err
	}
	reply, err := c.sendSingle(ctx, pipe)
	if err != nil {
		return InfoResult{}, err
	}
	return DecodeInfo(reply.Result)
}
