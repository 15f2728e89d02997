// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"encoding/json"

	"fanline/cli/internal/apierr"
)

// Decoding a reply result is pure and all-or-nothing: empty input, invalid
// JSON and shape mismatches all fail with kind DecodeFailed, and nothing is
// returned partially decoded.

func decodeResult(result []byte, what string, into any) error {
	if len(result) == 0 {
		return apierr.New(apierr.DecodeFailed, "empty "+what+" result")
	}
	if err := json.Unmarshal(result, into); err != nil {
		return apierr.Wrap(apierr.DecodeFailed, "decode "+what+" result", err)
	}
	return nil
}

// DecodePublish decodes a publish result payload.
func DecodePublish(result []byte) (PublishResult, error) {
	var r PublishResult
	if err := decodeResult(result, "publish", &r); err != nil {
		return PublishResult{}, err
	}
	return r, nil
}

// DecodeBroadcast decodes a broadcast result payload.
func DecodeBroadcast(result []byte) (BroadcastResult, error) {
	var r BroadcastResult
	if err := decodeResult(result, "broadcast", &r); err != nil {
		return BroadcastResult{}, err
	}
	return r, nil
}

// DecodeHistory decodes a history result payload.
func DecodeHistory(result []byte) (HistoryResult, error) {
	var r HistoryResult
	if err := decodeResult(result, "history", &r); err != nil {
		return HistoryResult{}, err
	}
	return r, nil
}

// DecodeChannels decodes a channels result payload.
func DecodeChannels(result []byte) (ChannelsResult, error) {
	var r ChannelsResult
	if err := decodeResult(result, "channels", &r); err != nil {
		return ChannelsResult{}, err
	}
	return r, nil
}

// DecodeInfo decodes an info result payload.
func DecodeInfo(result []byte) (InfoResult, error) {
	var r InfoResult
	if err := decodeResult(result, "info", &r); err != nil {
		return InfoResult{}, err
	}
	return r, nil
}

// DecodePresence decodes a presence result payload.
func DecodePresence(result []byte) (PresenceResult, error) {
	var r PresenceResult
	if err := decodeResult(result, "presence", &r); err != nil {
		return PresenceResult{}, err
	}
	return r, nil
}

// DecodePresenceStats decodes a presence stats result payload.
func DecodePresenceStats(result []byte) (PresenceStatsResult, error) {
	var r PresenceStatsResult
	if err := decodeResult(result, "presence stats", &r); err != nil {
		return PresenceStatsResult{}, err
	}
	return r, nil
}
