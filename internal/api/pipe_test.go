// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"fanline/cli/internal/apierr"
)

func TestPipeAppendOrder(t *testing.T) {
	p := &Pipe{}
	if err := p.AddPublish("news", []byte(`{"n":1}`)); err != nil {
		t.Fatalf("AddPublish: %v", err)
	}
	if err := p.AddPresence("news"); err != nil {
		t.Fatalf("AddPresence: %v", err)
	}
	if err := p.AddHistory("news", WithLimit(10)); err != nil {
		t.Fatalf("AddHistory: %v", err)
	}
	if err := p.AddInfo(); err != nil {
		t.Fatalf("AddInfo: %v", err)
	}

	commands := p.snapshot()
	want := []string{"publish", "presence", "history", "info"}
	if len(commands) != len(want) {
		t.Fatalf("got %d commands, want %d", len(commands), len(want))
	}
	for i, method := range want {
		if commands[i].Method != method {
			t.Errorf("command[%d].Method = %q, want %q", i, commands[i].Method, method)
		}
	}
}

func TestPipeConcurrentAdd(t *testing.T) {
	const producers = 8
	const perProducer = 50

	p := &Pipe{}
	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				data := fmt.Sprintf(`{"producer":%d,"seq":%d}`, id, j)
				if err := p.AddPublish("load", []byte(data)); err != nil {
					t.Errorf("AddPublish: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	if got := len(p.snapshot()); got != producers*perProducer {
		t.Fatalf("got %d commands, want %d", got, producers*perProducer)
	}
}

func TestPipeReset(t *testing.T) {
	p := &Pipe{}
	for i := 0; i < 5; i++ {
		if err := p.AddInfo(); err != nil {
			t.Fatalf("AddInfo: %v", err)
		}
	}
	p.Reset()
	if got := len(p.snapshot()); got != 0 {
		t.Fatalf("got %d commands after Reset, want 0", got)
	}

	// The pipe stays usable after a reset.
	if err := p.AddPresence("news"); err != nil {
		t.Fatalf("AddPresence after Reset: %v", err)
	}
	if got := len(p.snapshot()); got != 1 {
		t.Fatalf("got %d commands, want 1", got)
	}
}

func TestAddPublishInvalidJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "truncated object", data: `{"input": "test1"`},
		{name: "bare text", data: "not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pipe{}
			err := p.AddPublish("news", []byte(tt.data))
			if err == nil {
				t.Fatal("AddPublish accepted invalid JSON")
			}
			if kind := apierr.KindOf(err); kind != apierr.MalformedPayload {
				t.Errorf("kind = %q, want %q", kind, apierr.MalformedPayload)
			}
			if got := len(p.snapshot()); got != 0 {
				t.Errorf("got %d commands after failed add, want 0", got)
			}
		})
	}
}

func TestAddBroadcastInvalidJSON(t *testing.T) {
	p := &Pipe{}
	err := p.AddBroadcast([]string{"a", "b"}, []byte(`{"x":`))
	if kind := apierr.KindOf(err); kind != apierr.MalformedPayload {
		t.Fatalf("kind = %q, want %q", kind, apierr.MalformedPayload)
	}
}

func TestCommandSerialization(t *testing.T) {
	tests := []struct {
		name string
		add  func(p *Pipe) error
		want string
	}{
		{
			name: "publish with skip history",
			add: func(p *Pipe) error {
				return p.AddPublish("news", []byte(`{"input":"test1"}`), WithSkipHistory(true))
			},
			want: `{"method":"publish","params":{"channel":"news","data":{"input":"test1"},"skip_history":true}}`,
		},
		{
			name: "publish without options",
			add: func(p *Pipe) error {
				return p.AddPublish("news", []byte(`{"input":"test1"}`))
			},
			want: `{"method":"publish","params":{"channel":"news","data":{"input":"test1"}}}`,
		},
		{
			name: "broadcast",
			add: func(p *Pipe) error {
				return p.AddBroadcast([]string{"a", "b"}, []byte(`1`))
			},
			want: `{"method":"broadcast","params":{"channels":["a","b"],"data":1}}`,
		},
		{
			name: "subscribe with client id",
			add: func(p *Pipe) error {
				return p.AddSubscribe("news", "42", WithSubscribeClient("c-1"))
			},
			want: `{"method":"subscribe","params":{"channel":"news","user":"42","client_id":"c-1"}}`,
		},
		{
			name: "unsubscribe",
			add: func(p *Pipe) error {
				return p.AddUnsubscribe("news", "42")
			},
			want: `{"method":"unsubscribe","params":{"channel":"news","user":"42"}}`,
		},
		{
			name: "disconnect with whitelist",
			add: func(p *Pipe) error {
				return p.AddDisconnect("42", WithDisconnectClientWhitelist([]string{"keep"}))
			},
			want: `{"method":"disconnect","params":{"user":"42","client_whitelist":["keep"]}}`,
		},
		{
			name: "history with since and limit",
			add: func(p *Pipe) error {
				return p.AddHistory("news", WithLimit(20), WithSince(&StreamPosition{Offset: 3, Epoch: "xyz"}))
			},
			want: `{"method":"history","params":{"channel":"news","since":{"offset":3,"epoch":"xyz"},"limit":20}}`,
		},
		{
			name: "history remove",
			add: func(p *Pipe) error {
				return p.AddHistoryRemove("news")
			},
			want: `{"method":"history_remove","params":{"channel":"news"}}`,
		},
		{
			name: "channels with pattern",
			add: func(p *Pipe) error {
				return p.AddChannels(WithPattern("chat:*"))
			},
			want: `{"method":"channels","params":{"pattern":"chat:*"}}`,
		},
		{
			name: "channels without pattern",
			add: func(p *Pipe) error {
				return p.AddChannels()
			},
			want: `{"method":"channels","params":{}}`,
		},
		{
			name: "info",
			add: func(p *Pipe) error {
				return p.AddInfo()
			},
			want: `{"method":"info","params":{}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pipe{}
			if err := tt.add(p); err != nil {
				t.Fatalf("add: %v", err)
			}
			commands := p.snapshot()
			if len(commands) != 1 {
				t.Fatalf("got %d commands, want 1", len(commands))
			}
			got, err := json.Marshal(commands[0])
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("serialized command = %s, want %s", got, tt.want)
			}
		})
	}
}
