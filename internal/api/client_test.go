// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"fanline/cli/internal/apierr"
)

// echoServer answers every command line with a reply whose result carries the
// line index and the command method, so tests can verify positional
// correlation.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		scanner := bufio.NewScanner(r.Body)
		i := 0
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			var cmd Command
			if err := json.Unmarshal([]byte(line), &cmd); err != nil {
				t.Errorf("undecodable command line %d: %v", i, err)
			}
			fmt.Fprintf(w, `{"result":{"index":%d,"method":%q}}`+"\n", i, cmd.Method)
			i++
		}
	}))
}

func TestSendPipeRoundTrip(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	c := New(Config{Addr: srv.URL, Key: "api-key"})
	pipe := c.Pipe()

	const count = 10
	for i := 0; i < count; i++ {
		data := fmt.Sprintf(`{"input":"test%d"}`, i)
		if err := pipe.AddPublish("chan3", []byte(data)); err != nil {
			t.Fatalf("AddPublish: %v", err)
		}
	}

	replies, err := c.SendPipe(context.Background(), pipe)
	if err != nil {
		t.Fatalf("SendPipe: %v", err)
	}
	if len(replies) != count {
		t.Fatalf("got %d replies, want %d", len(replies), count)
	}
	for i, reply := range replies {
		var result struct {
			Index  int    `json:"index"`
			Method string `json:"method"`
		}
		if err := json.Unmarshal(reply.Result, &result); err != nil {
			t.Fatalf("reply[%d] result: %v", i, err)
		}
		if result.Index != i {
			t.Errorf("reply[%d] correlates to command %d", i, result.Index)
		}
		if result.Method != "publish" {
			t.Errorf("reply[%d].method = %q", i, result.Method)
		}
	}
}

func TestSendPipeMixedMethodsKeepOrder(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	c := New(Config{Addr: srv.URL})
	pipe := c.Pipe()
	if err := pipe.AddInfo(); err != nil {
		t.Fatal(err)
	}
	if err := pipe.AddPresence("news"); err != nil {
		t.Fatal(err)
	}
	if err := pipe.AddChannels(); err != nil {
		t.Fatal(err)
	}

	replies, err := c.SendPipe(context.Background(), pipe)
	if err != nil {
		t.Fatalf("SendPipe: %v", err)
	}
	want := []string{"info", "presence", "channels"}
	for i, reply := range replies {
		var result struct {
			Method string `json:"method"`
		}
		if err := json.Unmarshal(reply.Result, &result); err != nil {
			t.Fatal(err)
		}
		if result.Method != want[i] {
			t.Errorf("reply[%d] is for %q, want %q", i, result.Method, want[i])
		}
	}
}

func TestSendPipeEmpty(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := New(Config{Addr: srv.URL})
	_, err := c.SendPipe(context.Background(), c.Pipe())
	if kind := apierr.KindOf(err); kind != apierr.EmptyBatch {
		t.Fatalf("kind = %q, want %q", kind, apierr.EmptyBatch)
	}
	if calls.Load() != 0 {
		t.Errorf("empty pipe reached the network: %d calls", calls.Load())
	}
}

func TestSendPipeCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Two commands will come in, answer only one.
		fmt.Fprintln(w, `{"result":{}}`)
	}))
	defer srv.Close()

	c := New(Config{Addr: srv.URL})
	pipe := c.Pipe()
	if err := pipe.AddInfo(); err != nil {
		t.Fatal(err)
	}
	if err := pipe.AddInfo(); err != nil {
		t.Fatal(err)
	}

	_, err := c.SendPipe(context.Background(), pipe)
	if kind := apierr.KindOf(err); kind != apierr.MalformedResponse {
		t.Fatalf("kind = %q, want %q", kind, apierr.MalformedResponse)
	}
}

func TestSendStatusCodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		// Deliberately not reply-shaped: decoding must never be attempted.
		fmt.Fprint(w, "permission denied")
	}))
	defer srv.Close()

	c := New(Config{Addr: srv.URL})
	pipe := c.Pipe()
	if err := pipe.AddInfo(); err != nil {
		t.Fatal(err)
	}

	_, err := c.SendPipe(context.Background(), pipe)
	if kind := apierr.KindOf(err); kind != apierr.StatusCode {
		t.Fatalf("kind = %q, want %q", kind, apierr.StatusCode)
	}
	var statusErr *apierr.StatusCodeError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error %v does not wrap a StatusCodeError", err)
	}
	if statusErr.Code != http.StatusForbidden {
		t.Errorf("Code = %d, want %d", statusErr.Code, http.StatusForbidden)
	}
	if statusErr.Body != "permission denied" {
		t.Errorf("Body = %q", statusErr.Body)
	}
}

func TestSendTrailingBlankLine(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no trailing newline", body: `{"result":{}}` + "\n" + `{"result":{}}`},
		{name: "trailing newline", body: `{"result":{}}` + "\n" + `{"result":{}}` + "\n"},
		{name: "trailing blank line", body: `{"result":{}}` + "\n" + `{"result":{}}` + "\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			c := New(Config{Addr: srv.URL})
			replies, err := c.Send(context.Background(), []Command{
				{Method: "info", Params: InfoRequest{}},
				{Method: "info", Params: InfoRequest{}},
			})
			if err != nil {
				t.Fatalf("Send: %v", err)
			}
			if len(replies) != 2 {
				t.Errorf("got %d replies, want 2", len(replies))
			}
		})
	}
}

func TestSendMalformedReplyLine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":{}}`+"\n"+`{"result":`)
	}))
	defer srv.Close()

	c := New(Config{Addr: srv.URL})
	_, err := c.Send(context.Background(), []Command{{Method: "info", Params: InfoRequest{}}})
	if kind := apierr.KindOf(err); kind != apierr.MalformedResponse {
		t.Fatalf("kind = %q, want %q", kind, apierr.MalformedResponse)
	}
}

func TestSendAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "with key", key: "secret", want: "apikey secret"},
		{name: "without key", key: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				fmt.Fprintln(w, `{"result":{}}`)
			}))
			defer srv.Close()

			c := New(Config{Addr: srv.URL, Key: tt.key})
			if _, err := c.Send(context.Background(), []Command{{Method: "info", Params: InfoRequest{}}}); err != nil {
				t.Fatalf("Send: %v", err)
			}
			if gotAuth != tt.want {
				t.Errorf("Authorization = %q, want %q", gotAuth, tt.want)
			}
		})
	}
}

func TestGetAddrTakesPrecedence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"result":{}}`)
	}))
	defer srv.Close()

	resolved := 0
	c := New(Config{
		Addr: "http://static.invalid/api",
		GetAddr: func() (string, error) {
			resolved++
			return srv.URL, nil
		},
	})

	for i := 0; i < 2; i++ {
		if _, err := c.Send(context.Background(), []Command{{Method: "info", Params: InfoRequest{}}}); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}
	if resolved != 2 {
		t.Errorf("resolver invoked %d times, want one invocation per request", resolved)
	}
}

func TestGetAddrFailure(t *testing.T) {
	c := New(Config{
		GetAddr: func() (string, error) {
			return "", errors.New("control plane unavailable")
		},
	})

	_, err := c.Send(context.Background(), []Command{{Method: "info", Params: InfoRequest{}}})
	if kind := apierr.KindOf(err); kind != apierr.EndpointResolution {
		t.Fatalf("kind = %q, want %q", kind, apierr.EndpointResolution)
	}
}

func TestPublishConvenience(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"result":{"offset":42,"epoch":"1789378957"}}`)
	}))
	defer srv.Close()

	c := New(Config{Addr: srv.URL})
	result, err := c.Publish(context.Background(), "news", []byte(`{"input":"test1"}`), WithSkipHistory(true))
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if result.Offset != 42 || result.Epoch != "1789378957" {
		t.Errorf("result = %+v", result)
	}
}

func TestPublishRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"error":{"code":102,"message":"namespace not found"}}`)
	}))
	defer srv.Close()

	c := New(Config{Addr: srv.URL})
	_, err := c.Publish(context.Background(), "news", []byte(`{}`))
	if kind := apierr.KindOf(err); kind != apierr.RemoteError {
		t.Fatalf("kind = %q, want %q", kind, apierr.RemoteError)
	}
	var remote *Error
	if !errors.As(err, &remote) {
		t.Fatalf("error %v does not wrap *Error", err)
	}
	if remote.Code != 102 || remote.Message != "namespace not found" {
		t.Errorf("remote error = %+v", remote)
	}
}

func TestSubscribeConvenience(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf strings.Builder
		scanner := bufio.NewScanner(r.Body)
		for scanner.Scan() {
			buf.WriteString(scanner.Text())
		}
		gotBody = buf.String()
		fmt.Fprintln(w, `{"result":{}}`)
	}))
	defer srv.Close()

	c := New(Config{Addr: srv.URL})
	if err := c.Subscribe(context.Background(), "news", "42", WithPresence(true)); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	want := `{"method":"subscribe","params":{"channel":"news","user":"42","presence":true}}`
	if gotBody != want {
		t.Errorf("request body = %s, want %s", gotBody, want)
	}
}

func TestSetHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"result":{"nodes":[]}}`)
	}))
	defer srv.Close()

	c := New(Config{Addr: srv.URL})
	c.SetHTTPClient(srv.Client())

	result, err := c.Info(context.Background())
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if result.Nodes == nil {
		t.Errorf("Nodes = nil, want empty slice")
	}
}
