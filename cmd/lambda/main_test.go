package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"go.uber.org/zap"
)

type fakeProcessor struct {
	secret string
	body   string
	status int
}

func (f *fakeProcessor) Process(_ context.Context, secret string, body []byte) int {
	f.secret = secret
	f.body = string(body)
	return f.status
}

func TestHandleRequestWebhook(t *testing.T) {
	tests := []struct {
		name string
		req  events.APIGatewayProxyRequest
	}{
		{
			name: "plain body",
			req: events.APIGatewayProxyRequest{
				Body:    `{"update_id":1}`,
				Headers: map[string]string{"x-telegram-bot-api-secret-token": "s3cret"},
			},
		},
		{
			name: "base64 body",
			req: events.APIGatewayProxyRequest{
				Body:            base64.StdEncoding.EncodeToString([]byte(`{"update_id":1}`)),
				IsBase64Encoded: true,
				Headers:         map[string]string{"X-Telegram-Bot-Api-Secret-Token": "s3cret"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProcessor{status: http.StatusOK}
			event, _ := json.Marshal(tt.req)

			out, err := handleRequest(context.Background(), p, zap.NewNop(), event)
			if err != nil {
				t.Fatalf("handleRequest() error = %v", err)
			}
			resp, ok := out.(events.APIGatewayProxyResponse)
			if !ok || resp.StatusCode != http.StatusOK {
				t.Fatalf("response = %+v", out)
			}
			if p.secret != "s3cret" || p.body != `{"update_id":1}` {
				t.Fatalf("processor got secret %q body %q", p.secret, p.body)
			}
		})
	}
}

func TestHandleRequestPassesStatus(t *testing.T) {
	p := &fakeProcessor{status: http.StatusUnauthorized}
	event, _ := json.Marshal(events.APIGatewayProxyRequest{Body: "{}"})

	out, err := handleRequest(context.Background(), p, zap.NewNop(), event)
	if err != nil {
		t.Fatal(err)
	}
	if resp := out.(events.APIGatewayProxyResponse); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestIsWarmupEvent(t *testing.T) {
	tests := []struct {
		event       string
		ok          bool
		concurrency int
	}{
		{event: `{"source":"warmup"}`, ok: true},
		{event: `{"source":"warmup","concurrency":3}`, ok: true, concurrency: 3},
		{event: `{"source":"warmup","concurrency":-2}`, ok: true},
		{event: `{"source":"aws.events"}`},
		{event: `{"body":"{}"}`},
		{event: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.event, func(t *testing.T) {
			w, ok := IsWarmupEvent(json.RawMessage(tt.event))
			if ok != tt.ok {
				t.Fatalf("IsWarmupEvent() ok = %v, want %v", ok, tt.ok)
			}
			if ok && w.Concurrency != tt.concurrency {
				t.Fatalf("concurrency = %d, want %d", w.Concurrency, tt.concurrency)
			}
		})
	}
}

type fakeInvoker struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeInvoker) Invoke(_ context.Context, in *lambdasdk.InvokeInput, _ ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	var w WarmupEvent
	if err := json.Unmarshal(in.Payload, &w); err != nil || w.Concurrency != 0 {
		return nil, errors.New("child warmup must not fan out")
	}
	return &lambdasdk.InvokeOutput{}, f.err
}

func withInvoker(t *testing.T, inv invoker) {
	t.Helper()
	orig := newInvoker
	newInvoker = func(context.Context) (invoker, error) { return inv, nil }
	t.Cleanup(func() { newInvoker = orig })
}

func TestHandleWarmup(t *testing.T) {
	inv := &fakeInvoker{}
	withInvoker(t, inv)

	resp, err := HandleWarmup(context.Background(), &WarmupEvent{Source: WarmupSource, Concurrency: 4}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != "warm" || resp.InstancesWarmed != 5 || inv.calls != 4 {
		t.Fatalf("resp = %+v, calls = %d", resp, inv.calls)
	}
}

func TestHandleWarmupInvokeFailure(t *testing.T) {
	withInvoker(t, &fakeInvoker{err: errors.New("AccessDenied")})

	resp, err := HandleWarmup(context.Background(), &WarmupEvent{Source: WarmupSource, Concurrency: 2}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if resp.InstancesWarmed != 1 {
		t.Fatalf("instances = %d, want 1", resp.InstancesWarmed)
	}
}

func TestHandleRequestWarmup(t *testing.T) {
	out, err := handleRequest(context.Background(), &fakeProcessor{}, zap.NewNop(), json.RawMessage(`{"source":"warmup"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp, ok := out.(WarmupResponse); !ok || resp.InstancesWarmed != 1 {
		t.Fatalf("response = %+v", out)
	}
}

func TestHandleWarmupStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := HandleWarmup(ctx, &WarmupEvent{Source: WarmupSource}, zap.NewNop())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("HandleWarmup() error = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed >= WarmupDelay {
		t.Fatalf("HandleWarmup() waited %v after cancel", elapsed)
	}
}
