package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/sachnun/translator-bot/internal/relay"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestReportWritesRecord(t *testing.T) {
	client := &fakeS3{}
	r := NewS3Reporter(client, "bot-logs", "")
	rec := relay.Record{
		Unit:      "0b9c2d1e",
		ChatID:    77,
		MessageID: 10,
		Source:    "id",
		Target:    "en",
		Chunks:    1,
		State:     relay.StateDone,
		StartedAt: time.Date(2026, 3, 9, 23, 30, 0, 0, time.FixedZone("WIB", 7*3600)),
	}

	if err := r.Report(context.Background(), rec); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	in := client.inputs[0]
	if aws.StringValue(in.Bucket) != "bot-logs" {
		t.Fatalf("bucket = %q", aws.StringValue(in.Bucket))
	}
	if got := aws.StringValue(in.Key); got != "logs/2026/03/09/0b9c2d1e.json" {
		t.Fatalf("key = %q", got)
	}
	if aws.StringValue(in.ContentType) != "application/json" {
		t.Fatalf("content type = %q", aws.StringValue(in.ContentType))
	}

	var got relay.Record
	if err := json.Unmarshal(client.bodies[0], &got); err != nil {
		t.Fatal(err)
	}
	if got.Unit != rec.Unit || got.State != relay.StateDone || got.Target != "en" {
		t.Fatalf("stored record = %+v", got)
	}
}

func TestReportCustomPrefix(t *testing.T) {
	r := NewS3Reporter(&fakeS3{}, "b", "translator/deliveries")
	key := r.Key(relay.Record{Unit: "u1", StartedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)})
	if key != "translator/deliveries/2026/01/02/u1.json" {
		t.Fatalf("key = %q", key)
	}
}

func TestReportError(t *testing.T) {
	r := NewS3Reporter(&fakeS3{err: errors.New("AccessDenied")}, "b", "")
	err := r.Report(context.Background(), relay.Record{Unit: "u"})
	if err == nil || !strings.Contains(err.Error(), "AccessDenied") {
		t.Fatalf("Report() error = %v", err)
	}
}
