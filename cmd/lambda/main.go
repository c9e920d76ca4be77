// Package main is the AWS Lambda entry point: API Gateway delivers Telegram
// webhook calls, CloudWatch delivers warmup events.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sachnun/translator-bot/internal/app"
	"github.com/sachnun/translator-bot/internal/config"
	"github.com/sachnun/translator-bot/internal/logging"
	"github.com/sachnun/translator-bot/internal/webhook"
)

// processor handles one raw webhook body.
type processor interface {
	Process(ctx context.Context, secret string, body []byte) int
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load(viper.New(), os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}

	lambda.Start(func(ctx context.Context, event json.RawMessage) (any, error) {
		return handleRequest(ctx, a.Webhook, logger, event)
	})
}

func handleRequest(ctx context.Context, p processor, logger *zap.Logger, event json.RawMessage) (any, error) {
	// warmup detection comes before anything else
	if warmup, ok := IsWarmupEvent(event); ok {
		return HandleWarmup(ctx, warmup, logger)
	}

	var req events.APIGatewayProxyRequest
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, fmt.Errorf("decoding API Gateway request: %w", err)
	}

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
		}
		body = decoded
	}

	status := p.Process(ctx, header(req.Headers, webhook.SecretHeader), body)
	return events.APIGatewayProxyResponse{StatusCode: status, Body: http.StatusText(status)}, nil
}

// header looks name up case-insensitively; API Gateway keeps the client's casing.
func header(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
