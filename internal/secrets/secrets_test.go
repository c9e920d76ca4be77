package secrets

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/keyvault/azsecrets"
)

type fakeVault struct {
	values map[string]string
	err    error
	asked  []string
}

func (f *fakeVault) GetSecret(_ context.Context, name, _ string, _ *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
	f.asked = append(f.asked, name)
	if f.err != nil {
		return azsecrets.GetSecretResponse{}, f.err
	}
	v, ok := f.values[name]
	if !ok {
		return azsecrets.GetSecretResponse{}, &azcore.ResponseError{StatusCode: http.StatusNotFound, ErrorCode: "SecretNotFound"}
	}
	var resp azsecrets.GetSecretResponse
	resp.Value = &v
	return resp, nil
}

func TestGetFromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	s, err := NewStore("")
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(context.Background(), "TELEGRAM_TOKEN")
	if err != nil || got != "123:abc" {
		t.Fatalf("Get() = %q, %v", got, err)
	}
}

func TestGetMissingWithoutVault(t *testing.T) {
	s := &Store{getenv: func(string) string { return "" }}
	if _, err := s.Get(context.Background(), "OPENAI_KEY"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestGetFallsBackToVault(t *testing.T) {
	vault := &fakeVault{values: map[string]string{"TELEGRAM-TOKEN": "from-vault"}}
	s := NewStoreWithVault(vault, func(string) string { return "" })

	got, err := s.Get(context.Background(), "TELEGRAM_TOKEN")
	if err != nil || got != "from-vault" {
		t.Fatalf("Get() = %q, %v", got, err)
	}
	if _, err := s.Get(context.Background(), "OPENAI_KEY"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
	if len(vault.asked) != 2 || vault.asked[1] != "OPENAI-KEY" {
		t.Fatalf("asked = %v", vault.asked)
	}
}

func TestEnvWinsOverVault(t *testing.T) {
	vault := &fakeVault{values: map[string]string{"TELEGRAM-TOKEN": "from-vault"}}
	s := NewStoreWithVault(vault, func(string) string { return "from-env" })

	got, err := s.Get(context.Background(), "TELEGRAM_TOKEN")
	if err != nil || got != "from-env" || len(vault.asked) != 0 {
		t.Fatalf("Get() = %q, %v (vault asked %v)", got, err, vault.asked)
	}
}

func TestFill(t *testing.T) {
	s := NewStoreWithVault(nil, func(k string) string { return "v-" + k })

	set := "already"
	if err := s.Fill(context.Background(), &set, "X"); err != nil || set != "already" {
		t.Fatalf("Fill() overwrote %q, %v", set, err)
	}
	var empty string
	if err := s.Fill(context.Background(), &empty, "X"); err != nil || empty != "v-X" {
		t.Fatalf("Fill() = %q, %v", empty, err)
	}
}

func TestFillOptional(t *testing.T) {
	noEnv := func(string) string { return "" }

	tests := []struct {
		name    string
		vault   VaultClient
		wantErr bool
	}{
		{name: "no vault", vault: nil},
		{name: "not in vault", vault: &fakeVault{}},
		{name: "vault unreachable", vault: &fakeVault{err: &azcore.ResponseError{StatusCode: http.StatusForbidden}}, wantErr: true},
		{name: "transport failure", vault: &fakeVault{err: errors.New("dial tcp: i/o timeout")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStoreWithVault(tt.vault, noEnv)
			var key string
			err := s.FillOptional(context.Background(), &key, "LIBRETRANSLATE_API_KEY")
			if (err != nil) != tt.wantErr {
				t.Fatalf("FillOptional() error = %v, wantErr %v", err, tt.wantErr)
			}
			if key != "" {
				t.Fatalf("key = %q, want empty", key)
			}
		})
	}
}
