// Package secrets looks up credentials in the environment and, when
// configured, in Azure Key Vault.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/keyvault/azsecrets"
)

// ErrNotFound reports that a secret is set neither in the environment nor in Key Vault.
var ErrNotFound = errors.New("secret not found")

// VaultClient is the part of *azsecrets.Client the store uses.
type VaultClient interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

// Store resolves secrets by environment variable name.
type Store struct {
	vault  VaultClient
	getenv func(string) string
}

// NewStore returns a Store. An empty vaultName limits lookups to the environment.
func NewStore(vaultName string) (*Store, error) {
	s := &Store{getenv: os.Getenv}
	if vaultName == "" {
		return s, nil
	}

	vaultURL := fmt.Sprintf("https://%s.vault.azure.net/", vaultName)
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain a credential: %w", err)
	}
	client, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret client: %w", err)
	}
	s.vault = client
	return s, nil
}

// NewStoreWithVault returns a Store backed by client.
func NewStoreWithVault(client VaultClient, getenv func(string) string) *Store {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Store{vault: client, getenv: getenv}
}

// VaultName maps an environment variable name to a Key Vault secret name,
// which may not contain underscores: TELEGRAM_TOKEN becomes TELEGRAM-TOKEN.
func VaultName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// Get returns the secret named key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if v := s.getenv(key); v != "" {
		return v, nil
	}
	if s.vault == nil {
		return "", fmt.Errorf("%w: environment variable %s not set", ErrNotFound, key)
	}
	resp, err := s.vault.GetSecret(ctx, VaultName(key), "", nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%w: %s is not in the vault", ErrNotFound, VaultName(key))
		}
		return "", fmt.Errorf("could not retrieve secret %s: %w", VaultName(key), err)
	}
	if resp.Value == nil || *resp.Value == "" {
		return "", fmt.Errorf("%w: secret %s is empty", ErrNotFound, VaultName(key))
	}
	return *resp.Value, nil
}

// Fill sets *dst from key when it is still empty.
func (s *Store) Fill(ctx context.Context, dst *string, key string) error {
	if *dst != "" {
		return nil
	}
	v, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// FillOptional is Fill for secrets that may be absent: ErrNotFound leaves
// *dst empty, any other lookup failure is returned.
func (s *Store) FillOptional(ctx context.Context, dst *string, key string) error {
	if err := s.Fill(ctx, dst, key); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
