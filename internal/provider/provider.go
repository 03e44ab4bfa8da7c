package provider

import (
	"context"
	"errors"
	"fmt"
	"os"
)

var (
	ErrProviderUnavailable = errors.New("wallet provider unavailable")
	ErrNotConnected        = errors.New("wallet provider not connected")
)

// Connection is the result of a successful connect
type Connection struct {
	Address string
	Network string
	Source  string
}

// Provider is a wallet capability that can hand over a public address.
// The address is accepted the same way as a typed search input.
type Provider interface {
	Connect(ctx context.Context) (Connection, error)
	Disconnect(ctx context.Context) error
	Connected() (Connection, bool)
}

// Detect returns the provider backed by the wallet file at path.
// It fails with ErrProviderUnavailable when no usable file is configured.
func Detect(path string) (Provider, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no wallet file configured", ErrProviderUnavailable)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: wallet file %q does not exist", ErrProviderUnavailable, path)
		}
		return nil, fmt.Errorf("failed to stat wallet file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %q is a directory", ErrProviderUnavailable, path)
	}
	return NewFileProvider(path), nil
}

// Unavailable is the provider used when detection failed.
// Every connect fails with ErrProviderUnavailable.
type Unavailable struct {
	Reason error
}

func (u Unavailable) Connect(context.Context) (Connection, error) {
	if u.Reason != nil {
		return Connection{}, u.Reason
	}
	return Connection{}, ErrProviderUnavailable
}

func (u Unavailable) Disconnect(context.Context) error {
	return ErrNotConnected
}

func (u Unavailable) Connected() (Connection, bool) {
	return Connection{}, false
}
