package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/AlexZinkM/wallet-graph/solana"
)

const FileSource = "wallet-file"

// walletFile is the public part of a .cwt wallet file
type walletFile struct {
	Network string `json:"network"`
	Address string `json:"address"`
}

// FileProvider connects by reading the public address of a .cwt wallet file.
// The encrypted key material is never touched.
type FileProvider struct {
	mu   sync.Mutex
	path string
	conn *Connection
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Connect reads and validates the wallet address
func (p *FileProvider) Connect(ctx context.Context) (Connection, error) {
	if err := ctx.Err(); err != nil {
		return Connection{}, err
	}

	wf, err := readWalletFile(p.path)
	if err != nil {
		return Connection{}, err
	}
	if !solana.IsValidAddress(wf.Address) {
		return Connection{}, fmt.Errorf("%w: wallet file address %q", solana.ErrInvalidAddress, wf.Address)
	}

	conn := Connection{Address: wf.Address, Network: wf.Network, Source: FileSource}

	p.mu.Lock()
	p.conn = &conn
	p.mu.Unlock()
	return conn, nil
}

// Disconnect forgets the connected address
func (p *FileProvider) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return ErrNotConnected
	}
	p.conn = nil
	return nil
}

func (p *FileProvider) Connected() (Connection, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return Connection{}, false
	}
	return *p.conn, true
}

// readWalletFile reads only the public fields of a .cwt file (without decryption)
func readWalletFile(filePath string) (*walletFile, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: file does not exist", ErrProviderUnavailable)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if fileInfo.Size() == 0 {
		return nil, errors.New("file is empty")
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Skip UTF-8 BOM if present
	if len(fileData) >= 3 && fileData[0] == 0xEF && fileData[1] == 0xBB && fileData[2] == 0xBF {
		fileData = fileData[3:]
	}

	var wf walletFile
	if err := json.Unmarshal(fileData, &wf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cwt file: %w", err)
	}
	return &wf, nil
}
