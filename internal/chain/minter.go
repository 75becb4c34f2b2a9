// Package chain issues HIFI token mints on an EVM chain. Minting is
// best-effort: callers record the outcome but never undo local state when a
// mint fails, and the whole app runs with minting disabled when no chain
// configuration is present.
package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ErrMintingDisabled is returned by the disabled minter.
var ErrMintingDisabled = errors.New("minting is not configured")

// mintSelector is the 4-byte selector for mint(address,uint256).
var mintSelector = common.FromHex("40c10f19")

// weiPerToken scales whole-token reward units to the 18-decimal contract unit.
var weiPerToken = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

const mintGasLimit = 200_000

// Minter issues token mints to an address.
type Minter interface {
	// Mint sends a transaction minting `units` whole tokens to `to` and
	// returns the transaction hash. It does not wait for inclusion.
	Mint(ctx context.Context, to string, units int64) (string, error)
	// Enabled reports whether mints will actually be attempted.
	Enabled() bool
}

// EthMinter mints via a JSON-RPC provider and a hot wallet key.
type EthMinter struct {
	client   *ethclient.Client
	key      *ecdsa.PrivateKey
	from     common.Address
	contract common.Address
	signer   types.Signer
	timeout  time.Duration
}

// Config for the EthMinter.
type Config struct {
	RPCURL          string
	PrivateKeyHex   string
	ContractAddress string
	ChainID         int64
	Timeout         time.Duration
}

// NewEthMinter dials the RPC endpoint and prepares the signing wallet.
func NewEthMinter(cfg Config) (*EthMinter, error) {
	key, err := crypto.HexToECDSA(cfg.PrivateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", cfg.ContractAddress)
	}

	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &EthMinter{
		client:   client,
		key:      key,
		from:     crypto.PubkeyToAddress(key.PublicKey),
		contract: common.HexToAddress(cfg.ContractAddress),
		signer:   types.NewEIP155Signer(big.NewInt(cfg.ChainID)),
		timeout:  timeout,
	}, nil
}

// Mint builds, signs and submits a mint(address,uint256) transaction.
func (m *EthMinter) Mint(ctx context.Context, to string, units int64) (string, error) {
	if !common.IsHexAddress(to) {
		return "", fmt.Errorf("invalid recipient address %q", to)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	nonce, err := m.client.PendingNonceAt(ctx, m.from)
	if err != nil {
		return "", fmt.Errorf("pending nonce: %w", err)
	}
	gasPrice, err := m.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("suggest gas price: %w", err)
	}

	amount := new(big.Int).Mul(big.NewInt(units), weiPerToken)
	data := mintCalldata(common.HexToAddress(to), amount)

	tx := types.NewTransaction(nonce, m.contract, big.NewInt(0), mintGasLimit, gasPrice, data)
	signedTx, err := types.SignTx(tx, m.signer, m.key)
	if err != nil {
		return "", fmt.Errorf("sign tx: %w", err)
	}

	if err := m.client.SendTransaction(ctx, signedTx); err != nil {
		return "", fmt.Errorf("send tx: %w", err)
	}
	return signedTx.Hash().Hex(), nil
}

// Enabled always reports true for a constructed EthMinter.
func (m *EthMinter) Enabled() bool {
	return true
}

// Ping verifies the RPC endpoint answers. Used by readiness probes.
func (m *EthMinter) Ping(ctx context.Context) error {
	if _, err := m.client.ChainID(ctx); err != nil {
		return fmt.Errorf("chain id: %w", err)
	}
	return nil
}

// Close releases the underlying RPC connection.
func (m *EthMinter) Close() {
	m.client.Close()
}

// mintCalldata ABI-encodes mint(address,uint256).
func mintCalldata(to common.Address, amount *big.Int) []byte {
	data := make([]byte, 0, 4+32+32)
	data = append(data, mintSelector...)
	data = append(data, common.LeftPadBytes(to.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(amount.Bytes(), 32)...)
	return data
}

// DisabledMinter is used when chain configuration is absent.
type DisabledMinter struct{}

// Disabled returns a Minter that rejects every mint with ErrMintingDisabled.
func Disabled() DisabledMinter {
	return DisabledMinter{}
}

// Mint always fails with ErrMintingDisabled.
func (DisabledMinter) Mint(ctx context.Context, to string, units int64) (string, error) {
	return "", ErrMintingDisabled
}

// Enabled reports false.
func (DisabledMinter) Enabled() bool {
	return false
}
