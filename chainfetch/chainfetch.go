// Package chainfetch resolves a contract address on a live network into the
// bytecode.RemoteBytecode a verification request needs: the deployed runtime
// code (fetched directly) and the original creation transaction's input (its
// trailing bytes beyond the locally compiled code are the constructor
// arguments). It is a command-line convenience around the core verifier,
// never imported by the bytecode/metadata/compiler/verifier packages
// themselves.
package chainfetch

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/txpull/verifier/bytecode"
	"github.com/txpull/verifier/config"
)

var (
	// ErrNetworkURLNotSet is returned when a requested network has no URL
	// configured.
	ErrNetworkURLNotSet = errors.New("configuration: network URL not set")

	// ErrConcurrentClientsNotSet is returned when a requested network's pool
	// size is configured as zero.
	ErrConcurrentClientsNotSet = errors.New("configuration: concurrent clients number not set")

	// ErrContractNotDeployed is returned when CodeAt finds no code at the
	// given address.
	ErrContractNotDeployed = errors.New("no code deployed at address")
)

// Pool is a load-balanced pool of JSON-RPC clients for a single network,
// dialed concurrently at construction and handed out round-robin.
type Pool struct {
	clients []*ethclient.Client
	next    uint32
}

// NewPool dials net.ConcurrentClientsNumber clients against net.URL
// concurrently and returns a Pool that load-balances requests across them.
func NewPool(ctx context.Context, net config.Network) (*Pool, error) {
	if net.URL == "" {
		return nil, ErrNetworkURLNotSet
	}
	if net.ConcurrentClientsNumber == 0 {
		return nil, ErrConcurrentClientsNotSet
	}

	var wg sync.WaitGroup
	clients := make([]*ethclient.Client, net.ConcurrentClientsNumber)
	errCh := make(chan error, net.ConcurrentClientsNumber)

	for i := 0; i < net.ConcurrentClientsNumber; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			client, err := ethclient.DialContext(ctx, net.URL)
			if err != nil {
				errCh <- err
				return
			}
			clients[idx] = client
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	return &Pool{clients: clients}, nil
}

// Client returns the next client in the pool, round-robin.
func (p *Pool) Client() *ethclient.Client {
	n := atomic.AddUint32(&p.next, 1)
	return p.clients[(int(n)-1)%len(p.clients)]
}

// Close closes every client in the pool.
func (p *Pool) Close() {
	for _, c := range p.clients {
		if c != nil {
			c.Close()
		}
	}
}

// Fetch resolves address's deployed bytecode and creationTxHash's input data
// into a bytecode.RemoteBytecode. The creation transaction hash is not
// derivable from the address alone (that requires an external indexer, out
// of this package's scope); the caller supplies it, the same way an
// Etherscan-style "verify contract" form asks for it alongside the address.
func Fetch(ctx context.Context, pool *Pool, address common.Address, creationTxHash common.Hash) (*bytecode.RemoteBytecode, error) {
	client := pool.Client()

	deployed, err := client.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch deployed code for %s: %w", address, err)
	}
	if len(deployed) == 0 {
		return nil, ErrContractNotDeployed
	}

	tx, isPending, err := client.TransactionByHash(ctx, creationTxHash)
	if err != nil {
		return nil, fmt.Errorf("fetch creation transaction %s: %w", creationTxHash, err)
	}
	if isPending {
		return nil, fmt.Errorf("creation transaction %s is still pending", creationTxHash)
	}

	return bytecode.NewRemoteBytecode(hexutil.Encode(tx.Data()), hexutil.Encode(deployed))
}

// NetworkID reports the chain ID the pool is connected to, useful for
// sanity-checking a configured network against the address being verified.
func NetworkID(ctx context.Context, pool *Pool) (*big.Int, error) {
	return pool.Client().NetworkID(ctx)
}
