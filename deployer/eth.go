// Package deployer puts contract artifacts on an Ethereum network through go-ethereum's bind package
package deployer

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/archoncloud/crowdsale-deploy/account"
	. "github.com/archoncloud/crowdsale-deploy/common"
	"github.com/archoncloud/crowdsale-deploy/contracts"
	"github.com/archoncloud/crowdsale-deploy/interfaces"
)

// DefaultTimeout is how long a transaction may take to be mined
const DefaultTimeout = 5 * time.Minute

// Backend is what EthDeployer needs from a node. *ethclient.Client satisfies it
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BalanceAt(ctx context.Context, account ethcommon.Address, blockNumber *big.Int) (*big.Int, error)
}

type Options struct {
	ChainID *big.Int
	// Timeout applies to each transaction. Zero means DefaultTimeout
	Timeout time.Duration
}

var _ interfaces.IDeployer = (*EthDeployer)(nil)

// EthDeployer implements interfaces.IDeployer
type EthDeployer struct {
	backend  Backend
	account  *account.EthAccount
	registry *contracts.Registry
	chainID  *big.Int
	timeout  time.Duration
}

// NewEthDeployer signs with acc for opts.ChainID, which must be set
func NewEthDeployer(backend Backend, acc *account.EthAccount, registry *contracts.Registry, opts Options) (*EthDeployer, error) {
	if opts.ChainID == nil {
		return nil, errors.New("chain id is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &EthDeployer{
		backend:  backend,
		account:  acc,
		registry: registry,
		chainID:  opts.ChainID,
		timeout:  timeout,
	}, nil
}

// Balance returns the balance of the deploying account
func (d *EthDeployer) Balance(ctx context.Context) (*big.Int, error) {
	return d.backend.BalanceAt(ctx, d.account.Address(), nil)
}

// Deploy creates contract from its artifact and waits until its code is on chain
func (d *EthDeployer) Deploy(ctx context.Context, contract string, args ...interface{}) (ethcommon.Address, error) {
	artifact, err := d.registry.Get(contract)
	if err != nil {
		return ethcommon.Address{}, err
	}
	opts, err := d.transactOpts(ctx)
	if err != nil {
		return ethcommon.Address{}, err
	}

	LogDebug.Printf("Deploying %s with %v\n", contract, args)
	address, tx, _, err := bind.DeployContract(opts, artifact.ABI, artifact.Bytecode, d.backend, args...)
	if err != nil {
		return ethcommon.Address{}, errors.Wrapf(err, "deploying %s", contract)
	}
	LogInfo.Printf("%s deployment transaction %s\n", contract, tx.Hash().Hex())

	waitCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	if _, err = bind.WaitDeployed(waitCtx, d.backend, tx); err != nil {
		return ethcommon.Address{}, errors.Wrapf(err, "waiting for %s deployment (tx %s)", contract, tx.Hash().Hex())
	}
	if err = d.checkReceipt(waitCtx, contract, tx); err != nil {
		return ethcommon.Address{}, err
	}
	LogInfo.Printf("%s deployed at %s\n", contract, address.Hex())
	return address, nil
}

// Transact calls method on the contract at address and fails if the transaction reverts
func (d *EthDeployer) Transact(ctx context.Context, contract string, at ethcommon.Address, method string, args ...interface{}) error {
	artifact, err := d.registry.Get(contract)
	if err != nil {
		return err
	}
	opts, err := d.transactOpts(ctx)
	if err != nil {
		return err
	}

	desc := fmt.Sprintf("%s.%s", contract, method)
	bound := bind.NewBoundContract(at, artifact.ABI, d.backend, d.backend, d.backend)
	tx, err := bound.Transact(opts, method, args...)
	if err != nil {
		return errors.Wrapf(err, "%s execution", desc)
	}
	LogInfo.Printf("%s transaction %s\n", desc, tx.Hash().Hex())

	waitCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.checkReceipt(waitCtx, desc, tx)
}

func (d *EthDeployer) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := d.account.Transactor(d.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// checkReceipt waits for tx to be mined and fails if it reverted
func (d *EthDeployer) checkReceipt(ctx context.Context, desc string, tx *types.Transaction) error {
	receipt, err := bind.WaitMined(ctx, d.backend, tx)
	if err != nil {
		return errors.Wrapf(err, "waiting for %s transaction (hash: %s)", desc, tx.Hash().Hex())
	}
	if receipt.Status == types.ReceiptStatusFailed {
		LogError.Printf("%s transaction (hash: %s) reverted\n", desc, tx.Hash().Hex())
		return errors.Errorf("%s transaction (hash: %s) reverted", desc, tx.Hash().Hex())
	}
	LogDebug.Printf("%s used %d gas, max cost %s\n", desc, receipt.GasUsed, account.WeiString(maxCost(tx, receipt)))
	return nil
}

// maxCost is an upper bound: for dynamic fee transactions GasPrice is the fee cap
func maxCost(tx *types.Transaction, receipt *types.Receipt) *big.Int {
	return new(big.Int).Mul(tx.GasPrice(), new(big.Int).SetUint64(receipt.GasUsed))
}
