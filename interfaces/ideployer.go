package interfaces

import (
	"context"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// IDeployer is the capability used to put contracts on a blockchain.
// Contracts are referred to by their artifact name
type IDeployer interface {
	// Deploy creates a new instance of contract, passing args to its constructor,
	// and blocks until it is deployed
	Deploy(ctx context.Context, contract string, args ...interface{}) (ethcommon.Address, error)

	// Transact calls a state changing method on the instance of contract at address,
	// and blocks until the transaction is mined
	Transact(ctx context.Context, contract string, at ethcommon.Address, method string, args ...interface{}) error
}
