package account

import (
	"crypto/ecdsa"
	"fmt"
	"io/ioutil"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	ethcommon "github.com/ethereum/go-ethereum/common"
	ecrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	. "github.com/archoncloud/crowdsale-deploy/common"
)

/*
	1 Eth = 10^9 GWei = 10^18 Wei
*/

// EthAccount is the account that signs the deployment transactions
type EthAccount struct {
	PrivateKey *ecdsa.PrivateKey // Public key is also available through this
	address    ethcommon.Address
}

const EthToWei = Quintillion

// NewEthAccount decrypts a .json keystore wallet.
// walletPath may be relative (to exe folder), or absolute
func NewEthAccount(walletPath string, password string) (*EthAccount, error) {
	path := DefaultToExecutable(walletPath)
	if !FileExists(path) {
		return nil, fmt.Errorf("Cannot find file %q", path)
	}
	keyJson, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key, err := keystore.DecryptKey(keyJson, password)
	if err != nil {
		return nil, errors.Wrap(err, "wrong password or invalid wallet file")
	}
	return NewEthAccountFromKey(key.PrivateKey), nil
}

func NewEthAccountFromKey(key *ecdsa.PrivateKey) *EthAccount {
	return &EthAccount{
		PrivateKey: key,
		address:    ecrypto.PubkeyToAddress(key.PublicKey),
	}
}

func (acc *EthAccount) Address() ethcommon.Address {
	return acc.address
}

func (acc *EthAccount) AddressString() string {
	return acc.address.Hex()
}

// Transactor returns signing options for transactions on chainID
func (acc *EthAccount) Transactor(chainID *big.Int) (*bind.TransactOpts, error) {
	if chainID == nil {
		return nil, errors.New("chain id is not set")
	}
	opts, err := bind.NewKeyedTransactorWithChainID(acc.PrivateKey, chainID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create transactor")
	}
	return opts, nil
}

func PrivateKeyFromString(hexkey string) (*ecdsa.PrivateKey, error) {
	return ecrypto.HexToECDSA(strings.TrimPrefix(hexkey, "0x"))
}

// GenerateNewEthWallet creates a new .json wallet file in dir and returns its path.
// If pKey is not empty, the wallet holds that private key
func GenerateNewEthWallet(dir, password, pKey string) (string, error) {
	return generateWallet(dir, password, pKey, keystore.StandardScryptN, keystore.StandardScryptP)
}

func generateWallet(dir, password, pKey string, scryptN, scryptP int) (string, error) {
	ks := keystore.NewKeyStore(dir, scryptN, scryptP)
	if pKey == "" {
		acc, err := ks.NewAccount(password)
		if err != nil {
			return "", err
		}
		return acc.URL.Path, nil
	}
	key, err := PrivateKeyFromString(pKey)
	if err != nil {
		return "", errors.Wrap(err, "invalid private key")
	}
	acc, err := ks.ImportECDSA(key, password)
	if err != nil {
		return "", err
	}
	return acc.URL.Path, nil
}

// WeiString formats an amount of Wei in the most readable unit
func WeiString(wei *big.Int) string {
	if wei == nil {
		return "0 Wei"
	}
	f, _ := new(big.Float).SetInt(wei).Float64()
	abs := new(big.Int).Abs(wei)
	switch {
	case abs.Cmp(big.NewInt(EthToWei)) >= 0:
		return humanize.CommafWithDigits(f/EthToWei, 5) + " Eth"
	case abs.Cmp(big.NewInt(Mega)) >= 0:
		return humanize.CommafWithDigits(f/Giga, 4) + " GWei"
	}
	return humanize.BigComma(wei) + " Wei"
}
