package main

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"time"

	. "github.com/archoncloud/crowdsale-deploy/common"
	"github.com/archoncloud/crowdsale-deploy/deployer"
	"github.com/archoncloud/crowdsale-deploy/migration"
)

type Configuration struct {
	WalletPath     string `json:"wallet_path"`
	EthRpcUrl      string `json:"eth_rpc_url"`
	ChainId        int64  `json:"chain_id"` // 0 means ask the node
	BuildDir       string `json:"build_dir"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	LogLevel       string `json:"log_level"`
	// The following can only be edited manually
	MinimalGoal       int64 `json:"minimal_goal"`
	HardCap           int64 `json:"hard_cap"`
	TokensPerEthPrice int64 `json:"tokens_per_eth_price"`
}

func defaultConfiguration() Configuration {
	p := migration.DefaultParams(false)
	return Configuration{
		WalletPath:        "",
		EthRpcUrl:         "http://127.0.0.1:8545",
		ChainId:           0,
		BuildDir:          "build/contracts",
		TimeoutSeconds:    int(deployer.DefaultTimeout / time.Second),
		LogLevel:          "Info",
		MinimalGoal:       p.MinimalGoal.Int64(),
		HardCap:           p.HardCap.Int64(),
		TokensPerEthPrice: p.TokensPerEthPrice.Int64(),
	}
}

// newConfiguration returns the saved configuration, or the default one if there is none yet
func newConfiguration() (*Configuration, error) {
	conf := defaultConfiguration()
	err := GetAppConfiguration(&conf)
	if errors.Is(err, os.ErrNotExist) {
		return &conf, SaveAppConfiguration(&conf)
	}
	return &conf, err
}

func (c *Configuration) String() string {
	s := fmt.Sprintf("eth_rpc_url=%q, build_dir=%q, timeout_seconds=%d, log_level=%q",
		c.EthRpcUrl, c.BuildDir, c.TimeoutSeconds, c.LogLevel)
	if c.WalletPath != "" {
		s += fmt.Sprintf(", wallet_path=%q", c.WalletPath)
	}
	if c.ChainId != 0 {
		s += fmt.Sprintf(", chain_id=%d", c.ChainId)
	}
	s += fmt.Sprintf("\n    minimal_goal=%d, hard_cap=%d, tokens_per_eth_price=%d",
		c.MinimalGoal, c.HardCap, c.TokensPerEthPrice)
	return s
}

func (c *Configuration) params(enabled bool) migration.Params {
	return migration.Params{
		Enabled:           enabled,
		MinimalGoal:       big.NewInt(c.MinimalGoal),
		HardCap:           big.NewInt(c.HardCap),
		TokensPerEthPrice: big.NewInt(c.TokensPerEthPrice),
	}
}

func (c *Configuration) timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
