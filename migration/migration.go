// Package migration deploys the crowdsale contracts and wires them together
package migration

import (
	"context"
	"fmt"
	"io"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	. "github.com/archoncloud/crowdsale-deploy/common"
	"github.com/archoncloud/crowdsale-deploy/interfaces"
)

// Params of the crowdsale deployment.
// MinimalGoal and HardCap are in whole currency units (Eth), TokensPerEthPrice is a plain number
type Params struct {
	Enabled           bool
	MinimalGoal       *big.Int
	HardCap           *big.Int
	TokensPerEthPrice *big.Int
}

// DefaultParams returns the deployment parameters with the standard crowdsale values
func DefaultParams(enabled bool) Params {
	return Params{
		Enabled:           enabled,
		MinimalGoal:       big.NewInt(1000),
		HardCap:           big.NewInt(50000),
		TokensPerEthPrice: big.NewInt(1000),
	}
}

func (p *Params) Validate() error {
	for _, v := range []struct {
		name  string
		value *big.Int
	}{
		{"minimal goal", p.MinimalGoal},
		{"hard cap", p.HardCap},
		{"tokens per eth price", p.TokensPerEthPrice},
	} {
		if v.value == nil {
			return errors.Errorf("%s is not set", v.name)
		}
		if v.value.Sign() < 0 {
			return errors.Errorf("%s cannot be negative", v.name)
		}
	}
	return nil
}

// Result holds the addresses of the deployed contracts
type Result struct {
	Token     ethcommon.Address
	Crowdsale ethcommon.Address
}

// Run deploys the token, then the crowdsale referencing it, and hands the token ownership
// to the crowdsale. The addresses are written to out.
// Nothing is done and a nil Result is returned unless params.Enabled.
// The first failing step aborts the run; contracts already deployed are left as they are
func Run(ctx context.Context, params Params, d interfaces.IDeployer, out io.Writer) (*Result, error) {
	if !params.Enabled {
		LogDebug.Println("Crowdsale deployment is not enabled")
		return nil, nil
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var res Result
	var err error
	res.Token, err = d.Deploy(ctx, TokenContract)
	if err != nil {
		return nil, errors.Wrap(err, "token deployment")
	}
	LogInfo.Printf("Token deployed at %s\n", res.Token.Hex())

	res.Crowdsale, err = d.Deploy(ctx, CrowdsaleContract,
		ToBaseUnits(params.MinimalGoal),
		ToBaseUnits(params.HardCap),
		new(big.Int).Set(params.TokensPerEthPrice),
		res.Token,
	)
	if err != nil {
		return nil, errors.Wrap(err, "crowdsale deployment")
	}
	LogInfo.Printf("Crowdsale deployed at %s\n", res.Crowdsale.Hex())

	err = d.Transact(ctx, TokenContract, res.Token, "transferOwnership", res.Crowdsale)
	if err != nil {
		return nil, errors.Wrap(err, "token ownership transfer")
	}

	err = Report(out, &res)
	return &res, err
}

// Report writes the deployed addresses for the operator
func Report(out io.Writer, res *Result) error {
	_, err := fmt.Fprintf(out, "===== Contracts ====\nCrowdsale: %s\nToken: %s\n====================\n",
		res.Crowdsale.Hex(), res.Token.Hex())
	return err
}
