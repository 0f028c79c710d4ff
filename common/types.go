// common includes definitions and helpers shared by the crowdsale deployer packages
package common

import (
	"math/big"
)

const Version = "1.0.0"

const (
	Kilo        = 1000
	Mega        = Kilo * 1000
	Giga        = Mega * 1000
	Quintillion = Giga * Giga // 10^18
)

// BaseUnitsPerUnit is the number of base units (Wei) in one whole currency unit (Eth)
var BaseUnitsPerUnit = big.NewInt(Quintillion)

// ToBaseUnits scales whole currency units to 18-decimal base units
func ToBaseUnits(units *big.Int) *big.Int {
	if units == nil {
		return nil
	}
	return new(big.Int).Mul(units, BaseUnitsPerUnit)
}

// EnvCrowdsale is the environment variable that opts in to the crowdsale deployment
const EnvCrowdsale = "CROWDSALE"

// Names of the Truffle artifacts in the build folder
const (
	TokenContract     = "CustomTokenExample"
	CrowdsaleContract = "CustomCrowdsale"
)
