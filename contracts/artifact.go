// Package contracts reads the compiled contracts produced by Truffle (build/contracts/*.json)
package contracts

import (
	"encoding/json"
	"io/ioutil"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Artifact is a compiled contract: its interface and its creation code
type Artifact struct {
	Name     string
	ABI      abi.ABI
	Bytecode []byte
}

// truffleArtifact is the subset of a Truffle artifact file that is needed for deployment
type truffleArtifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// LoadArtifact reads a Truffle artifact file
func LoadArtifact(path string) (*Artifact, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading artifact")
	}
	a, err := ParseArtifact(data)
	if err != nil {
		return nil, errors.Wrapf(err, "artifact %s", path)
	}
	return a, nil
}

// ParseArtifact parses the JSON content of a Truffle artifact
func ParseArtifact(data []byte) (*Artifact, error) {
	var ta truffleArtifact
	if err := json.Unmarshal(data, &ta); err != nil {
		return nil, errors.Wrap(err, "invalid artifact json")
	}
	if len(ta.ABI) == 0 {
		return nil, errors.New("missing abi")
	}
	parsed, err := abi.JSON(strings.NewReader(string(ta.ABI)))
	if err != nil {
		return nil, errors.Wrap(err, "invalid abi")
	}
	code := strings.TrimPrefix(ta.Bytecode, "0x")
	if code == "" {
		return nil, errors.New("missing bytecode (abstract contract or interface?)")
	}
	// Unlinked library references look like __LibraryName______
	if strings.Contains(code, "__") {
		return nil, errors.New("bytecode has unlinked libraries")
	}
	if len(code)%2 != 0 || !isHex(code) {
		return nil, errors.New("bytecode is not valid hex")
	}
	return &Artifact{
		Name:     ta.ContractName,
		ABI:      parsed,
		Bytecode: ethcommon.FromHex(code),
	}, nil
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
