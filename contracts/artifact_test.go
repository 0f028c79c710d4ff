package contracts

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"
)

const ownableABI = `[
	{"inputs":[],"stateMutability":"nonpayable","type":"constructor"},
	{"inputs":[{"name":"newOwner","type":"address"}],"name":"transferOwnership","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[],"name":"owner","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

func artifactJSON(name, bytecode string) string {
	return fmt.Sprintf(`{"contractName":%q,"abi":%s,"bytecode":%q}`, name, ownableABI, bytecode)
}

func TestParseArtifact(t *testing.T) {
	a, err := ParseArtifact([]byte(artifactJSON("CustomTokenExample", "0x6001600c60003960016000f300")))
	assert.NilError(t, err)
	assert.Equal(t, "CustomTokenExample", a.Name)
	assert.Equal(t, 13, len(a.Bytecode))
	_, ok := a.ABI.Methods["transferOwnership"]
	assert.Assert(t, ok)
}

func TestParseArtifactErrors(t *testing.T) {
	cases := map[string]string{
		"not json":                     "invalid artifact json",
		`{"bytecode":"0x00"}`:          "missing abi",
		artifactJSON("Abstract", "0x"): "missing bytecode",
		artifactJSON("Linked", "0x6001__Library_______________0000"):                           "unlinked libraries",
		artifactJSON("Odd", "0x600"):                                                           "not valid hex",
		artifactJSON("NotHex", "0x60zz"):                                                       "not valid hex",
		`{"abi":[{"type":"function","name":"f","inputs":[{"type":"foo"}]}],"bytecode":"0x00"}`: "invalid abi",
	}
	for input, expected := range cases {
		_, err := ParseArtifact([]byte(input))
		assert.ErrorContains(t, err, expected)
	}
}

func TestLoadRegistry(t *testing.T) {
	dir, err := ioutil.TempDir("", "build")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)

	for _, name := range []string{"CustomTokenExample", "CustomCrowdsale"} {
		err = ioutil.WriteFile(filepath.Join(dir, name+".json"), []byte(artifactJSON(name, "0x00")), 0644)
		assert.NilError(t, err)
	}

	r, err := LoadRegistry(dir, "CustomTokenExample", "CustomCrowdsale")
	assert.NilError(t, err)
	token, err := r.Get("CustomTokenExample")
	assert.NilError(t, err)
	assert.Equal(t, "CustomTokenExample", token.Name)

	_, err = r.Get("Other")
	assert.ErrorContains(t, err, `unknown contract "Other"`)
}

func TestLoadRegistryMissingArtifact(t *testing.T) {
	dir, err := ioutil.TempDir("", "build")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)

	_, err = LoadRegistry(dir, "CustomCrowdsale")
	assert.ErrorContains(t, err, "reading artifact")
}

func TestLoadRegistryNameMismatch(t *testing.T) {
	dir, err := ioutil.TempDir("", "build")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)

	err = ioutil.WriteFile(filepath.Join(dir, "CustomCrowdsale.json"), []byte(artifactJSON("Other", "0x00")), 0644)
	assert.NilError(t, err)
	_, err = LoadRegistry(dir, "CustomCrowdsale")
	assert.ErrorContains(t, err, "holds contract Other")
}
