package common

import (
	"io/ioutil"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"
)

func TestEnvFlag(t *testing.T) {
	cases := map[string]bool{
		"":        false,
		"   ":     false,
		"false":   false,
		"0":       false,
		"F":       false,
		"true":    true,
		"1":       true,
		"TRUE":    true,
		"yes":     true,
		"deploy":  true,
		" true\n": true,
	}
	for value, expected := range cases {
		assert.Equal(t, expected, EnvFlag(value), "EnvFlag(%q)", value)
	}
}

func TestToBaseUnits(t *testing.T) {
	wei := ToBaseUnits(big.NewInt(1000))
	expected, _ := new(big.Int).SetString("1000000000000000000000", 10)
	assert.Equal(t, 0, wei.Cmp(expected), "got %s", wei)

	assert.Assert(t, ToBaseUnits(nil) == nil)
}

func TestToBaseUnitsDoesNotModifyInput(t *testing.T) {
	units := big.NewInt(50000)
	ToBaseUnits(units)
	assert.Equal(t, int64(50000), units.Int64())
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "/abs/path", Join("/some/dir", "/abs/path"))
	assert.Equal(t, filepath.Join("/some/dir", "rel"), Join("/some/dir", "rel"))
	assert.Assert(t, IsFullPath(`C:\build`))
	assert.Assert(t, !IsFullPath(""))
}

type testConfig struct {
	Url   string `json:"url"`
	Count int    `json:"count"`
}

func TestSaveAndGetConfiguration(t *testing.T) {
	dir, err := ioutil.TempDir("", "crowdsale")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "test.config")
	assert.NilError(t, SaveConfiguration(&testConfig{"http://localhost:8545", 3}, path))

	var conf testConfig
	assert.NilError(t, GetConfiguration(&conf, path))
	assert.Equal(t, "http://localhost:8545", conf.Url)
	assert.Equal(t, 3, conf.Count)
}

func TestGetConfigurationMissingFile(t *testing.T) {
	var conf testConfig
	err := GetConfiguration(&conf, filepath.Join(os.TempDir(), "does-not-exist.config"))
	assert.Assert(t, os.IsNotExist(err))
}

func TestReadPasswordFile(t *testing.T) {
	f, err := ioutil.TempFile("", "password")
	assert.NilError(t, err)
	defer os.Remove(f.Name())
	_, err = f.WriteString("  secret\n")
	assert.NilError(t, err)
	f.Close()

	p, err := ReadPasswordFile(f.Name())
	assert.NilError(t, err)
	assert.Equal(t, "secret", p)
}

func TestSetLoggingLevelFromName(t *testing.T) {
	defer SetLoggingLevel(GetLoggingLevel())
	assert.Assert(t, SetLoggingLevelFromName("Warning"))
	assert.Equal(t, LogLevelWarning, GetLoggingLevel())
	assert.Assert(t, !SetLoggingLevelFromName("verbose"))
	assert.Equal(t, LogLevelWarning, GetLoggingLevel())
}
