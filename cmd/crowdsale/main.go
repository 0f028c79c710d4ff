// Deploys the crowdsale token and crowdsale contracts
package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/gofrs/flock"
	"github.com/jessevdk/go-flags"

	"github.com/archoncloud/crowdsale-deploy/account"
	. "github.com/archoncloud/crowdsale-deploy/common"
	"github.com/archoncloud/crowdsale-deploy/contracts"
	"github.com/archoncloud/crowdsale-deploy/deployer"
	"github.com/archoncloud/crowdsale-deploy/migration"
)

var isDeploy bool

type deployCommand struct{}

func (x *deployCommand) Execute(args []string) error {
	isDeploy = true
	return nil
}

type genEthWalletCommand struct{}

func (x *genEthWalletCommand) Execute(args []string) error {
	generateWalletFile()
	os.Exit(0)
	return nil
}

type versionCommand struct{}

func (x *versionCommand) Execute(args []string) error {
	fmt.Printf("V%s\n", Version)
	os.Exit(0)
	return nil
}

type Options struct {
	Wallet       string  `long:"wallet" description:"Path to the Ethereum .json wallet of the deploying account"`
	PasswordFile *string `long:"passwordFile" description:"Path to the password file for wallet.\nCan be relative if in executable folder"`
	RpcUrl       string  `long:"rpc" description:"Ethereum JSON-RPC endpoint"`
	BuildDir     string  `long:"buildDir" description:"Folder with the Truffle contract artifacts"`
	ChainId      *int64  `long:"chainId" description:"Chain id. 0 means ask the node"`
	Timeout      *int    `long:"timeout" description:"Seconds to wait for each transaction"`
	LogLevel     string  `long:"logLevel" choice:"trace" choice:"debug" choice:"info" choice:"warning" choice:"error" description:"Logging level"`
	Force        bool    `long:"force" description:"Deploy even if the CROWDSALE environment variable is not set"`
}

// deployEnabled reports whether the operator opted in, by --force or the CROWDSALE variable
func (o *Options) deployEnabled(getenv func(string) string) bool {
	return o.Force || EnvFlag(getenv(EnvCrowdsale))
}

// apply copies the options that were given into conf. Returns true if conf changed
func (o *Options) apply(conf *Configuration) (changed bool) {
	if o.Wallet != "" && o.Wallet != conf.WalletPath {
		conf.WalletPath = o.Wallet
		changed = true
	}
	if o.RpcUrl != "" && o.RpcUrl != conf.EthRpcUrl {
		conf.EthRpcUrl = o.RpcUrl
		changed = true
	}
	if o.BuildDir != "" && o.BuildDir != conf.BuildDir {
		conf.BuildDir = o.BuildDir
		changed = true
	}
	if o.ChainId != nil && *o.ChainId != conf.ChainId {
		conf.ChainId = *o.ChainId
		changed = true
	}
	if o.Timeout != nil && *o.Timeout != conf.TimeoutSeconds {
		conf.TimeoutSeconds = *o.Timeout
		changed = true
	}
	if o.LogLevel != "" && o.LogLevel != conf.LogLevel {
		conf.LogLevel = o.LogLevel
		changed = true
	}
	return
}

func main() {
	var options Options
	parser := flags.NewParser(&options, flags.Default)
	_, _ = parser.AddCommand("deploy",
		"Deploy the token and the crowdsale, if "+EnvCrowdsale+" is set",
		"",
		&deployCommand{})
	_, _ = parser.AddCommand("version",
		"Print version and exit",
		"",
		&versionCommand{})
	_, _ = parser.AddCommand("generateEthWalletFile",
		"Generates a new Ethereum .json wallet file, with a new address",
		"",
		&genEthWalletCommand{})

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			Abort(err)
		}
	}
	if !isDeploy {
		InvalidArgs("You need to specify a command")
	}

	// Without the opt-in nothing is touched, not even the configuration file
	enabled := options.deployEnabled(os.Getenv)
	if !enabled {
		fmt.Printf("%s is not set, nothing to deploy\n", EnvCrowdsale)
		return
	}

	conf, err := newConfiguration()
	Abort(err)
	if options.apply(conf) {
		Abort(SaveAppConfiguration(conf))
	}
	fmt.Printf("Configuration is:\n    %s\n", conf.String())

	InitLogging(DefaultToExecutable("crowdsale.log"))
	if !SetLoggingLevelFromName(conf.LogLevel) {
		LogWarning.Printf("Unknown log level %q, using info\n", conf.LogLevel)
	}

	// Only one deployment at a time from this installation
	fileLock := flock.New(DefaultToExecutable("crowdsale.lock"))
	locked, err := fileLock.TryLock()
	Abort(err)
	if !locked {
		AbortWithString("Another deployment is in progress")
	}
	defer fileLock.Unlock()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := conf.newDeployer(ctx, options.PasswordFile)
	res, err := migration.Run(ctx, conf.params(enabled), d, os.Stdout)
	Abort(err)
	LogInfo.Printf("Token %s is owned by crowdsale %s\n", res.Token.Hex(), res.Crowdsale.Hex())
}

func (conf *Configuration) newDeployer(ctx context.Context, passwordFile *string) *deployer.EthDeployer {
	acc := conf.getAccount(passwordFile)

	registry, err := contracts.LoadRegistry(DefaultToExecutable(conf.BuildDir), TokenContract, CrowdsaleContract)
	Abort(err)

	if conf.EthRpcUrl == "" {
		AbortWithString("eth_rpc_url needs to be filled in")
	}
	client, err := ethclient.DialContext(ctx, conf.EthRpcUrl)
	Abort(err)

	chainID := big.NewInt(conf.ChainId)
	if conf.ChainId == 0 {
		chainID, err = client.ChainID(ctx)
		Abort(err)
	}
	LogInfo.Printf("Chain id is %s\n", chainID)

	d, err := deployer.NewEthDeployer(client, acc, registry, deployer.Options{
		ChainID: chainID,
		Timeout: conf.timeout(),
	})
	Abort(err)

	balance, err := d.Balance(ctx)
	Abort(err)
	LogInfo.Printf("Deploying from %s, balance is %s\n", acc.AddressString(), account.WeiString(balance))
	if balance.Sign() == 0 {
		AbortWithString("The deploying account has no funds")
	}
	return d
}

func (conf *Configuration) getAccount(passwordFile *string) *account.EthAccount {
	if conf.WalletPath == "" {
		InvalidArgs("You need to specify the wallet path")
	}
	var password string
	if passwordFile != nil {
		p, err := ReadPasswordFile(*passwordFile)
		Abort(err)
		password = p
	} else {
		password = GetPassword("Wallet", false)
	}
	acc, err := account.NewEthAccount(conf.WalletPath, password)
	Abort(err)
	return acc
}

func generateWalletFile() {
	password := GetPassword("Password for new Ethereum wallet to be generated", false)
	if password == "" {
		AbortWithString("Aborted")
	}
	confirm := GetPassword("Confirm password", false)
	if password != confirm {
		AbortWithString("Passwords don't match")
	}
	private := ""
	if Yes("Do you want to provide an existing private key") {
		private = PromptForInput("Enter your private key")
		if private == "" {
			AbortWithString("Aborted")
		}
	}
	path, err := account.GenerateNewEthWallet(DefaultToExecutable("wallets"), password, private)
	Abort(err)
	acc, err := account.NewEthAccount(path, password)
	Abort(err)
	fmt.Printf("Ethereum wallet generated in %q\n", path)
	fmt.Printf("Please remember the password you just entered\n")
	fmt.Printf("Enter its path as wallet_path in the .config file, or pass it with --wallet\n")
	fmt.Printf("The account address is: %q\n", acc.AddressString())
}
