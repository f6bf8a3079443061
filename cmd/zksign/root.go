package main

import (
	"io"

	"github.com/spf13/cobra"

	zksync "github.com/matter-labs-archive/zksync-go"
	"github.com/matter-labs-archive/zksync-go/internal/config"
	"github.com/matter-labs-archive/zksync-go/internal/logx"
)

type globals struct {
	configPath string
	seed       string
	privateKey string
	backend    string
	verbose    bool

	cfg    config.Config
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:           "zksign",
		Short:         "Rollup transaction signer",
		Long:          "Pack amounts, convert addresses and sign rollup transfers, withdrawals and account closures.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if g.closer == nil {
				return nil
			}

			return g.closer.Close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&g.seed, "seed", "", "signer seed in hex")
	flags.StringVar(&g.privateKey, "private-key", "", "signer private key in hex")
	flags.StringVar(&g.backend, "backend", "", "signing backend (edwards|ecdsa)")
	flags.BoolVar(&g.verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(
		newPackCmd(),
		newClosestCmd(),
		newUnpackCmd(),
		newAddressCmd(),
		newWhoamiCmd(g),
		newSignCmd(g),
		newVerifyCmd(g),
	)

	return rootCmd
}

// load merges the configuration file, the environment and the flags, in
// increasing order of precedence.
func (g *globals) load(cmd *cobra.Command) (err error) {
	g.cfg, err = config.Load(g.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed("seed") && flags.Changed("private-key") {
		return config.Error.New("--seed and --private-key are mutually exclusive")
	}

	if flags.Changed("backend") {
		g.cfg.Signer.Backend = g.backend
	}

	if flags.Changed("seed") {
		g.cfg.Signer.Seed = g.seed
		g.cfg.Signer.PrivateKey = ""
	}

	if flags.Changed("private-key") {
		g.cfg.Signer.PrivateKey = g.privateKey
		g.cfg.Signer.Seed = ""
	}

	if g.verbose {
		g.cfg.Log.Debug = true
	}

	err = g.cfg.Validate()
	if err != nil {
		return err
	}

	g.closer, err = logx.Setup(logx.Options{
		File:       g.cfg.Log.File,
		MaxSizeMB:  g.cfg.Log.MaxSizeMB,
		MaxAgeDays: g.cfg.Log.MaxAgeDays,
		Debug:      g.cfg.Log.Debug,
	})
	if err != nil {
		return err
	}

	logx.Debug("CONFIG", "backend=", g.cfg.Signer.Backend, " log=", g.cfg.Log.File)

	return nil
}

// signer builds the configured signer. Exactly one of seed and private key
// must be set.
func (g *globals) signer() (s *zksync.Signer, err error) {
	prim, err := zksync.Backend(g.cfg.Signer.Backend)
	if err != nil {
		return nil, err
	}

	switch {
	case g.cfg.Signer.PrivateKey != "":
		scalar, err := config.DecodeHex(g.cfg.Signer.PrivateKey)
		if err != nil {
			return nil, config.Error.Wrap(err)
		}

		return zksync.NewSigner(prim, scalar)
	case g.cfg.Signer.Seed != "":
		seed, err := config.DecodeHex(g.cfg.Signer.Seed)
		if err != nil {
			return nil, config.Error.Wrap(err)
		}

		return zksync.FromSeedWith(prim, seed)
	}

	return nil, config.Error.New("no signer key: set --seed or --private-key")
}
