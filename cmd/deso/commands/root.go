package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexdcox/deso-go"
	"github.com/spf13/cobra"
)

var log = deso.Log()

var (
	configPath string
	nodeURI    string
	network    string
	hostMode   string
	logLevel   string

	config *deso.Config
)

func Execute() error {
	root := &cobra.Command{
		Use:           "deso",
		Short:         "Encode, decode, sign and submit DeSo transactions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			config, err = deso.LoadConfig(configPath, func(c *deso.Config) {
				if network != "" {
					c.Network = deso.Network(network)
				}
				if nodeURI != "" {
					c.NodeURI = nodeURI
				}
				if hostMode != "" {
					c.Host = deso.HostMode(hostMode)
				}
				if logLevel != "" {
					c.LogLevel = logLevel
				}
			})
			return
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default $"+deso.EnvConfigPath+")")
	root.PersistentFlags().StringVar(&nodeURI, "node", "", "node base URL")
	root.PersistentFlags().StringVar(&network, "network", "", "network (mainnet|testnet)")
	root.PersistentFlags().StringVar(&hostMode, "host", "", "host mode (browser|server)")
	root.PersistentFlags().StringVar(&logLevel, "loglevel", "", "log level (trace|debug|info|warn|error|fatal), also $"+deso.EnvLogLevel)

	root.AddCommand(
		decodeCmd(),
		submitCmd(),
		signCmd(),
		loginCmd(),
		logoutCmd(),
		sessionCmd(),
		configCmd(),
	)

	err := root.Execute()
	if err != nil {
		log.Error().Msgf("%v", err)
		if trace := deso.StackTracerMessage(err); trace != "" {
			log.Debug().Msgf("stack:\n%s", trace)
		}
	}
	return err
}

// newClient builds a client from the loaded config. The caller closes it.
func newClient() (*deso.Client, error) {
	return deso.NewClient(&deso.ClientOptions{Config: config})
}

// interruptible cancels on SIGINT/SIGTERM so a pending approval can be
// abandoned from the terminal.
func interruptible(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
