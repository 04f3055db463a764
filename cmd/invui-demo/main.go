// Command invui-demo opens several viewers on one shared inventory in the
// terminal. Items set or clicked in one viewer's window show up in every
// other window at once.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-mclib/invui/internal/termhost"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invui-demo",
		Short: "Share one inventory between several terminal viewers",
		Long: `invui-demo shows one window per viewer, all bound to the same inventory.
Type commands such as "set 4 diamond 3" or "click bob 0 emerald" and watch
every window update. Settings come from invui.yaml, INVUI_* environment
variables and flags.`,
		SilenceUsage: true,
		RunE:         run,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./invui.yaml)")
	cmd.Flags().Int("size", 0, "inventory size (default 27)")
	cmd.Flags().Bool("retain", true, "keep closed windows so they can be shown again")
	cmd.Flags().StringSlice("viewers", nil, "viewer names (default alice,bob)")

	cmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newConfig(configFile)
			if err != nil {
				return err
			}
			if err := bindFlags(cmd.Root(), v); err != nil {
				return err
			}
			for _, k := range v.AllKeys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", k, v.Get(k))
			}
			return nil
		},
	})
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	v, err := newConfig(configFile)
	if err != nil {
		return err
	}
	if err := bindFlags(cmd, v); err != nil {
		return err
	}

	cfg := sessionConfig(v)
	logger := log.New(io.Discard, "", log.Ltime)
	cfg.Logger = logger

	session, err := termhost.NewSession(cfg)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	program, writer := termhost.Start(session, v.GetInt(cfgKeyMaxLogs))
	logger.SetOutput(writer)

	if err := session.ShowAll(); err != nil {
		return fmt.Errorf("show windows: %w", err)
	}
	logger.Printf("%d viewers share %d slots, type help for commands", len(cfg.Viewers), cfg.Size)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal: %w", err)
	}
	return session.Close()
}

// bindFlags lets explicitly set flags override the configuration.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.Flags()
	if flags.Changed("size") {
		n, err := flags.GetInt("size")
		if err != nil {
			return err
		}
		v.Set(cfgKeySize, n)
	}
	if flags.Changed("retain") {
		b, err := flags.GetBool("retain")
		if err != nil {
			return err
		}
		v.Set(cfgKeyRetain, b)
	}
	if flags.Changed("viewers") {
		names, err := flags.GetStringSlice("viewers")
		if err != nil {
			return err
		}
		v.Set(cfgKeyViewers, names)
	}
	return nil
}
