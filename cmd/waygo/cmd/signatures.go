package cmd

import (
	"fmt"
	"os"
	"strings"

	logging "github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/waygo/waygo/cmd/waygo/common"
	"github.com/waygo/waygo/lib/client"
	waygocommon "github.com/waygo/waygo/lib/common"
	"github.com/waygo/waygo/lib/scanner"
)

const defaultLogLevel logging.Lvl = logging.LvlInfo

type FlagInterfaces []string

func (f *FlagInterfaces) Type() string {
	return "interfaces"
}

func (f *FlagInterfaces) String() string {
	return strings.Join(*f, ",")
}

func (f *FlagInterfaces) Set(v string) error {
	for _, name := range strings.Split(v, ",") {
		// check duplication
		for _, found := range *f {
			if name == found {
				return fmt.Errorf("duplicated interface name found")
			}
		}
		*f = append(*f, name)
	}

	return nil
}

func (f FlagInterfaces) match(name string) bool {
	if len(f) < 1 {
		return true
	}

	for _, found := range f {
		if name == found {
			return true
		}
	}
	return false
}

var (
	flagLogLevel   string = defaultLogLevel.String()
	flagInterfaces FlagInterfaces

	log logging.Logger
)

var signaturesCmd *cobra.Command

func newSignaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signatures <protocol xml>",
		Short: "Print every message's opcode and wire signature",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			setupLogging()

			ifaces, err := scanner.LoadFile(args[0])
			if err != nil {
				log.Error("failed to load protocol", "path", args[0], "error", err)
				common.PrintError(c, err)
			}

			for _, iface := range ifaces {
				if !flagInterfaces.match(iface.Name) {
					continue
				}

				fmt.Printf("%s version %d\n", iface.Name, iface.Version)
				for opcode, msg := range iface.Requests {
					fmt.Printf("  request %2d %-24s %q\n", opcode, msg.Name, msg.Signature())
				}
				for opcode, msg := range iface.Events {
					fmt.Printf("  event   %2d %-24s %q\n", opcode, msg.Name, msg.Signature())
				}
			}
		},
	}
}

func init() {
	signaturesCmd = newSignaturesCmd()
	signaturesCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	signaturesCmd.Flags().Var(&flagInterfaces, "interface", "limit output to the named interfaces")

	rootCmd.AddCommand(signaturesCmd)
}

func setupLogging() {
	logLevel, err := logging.LvlFromString(flagLogLevel)
	if err != nil {
		common.PrintFlagsError(signaturesCmd, "--log-level", err)
	}

	var formatter logging.Format
	if isatty.IsTerminal(os.Stdout.Fd()) {
		formatter = logging.TerminalFormat()
	} else {
		formatter = waygocommon.JsonFormatEx(false, true)
	}
	logHandler := logging.StreamHandler(os.Stdout, formatter)

	log = logging.New("module", "main")
	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	client.SetLogging(logLevel, logHandler)
}
