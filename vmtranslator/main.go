package main

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

var (
	outputPath  string
	printAsm    bool
	noBootstrap bool
)

var rootCmd = &cobra.Command{
	Use:   "vmtranslator path",
	Short: "Translate Hack VM code to Hack assembly",
	Long: `vmtranslator turns stack-based Hack VM code into Hack assembly.

Given a single .vm file it translates that file alone, with no program
prologue, which suits testing isolated fragments. Given a directory it
translates every .vm file in it, in name order, prepended with bootstrap
code that initializes the stack and calls Sys.init.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		translator := NewTranslator(!noBootstrap)
		if err := translator.Translate(args[0]); err != nil {
			return fmt.Errorf("translate %s: %w", args[0], err)
		}
		if printAsm {
			fmt.Print(string(translator.Output()))
		}
		if err := translator.SaveTo(outputPath); err != nil {
			return fmt.Errorf("save %s: %w", outputPath, err)
		}
		glog.V(1).Infof("wrote %s", outputPath)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "output.asm", "path of the assembly file to write")
	rootCmd.Flags().BoolVar(&printAsm, "print", false, "also print the translated assembly to stdout")
	rootCmd.Flags().BoolVar(&noBootstrap, "no-bootstrap", false, "skip the bootstrap prologue when translating a directory")
	// glog registers its flags on the standard flag set.
	rootCmd.Flags().AddGoFlagSet(goflag.CommandLine)
}

func main() {
	defer glog.Flush()
	if err := rootCmd.Execute(); err != nil {
		glog.Errorf("%v", err)
		os.Exit(1)
	}
}
