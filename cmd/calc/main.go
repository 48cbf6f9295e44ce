package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc"
)

func main() {
	log.SetFlags(0)
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	inname  string
	cfgname string
	verb    string
	given   []string
	nocon   bool
	echo    bool
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "calc [expression...]",
		Short: "Evaluate arithmetic expressions",
		Long: `calc evaluates infix arithmetic expressions in double precision.

Each argument is one expression. With no arguments, or with --in, each line
of the input is one expression. Supported are + - * / ^ ** and parentheses,
the functions ` + strings.Join(calc.FuncNames(), ", ") + `,
and the constants ` + strings.Join(calc.ConstNames(), ", ") + `.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &o, args)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&o.inname, "in", "", `input file, or "-" for stdin (default stdin if no args given)`)
	fl.StringVar(&o.cfgname, "config", "", "TOML or YAML config file")
	fl.StringVar(&o.verb, "fmt", "%g", "result formatting string")
	fl.StringArrayVar(&o.given, "given", nil, "name=expression constant definition (any number of times)")
	fl.BoolVar(&o.nocon, "no-constants", false, "disable the built-in constants")
	fl.BoolVar(&o.echo, "echo", false, "print the postfix form of each expression")
	return cmd
}

func run(cmd *cobra.Command, o *options, args []string) error {
	cfg := defaultConfig()
	if o.cfgname != "" {
		var err error
		cfg, err = loadConfig(o.cfgname)
		if err != nil {
			return err
		}
	}
	fl := cmd.Flags()
	if fl.Changed("fmt") {
		cfg.Format = o.verb
	}
	if fl.Changed("no-constants") {
		cfg.Constants = !o.nocon
	}

	opts, err := cfg.engineOptions()
	if err != nil {
		return err
	}
	for _, d := range o.given {
		opt, err := given(d, opts)
		if err != nil {
			return err
		}
		opts = append(opts, opt)
	}
	e := calc.New(opts...)

	var ins []io.Reader
	switch {
	case o.inname != "" && o.inname != "-":
		f, err := os.Open(o.inname)
		if err != nil {
			return err
		}
		defer f.Close()
		ins = append(ins, f)
	case o.inname == "-", len(args) == 0:
		ins = append(ins, cmd.InOrStdin())
	}
	ins = append(ins, strings.NewReader(strings.Join(args, "\n")))

	out := cmd.OutOrStdout()
	verb := cfg.Format + "\n"
	for _, in := range ins {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			src := strings.TrimSpace(sc.Text())
			if src == "" {
				continue
			}
			if o.echo {
				pf, err := e.Compile(src)
				if err == nil {
					fmt.Fprintf(out, "%s : ", calc.FormatRPN(pf))
				}
			}
			r, err := e.Evaluate(src)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintf(out, verb, r)
		}
		if err := sc.Err(); err != nil {
			return err
		}
	}
	return nil
}

// given parses a name=expression definition and evaluates the expression with
// the options defined so far.
func given(d string, opts []calc.Option) (calc.Option, error) {
	nm, vl, ok := strings.Cut(d, "=")
	if !ok {
		return nil, fmt.Errorf(`constant definitions must be "name=expression", not %q`, d)
	}
	nm = strings.TrimSpace(nm)
	if err := validName(nm); err != nil {
		return nil, err
	}
	r, err := calc.Evaluate(vl, opts...)
	if err != nil {
		return nil, fmt.Errorf("setting %s: %w", nm, err)
	}
	return calc.WithConst(nm, r), nil
}
