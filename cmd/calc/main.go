package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	"github.com/zephyrtronium/calc"
)

const usage = `usage: calc [-hnrtu] [-e expr]...

Reads expressions from stdin, one per line, and prints their values.

  -e expr  evaluate expr and exit instead of reading stdin (any number of times)
  -n       disable colored output
  -r       let later assignments to a variable replace earlier ones
  -t       print each parse tree before its value
  -u       underline the position of errors
  -h       print this help`

type options struct {
	exprs     []string
	rebind    bool
	tree      bool
	underline bool
}

func main() {
	log.SetFlags(0)
	opts, optind, err := getopt.Getopts(os.Args, "e:hnrtu")
	if err != nil {
		log.Fatalln(err)
	}
	if optind < len(os.Args) {
		log.Fatalf("unexpected argument %q\n%s", os.Args[optind], usage)
	}
	var o options
	for _, opt := range opts {
		switch opt.Option {
		case 'e':
			o.exprs = append(o.exprs, opt.Value)
		case 'h':
			fmt.Println(usage)
			return
		case 'n':
			color.NoColor = true
		case 'r':
			o.rebind = true
		case 't':
			o.tree = true
		case 'u':
			o.underline = true
		}
	}

	var envopts []calc.EnvOption
	if o.rebind {
		envopts = append(envopts, calc.Rebind())
	}
	sh := shell{
		env:  calc.NewEnv(envopts...),
		out:  os.Stdout,
		err:  os.Stderr,
		opts: o,
	}
	if len(o.exprs) != 0 {
		ok := true
		for _, x := range o.exprs {
			ok = sh.line(x) && ok
		}
		if !ok {
			os.Exit(1)
		}
		return
	}
	if err := sh.repl(os.Stdin, "> "); err != nil {
		log.Fatal(err)
	}
}

type shell struct {
	env  *calc.Env
	out  io.Writer
	err  io.Writer
	opts options
}

var (
	arrow  = color.New(color.FgCyan)
	failed = color.New(color.FgRed)
)

// repl evaluates each line of in until EOF, printing prompt before each.
func (sh *shell) repl(in io.Reader, prompt string) error {
	scan := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, prompt)
		if !scan.Scan() {
			fmt.Fprintln(sh.out)
			return scan.Err()
		}
		sh.line(strings.TrimSpace(scan.Text()))
	}
}

// line evaluates one expression and prints its result or error. The result
// reports whether evaluation succeeded.
func (sh *shell) line(src string) bool {
	a, err := calc.ParseString(src, sh.env)
	if err != nil {
		failed.Fprintln(sh.err, "=>", err)
		if sh.opts.underline {
			fmt.Fprintln(sh.err, calc.Underline(src, err))
		}
		return false
	}
	if sh.opts.tree {
		fmt.Fprintf(sh.out, "%v : ", a)
	}
	fmt.Fprintln(sh.out, arrow.Sprint("=>"), format(a.Eval()))
	return true
}

// format formats a value as its shortest exact decimal representation,
// without an exponent.
func format(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
