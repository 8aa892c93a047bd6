package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	calc "github.com/Zubairalam07/simplecalculator"
)

func usage() {
	log.Fatalf("usage: %s [-nq] [expr [name=value ...]]", os.Args[0])
}

func main() {
	log.SetFlags(0)
	var quiet, noeval bool
	opts, optind, err := getopt.Getopts(os.Args, "nq")
	if err != nil {
		log.Println(err)
		usage()
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'n':
			noeval = true
		case 'q':
			quiet = true
		}
	}
	args := os.Args[optind:]
	if len(args) == 0 {
		repl(quiet, noeval)
		return
	}
	env, err := bindings(args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if err := report(args[0], env, quiet, noeval); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

// bindings evaluates name=value arguments into an environment. The value is
// itself an expression with no variables, so "foo=2^8" works as well as
// "foo=8".
func bindings(args []string) (calc.Env, error) {
	env := make(calc.Env, len(args))
	for _, arg := range args {
		name, val, ok := binding(arg)
		if !ok {
			return nil, fmt.Errorf(`variable definitions must be "name=value", not %q`, arg)
		}
		r, err := calc.EvalString(val, nil)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %v", name, err)
		}
		env[name] = r
	}
	return env, nil
}

// binding splits a name=value definition. The name must be a plain
// identifier; anything else is not a definition.
func binding(s string) (name, val string, ok bool) {
	name, val, ok = strings.Cut(s, "=")
	if !ok {
		return "", "", false
	}
	name = strings.TrimSpace(name)
	if !ident(name) {
		return "", "", false
	}
	return name, strings.TrimSpace(val), true
}

func ident(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && '0' <= c && c <= '9':
		default:
			return false
		}
	}
	return true
}

// report parses, compiles, and evaluates one expression, printing each
// stage. With quiet only the result prints; with noeval evaluation is
// skipped, which still surfaces unknown functions and bad arity.
func report(src string, env calc.Env, quiet, noeval bool) error {
	a, err := calc.Parse(src)
	if err != nil {
		return err
	}
	c, err := calc.Compile(a)
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Printf("input: %s\n", src)
		fmt.Printf("lisp: %s\n", a.Lisp())
		if names := c.Vars(); len(names) > 0 {
			fmt.Printf("variables used: %s\n", strings.Join(names, ", "))
		} else {
			fmt.Println("no variables")
		}
	}
	if noeval {
		return nil
	}
	r, err := c.Eval(env)
	if err != nil {
		if u, ok := err.(*calc.NameError); ok {
			return fmt.Errorf("missing variable: %q", u.Name)
		}
		return err
	}
	if quiet {
		fmt.Println(r)
	} else {
		fmt.Printf("result: %s\n", r)
	}
	return nil
}

// repl evaluates stdin a line at a time. A name=value line adds a binding
// for later lines; errors report and the session continues.
func repl(quiet, noeval bool) {
	env := calc.Env{}
	scan := bufio.NewScanner(os.Stdin)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}
		if name, val, ok := binding(line); ok {
			r, err := calc.EvalString(val, nil)
			if err != nil {
				color.Red("setting %s: %v", name, err)
				continue
			}
			env[name] = r
			continue
		}
		if err := report(line, env, quiet, noeval); err != nil {
			color.Red("%v", err)
		}
	}
	if err := scan.Err(); err != nil {
		log.Fatal(err)
	}
}
