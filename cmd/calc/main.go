package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/calc"
)

func main() {
	log.SetFlags(0)
	var (
		inname, cfgname string
		with            [][2]string
		nl, echo, sci   bool
		prec            uint
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default interactive session if no args given)")
	flag.StringVar(&cfgname, "config", "", "YAML configuration file")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.UintVar(&prec, "p", calc.DefaultPrec, "precision of calculations in significant digits")
	flag.BoolVar(&sci, "sci", false, "print approximate results in scientific notation")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.Parse()

	cfg, err := loadConfig(cfgname)
	if err != nil {
		log.Fatal(err)
	}
	// Flags given explicitly override the configuration file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Precision = prec
		case "sci":
			cfg.Scientific = sci
		}
	})
	if cfg.Precision == 0 {
		log.Fatal("precision must be positive")
	}
	for _, d := range with {
		cfg.Given[d[0]] = d[1]
	}

	env := calc.NewEnv(calc.Prec(cfg.Precision), calc.Scientific(cfg.Scientific))
	for _, nm := range cfg.names() {
		r, err := env.EvalString(cfg.Given[nm])
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		env.Set(nm, r)
	}

	if inname == "" && flag.NArg() == 0 {
		if err := repl(env, cfg.History); err != nil {
			log.Fatal(err)
		}
		return
	}

	var ins []io.RuneScanner
	f, err := infile(inname)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}

	opts := []calc.ParseOption{calc.StopOn(';')}
	if nl {
		opts = []calc.ParseOption{calc.StopOn(';', '\n')}
	}
	for _, in := range ins {
		for {
			// First check whether we're done with the input.
			if _, _, err := in.ReadRune(); err != nil {
				if err == io.EOF {
					break
				}
				log.Fatal(err)
			}
			in.UnreadRune()
			a, err := calc.Parse(in, opts...)
			if err != nil {
				log.Fatal(err)
			}
			if echo {
				fmt.Printf("%v : ", a)
			}
			r := env.Eval(a)
			if r == nil {
				fmt.Println(env.Err())
				continue
			}
			fmt.Println(env.Format(r))
		}
	}
}

func infile(inname string) (io.RuneScanner, error) {
	switch inname {
	case "":
		return nil, nil
	case "-":
		return bufio.NewReader(os.Stdin), nil
	}
	f, err := os.Open(inname)
	if err != nil {
		return nil, err
	}
	return bufio.NewReader(f), nil
}

// repl runs an interactive session. Each line may hold several expressions
// separated by semicolons. Errors are printed, and the session continues.
func repl(env *calc.Env, history string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if history != "" {
		if f, err := os.Open(history); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if err := os.MkdirAll(filepath.Dir(history), 0o755); err != nil {
				log.Println("saving history:", err)
				return
			}
			f, err := os.Create(history)
			if err != nil {
				log.Println("saving history:", err)
				return
			}
			defer f.Close()
			if _, err := ln.WriteHistory(f); err != nil {
				log.Println("saving history:", err)
			}
		}()
	}
	for {
		line, err := ln.Prompt("> ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		switch line {
		case ":quit", ":q":
			return nil
		case ":vars":
			for _, nm := range env.Names() {
				v, _ := env.Lookup(nm)
				fmt.Printf("%s = %s\n", nm, env.Format(v))
			}
			continue
		}
		in := strings.NewReader(line)
		for in.Len() > 0 {
			a, err := calc.Parse(in, calc.StopOn(';'))
			if err != nil {
				fmt.Println(err)
				break
			}
			r, err := env.Evaluate(a)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(env.Format(r))
		}
	}
}
