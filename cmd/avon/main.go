// Command avon is the CLI surface over the Avon language pipeline:
// parse, evaluate, optionally deploy.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/avonlang/avon/internal/builtins"
	"github.com/avonlang/avon/internal/debugprint"
	"github.com/avonlang/avon/internal/deploy"
	"github.com/avonlang/avon/internal/diag"
	"github.com/avonlang/avon/internal/eval"
	"github.com/avonlang/avon/internal/filecache"
	"github.com/avonlang/avon/internal/lexer"
	"github.com/avonlang/avon/internal/parser"
	"github.com/avonlang/avon/internal/value"
)

// reservedFlags are the names urfave/cli already owns; anything else
// spelled `-name value` on the command line is environment injection
// rather than a flag, so it's stripped out before urfave/cli ever
// sees argv.
var reservedFlags = map[string]bool{
	"root": true, "deploy": true, "force": true, "if-not-exists": true,
	"eval-input": true, "debug": true, "help": true, "h": true,
	"version": true, "v": true,
}

// injections holds the env values gathered from `-name value` pairs,
// populated by splitInjections before cli.App.Run is invoked.
var injections map[string]string

// valueFlags are the reserved flags that consume a following argument.
var valueFlags = map[string]bool{"root": true, "eval-input": true}

// splitInjections partitions argv into urfave/cli's args and Avon's
// `-name value` environment injections, since urfave/cli has no notion
// of arbitrarily-named single-dash flags. Reserved flags are moved in
// front of positional arguments so `avon prog.avon --deploy` works;
// flag parsing otherwise stops at the first positional argument.
func splitInjections(argv []string) []string {
	injections = make(map[string]string)
	if len(argv) == 0 {
		return argv
	}
	out := []string{argv[0]}
	var rest []string
	for i := 1; i < len(argv); i++ {
		a := argv[i]
		if strings.HasPrefix(a, "-") && len(a) > 1 {
			name := strings.TrimLeft(a, "-")
			if reservedFlags[name] {
				out = append(out, a)
				if valueFlags[name] && i+1 < len(argv) {
					out = append(out, argv[i+1])
					i++
				}
				continue
			}
			if !strings.HasPrefix(a, "--") && i+1 < len(argv) {
				injections[name] = argv[i+1]
				i++
				continue
			}
		}
		rest = append(rest, a)
	}
	return append(out, rest...)
}

func main() {
	argv := splitInjections(os.Args)
	app := &cli.App{
		Name:  "avon",
		Usage: "evaluate Avon programs and deploy their file intents",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "root", Usage: "deployment root directory", Value: "."},
			&cli.BoolFlag{Name: "deploy", Usage: "run the deploy collector after evaluation"},
			&cli.BoolFlag{Name: "force", Usage: "overwrite existing files when deploying"},
			&cli.BoolFlag{Name: "if-not-exists", Usage: "skip existing files when deploying"},
			&cli.StringFlag{Name: "eval-input", Usage: "treat the argument as program source instead of a file path"},
			&cli.BoolFlag{Name: "debug", Usage: "print the token stream and AST to stderr"},
		},
		Commands: []*cli.Command{
			{
				Name:      "eval",
				Usage:     "parse and evaluate a program, printing its value",
				ArgsUsage: "<file>",
				Action:    runEval,
			},
		},
		Action: runEval,
	}

	if err := app.Run(argv); err != nil {
		if code, ok := err.(cli.ExitCoder); ok {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(code.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(3)
	}
}

func runEval(c *cli.Context) error {
	filename, src, err := programSource(c)
	if err != nil {
		return cli.Exit(err.Error(), 3)
	}

	if c.Bool("debug") {
		toks, _, _ := lexer.Tokenize(filename, src)
		for _, t := range toks {
			fmt.Fprintf(os.Stderr, "%-12s %-10q %s\n", t.Kind.String(), t.Value, t.Span)
		}
	}

	expr, file, perr := parser.Parse(filename, src)
	if perr != nil {
		fmt.Fprint(os.Stderr, diag.Format(perr, file))
		return cli.Exit("", diag.ExitCode(perr))
	}

	if c.Bool("debug") {
		fmt.Fprintln(os.Stderr, debugprint.Print(expr))
	}

	cache := filecache.New()
	ev := eval.New()
	root := value.NewRootEnv()
	root = builtins.Register(root, cache, ev)
	for name, v := range injections {
		root = root.Child(name, value.Str(v))
	}

	result, rerr := ev.Eval(expr, root)
	if rerr != nil {
		fmt.Fprint(os.Stderr, diag.Format(rerr, file))
		return cli.Exit("", diag.ExitCode(rerr))
	}

	intents := deploy.Collect(result)

	if !c.Bool("deploy") {
		fmt.Println(value.ToString(result))
		if rep := deploy.Report(intents); rep != "" {
			fmt.Fprint(os.Stderr, rep)
		}
		return nil
	}

	policy := deploy.PolicyRefuse
	switch {
	case c.Bool("force"):
		policy = deploy.PolicyForce
	case c.Bool("if-not-exists"):
		policy = deploy.PolicySkipExisting
	}
	if derr := deploy.Write(c.String("root"), intents, policy); derr != nil {
		fmt.Fprint(os.Stderr, diag.Format(derr, file))
		return cli.Exit("", diag.ExitCode(derr))
	}
	return nil
}

func programSource(c *cli.Context) (filename, src string, err error) {
	if input := c.String("eval-input"); input != "" {
		return "<eval-input>", input, nil
	}
	path := c.Args().First()
	if path == "" {
		return "", "", fmt.Errorf("usage: avon [eval] <file> | --eval-input <source>")
	}
	b, readErr := readSourceFile(path)
	if readErr != nil {
		return "", "", readErr
	}
	return path, b, nil
}

func readSourceFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	// Accept and discard a UTF-8 BOM.
	s := string(b)
	s = strings.TrimPrefix(s, "\uFEFF")
	return s, nil
}
