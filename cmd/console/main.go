package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sanity-io/litter"
	"golang.org/x/term"

	"codemorph/pkg/transpiler"
)

const (
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

func main() {
	dumpAST := flag.Bool("dump-ast", false, "dump the raw syntax tree after the outline")
	noColor := flag.Bool("no-color", false, "disable ANSI colors on diagnostics")
	flag.Parse()

	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("Failed to read source from stdin: %v", err)
	}

	res := transpiler.Transpile(string(source))

	fmt.Println("---TOKENS---")
	for _, tok := range res.Tokens {
		fmt.Println(tok)
	}

	fmt.Println("---AST---")
	fmt.Print(transpiler.FormatProgram(res.Program))
	if *dumpAST {
		litter.Dump(res.Program)
	}

	fmt.Println("---PYTHON_CODE---")
	fmt.Print(res.Python)

	color := !*noColor && term.IsTerminal(int(os.Stderr.Fd()))
	for _, diag := range res.Diagnostics {
		if color {
			fmt.Fprintf(os.Stderr, "%s%s%s\n", colorYellow, diag, colorReset)
		} else {
			fmt.Fprintln(os.Stderr, diag)
		}
	}
}
