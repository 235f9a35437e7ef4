package main

import (
	"flag"
	"fmt"
	"os"

	"codemorph/pkg/transpiler"
	"codemorph/pkg/utils"
)

func main() {
	inPath := flag.String("in", "", "input C source file path")
	outPath := flag.String("out", "", "output Python file path (default: input with .py extension)")
	showTokens := flag.Bool("show-tokens", false, "print the token listing before writing output")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: transpile -in file.c [-out file.py]")
		os.Exit(2)
	}

	fullPath, _, err := utils.GetPathInfo(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve input path %q: %v\n", *inPath, err)
		os.Exit(1)
	}
	source, err := os.ReadFile(fullPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read input file %q: %v\n", *inPath, err)
		os.Exit(1)
	}

	res := transpiler.Transpile(string(source))

	if *showTokens {
		fmt.Printf("Tokens (%d)\n", len(res.Tokens))
		for _, tok := range res.Tokens {
			fmt.Println(" ", tok)
		}
		fmt.Println()
	}

	target := *outPath
	if target == "" {
		target = utils.WithExtension(fullPath, ".py")
	}
	if err := os.WriteFile(target, []byte(res.Python), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write output file %q: %v\n", target, err)
		os.Exit(1)
	}

	for _, diag := range res.Diagnostics {
		fmt.Fprintln(os.Stderr, diag)
	}
	fmt.Printf("wrote %s\n", target)
}
