package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/jaytaph/gosub-engine/parser"
)

// Reads HTML from the file given as the first argument, or from stdin,
// parses it and prints the document tree.
func main() {
	log.SetLevel(log.WarnLevel)

	var in io.Reader = os.Stdin
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			log.Fatalf("open %s: %v", os.Args[1], err)
		}
		defer f.Close()
		in = f
	}

	handle, parseErrors, err := parser.NewParser(in).Start()
	if err != nil {
		log.Fatalf("parse failed: %v", err)
	}
	for _, pe := range parseErrors {
		log.Warnf("parse error: %s", pe.Message)
	}

	fmt.Print(handle.Doc().String())
}
