package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"checkflow/pkg/checkparse"
	"checkflow/pkg/ocr"
)

// Debug tool: run the OCR + parse pipeline on one image and print the result.
func main() {
	f := flag.String("file", "", "check image file to read")
	raw := flag.Bool("raw", false, "also print the raw OCR text")
	flag.Parse()
	if *f == "" {
		log.Fatalf("-file required")
	}
	image, err := os.ReadFile(*f)
	if err != nil {
		log.Fatalf("read %s: %v", *f, err)
	}
	reader := checkparse.NewReader(ocr.NewEngine())
	check, err := reader.ReadCheck(context.Background(), image)
	if err != nil {
		log.Fatalf("read check: %v", err)
	}
	fmt.Println(check.String())
	if *raw {
		fmt.Printf("--- raw text ---\n%s\n", check.RawText)
	}
}
