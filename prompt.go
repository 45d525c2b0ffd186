package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// prompter drives the first time setup questions. Reader and writer are injectable
// for tests.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter() *prompter {
	return &prompter{in: bufio.NewScanner(os.Stdin), out: os.Stdout}
}

func (p *prompter) ask(msg string) (string, bool) {
	clearScreen(p.out)
	fmt.Fprint(p.out, msg)

	if !p.in.Scan() {
		return "", false
	}

	return strings.TrimSpace(p.in.Text()), true
}

func (p *prompter) apiKey() (string, bool) {
	for {
		key, ok := p.ask("Enter your Steam Web API Key (https://steamcommunity.com/dev/apikey): ")
		if !ok {
			return "", false
		}

		if validKey(key) {
			return key, true
		}
	}
}

func (p *prompter) includeKeywords() ([]string, bool) {
	for {
		value, ok := p.ask("Enter the semicolon separated keywords to search for (quakecon;qcon): ")
		if !ok {
			return nil, false
		}

		if value != "" {
			return splitKeywords(value), true
		}
	}
}

func (p *prompter) excludeKeywords() []string {
	value, _ := p.ask("Enter the semicolon separated keywords to exclude from results (sydney;denver): ")

	return splitKeywords(value)
}

func (p *prompter) privateNetworks() bool {
	value, _ := p.ask("Do you want to include private networks in search results? (y/n): ")

	return strings.ToLower(value) == "y"
}

func splitKeywords(value string) []string {
	return strings.Split(value, ";")
}
