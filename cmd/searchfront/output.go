package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samvad-hq/searchfront/pkg/highlight"
)

const (
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// emphasize renders <b>-marked text for a terminal.
func emphasize(markup string) string {
	segs, err := highlight.Parse(markup)
	if err != nil {
		return markup
	}
	return highlight.Render(segs, ansiBold, ansiReset)
}
