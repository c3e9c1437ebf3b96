//go:build js && wasm
// +build js,wasm

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"syscall/js"

	"github.com/himanishpuri/SyncLyrics/pkg/synclyrics"
)

// Error codes returned to JavaScript. A rejected document reports
// ErrorParseBase plus its synclyrics.ErrorKind.
const (
	ErrorNone = iota
	ErrorInvalidArgs
	ErrorProcessing

	ErrorParseBase = 10
)

var parser = synclyrics.NewParser()

// Parses a TTML document and returns its lyrics as a JSON string.
// Returns: {error: number, data: string, kind?: string}
func parseLyrics(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected 1 argument: ttml")
	}
	if args[0].Type() != js.TypeString {
		return makeErrorResponse(ErrorInvalidArgs, "ttml must be a string")
	}

	doc, err := parser.Parse(args[0].String())
	if err != nil {
		var pe *synclyrics.ParseError
		if errors.As(err, &pe) {
			result := makeErrorResponse(ErrorParseBase+int(pe.Kind), pe.Error())
			result.Set("kind", pe.Kind.String())
			return result
		}
		return makeErrorResponse(ErrorProcessing, err.Error())
	}

	out, err := synclyrics.Serialize(doc)
	if err != nil {
		return makeErrorResponse(ErrorProcessing, fmt.Sprintf("Failed to serialize lyrics: %v", err))
	}

	result := js.Global().Get("Object").New()
	result.Set("error", ErrorNone)
	result.Set("data", out)
	return result
}

// Finds the line to highlight for a playback position.
// Args: lyricsJSON (output of parseLyrics), seconds.
// Returns: {error: number, data: number} with -1 when no line is active.
func activeLine(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected 2 arguments: lyricsJSON, seconds")
	}
	if args[0].Type() != js.TypeString {
		return makeErrorResponse(ErrorInvalidArgs, "lyricsJSON must be a string")
	}
	if args[1].Type() != js.TypeNumber {
		return makeErrorResponse(ErrorInvalidArgs, "seconds must be a number")
	}

	var doc synclyrics.LyricsDocument
	if err := json.Unmarshal([]byte(args[0].String()), &doc); err != nil {
		return makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("Invalid lyrics JSON: %v", err))
	}

	idx, _ := synclyrics.ActiveLine(&doc, args[1].Float())

	result := js.Global().Get("Object").New()
	result.Set("error", ErrorNone)
	result.Set("data", idx)
	return result
}

func makeErrorResponse(errorCode int, message string) js.Value {
	result := js.Global().Get("Object").New()
	result.Set("error", errorCode)
	result.Set("data", message)
	return result
}

func main() {
	console := js.Global().Get("console")
	if !console.IsUndefined() {
		console.Call("log", "🔧 SyncLyrics WASM module initializing...")
	}

	done := make(chan struct{})

	js.Global().Set("parseLyrics", js.FuncOf(parseLyrics))
	js.Global().Set("activeLine", js.FuncOf(activeLine))

	if !console.IsUndefined() {
		console.Call("log", "📝 parseLyrics and activeLine functions registered")
	}

	window := js.Global().Get("window")
	if !window.IsUndefined() {
		eventInit := js.Global().Get("Object").New()
		event := js.Global().Get("CustomEvent").New("wasmReady", eventInit)
		window.Call("dispatchEvent", event)
	} else if !console.IsUndefined() {
		console.Call("warn", "window is undefined, wasmReady event not dispatched")
	}

	if !console.IsUndefined() {
		console.Call("log", "✅ SyncLyrics WASM module loaded and ready")
	}

	<-done
}
