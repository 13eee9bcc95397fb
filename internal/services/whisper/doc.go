// Package whisper shells out to the Whisper CLI for speech recognition.
//
// The tool is executed through uvx so no local Python environment management
// is required. Output is read back from the JSON transcript the CLI writes
// next to the audio file.
package whisper
