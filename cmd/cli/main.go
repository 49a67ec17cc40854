// chatstat - Chat Transcript Statistics
//
// chatstat parses exported chat transcripts, reassembles multi-line messages
// and reports participant, hour, weekday and word frequencies.
package main

import (
	"os"

	"github.com/ccollicutt/chatstat/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
