// This tool prints the format and sample metadata of an exported wav file.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/modwav/wav"
)

const missingPathMessage = "You must pass the path of the wav file to inspect"

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

var errMissingPath = errors.New("missing path argument")

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errMissingPath
	}

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	dec := wav.NewDecoder(file)
	if err := dec.ReadMetadata(); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	fmt.Fprintf(out, "Channels: %d\n", dec.NumChans)
	fmt.Fprintf(out, "Sample rate: %d Hz\n", dec.SampleRate)
	fmt.Fprintf(out, "Bits per sample: %d\n", dec.BitDepth)
	fmt.Fprintf(out, "Frames: %d\n", dec.Frames())
	fmt.Fprintf(out, "Data length: %d bytes\n", dec.PCMSize)
	fmt.Fprintf(out, "Duration: %s\n", dec.Duration())

	if dec.Metadata == nil {
		fmt.Fprintln(out, "No metadata present")
		return nil
	}

	fmt.Fprintf(out, "Name: %s\n", dec.Metadata.Title)
	fmt.Fprintf(out, "Software: %s\n", dec.Metadata.Software)

	if dec.Metadata.Comments != "" {
		fmt.Fprintf(out, "Comments: %s\n", dec.Metadata.Comments)
	}

	if dec.Metadata.SamplerInfo != nil {
		for i, l := range dec.Metadata.SamplerInfo.Loops {
			fmt.Fprintf(out, "Loop [%d]: %s %d-%d\n", i, loopType(l.Type), l.Start, l.End)
		}
	}

	return nil
}

func loopType(t uint32) string {
	switch t {
	case wav.LoopForward:
		return "forward"
	case wav.LoopAlternating:
		return "ping-pong"
	case wav.LoopBackward:
		return "backward"
	default:
		return fmt.Sprintf("type %d", t)
	}
}
