// This tool lists the instruments of a tracker module and the samples each
// of them plays.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/modwav"
	"github.com/cwbudde/modwav/tracker"
)

const missingPathMessage = "You must pass the path of the module to inspect"

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
	flagSet := flag.NewFlagSet("modinfo", flag.ContinueOnError)
	showEmpty := flagSet.Bool("empty", false, "also list instruments without samples")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if flagSet.NArg() < 1 {
		return errMissingPath
	}

	h, err := tracker.Open(flagSet.Arg(0))
	if err != nil {
		return err
	}
	defer h.Close()

	info, err := h.Info()
	if err != nil {
		return err
	}

	if len(info.Modules) == 0 {
		return modwav.ErrNoModule
	}

	mod := info.Modules[0]

	fmt.Fprintf(out, "Format: %s\n", mod.Format)
	fmt.Fprintf(out, "Name: %s\n", mod.Name)
	fmt.Fprintf(out, "Instruments: %d\n", len(mod.Instruments))
	fmt.Fprintf(out, "Samples: %d\n", len(mod.Samples))

	for i, ins := range mod.Instruments {
		if ins == nil || (ins.NumSubSamples == 0 && !*showEmpty) {
			continue
		}

		fmt.Fprintf(out, "[%02x] %q, %d sub-sample(s)\n", i, ins.Name, ins.NumSubSamples)

		resolved, err := modwav.ResolveSubSamples(mod, i)
		if err != nil {
			return err
		}

		for _, rs := range resolved {
			if rs.Err != nil {
				fmt.Fprintf(out, "\t%02x: %v\n", rs.SubSample, rs.Err)
				continue
			}

			fmt.Fprintf(out, "\t%02x: %s\n", rs.SubSample, describe(rs.Sample, ins.SubSamples[rs.SubSample]))
		}
	}

	return nil
}

func describe(smp *modwav.Sample, sub modwav.SubSample) string {
	g, err := modwav.SampleGeometry(smp)
	if err != nil {
		return err.Error()
	}

	loop := "no loop"
	switch {
	case smp.Looped() && smp.Flags.Has(modwav.SampleLoopBidir):
		loop = fmt.Sprintf("ping-pong loop %d-%d", smp.LoopStart, smp.LoopEnd)
	case smp.Looped():
		loop = fmt.Sprintf("loop %d-%d", smp.LoopStart, smp.LoopEnd)
	}

	return fmt.Sprintf("sample %d %q, %d frames, %d-bit, %d bytes, %s, volume %d, note %+d, finetune %+d",
		smp.ID, smp.Name, g.Frames(), g.BitsPerSample(), g.ByteLength, loop,
		sub.Volume, sub.RelativeNote, sub.FineTune)
}
