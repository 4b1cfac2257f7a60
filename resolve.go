package modwav

// ResolvedSample pairs a sub-sample index with its sample record. Err is set
// instead of Sample when the sub-sample's id does not resolve.
type ResolvedSample struct {
	SubSample int
	Sample    *Sample
	Err       error
}

// ResolveSubSamples returns the samples referenced by an instrument, in
// declaration order. An out of range instrument is an error. Sub-samples
// whose id is unknown are still returned, carrying a
// *SampleResolutionError, so one bad reference does not hide the others.
func ResolveSubSamples(mod *Module, instrument int) ([]ResolvedSample, error) {
	if mod == nil {
		return nil, ErrNoModule
	}

	if instrument < 0 || instrument >= len(mod.Instruments) || mod.Instruments[instrument] == nil {
		return nil, &InstrumentRangeError{Instrument: instrument, Count: len(mod.Instruments)}
	}

	ins := mod.Instruments[instrument]

	n := min(ins.NumSubSamples, len(ins.SubSamples))
	out := make([]ResolvedSample, 0, n)

	for i := range n {
		id := ins.SubSamples[i].SampleID

		smp := lookupSample(mod, id)
		if smp == nil {
			out = append(out, ResolvedSample{
				SubSample: i,
				Err:       &SampleResolutionError{Instrument: instrument, SubSample: i, SampleID: id},
			})

			continue
		}

		out = append(out, ResolvedSample{SubSample: i, Sample: smp})
	}

	return out, nil
}

func lookupSample(mod *Module, id SampleID) *Sample {
	if id < 0 || int(id) >= len(mod.Samples) {
		return nil
	}

	return mod.Samples[id]
}
