package modwav

import (
	"errors"
	"fmt"
)

var errNotStarted = errors.New("player not started")

// stubHandle serves synthetic samples without a module file.
type stubHandle struct {
	info    *ModuleInfo
	pcm     map[SampleID][]byte
	started bool
	closed  bool
	calls   []SampleID
}

func (h *stubHandle) PlayerStart(sampleRate int, flags int) error {
	h.started = true

	return nil
}

func (h *stubHandle) Info() (*ModuleInfo, error) {
	return h.info, nil
}

func (h *stubHandle) SamplePCM(id SampleID) ([]byte, error) {
	if !h.started {
		return nil, errNotStarted
	}

	h.calls = append(h.calls, id)

	data, ok := h.pcm[id]
	if !ok {
		return nil, fmt.Errorf("no data for sample %d", id)
	}

	return data, nil
}

func (h *stubHandle) Close() error {
	h.closed = true

	return nil
}

type stubSample struct {
	length int
	flags  SampleFlags
	name   string
}

// newStub builds a module whose instruments reference the given sample ids
// and a sample table built from samples. PCM data is a ramp of the right
// byte length for each sample.
func newStub(samples []stubSample, instruments ...[]SampleID) *stubHandle {
	mod := &Module{Name: "stub", Format: "stub"}
	h := &stubHandle{
		info:    &ModuleInfo{Modules: []*Module{mod}},
		pcm:     make(map[SampleID][]byte),
		started: true,
	}

	for i, s := range samples {
		smp := &Sample{ID: SampleID(i), Name: s.name, Length: s.length, Flags: s.flags}
		mod.Samples = append(mod.Samples, smp)

		g, _ := SampleGeometry(smp)

		data := make([]byte, g.ByteLength)
		for j := range data {
			data[j] = byte(i*16 + j)
		}

		h.pcm[smp.ID] = data
	}

	for i, ids := range instruments {
		ins := &Instrument{Name: fmt.Sprintf("ins%d", i), NumSubSamples: len(ids)}
		for _, id := range ids {
			ins.SubSamples = append(ins.SubSamples, SubSample{SampleID: id, Volume: 64, Pan: 128})
		}

		mod.Instruments = append(mod.Instruments, ins)
	}

	return h
}
