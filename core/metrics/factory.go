package metrics

import "github.com/kilianp07/tollfee/core/factory"

var recorderRegistry = factory.NewRegistry[FeeRecorder]()

// RegisterFeeRecorder adds a recorder factory identified by name.
func RegisterFeeRecorder(name string, f factory.Factory[FeeRecorder]) error {
	return recorderRegistry.Register(name, f)
}

// RecorderTypes lists the registered recorder type names.
func RecorderTypes() []string {
	return recorderRegistry.Names()
}

// NewFeeRecorder creates a FeeRecorder from the provided configuration.
func NewFeeRecorder(cfgs []factory.ModuleConfig) (FeeRecorder, error) {
	if len(cfgs) == 0 {
		return NopRecorder{}, nil
	}
	if len(cfgs) == 1 {
		return recorderRegistry.Create(cfgs[0])
	}
	recs := make([]FeeRecorder, len(cfgs))
	for i, c := range cfgs {
		r, err := recorderRegistry.Create(c)
		if err != nil {
			return nil, err
		}
		recs[i] = r
	}
	return NewMultiRecorder(recs...), nil
}
