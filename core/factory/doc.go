// Package factory instantiates pluggable components from configuration.
// A component is described by a ModuleConfig: a type name and a map of raw
// settings that the registered Factory decodes with Decode.
//
//	reg := factory.NewRegistry[metrics.FeeRecorder]()
//	_ = reg.Register("log", func(conf map[string]any) (metrics.FeeRecorder, error) {
//	    var c struct{ Component string `json:"component"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return metrics.NewLogRecorder(logger.New(c.Component)), nil
//	})
//	rec, err := reg.Create(factory.ModuleConfig{Type: "log"})
package factory
