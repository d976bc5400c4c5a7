// Package profile adds optional pprof output to the keepsorted CLI.
//
// CPU profiling covers the whole sort run. Heap, allocs and goroutine
// profiles are snapshots taken when the run ends.
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	p := cfg.NewProfiler()
//	if err := p.Start(); err != nil {
//	    return err
//	}
//	defer p.Stop()
package profile
