package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// ErrUnknownProfile indicates a snapshot profile the runtime does not know.
var ErrUnknownProfile = errors.New("unknown profile")

// Profiler controls one profiling session.
//
// Call [Profiler.Start] before sorting and [Profiler.Stop] afterwards to
// write all enabled profiles.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cpuFile *os.File
	Config
}

// Start sets the memory profile rate and starts CPU profiling if enabled.
// It does nothing when no profile is configured.
func (p *Profiler) Start() error {
	if !p.Enabled() {
		return nil
	}

	if p.MemProfileRate > 0 {
		runtime.MemProfileRate = p.MemProfileRate
	}

	if p.CPUProfile == "" {
		return nil
	}

	f, err := os.Create(p.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create CPU profile: %w", err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return errors.Join(fmt.Errorf("start CPU profile: %w", err), f.Close())
	}

	p.cpuFile = f

	return nil
}

// Stop stops CPU profiling and writes the enabled snapshot profiles. Every
// profile is attempted; failures are joined.
func (p *Profiler) Stop() error {
	var errs []error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("close CPU profile: %w", err))
		}

		p.cpuFile = nil
	}

	snapshots := []struct {
		name string
		path string
	}{
		{"heap", p.HeapProfile},
		{"allocs", p.AllocsProfile},
		{"goroutine", p.GoroutineProfile},
	}

	for _, s := range snapshots {
		if s.path == "" {
			continue
		}

		if s.name == "heap" {
			// Heap profiles reflect the last completed GC.
			runtime.GC()
		}

		err := writeProfile(s.name, s.path)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func writeProfile(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("write %s profile: %w", name, err), f.Close())
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close %s profile: %w", name, err)
	}

	return nil
}
