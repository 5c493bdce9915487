package analysis

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"motorbench/pkg/grid"
	"motorbench/pkg/motor"
	"motorbench/pkg/params"
)

// RunParallel solves the operating grid in contiguous row blocks, one worker
// goroutine per block, and stitches the results back in row order. The
// per-cell iteration has no cross-cell coupling, so the partition is exact:
// parallel and serial runs produce identical numbers.
//
// workers <= 0 selects runtime.NumCPU().
func RunParallel(p params.Parameters, current, shaftRPM *grid.Grid, s Settings, workers int) (*Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	curChunks := grid.SplitRows(current, workers)
	rpmChunks := grid.SplitRows(shaftRPM, workers)

	chunkResults := make([]*Result, len(curChunks))
	chunkErrs := make([]error, len(curChunks))

	var wg sync.WaitGroup
	for i := range curChunks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start := time.Now()

			m, err := motor.New(p)
			if err != nil {
				chunkErrs[i] = err
				return
			}
			res, err := NewThermal(m, s).Run(curChunks[i], rpmChunks[i])
			if err != nil {
				chunkErrs[i] = fmt.Errorf("chunk %d: %w", i, err)
				return
			}
			chunkResults[i] = res

			log.WithFields(log.Fields{
				"chunk": i,
				"rows":  curChunks[i].Rows,
				"took":  time.Since(start),
			}).Debug("grid chunk solved")
		}(i)
	}
	wg.Wait()

	for _, err := range chunkErrs {
		if err != nil {
			return nil, err
		}
	}
	return concatResults(chunkResults)
}

func concatResults(parts []*Result) (*Result, error) {
	out := &Result{}
	join := func(dst **grid.Grid, pick func(*Result) *grid.Grid) error {
		blocks := make([]*grid.Grid, len(parts))
		for i, p := range parts {
			blocks[i] = pick(p)
		}
		g, err := grid.ConcatRows(blocks)
		if err != nil {
			return err
		}
		*dst = g
		return nil
	}

	steps := []struct {
		dst  **grid.Grid
		pick func(*Result) *grid.Grid
	}{
		{&out.OutputPower, func(r *Result) *grid.Grid { return r.OutputPower }},
		{&out.TotalLoss, func(r *Result) *grid.Grid { return r.TotalLoss }},
		{&out.Efficiency, func(r *Result) *grid.Grid { return r.Efficiency }},
		{&out.Torque, func(r *Result) *grid.Grid { return r.Torque }},
		{&out.Voltage, func(r *Result) *grid.Grid { return r.Voltage }},
		{&out.Current, func(r *Result) *grid.Grid { return r.Current }},
		{&out.RPM, func(r *Result) *grid.Grid { return r.RPM }},
		{&out.FluxDensity, func(r *Result) *grid.Grid { return r.FluxDensity }},
		{&out.MotorTemp, func(r *Result) *grid.Grid { return r.MotorTemp }},
	}
	for _, s := range steps {
		if err := join(s.dst, s.pick); err != nil {
			return nil, err
		}
	}
	return out, nil
}
