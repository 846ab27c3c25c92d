package simulation

import (
	"fmt"
	"runtime"
	"sync"
)

// trialJob is one simulation job handed to a worker.
type trialJob struct {
	TrialID int
	Seed    uint64
}

// DeriveSeed mixes a base seed with a trial index into a distinct,
// deterministic per-trial seed (splitmix64 finalizer). Both execution
// modes use it, so trial i sees the same stream regardless of mode.
func DeriveSeed(baseSeed uint64, trial int) uint64 {
	x := baseSeed + uint64(trial) + 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// RunBatch runs numTrials games strictly sequentially, trial i seeded
// with DeriveSeed(baseSeed, i). Only the first trial receives a trace
// writer, so verbose single-game runs stay reproducible.
func RunBatch(cfg Config, numTrials int, baseSeed uint64) Stats {
	results := make([]GameResult, 0, numTrials)
	for i := 0; i < numTrials; i++ {
		trialCfg := cfg
		if i > 0 {
			trialCfg.Trace = nil
		}
		results = append(results, runTrial(trialCfg, DeriveSeed(baseSeed, i)))
	}
	return Aggregate(results)
}

// RunBatchParallel runs the batch over one worker per CPU.
func RunBatchParallel(cfg Config, numTrials int, baseSeed uint64) Stats {
	return RunBatchParallelN(cfg, numTrials, baseSeed, runtime.NumCPU())
}

// RunBatchParallelN fans the batch out over a worker pool. Trials share
// no mutable state; results are collected unordered and reduced by the
// order-independent Aggregate.
func RunBatchParallelN(cfg Config, numTrials int, baseSeed uint64, numWorkers int) Stats {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	cfg.Trace = nil

	jobs := make(chan trialJob, numTrials)
	results := make(chan GameResult, numTrials)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- runTrial(cfg, job.Seed)
			}
		}()
	}

	for i := 0; i < numTrials; i++ {
		jobs <- trialJob{TrialID: i, Seed: DeriveSeed(baseSeed, i)}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	all := make([]GameResult, 0, numTrials)
	for r := range results {
		all = append(all, r)
	}
	return Aggregate(all)
}

// runTrial wraps RunSingleGame so a panicking trial is dropped from
// the aggregate instead of aborting the batch.
func runTrial(cfg Config, seed uint64) (result GameResult) {
	defer func() {
		if r := recover(); r != nil {
			result = GameResult{Error: fmt.Sprintf("trial panic: %v", r)}
		}
	}()
	return RunSingleGame(cfg, seed)
}

// AnalyzeBatch runs numTrials cutoff-turn analyses sequentially.
func AnalyzeBatch(cfg Config, numTrials int, baseSeed uint64) DiagStats {
	diags := make([]Diagnosis, 0, numTrials)
	for i := 0; i < numTrials; i++ {
		diags = append(diags, analyzeTrial(cfg, DeriveSeed(baseSeed, i)))
	}
	return AggregateDiagnoses(diags)
}

// AnalyzeBatchParallelN fans analyses out over a worker pool.
func AnalyzeBatchParallelN(cfg Config, numTrials int, baseSeed uint64, numWorkers int) DiagStats {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	cfg.Trace = nil

	jobs := make(chan trialJob, numTrials)
	results := make(chan Diagnosis, numTrials)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- analyzeTrial(cfg, job.Seed)
			}
		}()
	}

	for i := 0; i < numTrials; i++ {
		jobs <- trialJob{TrialID: i, Seed: DeriveSeed(baseSeed, i)}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	all := make([]Diagnosis, 0, numTrials)
	for d := range results {
		all = append(all, d)
	}
	return AggregateDiagnoses(all)
}

func analyzeTrial(cfg Config, seed uint64) (diag Diagnosis) {
	defer func() {
		if r := recover(); r != nil {
			diag = Diagnosis{Error: fmt.Sprintf("trial panic: %v", r)}
		}
	}()
	return Analyze(cfg, seed)
}
