package objective

import (
	"math"
	"sync"
)

// TaskCompletion records one finished task. Times are in seconds.
type TaskCompletion struct {
	TaskID      string  `json:"task_id"`
	AGVID       string  `json:"agv_id"`
	Start       float64 `json:"start_time"`
	End         float64 `json:"end_time"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Distance    float64 `json:"distance"`
}

// StateRecord is an interval an AGV spent in one state.
type StateRecord struct {
	AGVID string   `json:"agv_id"`
	State AGVState `json:"state"`
	Start float64  `json:"start_time"`
	End   float64  `json:"end_time"`
}

// Recorder collects simulation records. It is safe for concurrent use.
type Recorder struct {
	mu          sync.Mutex
	completions []TaskCompletion
	states      []StateRecord
	conflicts   []Conflict
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordCompletion(c TaskCompletion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completions = append(r.completions, c)
}

func (r *Recorder) RecordState(s StateRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *Recorder) RecordConflict(c Conflict) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts = append(r.conflicts, c)
}

// Summary aggregates the recorded run.
type Summary struct {
	CompletedTasks        int                `json:"completed_tasks"`
	MeanCompletionTime    float64            `json:"mean_completion_time"`
	ThroughputPerHour     float64            `json:"throughput_per_hour"`
	PerAGVThroughput      map[string]float64 `json:"per_agv_throughput"`
	Utilization           float64            `json:"utilization"`
	ProductiveUtilization float64            `json:"productive_utilization"`
	IdlePercent           float64            `json:"idle_percent"`
	AvgDistancePerTask    float64            `json:"avg_distance_per_task"`
	DistanceByAGV         map[string]float64 `json:"distance_by_agv"`
	WorkloadCV            float64            `json:"workload_cv"`
	ConflictCount         int                `json:"conflict_count"`
	ConflictsPerHour      float64            `json:"conflicts_per_hour"`
	ConflictsPerTask      float64            `json:"conflicts_per_task"`
	ConflictsByType       map[string]int     `json:"conflicts_by_type"`
	AvgResolutionTime     float64            `json:"avg_resolution_time"`
}

// Summary computes fleet metrics over a run of periodHours. Rates are zero
// when periodHours is not positive.
func (r *Recorder) Summary(periodHours float64) Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Summary{
		CompletedTasks:   len(r.completions),
		PerAGVThroughput: make(map[string]float64),
		DistanceByAGV:    make(map[string]float64),
		ConflictCount:    len(r.conflicts),
		ConflictsByType:  make(map[string]int),
	}

	var duration, dist float64
	perAGV := make(map[string]int)
	for _, c := range r.completions {
		duration += c.End - c.Start
		dist += c.Distance
		perAGV[c.AGVID]++
		s.DistanceByAGV[c.AGVID] += c.Distance
	}
	if n := len(r.completions); n > 0 {
		s.MeanCompletionTime = duration / float64(n)
		s.AvgDistancePerTask = dist / float64(n)
		s.ConflictsPerTask = float64(len(r.conflicts)) / float64(n)
	}
	if periodHours > 0 {
		s.ThroughputPerHour = float64(len(r.completions)) / periodHours
		s.ConflictsPerHour = float64(len(r.conflicts)) / periodHours
		for agv, n := range perAGV {
			s.PerAGVThroughput[agv] = float64(n) / periodHours
		}
	}
	s.WorkloadCV = coefficientOfVariation(s.DistanceByAGV)

	var total, busy, productive, idle float64
	for _, st := range r.states {
		d := st.End - st.Start
		total += d
		if st.State.Busy() {
			busy += d
		}
		if st.State.Productive() {
			productive += d
		}
		if st.State == StateIdle || st.State == StateWaiting {
			idle += d
		}
	}
	if total > 0 {
		s.Utilization = busy / total
		s.ProductiveUtilization = productive / total
		s.IdlePercent = idle / total * 100
	}

	resolution := 0.0
	for _, c := range r.conflicts {
		s.ConflictsByType[c.Type]++
		resolution += c.ResolutionTime
	}
	if len(r.conflicts) > 0 {
		s.AvgResolutionTime = resolution / float64(len(r.conflicts))
	}
	return s
}

// coefficientOfVariation is the population standard deviation over the
// mean, or 0 for an empty or zero-mean set.
func coefficientOfVariation(values map[string]float64) float64 {
	if len(values) == 0 {
		return 0
	}
	keys := sortedKeys(values)
	mean := 0.0
	for _, k := range keys {
		mean += values[k]
	}
	mean /= float64(len(keys))
	if mean <= 0 {
		return 0
	}
	variance := 0.0
	for _, k := range keys {
		d := values[k] - mean
		variance += d * d
	}
	variance /= float64(len(keys))
	return math.Sqrt(variance) / mean
}
