package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain field helpers. Keys are shared by the converter, the CLI and the
// HTTP server so log lines can be joined on them.

func Component(name string) Field { return String("component", name) }
func Operation(op string) Field   { return String("operation", op) }
func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
func Count(n int) Field      { return Int("count", n) }
func Path(p string) Field    { return String("path", p) }
func RunID(id string) Field  { return String("run_id", id) }
func NodeID(id string) Field { return String("node_id", id) }
func EdgeID(id string) Field { return String("edge_id", id) }
func ZoneID(id string) Field { return String("zone_id", id) }

// Warehouse names the layout being converted.
func Warehouse(name string) Field { return String("warehouse", name) }

// Algorithm names the shortest-path algorithm that produced a matrix.
func Algorithm(name string) Field { return String("algorithm", name) }

func Nodes(n int) Field { return Int("nodes", n) }
func Edges(n int) Field { return Int("edges", n) }

// Score is a feasibility score on the 0-10 scale.
func Score(s float64) Field { return Float64("score", s) }
func Grade(g string) Field  { return String("grade", g) }
