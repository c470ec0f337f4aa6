package logging

import "sync"

// Captured is one entry held by a Capture logger.
type Captured struct {
	Level   Level
	Message string
	Fields  map[string]any
}

// Capture keeps entries in memory. Children created with With append to the
// parent's slice.
type Capture struct {
	mu      *sync.Mutex
	entries *[]Captured
	level   Level
	fields  []Field
}

// NewCapture returns a Capture logger recording everything at or above level.
func NewCapture(level Level) *Capture {
	return &Capture{mu: &sync.Mutex{}, entries: &[]Captured{}, level: level}
}

func (c *Capture) log(level Level, msg string, fields ...Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if level < c.level {
		return
	}
	*c.entries = append(*c.entries, Captured{Level: level, Message: msg, Fields: mergeFields(c.fields, fields)})
}

func (c *Capture) Debug(msg string, fields ...Field) { c.log(DebugLevel, msg, fields...) }
func (c *Capture) Info(msg string, fields ...Field)  { c.log(InfoLevel, msg, fields...) }
func (c *Capture) Warn(msg string, fields ...Field)  { c.log(WarnLevel, msg, fields...) }
func (c *Capture) Error(msg string, fields ...Field) { c.log(ErrorLevel, msg, fields...) }

func (c *Capture) With(fields ...Field) Logger {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &Capture{
		mu:      c.mu,
		entries: c.entries,
		level:   c.level,
		fields:  append(append([]Field(nil), c.fields...), fields...),
	}
}

func (c *Capture) SetLevel(level Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.level = level
}

func (c *Capture) GetLevel() Level {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.level
}

// Entries returns a copy of everything logged so far.
func (c *Capture) Entries() []Captured {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Captured(nil), *c.entries...)
}

// Messages returns the messages logged at level.
func (c *Capture) Messages(level Level) []string {
	var out []string
	for _, e := range c.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}
