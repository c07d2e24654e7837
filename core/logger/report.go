package logger

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"time"
)

// Entry is one record of a JSON lines log.
type Entry struct {
	Time      time.Time `json:"time"`
	Level     string    `json:"level"`
	Message   string    `json:"msg"`
	SessionID string    `json:"session_id"`
	Event     string    `json:"event"`

	User       string   `json:"user,omitempty"`
	RemoteAddr string   `json:"remote_addr,omitempty"`
	Command    string   `json:"command,omitempty"`
	Args       []string `json:"args,omitempty"`
	Status     int      `json:"status,omitempty"`
	Context    string   `json:"context,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *Entry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry Entry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       int        `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	RunCommand        RunCommandReport        `json:"run_command_report"`
	UnknownCommand    UnknownCommandReport    `json:"unknown_command_report"`
	InvalidInvocation InvalidInvocationReport `json:"invalid_invocation_report"`
	Panic             PanicReport             `json:"panic_report"`
}

func (r *Report) Update(le *Entry) {
	r.LogEntries++

	switch le.Event {
	case EventSessionStart:
		r.Sessions++
	case EventRunCommand:
		r.RunCommand.update(le)
	case EventUnknownCommand:
		r.UnknownCommand.update(le)
	case EventInvalidInvocation:
		r.InvalidInvocation.update(le)
	case EventPanic:
		r.Panic.update(le)
	case "":
		// Plain diagnostic message.
	default:
		r.InvalidEntries.Increment(le.Event)
	}
}

type RunCommandReport struct {
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	// Statuses returned by commands
	Statuses StrCounter `json:"statuses"`
}

func (r *RunCommandReport) update(le *Entry) {
	r.CommandNames.Increment(le.Command)
	r.Statuses.Increment(strconv.Itoa(le.Status))
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(le *Entry) {
	r.CommandNames.Increment(le.Command)
}

type InvalidInvocationReport struct {
	Errors *PathCounter `json:"errors"`
}

func (r *InvalidInvocationReport) update(le *Entry) {
	if r.Errors == nil {
		r.Errors = NewPathCounter("command", "error")
	}
	r.Errors.Increment(le.Command, le.Error)
}

type PanicReport struct {
	Contexts []string `json:"contexts"`
}

func (r *PanicReport) update(le *Entry) {
	r.Contexts = append(r.Contexts, le.Context)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns how many times key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implements custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts tuples of strings.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Count returns how many times the tuple was seen.
func (ctr *PathCounter) Count(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implements custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
