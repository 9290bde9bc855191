package motion

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
)

// TraceWriter records samples as zstd-compressed JSON lines.
type TraceWriter struct {
	f   io.Closer
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewTraceWriter writes a trace to w. Close flushes the stream but does not
// close w.
func NewTraceWriter(w io.Writer) (*TraceWriter, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("motion: cannot create trace encoder: %w", err)
	}
	return &TraceWriter{
		enc: enc,
		w:   bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

// CreateTrace creates (or truncates) a trace file at path.
func CreateTrace(path string) (*TraceWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("motion: cannot create trace: %w", err)
	}
	tw, err := NewTraceWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	tw.f = f
	return tw, nil
}

// Write appends one sample.
func (t *TraceWriter) Write(s Sample) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if _, err := t.w.Write(b); err != nil {
		return err
	}
	return t.w.WriteByte('\n')
}

// Close flushes buffered samples and finishes the zstd frame.
func (t *TraceWriter) Close() error {
	if err := t.w.Flush(); err != nil {
		return err
	}
	if err := t.enc.Close(); err != nil {
		return err
	}
	if t.f != nil {
		return t.f.Close()
	}
	return nil
}

// ReadTrace decodes every sample from a compressed trace.
func ReadTrace(r io.Reader) ([]Sample, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("motion: cannot open trace: %w", err)
	}
	defer dec.Close()

	var samples []Sample
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var s Sample
		if err := json.Unmarshal(sc.Bytes(), &s); err != nil {
			return nil, fmt.Errorf("motion: trace line %d: %w", line, err)
		}
		samples = append(samples, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("motion: cannot read trace: %w", err)
	}
	return samples, nil
}

// TraceSensor replays a recorded trace file.
type TraceSensor struct {
	Path string

	// Realtime paces playback by the recorded timestamps.
	Realtime bool
}

// Available reports whether the trace file exists.
func (t *TraceSensor) Available() bool {
	info, err := os.Stat(t.Path)
	return err == nil && !info.IsDir()
}

// Samples loads the trace and streams it.
func (t *TraceSensor) Samples(ctx context.Context) (<-chan Sample, error) {
	f, err := os.Open(t.Path)
	if err != nil {
		return nil, fmt.Errorf("motion: cannot open trace: %w", err)
	}
	samples, err := ReadTrace(f)
	_ = f.Close()
	if err != nil {
		return nil, err
	}

	ch := make(chan Sample)
	go func() {
		defer close(ch)
		for i, s := range samples {
			if t.Realtime && i > 0 {
				gap := time.Duration((s.Timestamp - samples[i-1].Timestamp) * float64(time.Second))
				if gap > 0 {
					select {
					case <-time.After(gap):
					case <-ctx.Done():
						return
					}
				}
			}
			select {
			case ch <- s:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}
