package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lasercut/planetoids/internal/planetoid"
	"github.com/lasercut/planetoids/internal/render"
)

// Frame is one recorded tick: every active planetoid as a world-space mesh.
type Frame struct {
	Tick       uint64          `msgpack:"t"`
	Planetoids []PlanetoidView `msgpack:"p"`
}

type PlanetoidView struct {
	ID       uint64    `msgpack:"id"`
	Vertices []float32 `msgpack:"v"` // x0,y0,x1,y1,...
	Indices  []uint16  `msgpack:"i"`
	RGBA     uint32    `msgpack:"c"` // 0xRRGGBBAA, faded
	Fading   bool      `msgpack:"f,omitempty"`
}

// Snapshot captures the active planetoids of m.
func Snapshot(tick uint64, m *planetoid.Manager) Frame {
	active := m.Active()
	f := Frame{Tick: tick, Planetoids: make([]PlanetoidView, 0, len(active))}
	for _, p := range active {
		mesh := render.BuildMesh(p.WorldPolygon(), render.Faded(p.Color(), p.Alpha()))
		verts := make([]float32, 0, 2*len(mesh.Vertices))
		for _, v := range mesh.Vertices {
			verts = append(verts, float32(v.X()), float32(v.Y()))
		}
		c := mesh.Color
		f.Planetoids = append(f.Planetoids, PlanetoidView{
			ID:       uint64(p.ID()),
			Vertices: verts,
			Indices:  mesh.Indices,
			RGBA:     uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A),
			Fading:   p.Fading(),
		})
	}
	return f
}

// Recorder appends msgpack-encoded frames to a stream.
type Recorder struct {
	w      *bufio.Writer
	closer io.Closer
	enc    *msgpack.Encoder
	frames int
}

// Create opens path for writing, truncating any previous recording.
func Create(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording %s: %w", path, err)
	}
	r := NewRecorder(f)
	r.closer = f
	return r, nil
}

// NewRecorder writes frames to w. Close flushes but does not close w.
func NewRecorder(w io.Writer) *Recorder {
	bw := bufio.NewWriter(w)
	return &Recorder{w: bw, enc: msgpack.NewEncoder(bw)}
}

func (r *Recorder) Write(f Frame) error {
	if err := r.enc.Encode(&f); err != nil {
		return fmt.Errorf("encode frame %d: %w", f.Tick, err)
	}
	r.frames++
	return nil
}

// Frames is the number of frames written.
func (r *Recorder) Frames() int { return r.frames }

func (r *Recorder) Close() error {
	err := r.w.Flush()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// ReadAll decodes every frame in a recording.
func ReadAll(rd io.Reader) ([]Frame, error) {
	dec := msgpack.NewDecoder(bufio.NewReader(rd))
	var frames []Frame
	for {
		var f Frame
		if err := dec.Decode(&f); err != nil {
			if errors.Is(err, io.EOF) {
				return frames, nil
			}
			return frames, fmt.Errorf("decode frame %d: %w", len(frames), err)
		}
		frames = append(frames, f)
	}
}
