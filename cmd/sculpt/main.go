// Command sculpt replays a stream of sample points into an editing session
// and writes the resulting surface as a binary STL file.
//
// Points are read one per line as "x y z", optionally followed by the word
// "preview". Blank lines and lines starting with # are skipped.
//
//	sculpt -config session.yaml -o out.stl < points.txt
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/soypat/sculpt"
	"github.com/soypat/sculpt/helpers/sdfseed"
	"github.com/soypat/sculpt/internal/d3"
	"github.com/soypat/sculpt/render"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML session configuration. Defaults are used if empty")
		output     = flag.String("o", "", "output STL file. Writes to stdout if empty")
		verbose    = flag.Bool("v", false, "log session diagnostics to stderr")
	)
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("sculpt: ")

	fc := defaultFileConfig()
	if *configPath != "" {
		fp, err := os.Open(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		fc, err = loadConfig(fp)
		fp.Close()
		if err != nil {
			log.Fatalf("loading %s: %v", *configPath, err)
		}
	}
	cfg, err := fc.sessionConfig()
	if err != nil {
		log.Fatal(err)
	}
	if *verbose {
		cfg.Log = log.New(os.Stderr, "", log.Ltime)
	}
	sess, err := sculpt.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	st, err := replay(sess, os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
	mesh := sess.Mesh()
	bb := d3.Set(mesh.Positions).Bounds()
	log.Printf("%d points, %d previews, %d rejected: %d triangles spanning %v around %v",
		st.points, st.previews, st.rejected, mesh.NumTriangles(), bb.Size(), bb.Center())

	var w io.Writer = os.Stdout
	if *output != "" {
		fp, err := os.Create(*output)
		if err != nil {
			log.Fatal(err)
		}
		defer fp.Close()
		w = fp
	}
	bw := bufio.NewWriter(w)
	if err := render.WriteSTLFrom(bw, mesh.Renderer()); err != nil {
		log.Fatal(err)
	}
	if err := bw.Flush(); err != nil {
		log.Fatal(err)
	}
}

// fileConfig is the YAML layout of a session configuration file.
type fileConfig struct {
	sculpt.Config `yaml:",inline"`
	Seed          seedConfig `yaml:"seed"`
}

// seedConfig selects the initial shape of the session.
type seedConfig struct {
	// Shape is one of cube, tetrahedron, sphere or stl.
	Shape string `yaml:"shape"`
	// Points are the 4 corners of a tetrahedron. Random corners are drawn
	// using RandSeed when empty.
	Points   [][3]float64 `yaml:"points"`
	RandSeed int64        `yaml:"rand_seed"`
	// Radius and Cells configure the sphere tessellation.
	Radius float64 `yaml:"radius"`
	Cells  int     `yaml:"cells"`
	// File is the binary STL file an stl seed is read from. Vertices closer
	// than Weld are merged.
	File string  `yaml:"file"`
	Weld float64 `yaml:"weld"`
	// Scale, Angle (in degrees) about Axis and Position place the shape,
	// applied in that order. A zero Scale leaves the size unchanged.
	Scale    float64    `yaml:"scale"`
	Axis     [3]float64 `yaml:"axis"`
	Angle    float64    `yaml:"angle"`
	Position [3]float64 `yaml:"position"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Config: sculpt.DefaultConfig(),
		Seed:   seedConfig{Shape: "cube"},
	}
}

// loadConfig decodes a configuration file. Fields absent from the file keep
// their default values.
func loadConfig(r io.Reader) (fileConfig, error) {
	fc := defaultFileConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, err
	}
	return fc, nil
}

// sessionConfig resolves the seed and returns the session configuration.
func (fc fileConfig) sessionConfig() (sculpt.Config, error) {
	cfg := fc.Config
	seed, err := fc.Seed.build()
	if err != nil {
		return cfg, fmt.Errorf("seed: %w", err)
	}
	cfg.Seed = seed
	return cfg, cfg.Validate()
}

func (sc seedConfig) build() (sculpt.Seed, error) {
	seed, err := sc.shape()
	if err != nil {
		return seed, err
	}
	scale := sc.Scale
	if scale == 0 {
		scale = 1
	}
	var rot r3.Rotation
	axis := r3.Vec{X: sc.Axis[0], Y: sc.Axis[1], Z: sc.Axis[2]}
	if sc.Angle != 0 && axis != (r3.Vec{}) {
		rot = r3.NewRotation(sc.Angle*math.Pi/180, axis)
	}
	pos := r3.Vec{X: sc.Position[0], Y: sc.Position[1], Z: sc.Position[2]}
	return seed.Place(pos, r3.Vec{X: scale, Y: scale, Z: scale}, rot)
}

func (sc seedConfig) shape() (sculpt.Seed, error) {
	switch sc.Shape {
	case "", "cube":
		return sculpt.Cube(), nil
	case "tetrahedron":
		if len(sc.Points) == 0 {
			return sculpt.RandomTetrahedron(rand.New(rand.NewSource(sc.RandSeed))), nil
		}
		if len(sc.Points) != 4 {
			return sculpt.Seed{}, fmt.Errorf("tetrahedron needs 4 points, got %d", len(sc.Points))
		}
		var p [4]r3.Vec
		for i, v := range sc.Points {
			p[i] = r3.Vec{X: v[0], Y: v[1], Z: v[2]}
		}
		return sculpt.Tetrahedron(p[0], p[1], p[2], p[3])
	case "sphere":
		radius, cells := sc.Radius, sc.Cells
		if radius == 0 {
			radius = 1
		}
		if cells == 0 {
			cells = 16
		}
		return sdfseed.Sphere(radius, cells)
	case "stl":
		fp, err := os.Open(sc.File)
		if err != nil {
			return sculpt.Seed{}, err
		}
		defer fp.Close()
		model, err := render.ReadSTL(fp)
		if err != nil {
			return sculpt.Seed{}, err
		}
		return sculpt.FromTriangles(model, sc.Weld)
	}
	return sculpt.Seed{}, fmt.Errorf("unknown shape %q", sc.Shape)
}

type stats struct {
	points, previews, rejected int
}

// replay feeds the points read from r to ins. Insertions rejected by the
// session are counted and skipped, malformed input stops the replay.
func replay(ins sculpt.Inserter, r io.Reader) (stats, error) {
	var st stats
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		p, preview, err := parsePoint(text)
		if err != nil {
			return st, fmt.Errorf("line %d: %w", line, err)
		}
		st.points++
		if preview {
			st.previews++
		}
		_, err = ins.Insert(p, preview)
		switch {
		case errors.Is(err, sculpt.ErrTopology), errors.Is(err, sculpt.ErrDegenerate):
			st.rejected++
		case err != nil:
			return st, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return st, sc.Err()
}

func parsePoint(text string) (p r3.Vec, preview bool, err error) {
	fields := strings.Fields(text)
	switch {
	case len(fields) == 4 && fields[3] == "preview":
		preview = true
	case len(fields) != 3:
		return p, false, fmt.Errorf("want \"x y z [preview]\", got %q", text)
	}
	var xyz [3]float64
	for i := range xyz {
		xyz[i], err = strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return p, false, err
		}
	}
	return r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}, preview, nil
}
