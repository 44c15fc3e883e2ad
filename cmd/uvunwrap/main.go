// Command uvunwrap computes conformal UV layouts for OBJ and glTF meshes and
// edits the seam lists kept for them.
//
// Usage:
//
//	uvunwrap unwrap [flags] in.obj|in.gltf|in.glb
//	uvunwrap seam add|remove|clear|show|list [flags] [edge ids]
//	uvunwrap edges in.obj|in.gltf|in.glb
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/unwrap"
	"github.com/gogpu/unwrap/meshio"
	"github.com/gogpu/unwrap/preview"
	"github.com/gogpu/unwrap/seamstore"
)

var printer = message.NewPrinter(language.English)

func main() {
	log.SetFlags(0)
	log.SetPrefix("uvunwrap: ")
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "unwrap":
		err = runUnwrap(os.Args[2:])
	case "seam":
		err = runSeam(os.Args[2:])
	case "edges":
		err = runEdges(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  uvunwrap unwrap [flags] in.obj|in.gltf|in.glb
  uvunwrap seam add|remove|clear|show|list -db dir -key name [flags] [edge ids]
  uvunwrap edges in.obj|in.gltf|in.glb

Run a subcommand with -h for its flags.`)
}

func runUnwrap(args []string) error {
	fs := flag.NewFlagSet("unwrap", flag.ExitOnError)
	var (
		output   = fs.String("o", "", "output mesh (default: <input>_uv<ext>)")
		layer    = fs.Int("layer", -1, "UV layer to write (default: append a new layer)")
		seamList = fs.String("seams", "", "comma separated seam edge ids")
		seamFile = fs.String("seamfile", "", "seam data file")
		db       = fs.String("db", "", "seam store directory")
		key      = fs.String("key", "", "seam store key (default: input file name)")
		tol      = fs.Float64("tol", unwrap.DefaultTolerance, "solver tolerance")
		iter     = fs.Int("iter", unwrap.DefaultIterationFactor, "solver iteration factor")
		visits   = fs.Int("visits", unwrap.DefaultEndpointVisitLimit, "seam endpoint visit limit")
		noPack   = fs.Bool("nopack", false, "skip chart packing")
		strict   = fs.Bool("strict", false, "fail on vertices shared by more than two charts")
		png      = fs.String("preview", "", "write a PNG of the layout")
		size     = fs.Int("size", 512, "preview size in pixels")
		verbose  = fs.Bool("v", false, "log solver and split statistics")
	)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("unwrap: expected one input mesh, got %d", fs.NArg())
	}
	in := fs.Arg(0)
	if *verbose {
		unwrap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	m, err := meshio.Load(in)
	if err != nil {
		return err
	}

	seams, err := parseIDs(*seamList)
	if err != nil {
		return err
	}
	if *seamFile != "" {
		f, err := os.Open(*seamFile)
		if err != nil {
			return err
		}
		ids, err := unwrap.LoadSeamData(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", *seamFile, err)
		}
		seams = append(seams, ids...)
	}
	if *db != "" {
		ids, err := loadStored(*db, storeKey(*key, in))
		if err != nil {
			return err
		}
		seams = append(seams, ids...)
	}

	if *layer < 0 {
		*layer = m.NumUVLayers()
	}
	opts := []unwrap.Option{
		unwrap.WithUVLayer(*layer),
		unwrap.WithTolerance(*tol),
		unwrap.WithIterationFactor(*iter),
		unwrap.WithEndpointVisitLimit(*visits),
	}
	if *noPack {
		opts = append(opts, unwrap.WithoutPacking())
	}
	if *strict {
		opts = append(opts, unwrap.WithStrictTopology())
	}

	res, err := unwrap.Unwrap(m, m, seams, opts...)
	if err != nil {
		return err
	}
	report(in, m, res)

	if *output == "" {
		ext := filepath.Ext(in)
		*output = strings.TrimSuffix(in, ext) + "_uv" + ext
	}
	if err := meshio.Save(*output, m, res.UVLayer); err != nil {
		return err
	}
	printer.Printf("wrote %s (layer %d)\n", *output, res.UVLayer)

	if *png != "" {
		img, err := preview.Render(m, res.UVLayer, *size,
			preview.WithLabel(printer.Sprintf("%s  %d charts", filepath.Base(in), res.Charts)))
		if err != nil {
			return err
		}
		if err := preview.SavePNG(*png, img); err != nil {
			return err
		}
		printer.Printf("wrote %s (%dx%d)\n", *png, *size, *size)
	}
	return nil
}

func report(name string, m *unwrap.PolyMesh, res *unwrap.Result) {
	printer.Printf("%s: %d vertices, %d faces, %d edges\n", name, m.NumVertices(), m.NumFaces(), m.NumEdges())
	printer.Printf("  %d triangles in %d charts (%d faces skipped, %d seam ids skipped)\n",
		res.Triangles, res.Charts, res.SkippedFaces, res.SkippedSeams)
	printer.Printf("  split: %d chains, %d ambiguous, %d duplicated, %d reconciled\n",
		res.Split.Chains, res.Split.AmbiguousChains, res.Split.ChainDuplicates, res.Split.ReconciledVertices)
	state := "converged"
	if !res.Converged {
		state = "stopped at iteration cap"
	}
	printer.Printf("  solver: %d iterations, residual %.3g, %s\n", res.Iterations, res.Residual, state)
	if res.NonFinite > 0 || res.DegenerateTriangles > 0 {
		printer.Printf("  %d non-finite UVs reset, %d degenerate triangles\n", res.NonFinite, res.DegenerateTriangles)
	}
}

func runSeam(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("seam: missing action")
	}
	action := args[0]
	fs := flag.NewFlagSet("seam "+action, flag.ExitOnError)
	var (
		db   = fs.String("db", "", "seam store directory (required)")
		key  = fs.String("key", "", "shape key")
		mesh = fs.String("mesh", "", "mesh used to validate edge ids")
	)
	fs.Parse(args[1:])
	if *db == "" {
		return fmt.Errorf("seam %s: -db is required", action)
	}
	if action != "list" && *key == "" {
		if *mesh == "" {
			return fmt.Errorf("seam %s: -key or -mesh is required", action)
		}
		*key = storeKey("", *mesh)
	}

	edgeCount := math.MaxInt32
	if *mesh != "" {
		m, err := meshio.Load(*mesh)
		if err != nil {
			return err
		}
		edgeCount = m.NumEdges()
	}

	s, err := seamstore.Open(*db)
	if err != nil {
		return err
	}
	defer s.Close()

	var ids []int
	switch action {
	case "add", "remove":
		sel, err := parseIDs(strings.Join(fs.Args(), ","))
		if err != nil {
			return err
		}
		if action == "add" {
			ids, err = s.Add(*key, sel, edgeCount)
		} else {
			ids, err = s.Remove(*key, sel, edgeCount)
		}
		if err != nil {
			return err
		}
	case "clear":
		if err := s.Clear(*key); err != nil {
			return err
		}
	case "show":
		ids, err = s.Load(*key)
		if err != nil {
			return err
		}
	case "list":
		keys, err := s.Keys()
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Println(k)
		}
		return nil
	default:
		return fmt.Errorf("seam: unknown action %q", action)
	}
	printer.Printf("%s: %d seam edges %v\n", *key, len(ids), ids)
	return nil
}

func runEdges(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("edges: expected one input mesh")
	}
	m, err := meshio.Load(args[0])
	if err != nil {
		return err
	}
	for i := 0; i < m.NumEdges(); i++ {
		a, b := m.Edge(i)
		fmt.Printf("%d\t%d\t%d\n", i, a, b)
	}
	return nil
}

func loadStored(dir, key string) ([]int, error) {
	s, err := seamstore.Open(dir)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	ids, err := s.Load(key)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// storeKey defaults the store key to the mesh file name.
func storeKey(key, path string) string {
	if key != "" {
		return key
	}
	return filepath.Base(path)
}

func parseIDs(s string) ([]int, error) {
	var ids []int
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		id, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad edge id %q", f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
