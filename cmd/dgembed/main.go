/*
 * main.go, part of dgeom.
 *
 * Copyright 2024 The owl dgeom authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Command dgembed reconstructs CA traces from contact graph files by
// distance geometry, and scores how much of a contact map random subsets
// of it, or its minimal subset, imply.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	dgeom "github.com/eppic-team/owl-sub005"
	"github.com/eppic-team/owl-sub005/contact"
	"github.com/eppic-team/owl-sub005/dgplot"
	"github.com/eppic-team/owl-sub005/embed"
	"github.com/eppic-team/owl-sub005/smooth"
	"github.com/eppic-team/owl-sub005/sparse"
	"github.com/eppic-team/owl-sub005/traj/stf"
	v3 "github.com/eppic-team/owl-sub005/v3"
)

var verbose int

// LogV logs only if the verbosity level is at least level.
func LogV(level int, format string, args ...interface{}) {
	if verbose >= level {
		log.Printf(format, args...)
	}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("dgembed: ")
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	var err error
	switch os.Args[1] {
	case "embed":
		err = runEmbed(os.Args[2:])
	case "score":
		err = runScore(os.Args[2:])
	case "check":
		err = runCheck(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		log.Printf("%s %s", err, dgeom.ErrorTrace(err))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Distance geometry reconstruction from contact maps\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  dgembed embed [flags] graph-file\n")
	fmt.Fprintf(os.Stderr, "  dgembed score [flags] graph-file\n")
	fmt.Fprintf(os.Stderr, "  dgembed check [flags] graph-file\n")
	fmt.Fprintf(os.Stderr, "\nRun 'dgembed <command> -h' for the flags of each command.\n")
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.IntVar(&verbose, "v", 0, "verbosity level")
	return fs
}

func readGraph(fs *flag.FlagSet) (*contact.Graph, error) {
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, fmt.Errorf("expected one graph file, got %d arguments", fs.NArg())
	}
	G, err := contact.ReadGraphFile(fs.Arg(0))
	if err != nil {
		return nil, err
	}
	LogV(1, "read %d residues and %d contacts (%s, cutoff %.2f) from %s", G.Len(), G.NumContacts(), G.ContactType(), G.Cutoff(), fs.Arg(0))
	return G, nil
}

func runEmbed(args []string) error {
	fs := newFlagSet("embed")
	models := fs.Int("models", 10, "number of models")
	seed := fs.Int64("seed", 1, "random seed")
	scale := fs.String("scale", embed.ScaleRadGyration.String(), "scaling policy: radgyr (or rg), backbone or none")
	metrize := fs.Bool("metrize", true, "metrize the sampled distances")
	roots := fs.Int("roots", 0, "partial metrization with this many roots (0 metrizes every pair)")
	strict := fs.Bool("strict", false, "fail if a sampled distance violates its bounds")
	resamples := fs.Int("resamples", 5, "extra samples drawn for a model whose embedding is degenerate")
	cpus := fs.Int("cpus", 0, "number of goroutines (0 uses all the CPUs)")
	floor := fs.Float64("floor", smooth.DistMinCA, "hard-sphere lower bound for unrestrained pairs (A)")
	passes := fs.Int("passes", 50, "maximum smoothing passes")
	out := fs.String("o", "", "output prefix (default: the graph file name without extension)")
	traj := fs.Bool("stf", false, "also write the models to a compressed stf trajectory")
	plots := fs.Bool("plots", false, "plot the inferred bounds and the distances of the first model")
	ref := fs.String("ref", "", "stf file with a reference structure, as first frame, to benchmark the models against")
	fs.Parse(args)
	G, err := readGraph(fs)
	if err != nil {
		return err
	}
	s, err := embed.ParseScaling(*scale)
	if err != nil {
		return err
	}
	o := dgeom.DefaultOptions(s)
	o.NumModels(*models)
	o.Seed(*seed)
	o.Metrize(*metrize)
	o.MetrizeRoots(*roots)
	o.Strict(*strict)
	o.Resamples(*resamples)
	o.Cpus(*cpus)
	o.Smooth().Floor(*floor)
	o.Smooth().MaxPasses(*passes)
	if *out == "" {
		*out = strings.TrimSuffix(fs.Arg(0), filepath.Ext(fs.Arg(0)))
	}
	if c := G.Components(); len(c) > 1 {
		LogV(0, "the contact graph has %d components, the backbone restraints will join them", len(c))
	}
	b, err := dgeom.GraphBounds(G, o.Backbone())
	if err != nil {
		return err
	}
	d, err := smooth.Infer(b, o.Smooth())
	if err != nil {
		if e, ok := err.(dgeom.Error); !ok || e.Critical() || d == nil {
			return err
		}
		log.Print(err)
	}
	ms, err := dgeom.ReconstructFrom(b, d, o)
	if err != nil {
		return err
	}
	for _, m := range ms {
		LogV(1, "model %d: sampled %s, embedded %s (inferred bounds: %s), Rg %.2f", m.Index, m.Sampled, m.Embedded, m.EmbeddedInferred, m.Coords().RadGyr())
		if m.Warning != nil {
			LogV(1, "model %d: %s", m.Index, m.Warning)
		}
		if m.Conflicts > 0 {
			LogV(1, "model %d: %d metrization conflicts", m.Index, m.Conflicts)
		}
	}
	if *ref != "" {
		if err := benchmark(*ref, ms); err != nil {
			return err
		}
	}
	if err := dgeom.PDBFileWrite(*out+".pdb", G.Sequence(), dgeom.Coorders(ms)); err != nil {
		return err
	}
	LogV(0, "wrote %d models to %s.pdb", len(ms), *out)
	if *traj {
		if err := writeStf(*out+".stf", G, ms); err != nil {
			return err
		}
	}
	if *plots {
		if err := dgplot.BoundsHeatMap(d, true, "Inferred upper bounds", *out+"_upper.png"); err != nil {
			return err
		}
		if err := dgplot.BoundsHeatMap(d, false, "Inferred lower bounds", *out+"_lower.png"); err != nil {
			return err
		}
		if err := dgplot.DistanceScatter(ms[0].Coords().DistanceMatrix(), d, "Model 0", *out+"_model0.png"); err != nil {
			return err
		}
	}
	return nil
}

func writeStf(name string, G *contact.Graph, ms []*dgeom.Model) error {
	header := map[string]string{"seq": G.Sequence(), "ct": G.ContactType(), "cutoff": strconv.FormatFloat(G.Cutoff(), 'f', -1, 64)}
	w, err := stf.Create(name, G.Len(), header)
	if err != nil {
		return err
	}
	for _, m := range ms {
		if err := w.WNext(m.Coords(), fmt.Sprintf("model %d", m.Index)); err != nil {
			w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	LogV(0, "wrote %d models to %s", len(ms), name)
	return nil
}

func benchmark(name string, ms []*dgeom.Model) error {
	r, _, err := stf.Open(name)
	if err != nil {
		return err
	}
	defer r.Close()
	X := v3.Zeros(r.Len())
	if _, err := r.Next(X); err != nil {
		return err
	}
	res, err := dgeom.Benchmark(X, ms)
	if err != nil {
		return err
	}
	for _, b := range res {
		fmt.Printf("model %3d  RMSD %7.3f  mirror %7.3f  dRMSD %7.3f\n", b.Model, b.RMSD, b.MirrorRMSD, b.DRMSD)
	}
	if best := dgeom.Best(res); best >= 0 {
		fmt.Printf("best model: %d\n", res[best].Model)
	}
	return nil
}

func parseKs(s string) ([]int, error) {
	var ks []int
	for _, f := range strings.Split(s, ",") {
		k, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || k < 0 {
			return nil, fmt.Errorf("invalid number of contacts %q", f)
		}
		ks = append(ks, k)
	}
	return ks, nil
}

func runScore(args []string) error {
	fs := newFlagSet("score")
	subset := fs.String("subset", "", "graph file with a subset of the contacts to score (instead of random subsets)")
	kstr := fs.String("k", "10,20,50", "comma-separated numbers of contacts in the random subsets")
	runs := fs.Int("runs", 10, "random subsets per number of contacts")
	seed := fs.Int64("seed", 1, "random seed")
	plot := fs.String("plot", "", "file to plot the error curve to")
	minsubset := fs.Bool("minsubset", false, "score the minimal subset of the contacts found by cone peeling")
	seqsep := fs.Int("seqsep", contact.DefaultSeqSep, "sequence separation for local common neighbours in -minsubset")
	fs.Parse(args)
	G, err := readGraph(fs)
	if err != nil {
		return err
	}
	so := smooth.DefaultOptions()
	if *minsubset {
		S, err := contact.MinSubset(G, *seqsep)
		if err != nil {
			return err
		}
		e, err := dgeom.ContactErrorGraph(S, G, embed.BackboneCA, so)
		if err != nil {
			return err
		}
		fmt.Printf("minimal subset: %d of %d contacts, contact error %.4f\n", S.NumContacts(), G.NumContacts(), e)
		return nil
	}
	if *subset != "" {
		S, err := contact.ReadGraphFile(*subset)
		if err != nil {
			return err
		}
		e, err := dgeom.ContactErrorGraph(S, G, embed.BackboneCA, so)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d contacts, contact error %.4f\n", *subset, S.NumContacts(), e)
		return nil
	}
	ks, err := parseKs(*kstr)
	if err != nil {
		return err
	}
	full, err := dgeom.GraphBounds(G, embed.BackboneCA)
	if err != nil {
		return err
	}
	f := func(sub *sparse.Bounds) (float64, error) {
		return dgeom.ContactError(sub, full, so)
	}
	series := dgplot.Series{Name: "contact error"}
	for _, k := range ks {
		mean, stderr, err := dgeom.RandomErrorStats(full, k, *runs, *seed, f)
		if err != nil {
			return err
		}
		fmt.Printf("k %4d  contact error %8.4f +/- %.4f\n", k, mean, stderr)
		series.K = append(series.K, k)
		series.Mean = append(series.Mean, mean)
		series.StdErr = append(series.StdErr, stderr)
	}
	if *plot != "" {
		return dgplot.ErrorCurves([]dgplot.Series{series}, "Random contact subsets", *plot)
	}
	return nil
}

func runCheck(args []string) error {
	fs := newFlagSet("check")
	floor := fs.Float64("floor", smooth.DistMinCA, "hard-sphere lower bound for unrestrained pairs (A)")
	fs.Parse(args)
	G, err := readGraph(fs)
	if err != nil {
		return err
	}
	so := smooth.DefaultOptions()
	so.Floor(*floor)
	b, err := dgeom.GraphBounds(G, embed.BackboneCA)
	if err != nil {
		return err
	}
	d, err := smooth.Infer(b, so)
	if err != nil {
		return err
	}
	if err := smooth.CheckTriangle(d, so.Tolerance()); err != nil {
		return err
	}
	fmt.Printf("%s: %d restraints over %d residues are feasible, %d graph components\n", fs.Arg(0), b.Len(), G.Len(), len(G.Components()))
	return nil
}
