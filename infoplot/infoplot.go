// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// infoplot draws the per-position information content of a binding site
// model as a bar chart.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/biogo/motif/pwm"
)

func main() {
	matName := flag.String("mat", "", "Filename for matrix input.")
	counts := flag.Bool("counts", false, "Matrix input holds counts rather than frequencies.")
	vert := flag.Bool("vert", false, "Matrix input is vertical (rows are nucleotides).")
	pseudo := flag.Float64("pseudo", 0, "Pseudocount applied when converting counts to frequencies.")
	gc := flag.Float64("gc", 0.5, "Fractional GC content of the background.")
	outName := flag.String("out", "info.png", "Filename for plot output.")
	help := flag.Bool("help", false, "Print this usage message.")

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if *matName == "" {
		flag.Usage()
		os.Exit(1)
	}

	text, err := os.ReadFile(*matName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
		os.Exit(1)
	}
	orient := pwm.Horizontal
	if *vert {
		orient = pwm.Vertical
	}

	var fm pwm.FreqMatrix
	if *counts {
		cm, err := pwm.ParseCounts(string(text), orient)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
			os.Exit(1)
		}
		fm, err = cm.Freqs(*pseudo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
			os.Exit(1)
		}
	} else {
		fm, err = pwm.ParseFreqs(string(text), orient)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
			os.Exit(1)
		}
	}

	kl, err := fm.PositionInformation(*gc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
		os.Exit(1)
	}

	p := plot.New()
	p.Title.Text = "Information content"
	p.X.Label.Text = "Position"
	p.Y.Label.Text = "Bits"

	b, err := plotter.NewBarChart(plotter.Values(kl), vg.Points(15))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
		os.Exit(1)
	}
	p.Add(b)
	labels := make([]string, len(kl))
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	p.NominalX(labels...)

	if err = p.Save(vg.Length(len(kl)+2)*vg.Centimeter, 10*vg.Centimeter, *outName); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
		os.Exit(1)
	}
}
