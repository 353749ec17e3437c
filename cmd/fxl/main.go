/*
Command fxl resolves the layout attributes of an HTML file for a viewport and
prints the resulting HTML to stdout.

Usage:

    fxl [flags] file.html

Flags:

    -width, -height   viewport size in CSS pixels (default 1024x768)
    -print            evaluate breakpoints for print media
    -dir              text direction, overrides the document's
    -breakpoints      YAML file with additional breakpoints
    -orientation      add device orientation breakpoints
    -strict           fail on attributes naming unknown tags or breakpoints
    -dump             print the entity tree to stderr
    -trace            trace level (Debug, Info, Error)

Configuration is read from fxl.yaml (or .json, .toml) in the working directory,
$HOME/.fxl or $HOME/.config/fxl. Flags override configuration values.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/fxlayout"
	"github.com/npillmayer/fxlayout/breakpoint"
	"github.com/npillmayer/fxlayout/dom"
	"github.com/npillmayer/schuko/schukonf/viperadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

var tracerKeys = []string{
	"root",
	"fxlayout",
	"fxlayout.breakpoint",
	"fxlayout.tag",
	"fxlayout.entity",
	"fxlayout.resolver",
	"fxlayout.dom",
	"fxlayout.style",
}

func main() {
	width := flag.Float64("width", 1024, "viewport width in CSS pixels")
	height := flag.Float64("height", 768, "viewport height in CSS pixels")
	printMedia := flag.Bool("print", false, "evaluate breakpoints for print media")
	dir := flag.String("dir", "", "text direction (ltr|rtl)")
	bpfile := flag.String("breakpoints", "", "YAML file with additional breakpoints")
	orientation := flag.Bool("orientation", false, "add device orientation breakpoints")
	strict := flag.Bool("strict", false, "fail on unknown tags or breakpoints")
	dump := flag.Bool("dump", false, "print the entity tree to stderr")
	level := flag.String("trace", "Error", "trace level")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file.html\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	//
	conf := viperadapter.New("fxl")
	conf.Init()
	for _, key := range tracerKeys {
		conf.Set("trace."+key, *level)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "breakpoints":
			conf.Set(fxlayout.KeyBreakpoints, *bpfile)
		case "orientation":
			conf.Set(fxlayout.KeyOrientation, *orientation)
		case "strict":
			conf.Set(fxlayout.KeyStrict, *strict)
		}
	})
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintf(os.Stderr, "cannot configure tracing: %v\n", err)
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	//
	if err := run(flag.Arg(0), fxlayout.OptionsFromConfiguration(conf), *dir,
		breakpoint.Viewport{Width: *width, Height: *height, Print: *printMedia}, *dump); err != nil {
		fmt.Fprintf(os.Stderr, "fxl: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, opts fxlayout.Options, dir string, vp breakpoint.Viewport, dump bool) error {
	r, err := fxlayout.Setup(opts)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	doc, err := dom.Parse(f, r, opts.DocumentOptions()...)
	if err != nil {
		return fmt.Errorf("cannot bind %s: %w", path, err)
	}
	if dir != "" {
		r.SetDirection(dir)
	}
	r.Evaluate(vp)
	tracing.Select("fxlayout").Infof("active breakpoints: %v", r.Active())
	doc.Sync()
	if dump {
		if err := r.Dump(os.Stderr); err != nil {
			return err
		}
	}
	return doc.Render(os.Stdout)
}
