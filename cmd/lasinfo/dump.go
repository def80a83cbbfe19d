package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-las/internal/export"
	"github.com/robert-malhotra/go-las/points"
)

type dumpFlags struct {
	format     string
	attributes []string
	types      map[string]string
	skip       uint64
	count      uint64
	output     string
}

func newDumpCommand(a *app) *cobra.Command {
	var f dumpFlags

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Write points as CSV, JSON lines or Arrow IPC",
		Long: `Write points as CSV, JSON lines or Arrow IPC.

Attributes are selected by name from the well-known catalogue. Without
--attributes the file's natural layout is used. --types changes the datatype
of selected attributes, for example Position3D=vec3f32.

Example:
  lasinfo dump tile.laz --format json --attributes Position3D,Classification --count 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("format") {
				a.cfg.Dump.Format = f.format
			}
			if flags.Changed("attributes") {
				a.cfg.Dump.Attributes = f.attributes
			}
			if flags.Changed("types") {
				a.cfg.Dump.Types = f.types
			}
			return a.dump(args[0], f)
		},
	}

	cmd.Flags().StringVarP(&f.format, "format", "f", "csv", "Output format (csv, json, arrow)")
	cmd.Flags().StringSliceVarP(&f.attributes, "attributes", "a", nil, "Attributes to write, in order")
	cmd.Flags().StringToStringVarP(&f.types, "types", "t", nil, "Datatype per attribute, e.g. Intensity=f32")
	cmd.Flags().Uint64Var(&f.skip, "skip", 0, "Points to skip before writing")
	cmd.Flags().Uint64VarP(&f.count, "count", "n", 0, "Maximum points to write (0 writes all)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

// createOutput opens the --output file.
var createOutput = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func (a *app) dump(path string, f dumpFlags) (err error) {
	r, err := a.open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	layout := r.NaturalLayout()
	if len(a.cfg.Dump.Attributes) > 0 || len(a.cfg.Dump.Types) > 0 {
		layout, err = buildLayout(layout, a.cfg.Dump.Attributes, a.cfg.Dump.Types)
		if err != nil {
			return err
		}
	}

	if _, err := r.Seek(int64(f.skip), io.SeekStart); err != nil {
		return err
	}
	remaining := r.RemainingPoints()
	if f.count > 0 {
		remaining = min(remaining, f.count)
	}

	out := a.out
	if f.output != "" {
		file, err := createOutput(f.output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output: %w", cerr)
			}
		}()
		out = file
	}

	w, err := export.New(a.cfg.Dump.Format, out, layout)
	if err != nil {
		return err
	}

	chunk := uint64(a.cfg.Reader.ChunkSize)
	var written uint64
	for written < remaining {
		buf := points.NewInterleaved(layout, int(min(chunk, remaining-written)))
		n, err := r.ReadInto(buf, min(chunk, remaining-written))
		if err != nil {
			return err
		}
		if n == 0 {
			break
		}
		if err := w.Write(buf); err != nil {
			return err
		}
		written += n
	}
	if err := w.Close(); err != nil {
		return err
	}

	a.log.Info("dumped points",
		zap.String("file", path),
		zap.String("format", a.cfg.Dump.Format),
		zap.Uint64("points", written))
	return nil
}

// buildLayout selects attributes by name and applies datatype overrides.
// An empty names list keeps every attribute of natural.
func buildLayout(natural *points.Layout, names []string, types map[string]string) (*points.Layout, error) {
	var attrs []points.Attribute
	if len(names) == 0 {
		for _, m := range natural.Members() {
			attrs = append(attrs, m.Attribute)
		}
	} else {
		for _, name := range names {
			a, ok := natural.Member(name)
			if ok {
				attrs = append(attrs, a.Attribute)
				continue
			}
			wk, ok := points.LookupWellKnown(name)
			if !ok {
				return nil, fmt.Errorf("unknown attribute %q", name)
			}
			attrs = append(attrs, wk)
		}
	}

	for name, typeName := range types {
		t, err := points.ParseDataType(typeName)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		found := false
		for i := range attrs {
			if attrs[i].Name == name {
				attrs[i] = attrs[i].WithDataType(t)
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("type given for unselected attribute %q", name)
		}
	}
	return points.NewLayout(attrs...)
}
