package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-las/internal/filter"
	"github.com/robert-malhotra/go-las/las"
)

func newHeaderCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "header <file>",
		Short: "Print the public header block, VLRs and point layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer r.Close()
			printHeader(a.out, r)
			return nil
		},
	}
}

func printHeader(w io.Writer, r *las.Reader) {
	meta := r.Metadata()
	h := meta.Header

	fmt.Fprintf(w, "Version:            %s\n", h.Version())
	fmt.Fprintf(w, "System identifier:  %s\n", h.SystemIdentifier)
	fmt.Fprintf(w, "Generating software: %s\n", h.GeneratingSoftware)
	fmt.Fprintf(w, "Creation:           day %d of %d\n", h.CreationDay, h.CreationYear)
	fmt.Fprintf(w, "File source ID:     %d\n", h.FileSourceID)
	fmt.Fprintf(w, "Project ID:         %s\n", h.ProjectID)
	fmt.Fprintf(w, "Point format:       %d\n", h.PointFormatID)
	fmt.Fprintf(w, "Record length:      %d\n", h.PointRecordLength)
	fmt.Fprintf(w, "Point count:        %d\n", h.PointCount)
	fmt.Fprintf(w, "Compressed:         %t\n", r.IsCompressed())
	fmt.Fprintf(w, "Scale:              %g %g %g\n", h.Scale[0], h.Scale[1], h.Scale[2])
	fmt.Fprintf(w, "Offset:             %g %g %g\n", h.Offset[0], h.Offset[1], h.Offset[2])
	fmt.Fprintf(w, "Min:                %g %g %g\n", h.Min[0], h.Min[1], h.Min[2])
	fmt.Fprintf(w, "Max:                %g %g %g\n", h.Max[0], h.Max[1], h.Max[2])

	for i, n := range h.PointsByReturn {
		if n > 0 {
			fmt.Fprintf(w, "Return %-2d:          %d\n", i+1, n)
		}
	}

	if p := meta.Compression; p != nil {
		chunk := fmt.Sprint(p.ChunkSize)
		if p.VariableChunks() {
			chunk = "variable"
		}
		fmt.Fprintf(w, "Compression:        compressor %d, %s coder, chunk size %s, shuffle %t\n",
			p.Compressor, filter.CoderName(p.Coder), chunk, p.Shuffled())
		if p.Coder != filter.CoderArithmetic {
			fmt.Fprintln(w, "                    block-coded, not readable by standard LAZ tools")
		}
	}

	fmt.Fprintf(w, "VLRs:               %d\n", len(meta.VLRs))
	for _, v := range meta.VLRs {
		kind := "VLR"
		if v.Extended {
			kind = "EVLR"
		}
		fmt.Fprintf(w, "  %-4s %-16q %5d %6d bytes  %s\n", kind, v.UserID, v.RecordID, len(v.Data), v.Description)
	}

	fmt.Fprintln(w, "Layout:")
	layout := r.NaturalLayout()
	for _, m := range layout.Members() {
		fmt.Fprintf(w, "  %-28s %-8s @%d\n", m.Name, m.DataType, m.Offset)
	}
	fmt.Fprintf(w, "  size %d\n", layout.Size())
}
