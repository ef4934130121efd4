package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"unshader/internal/assetfield"
	"unshader/internal/blob"
	"unshader/internal/engine"
	"unshader/internal/extract"
)

// slotReport is what scan learns about one platform slot.
type slotReport struct {
	extract.Slot
	Layout  string       `json:"layout,omitempty"`
	Entries []blob.Entry `json:"entries,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func cmdScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	inPath := fs.String("in", "", "JSON dump of a compiled shader object")
	version := fs.String("version", "", "engine version (default: from the dump)")
	jsonOut := fs.Bool("json", false, "output as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("--in is required")
	}

	data, err := os.ReadFile(*inPath)
	if err != nil {
		return errors.Wrap(err, "read")
	}
	obj, err := assetfield.Parse(data)
	if err != nil {
		return errors.Wrap(err, *inPath)
	}
	tag := *version
	if tag == "" {
		tag = dumpVersion(obj)
	}
	var v engine.Version
	if tag != "" {
		if v, err = engine.ParseVersion(tag); err != nil {
			return err
		}
	}

	c, err := extract.ReadContainer(obj)
	if err != nil {
		return errors.Wrap(err, "container")
	}
	fmt.Fprintf(os.Stderr, "%s: %d platforms, %d compressed bytes\n", *inPath, len(c.Slots), len(c.Blob))

	reports := make([]slotReport, len(c.Slots))
	for i := range c.Slots {
		reports[i] = scanSlot(c, &c.Slots[i], v)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, r := range reports {
		fmt.Printf("\n%s (%d), %d segments\n", r.Platform, int32(r.Platform), len(r.Segments))
		for i, s := range r.Segments {
			fmt.Printf("  segment %d  off=0x%08x  clen=0x%x  dlen=0x%x\n",
				i, s.Offset, s.CompressedLength, s.DecompressedLength)
		}
		if r.Error != "" {
			fmt.Printf("  error: %s\n", r.Error)
			continue
		}
		if r.Layout == "" {
			continue
		}
		fmt.Printf("  layout %s, %d entries\n", r.Layout, len(r.Entries))
		for i, e := range r.Entries {
			fmt.Printf("    [%4d] segment=%d off=0x%08x len=0x%x\n", i, e.Segment, e.Offset, e.Length)
		}
	}
	return nil
}

// scanSlot decompresses one slot and decodes its entry table. Without an
// engine version only the segment list is reported.
func scanSlot(c *extract.Container, slot *extract.Slot, v engine.Version) slotReport {
	r := slotReport{Slot: *slot}
	segs, err := c.Decompress(slot)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	if v.IsZero() {
		return r
	}
	st, err := blob.NewStore(segs, v)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Layout = st.Layout().Name
	r.Entries = st.Entries()
	return r
}
