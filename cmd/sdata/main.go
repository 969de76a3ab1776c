// Command sdata inspects and extracts files from a client archive pair.
//
// Usage:
//
//	sdata list <data.sah> <data.saf> [prefix]
//	sdata info <data.sah> <data.saf> <path>
//	sdata extract <data.sah> <data.saf> <path> <dest>
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/OpenShaiya/core/archive"
	"github.com/OpenShaiya/core/crypt"
)

func main() {
	verbose := flag.Bool("v", false, "log archive diagnostics to stderr")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 3 {
		usage()
		os.Exit(2)
	}

	var opts []archive.Option
	if *verbose {
		opts = append(opts, archive.WithLogger(slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}

	ws, err := archive.Open(args[1], args[2], opts...)
	if err != nil {
		fatal("open archive: %v", err)
	}
	defer ws.Close()

	switch cmd := args[0]; cmd {
	case "list":
		prefix := ""
		if len(args) > 3 {
			prefix = args[3]
		}
		list(ws, prefix)
	case "info":
		if len(args) != 4 {
			usage()
			os.Exit(2)
		}
		info(ws, args[3])
	case "extract":
		if len(args) != 5 {
			usage()
			os.Exit(2)
		}
		extract(ws, args[3], args[4])
	default:
		fatal("unknown command %q", cmd)
	}
}

func list(ws *archive.Workspace, prefix string) {
	var count int
	var total uint64
	for entry := range ws.EntriesWithPrefix(prefix) {
		mark := " "
		if entry.Compressed {
			mark = "z"
		}
		fmt.Printf("%s %10d  %s\n", mark, entry.RealSize, entry.Path)
		count++
		total += uint64(entry.RealSize)
	}
	fmt.Printf("%d files, %d bytes\n", count, total)
}

func info(ws *archive.Workspace, path string) {
	entry, ok := ws.Stat(path)
	if !ok {
		fatal("not found: %s", path)
	}
	fmt.Printf("path:       %s\n", entry.Path)
	fmt.Printf("offset:     %d\n", entry.DataOffset)
	fmt.Printf("stored:     %d\n", entry.StoredSize)
	fmt.Printf("real:       %d\n", entry.RealSize)
	fmt.Printf("compressed: %v\n", entry.Compressed)
	fmt.Printf("checksum:   0x%08X\n", entry.Checksum)
	fmt.Printf("path hash:  0x%08X\n", crypt.HashPath(entry.Path))
}

func extract(ws *archive.Workspace, path, dest string) {
	data, err := ws.File(path)
	if err != nil {
		fatal("read %s: %v", path, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		fatal("write %s: %v", dest, err)
	}
	fmt.Printf("extracted %s (%d bytes) to %s\n", path, len(data), dest)
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  sdata [-v] list <data.sah> <data.saf> [prefix]
  sdata [-v] info <data.sah> <data.saf> <path>
  sdata [-v] extract <data.sah> <data.saf> <path> <dest>
`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "sdata: "+format+"\n", args...)
	os.Exit(1)
}
