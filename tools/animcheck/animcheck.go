package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/anim_browser/config"
	"github.com/mogaika/anim_browser/pack/anim"
	"github.com/mogaika/anim_browser/utils"
	"github.com/mogaika/anim_browser/vfs"
)

type checkFlags struct {
	dir     string
	config  string
	workers int
	dump    bool
	yaml    bool
	verbose bool
}

func loadFiles(d vfs.Directory) ([]anim.File, error) {
	names, err := vfs.DirectoryListExt(d, ".anim")
	if err != nil {
		return nil, err
	}
	files := make([]anim.File, 0, len(names))
	for _, name := range names {
		data, err := vfs.ReadFile(d, name)
		if err != nil {
			return nil, err
		}
		files = append(files, anim.File{Name: name, Data: data})
	}
	return files, nil
}

// check decodes every *.anim of the directory and reports to out.
// It returns the combined failures.
func check(ctx context.Context, f checkFlags, out io.Writer) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
	if f.verbose {
		cfg.Verbose = true
	}
	opts, err := cfg.DecoderOptions(utils.NewLogger(out, "[anim] "))
	if err != nil {
		return err
	}

	files, err := loadFiles(vfs.NewDirectoryDriver(f.dir))
	if err != nil {
		return errors.Wrapf(err, "Failed to load %s", f.dir)
	}

	results := anim.NewDecoder(opts).DecodeBatch(ctx, files, cfg.Workers)

	var infos []*anim.AnimationInfo
	for i := range results {
		r := &results[i]
		fmt.Fprintln(out, r.Report())
		if r.Err != nil {
			continue
		}
		for _, w := range r.Animation.Warnings {
			fmt.Fprintf(out, "%s: warning: %v at 0x%x: %s\n", r.Name, w.Kind, w.Offset, w.Msg)
		}
		if f.dump {
			fmt.Fprint(out, utils.SDump(r.Animation.Header, r.Animation.Segments))
		}
		infos = append(infos, r.Animation.Marshal(r.Name))
	}

	if f.yaml {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(infos); err != nil {
			return errors.Wrapf(err, "Failed to marshal yaml")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrapf(err, "Failed to close yaml encoder")
		}
	}

	return anim.BatchErrors(results)
}

func main() {
	var f checkFlags
	flag.StringVar(&f.dir, "dir", "", "Directory with *.anim files")
	flag.StringVar(&f.config, "config", "", "Path to yaml config")
	flag.IntVar(&f.workers, "workers", 0, "Parallel decodes (overrides config workers)")
	flag.BoolVar(&f.dump, "dump", false, "Dump header and segments of every decoded file")
	flag.BoolVar(&f.yaml, "yaml", false, "Print yaml summary of decoded files")
	flag.BoolVar(&f.verbose, "v", false, "Log decoder progress")
	flag.Parse()

	if f.dir == "" {
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := check(context.Background(), f, os.Stdout); err != nil {
		log.Printf("[animcheck] %v", err)
		os.Exit(1)
	}
}
