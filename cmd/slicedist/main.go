// Command slicedist inspects and compares entity-resolution snapshots.
//
// Usage:
//
//	slicedist inspect -snapshot resolved.csv
//	slicedist compare -prior monday.csv -current tuesday.csv
//
// Snapshot paths may be local files or s3://bucket/key URIs; .gz, .zst and
// .lz4 suffixes are decompressed transparently. Every flag can also be set
// through a SLICEDIST_* environment variable or a slicedist.ini file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/slicedist"
	"github.com/hupe1980/slicedist/blobstore"
	"github.com/hupe1980/slicedist/blobstore/s3"
	"github.com/hupe1980/slicedist/config"
	"github.com/hupe1980/slicedist/partition"
)

// command enumerates the supported subcommands. The dispatch table below is
// fixed at startup; the switch in run must stay exhaustive over this enum.
type command int

const (
	commandInspect command = iota
	commandCompare
)

var commands = map[string]command{
	"inspect": commandInspect,
	"compare": commandCompare,
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 1
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "slicedist: unknown command %q\n\n", args[0])
		usage()
		return 1
	}

	app, err := newApp(args[0], args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "slicedist: %v\n", err)
		return 1
	}

	ctx := context.Background()

	switch cmd {
	case commandInspect:
		err = app.inspect(ctx)
	case commandCompare:
		err = app.compare(ctx)
	}
	if err != nil {
		app.logger.ErrorContext(ctx, "command failed", "error", err)
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: slicedist <command> [flags]

Commands:
  inspect   Print each group of one snapshot with a running count.
  compare   Compute the slice distance between a prior and a current snapshot.

Run "slicedist <command> -h" for command flags.
`)
}

// app holds the resolved configuration for one invocation.
type app struct {
	resolver *config.Resolver
	logger   *slicedist.Logger
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("slicedist "+name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func newApp(name string, args []string) (*app, error) {
	fs := newFlagSet(name)

	var snapshot, prior, current string
	switch name {
	case "inspect":
		fs.StringVar(&snapshot, "snapshot", "", "snapshot file to inspect")
	case "compare":
		fs.StringVar(&prior, "prior", "", "earlier of the two snapshot files")
		fs.StringVar(&current, "current", "", "later of the two snapshot files")
	}
	iniPath := fs.String("ini", "", "settings file (default: slicedist.ini, /etc/slicedist.ini)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error (default info)")
	logFormat := fs.String("log-format", "", "log format: text or json (default text)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	resolver, err := config.Load(func(o *config.Options) {
		o.Path = *iniPath
	})
	if err != nil {
		return nil, err
	}
	resolver.Set("snapshot-file", snapshot)
	resolver.Set("prior-file", prior)
	resolver.Set("current-file", current)
	resolver.Set("log-level", *logLevel)
	resolver.Set("log-format", *logFormat)

	logger, err := newLogger(resolver)
	if err != nil {
		return nil, err
	}

	return &app{
		resolver: resolver,
		logger:   logger.WithCommand(name),
	}, nil
}

func (a *app) inspect(ctx context.Context) error {
	name, err := a.resolver.Require("snapshot-file")
	if err != nil {
		return err
	}

	src, err := openSource(ctx, name)
	if err != nil {
		return err
	}

	groups, err := slicedist.Inspect(ctx, src, func(arrival int, g partition.Group) error {
		fmt.Printf("%d\t%s\t%s\n", arrival, g.Key, strings.Join(g.Members, ","))
		return nil
	}, slicedist.WithLogger(a.logger.WithSnapshot(name)))
	if err != nil {
		return err
	}

	fmt.Printf("groups: %d\n", groups)
	return nil
}

func (a *app) compare(ctx context.Context) error {
	priorName, err := a.resolver.Require("prior-file")
	if err != nil {
		return err
	}
	currentName, err := a.resolver.Require("current-file")
	if err != nil {
		return err
	}

	prior, err := openSource(ctx, priorName)
	if err != nil {
		return err
	}
	current, err := openSource(ctx, currentName)
	if err != nil {
		return err
	}

	res, err := slicedist.Compare(ctx, prior, current, slicedist.WithLogger(a.logger))
	if err != nil {
		return err
	}

	ov, err := slicedist.Overlap(ctx, prior, current, slicedist.WithLogger(a.logger))
	if err != nil {
		return err
	}

	fmt.Printf("cost: %g\n", res.Cost)
	fmt.Printf("prior groups: %d, current groups: %d\n", res.PriorGroups, res.CurrentGroups)
	fmt.Printf("splits: %d, merges: %d, unknown members: %d\n", res.Splits, res.Merges, res.UnknownMembers)
	fmt.Printf("shared members: %d, prior only: %d, current only: %d, jaccard: %.4f\n",
		ov.Shared, ov.PriorOnly, ov.CurrentOnly, ov.Jaccard)
	return nil
}

// openSource builds a CSV source for a local path or an s3://bucket/key URI.
// Remote blobs are cached on local disk before the first pass.
func openSource(ctx context.Context, name string) (partition.Source, error) {
	if strings.HasPrefix(name, "s3://") {
		bucket, key, ok := strings.Cut(strings.TrimPrefix(name, "s3://"), "/")
		if !ok || bucket == "" || key == "" {
			return nil, fmt.Errorf("malformed S3 URI %q", name)
		}
		store, err := s3.New(ctx, bucket)
		if err != nil {
			return nil, err
		}
		cache, err := blobstore.NewCachingStore(store, cacheDir())
		if err != nil {
			return nil, err
		}
		return partition.NewCSVSource(cache, key), nil
	}

	return partition.NewCSVSource(blobstore.NewLocalStore(""), name), nil
}

func cacheDir() string {
	if dir := os.Getenv(config.EnvName("cache-dir")); dir != "" {
		return dir
	}
	return filepath.Join(os.TempDir(), "slicedist-cache")
}

func newLogger(resolver *config.Resolver) (*slicedist.Logger, error) {
	var level slog.Level
	name := resolver.Resolve("log-level", "info")
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return nil, fmt.Errorf("bad log level %q", name)
	}

	switch format := resolver.Resolve("log-format", "text"); format {
	case "text":
		return slicedist.NewTextLogger(level), nil
	case "json":
		return slicedist.NewJSONLogger(level), nil
	default:
		return nil, fmt.Errorf("bad log format %q", format)
	}
}
