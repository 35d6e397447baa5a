package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"fsindex/app"
	"fsindex/models"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "index":
		err = runIndex(os.Args[2:])
	case "search":
		err = runSearch(os.Args[2:])
	case "recent":
		err = runRecent(os.Args[2:])
	case "duplicates":
		err = runDuplicates(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("error: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: fsindex <command> [flags]

Commands:
  index       Index a directory recursively
  search      Search files using optional filters
  recent      Show most recently indexed files
  duplicates  Display duplicate files grouped by hash
  stats       Show index statistics`)
}

func runIndex(args []string) error {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	dbPath := fs.String("db", "index.db", "Path to the index database")
	hash := fs.Bool("hash", false, "Compute and store file hashes")
	prune := fs.Bool("prune", false, "Remove indexed paths no longer present under the root")
	workers := fs.Int("workers", 0, "Scan workers, 0 = auto")
	retention := fs.Int("log-retention", 7, "Days to keep scan logs, 0 = forever")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("index requires exactly one root directory argument")
	}
	root := fs.Arg(0)

	indexer, err := app.Open(*dbPath)
	if err != nil {
		return err
	}
	defer indexer.Close()

	logger, err := app.NewScanLogger(indexer.DBPath(), *retention)
	if err != nil {
		return err
	}
	defer logger.Close()

	// Ctrl-C aborts the scan; interrupted batches roll back.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := indexer.Scan(ctx, root, app.ScanOptions{
		ComputeHash: *hash,
		Prune:       *prune,
		Workers:     *workers,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	logger.LogSummary(summary)
	return nil
}

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	dbPath := fs.String("db", "index.db", "Path to the index database")
	name := fs.String("name", "", "Filter by name fragment")
	ext := fs.String("ext", "", "Filter by file extension")
	minSize := fs.Int64("min-size", -1, "Minimum file size in bytes")
	maxSize := fs.Int64("max-size", -1, "Maximum file size in bytes")
	from := fs.String("from", "", "Earliest modified date (YYYY-MM-DD)")
	to := fs.String("to", "", "Latest modified date (YYYY-MM-DD)")
	sortKey := fs.String("sort", "name", "Sort column: name, size, modified, added")
	desc := fs.Bool("desc", false, "Sort descending instead of ascending")
	limit := fs.Int64("limit", 50, "Limit number of rows")
	offset := fs.Int64("offset", 0, "Offset for pagination")
	fs.Parse(args)

	q := &models.SearchQuery{
		NameLike: *name,
		Ext:      *ext,
		Sort:     models.SortKey(*sortKey),
		Desc:     *desc,
		Limit:    *limit,
		Offset:   *offset,
	}
	if *minSize >= 0 {
		q.MinSize = minSize
	}
	if *maxSize >= 0 {
		q.MaxSize = maxSize
	}
	var err error
	if q.From, err = parseDate(*from, false); err != nil {
		return err
	}
	if q.To, err = parseDate(*to, true); err != nil {
		return err
	}

	searcher, err := app.NewSearcher(*dbPath)
	if err != nil {
		return err
	}
	defer searcher.Close()

	results, err := searcher.Search(context.Background(), q)
	if err != nil {
		return err
	}
	printRecords(results)
	return nil
}

func runRecent(args []string) error {
	fs := flag.NewFlagSet("recent", flag.ExitOnError)
	dbPath := fs.String("db", "index.db", "Path to the index database")
	limit := fs.Int64("limit", 50, "Number of rows to fetch")
	fs.Parse(args)

	searcher, err := app.NewSearcher(*dbPath)
	if err != nil {
		return err
	}
	defer searcher.Close()

	results, err := searcher.Recent(context.Background(), *limit)
	if err != nil {
		return err
	}
	printRecords(results)
	return nil
}

func runDuplicates(args []string) error {
	fs := flag.NewFlagSet("duplicates", flag.ExitOnError)
	dbPath := fs.String("db", "index.db", "Path to the index database")
	limit := fs.Int64("limit", 25, "Maximum number of duplicate groups")
	fs.Parse(args)

	searcher, err := app.NewSearcher(*dbPath)
	if err != nil {
		return err
	}
	defer searcher.Close()

	groups, err := searcher.Duplicates(context.Background(), *limit)
	if err != nil {
		return err
	}

	for _, g := range groups {
		fmt.Printf("%d files x %s (hash %s)\n", len(g.Files), humanizeBytes(g.Size), g.Hash)
		for _, f := range g.Files {
			fmt.Printf("  %s\n", f.Path)
		}
	}
	return nil
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	dbPath := fs.String("db", "index.db", "Path to the index database")
	fs.Parse(args)

	searcher, err := app.NewSearcher(*dbPath)
	if err != nil {
		return err
	}
	defer searcher.Close()

	stats, err := searcher.Stats(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Files indexed:  %d (%d hashed)\n", stats.TotalFiles, stats.HashedFiles)
	fmt.Printf("Total size:     %s\n", humanizeBytes(stats.TotalSize))
	fmt.Printf("Average size:   %s\n", humanizeBytes(stats.AvgFileSize))
	if !stats.LastScan.IsZero() {
		fmt.Printf("Last scan:      %s\n", stats.LastScan.Format(time.RFC3339))
	}
	if len(stats.TopExtensions) > 0 {
		fmt.Println("\nTop extensions by count:")
		for _, e := range stats.TopExtensions {
			fmt.Printf("  .%-10s %8d  %s\n", e.Extension, e.Count, humanizeBytes(e.Size))
		}
	}
	if len(stats.LargestFiles) > 0 {
		fmt.Println("\nLargest files:")
		printRecords(stats.LargestFiles)
	}
	return nil
}

func printRecords(records []models.FileRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, f := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			f.Path, humanizeBytes(f.Size), f.ModTime.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func parseDate(v string, endOfDay bool) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", v)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return &t, nil
}

func humanizeBytes(s int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)
	switch {
	case s >= TB:
		return fmt.Sprintf("%.2f TB", float64(s)/TB)
	case s >= GB:
		return fmt.Sprintf("%.2f GB", float64(s)/GB)
	case s >= MB:
		return fmt.Sprintf("%.2f MB", float64(s)/MB)
	case s >= KB:
		return fmt.Sprintf("%.2f KB", float64(s)/KB)
	default:
		return fmt.Sprintf("%d B", s)
	}
}
