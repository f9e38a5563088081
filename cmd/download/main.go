package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"slotbench/pkg/config"
	"slotbench/pkg/dataset"
	"slotbench/pkg/downloader"
	"slotbench/pkg/rpc"
)

func main() {
	rpcURL := flag.String("rpc", "", "JSON RPC URL (default: from config file)")
	configPath := flag.String("config", "", "config file path")
	from := flag.Int64("from", -1, "first slot of the range (default: walk back from the latest finalized slot)")
	count := flag.Uint64("count", 900, "number of slots to download")
	concurrency := flag.Int("concurrency", 0, "max in-flight block fetches (default: from config file)")
	out := flag.String("out", "data.db", "output dataset file")
	flag.Parse()

	if *count == 0 {
		log.Fatalf("count must be positive, got %d", *count)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *rpcURL == "" {
		*rpcURL = cfg.RPC.URL
	}
	if *concurrency == 0 {
		*concurrency = cfg.RPC.Concurrency
	}
	if *concurrency < 1 {
		log.Fatalf("concurrency must be positive, got %d", *concurrency)
	}

	ctx := context.Background()
	client := rpc.New(*rpcURL)

	var start uint64
	if *from >= 0 {
		start = uint64(*from)
	} else {
		latest, err := client.GetSlot(ctx)
		if err != nil {
			log.Fatalf("get latest slot: %v", err)
		}
		if latest+1 < *count {
			log.Fatalf("node is at slot %d, cannot walk back %d slots", latest, *count)
		}
		start = latest + 1 - *count
	}

	log.Printf("downloading slots [%d, %d) from %s with concurrency %d", start, start+*count, *rpcURL, *concurrency)

	dl, err := downloader.New(client, *concurrency)
	if err != nil {
		log.Fatalf("downloader: %v", err)
	}
	ds, sum := dl.Fetch(ctx, start, *count)

	if err := dataset.Save(*out, ds); err != nil {
		log.Fatalf("save dataset: %v", err)
	}

	fmt.Printf("%s\n", sum)
	fmt.Printf("wrote %d records with %d keys to %s\n", len(ds.Records), ds.TotalKeys(), *out)
}
