package main

import (
	"bytes"
	"context"
	"image/png"
	"log"
	"os"
	"os/signal"
	"syscall"

	"signsheet/internal/config"
	"signsheet/internal/metrics"
	"signsheet/internal/queue"
	"signsheet/internal/record"
	"signsheet/internal/store"
)

// The signature audit worker consumes submission ids from the queue, loads
// each record, and checks that the embedded signature decodes as a real
// PNG, recording its size and dimensions. Records are never modified.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	db, err := store.Open(cfg.DBBackend, cfg.DSN())
	if err != nil {
		log.Fatalf("store open failed: %v", err)
	}
	defer db.Close()

	var q queue.Queue
	if cfg.QueueBackend == "redis" {
		redisClient := store.NewRedis(cfg.RedisAddr)
		q = queue.NewRedisQueue(redisClient.Client, "signsheet:submissions")
	} else {
		// A memory queue is process-local; a separate worker only sees
		// traffic with the redis backend.
		log.Println("WARNING: queue backend is memory, worker will receive nothing from the api process")
		q = queue.NewInMemory(64)
	}

	repo := record.NewRepository(db)

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for submissions...")
	for msg := range messages {
		if msg.Kind != queue.KindSubmission {
			continue
		}
		audit(ctx, repo, msg.RecordID)
	}

	log.Println("worker stopped")
}

func audit(ctx context.Context, repo *record.Repository, id int64) {
	rec, err := repo.Get(ctx, id)
	if err != nil {
		log.Printf("fetch record %d failed: %v", id, err)
		return
	}
	if rec == nil {
		// Deleted before the worker got to it.
		log.Printf("record %d gone, skipping", id)
		return
	}

	raw, err := record.DecodeSignature(rec.Signature)
	if err != nil {
		log.Printf("record %d: signature not decodable: %v", id, err)
		return
	}
	metrics.SignatureBytes.Observe(float64(len(raw)))

	dims, err := png.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		log.Printf("record %d: signature is not a valid PNG: %v", id, err)
		return
	}
	log.Printf("record %d: signature ok, %dx%d px, %d bytes", id, dims.Width, dims.Height, len(raw))
}
