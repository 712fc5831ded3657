package shopsync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gabriel-vasile/mimetype"
	"google.golang.org/api/option"
)

// exportScrapeOutput writes the run artifact to OUTPUT_DIR/<host>.json and,
// if a bucket is configured, uploads it. The local artifact is the contract;
// upload failure is logged, never fatal.
func (p *Pipeline) exportScrapeOutput(ctx context.Context, host string, output *ScrapeOutput) (string, error) {
	if err := os.MkdirAll(p.Config.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filePath := filepath.Join(p.Config.OutputDir, host+".json")
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal scrape output: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write scrape output: %w", err)
	}
	p.Logger.Info("wrote scrape output to %s (%d products, %d variants)", filePath, len(output.Products), len(output.Variants))

	if p.Config.GCSBucket != "" {
		p.uploadToBucket(ctx, filePath, host)
	}
	return filePath, nil
}

// uploadToBucket copies the artifact into the configured GCS bucket under
// scrapes/<host>/.
func (p *Pipeline) uploadToBucket(ctx context.Context, sourceFileName, host string) {
	startTime := time.Now()
	destinationFileName := fmt.Sprintf("scrapes/%s/%s", host, filepath.Base(sourceFileName))

	uploadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var opts []option.ClientOption
	if p.Config.GCPCredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(p.Config.GCPCredentialsPath))
	}
	client, err := storage.NewClient(uploadCtx, opts...)
	if err != nil {
		p.Logger.Error("Failed to create storage client: %v", err)
		return
	}
	defer func() {
		if err := client.Close(); err != nil {
			p.Logger.Error("Failed to close storage client: %v", err)
		}
	}()

	file, err := os.Open(sourceFileName)
	if err != nil {
		p.Logger.Error("Failed to open file %s: %v", sourceFileName, err)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.Logger.Error("Failed to close file %s: %v", sourceFileName, err)
		}
	}()

	writer := client.Bucket(p.Config.GCSBucket).Object(destinationFileName).NewWriter(uploadCtx)
	if mime, err := mimetype.DetectFile(sourceFileName); err != nil {
		writer.ContentType = "application/octet-stream"
	} else {
		writer.ContentType = mime.String()
	}

	if _, err := io.Copy(writer, file); err != nil {
		p.Logger.Error("Failed to copy file data to bucket %s: %v", p.Config.GCSBucket, err)
		writer.Close()
		return
	}
	if err := writer.Close(); err != nil {
		p.Logger.Error("Failed to close writer for file %s: %v", destinationFileName, err)
		return
	}

	p.Logger.Info("File %s uploaded to bucket successfully. Time taken: %s", sourceFileName, time.Since(startTime))
}
