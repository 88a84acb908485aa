// Command bulkdl copies every file from a source folder into a
// destination folder, a batch at a time. Files within a batch are
// copied concurrently; batches run in order.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
)

var (
	source      string
	destination string
	batchSize   int
)

var rootCmd = &cobra.Command{
	Use:   "bulkdl",
	Short: "Bulk-copy document files from a source folder to a destination",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return bulkDownload(source, destination, batchSize)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&source, "source", "s", "test-data/folder1", "folder to copy files from")
	rootCmd.Flags().StringVarP(&destination, "dest", "d", "downloads", "folder to copy files into")
	rootCmd.Flags().IntVarP(&batchSize, "batch-size", "b", 5, "number of files copied concurrently per batch")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func bulkDownload(source, destination string, batchSize int) error {
	if batchSize < 1 {
		batchSize = 1
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return fmt.Errorf("read source folder: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		fmt.Println("no documents found in the source folder")
		return nil
	}

	if err := os.MkdirAll(destination, 0o755); err != nil {
		return fmt.Errorf("create destination folder: %w", err)
	}

	totalBatches := (len(names) + batchSize - 1) / batchSize
	fmt.Printf("found %d files, copying in %d batches\n", len(names), totalBatches)

	for i := 0; i < len(names); i += batchSize {
		end := i + batchSize
		if end > len(names) {
			end = len(names)
		}
		fmt.Printf("processing batch %d of %d\n", i/batchSize+1, totalBatches)
		if err := copyBatch(names[i:end], source, destination); err != nil {
			return err
		}
	}

	fmt.Println("all downloads completed")
	return nil
}

// copyBatch copies every file concurrently and returns the first error.
func copyBatch(names []string, source, destination string) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			if err := copyFile(name, source, destination); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(name)
	}
	wg.Wait()
	return firstErr
}

func copyFile(name, source, destination string) error {
	in, err := os.Open(filepath.Join(source, name))
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer in.Close()

	out, err := os.Create(filepath.Join(destination, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", name, err)
	}
	fmt.Printf("copied: %s\n", name)
	return out.Close()
}
