package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/go-telegram/bot"
)

// Downloader fetches Telegram files over HTTP into local files.
type Downloader struct {
	client   *http.Client
	maxBytes int64
}

// NewDownloader returns a Downloader using client, or http.DefaultClient
// when client is nil.
func NewDownloader(client *http.Client) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{client: client, maxBytes: defaultMaxPayload}
}

// Download resolves fileID through src and writes the file to dst.
func (d *Downloader) Download(ctx context.Context, src FileSource, fileID, dst string) (err error) {
	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before file download: %w", ctx.Err())
	}

	fileObj, err := src.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return fmt.Errorf("failed to get file info from Telegram: %w", err)
	}
	if fileObj == nil || fileObj.FilePath == "" {
		return fmt.Errorf("empty file path returned from Telegram for file ID %s", fileID)
	}

	url := src.FileDownloadLink(fileObj)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download file: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	n, err := io.Copy(out, io.LimitReader(resp.Body, d.maxBytes+1))
	if closeErr := out.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	if n == 0 {
		return errors.New("received empty voice file")
	}
	if n > d.maxBytes {
		return fmt.Errorf("voice file exceeds %d bytes", d.maxBytes)
	}

	return nil
}
