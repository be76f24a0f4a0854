package fetch

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Files reads documents from disk. It accepts file:// URLs and plain paths.
type Files struct{}

func (Files) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreachable, err)
	}
	path := rawURL
	if strings.HasPrefix(rawURL, "file://") {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnreachable, err)
		}
		path = u.Path
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreachable, err)
	}
	if info.Size() > MaxBodySize {
		return nil, fmt.Errorf("%w: %s: file exceeds %d bytes", ErrSourceUnreachable, path, MaxBodySize)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreachable, err)
	}
	return body, nil
}
