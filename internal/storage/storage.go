package storage

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Signer issues short-lived URLs so clients move file bytes directly to and
// from the bucket.
type Signer interface {
	SignedPutURL(ctx context.Context, objectName, contentType string, ttl time.Duration) (string, error)
	SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

const maxNameLen = 100

// ObjectKey builds uploads/<unix-ms>_<uuid>_<sanitized name>.
func ObjectKey(fileName string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(fileName), `\`, "/"))
	name = strings.Trim(unsafeChars.ReplaceAllString(name, "_"), "_.")
	if name == "" {
		name = "file"
	}
	if len(name) > maxNameLen {
		name = name[len(name)-maxNameLen:]
	}
	return fmt.Sprintf("uploads/%d_%s_%s", now.UnixMilli(), uuid.NewString(), name)
}
