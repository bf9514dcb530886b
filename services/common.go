package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blogem/regdesk/datastore"
	"github.com/blogem/regdesk/repositories"
)

var timeNow = func() time.Time {
	return time.Now()
}

// ViewNotFoundMessage is shown when the application list view is missing
var ViewNotFoundMessage = fmt.Sprintf(
	"The view %q was not found. Create it (run migrations) first.", repositories.ApplicationsView)

// Banner is the inline error state of a page whose fetch failed
type Banner struct {
	Kind    datastore.Kind
	Message string
	// Sample is set when built-in sample data is shown instead
	Sample bool
}

// IsNotFound reports whether the banner is for a missing collection
func (b *Banner) IsNotFound() bool {
	return b != nil && b.Kind == datastore.KindNotFound
}

// bannerFor converts a fetch failure into the banner for a page
func bannerFor(err error, subject string) *Banner {
	if err == nil {
		return nil
	}

	kind := datastore.KindOf(err)
	b := &Banner{Kind: kind}

	var dsErr *datastore.Error
	collection := ""
	if errors.As(err, &dsErr) {
		collection = dsErr.Collection
	}

	switch kind {
	case datastore.KindNotFound:
		if collection == repositories.ApplicationsView {
			b.Message = ViewNotFoundMessage
		} else {
			b.Message = fmt.Sprintf("The collection %q was not found. Run migrations first.", collection)
		}
	case datastore.KindPermissionDenied:
		b.Message = fmt.Sprintf("You do not have permission to read %s.", subject)
	case datastore.KindTransient:
		b.Message = fmt.Sprintf("The data store is temporarily unavailable while loading %s. Reload to try again.", subject)
	default:
		b.Message = fmt.Sprintf("Failed to load %s.", subject)
	}
	return b
}

// logFailure records a failed data call with its kind
func logFailure(logger *zap.Logger, msg string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("kind", string(datastore.KindOf(err))),
		zap.Error(err),
	)
	logger.Warn(msg, fields...)
}

// newApplicationID returns an id like APP-2024-3F9A1C
func newApplicationID(now time.Time) string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("APP-%d-%s", now.Year(), hex[:6])
}

// cleanIDs trims ids and drops blanks and duplicates
func cleanIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
