package clients

import (
	"context"
	"venued/internal/models"
	"venued/internal/storage"

	"golang.org/x/crypto/blake2b"
)

// DigestMatcher matches problematic events whose payload is the BLAKE2b-256
// digest of a local checkout id. It stands in for the venue token scheme,
// which lives outside this daemon.
type DigestMatcher struct {
	store storage.VenueRecordStoreInterface
}

func NewDigestMatcher(store storage.VenueRecordStoreInterface) *DigestMatcher {
	return &DigestMatcher{store: store}
}

func CheckoutDigest(checkOutId string) []byte {
	sum := blake2b.Sum256([]byte(checkOutId))
	return sum[:]
}

func (m *DigestMatcher) CheckForMatches(ctx context.Context, events []models.ProblematicEvent) ([]models.ExposureEvent, error) {
	visited, err := m.store.GetVisited(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]string, len(visited))
	for _, rec := range visited {
		if rec.CheckOutId == "" {
			continue
		}
		index[string(CheckoutDigest(rec.CheckOutId))] = rec.CheckOutId
	}

	var out []models.ExposureEvent
	seen := make(map[string]struct{})
	for _, ev := range events {
		if len(ev.Payload) != blake2b.Size256 {
			continue
		}
		id, ok := index[string(ev.Payload)]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, models.ExposureEvent{CheckinId: id})
	}
	return out, nil
}
