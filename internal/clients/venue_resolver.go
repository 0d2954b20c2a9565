package clients

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
	"venued/internal/models"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

const venuePayloadPrefix = "https://qr.venued.app/v1#"

var ErrInvalidQrPayload = errors.New("invalid venue qr payload")

// PayloadResolver reads venue info out of the QR payload fragment and issues
// random checkout ids. The cryptographic token scheme is not part of it.
type PayloadResolver struct{}

func NewPayloadResolver() *PayloadResolver {
	return &PayloadResolver{}
}

// EncodeVenuePayload builds the payload a venue QR code carries.
func EncodeVenuePayload(info models.VenueInfo) (string, error) {
	raw, err := json.Marshal(info)
	if err != nil {
		return "", err
	}
	return venuePayloadPrefix + base64.RawURLEncoding.EncodeToString(raw), nil
}

func (r *PayloadResolver) GetInfo(qrPayload string) (*models.VenueInfo, error) {
	fragment, ok := strings.CutPrefix(qrPayload, venuePayloadPrefix)
	if !ok || fragment == "" {
		return nil, ErrInvalidQrPayload
	}
	raw, err := base64.RawURLEncoding.DecodeString(fragment)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQrPayload, err)
	}
	var info models.VenueInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQrPayload, err)
	}
	if strings.TrimSpace(info.Name) == "" {
		return nil, fmt.Errorf("%w: missing venue name", ErrInvalidQrPayload)
	}
	return &info, nil
}

func (r *PayloadResolver) CheckOut(_ context.Context, _ models.VenueInfo, arrival, departure time.Time) (string, error) {
	if !departure.After(arrival) {
		return "", fmt.Errorf("departure %s not after arrival %s", departure.Format(time.RFC3339), arrival.Format(time.RFC3339))
	}
	return uuid.NewString(), nil
}
