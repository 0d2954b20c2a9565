package services

import (
	"context"
	"crypto/rand"
	mrand "math/rand/v2"
	"venued/internal/structures"

	"github.com/google/uuid"
)

const (
	minFakePadding = 256
	maxFakePadding = 4096
)

type FakeRequester interface {
	SendFake(ctx context.Context, requestId string, padding []byte) error
}

// FakeRequestService sends decoy requests so that real uploads are not
// distinguishable by traffic timing alone.
type FakeRequestService struct {
	enabled     bool
	probability float64
	requester   FakeRequester
	roll        func() float64
}

func NewFakeRequestService(conf *structures.Config, requester FakeRequester) *FakeRequestService {
	return &FakeRequestService{
		enabled:     conf.FakeRequest.Url != "",
		probability: conf.FakeRequest.Probability,
		requester:   requester,
		roll:        mrand.Float64,
	}
}

// Run sends at most one decoy request and reports whether it did.
func (f *FakeRequestService) Run(ctx context.Context) (bool, error) {
	if !f.enabled || f.roll() >= f.probability {
		return false, nil
	}
	padding := make([]byte, minFakePadding+mrand.IntN(maxFakePadding-minFakePadding))
	if _, err := rand.Read(padding); err != nil {
		return false, err
	}
	if err := f.requester.SendFake(ctx, uuid.NewString(), padding); err != nil {
		return false, err
	}
	return true, nil
}
