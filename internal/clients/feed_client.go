package clients

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"venued/internal/models"
	"venued/internal/structures"
)

// TagHeader carries the feed cursor when the body does not.
const TagHeader = "X-Key-Bundle-Tag"

// FeedClient fetches problematic events from the trace-key server.
type FeedClient struct {
	client  *http.Client
	baseUrl string
}

func NewFeedClient(conf *structures.Config, client *http.Client) *FeedClient {
	return &FeedClient{
		client:  client,
		baseUrl: strings.TrimRight(conf.Feed.BaseUrl, "/"),
	}
}

func (f *FeedClient) Fetch(ctx context.Context, tag *string) (*models.ProblematicEventBatch, error) {
	u := f.baseUrl + "/v1/traceKeys"
	if tag != nil && *tag != "" {
		u += "?lastKeyBundleTag=" + url.QueryEscape(*tag)
	}

	var batch models.ProblematicEventBatch
	resp, err := getJSON(ctx, f.client, u, &batch)
	if err != nil {
		return nil, err
	}
	if batch.Tag == "" {
		batch.Tag = resp.Header.Get(TagHeader)
	}
	return &batch, nil
}
