package clients

import (
	"context"
	"net/http"
	"venued/internal/models"
	"venued/internal/structures"
)

// RemoteConfigClient fetches the server-side venue settings.
type RemoteConfigClient struct {
	client *http.Client
	url    string
}

func NewRemoteConfigClient(conf *structures.Config, client *http.Client) *RemoteConfigClient {
	return &RemoteConfigClient{client: client, url: conf.RemoteConfig.Url}
}

// FetchSettings returns empty settings when no remote config url is configured.
func (c *RemoteConfigClient) FetchSettings(ctx context.Context) (*models.RemoteSettings, error) {
	if c.url == "" {
		return &models.RemoteSettings{}, nil
	}
	var settings models.RemoteSettings
	if _, err := getJSON(ctx, c.client, c.url, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

type AnalyticsClient struct {
	client *http.Client
	url    string
}

func NewAnalyticsClient(conf *structures.Config, client *http.Client) *AnalyticsClient {
	return &AnalyticsClient{client: client, url: conf.Analytics.Url}
}

func (c *AnalyticsClient) Upload(ctx context.Context, report models.AnalyticsReport) error {
	return postJSON(ctx, c.client, c.url, nil, report)
}

type fakeRequest struct {
	Fake    bool   `json:"fake"`
	Padding []byte `json:"padding"`
}

// FakeClient posts decoy requests that the server discards.
type FakeClient struct {
	client *http.Client
	url    string
}

func NewFakeClient(conf *structures.Config, client *http.Client) *FakeClient {
	return &FakeClient{client: client, url: conf.FakeRequest.Url}
}

func (c *FakeClient) SendFake(ctx context.Context, requestId string, padding []byte) error {
	headers := map[string]string{
		"X-Request-Id": requestId,
		"X-Fake":       "1",
	}
	return postJSON(ctx, c.client, c.url, headers, fakeRequest{Fake: true, Padding: padding})
}
