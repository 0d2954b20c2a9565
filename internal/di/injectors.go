//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"venued/internal"
	"venued/internal/clients"
	"venued/internal/controllers"
	"venued/internal/providers"
	"venued/internal/scheduler"
	"venued/internal/services"
	"venued/internal/storage"
	"venued/internal/structures"
)

var clientSet = wire.NewSet(
	providers.NewHTTPClientProvider,
	clients.NewFeedClient,
	clients.NewDigestMatcher,
	clients.NewPayloadResolver,
	clients.NewWebhookNotifier,
	clients.NewRemoteConfigClient,
	clients.NewAnalyticsClient,
	clients.NewFakeClient,
	wire.Bind(new(services.ProblematicEventFeed), new(*clients.FeedClient)),
	wire.Bind(new(services.Matcher), new(*clients.DigestMatcher)),
	wire.Bind(new(services.VenueInfoResolver), new(*clients.PayloadResolver)),
	wire.Bind(new(services.Notifier), new(*clients.WebhookNotifier)),
	wire.Bind(new(services.RemoteConfigFetcher), new(*clients.RemoteConfigClient)),
	wire.Bind(new(services.AnalyticsUploader), new(*clients.AnalyticsClient)),
	wire.Bind(new(services.FakeRequester), new(*clients.FakeClient)),
)

var serviceSet = wire.NewSet(
	services.NewVenueLock,
	services.NewAppState,
	services.NewRemoteConfigService,
	services.NewContactStatusService,
	services.NewAnalyticsService,
	services.NewFakeRequestService,
	services.NewCheckInService,
	services.NewCheckInLifecycleMonitor,
	services.NewVenueExposureAggregator,
	services.NewProblematicEventSync,
	wire.Bind(new(services.SettingsProvider), new(*services.RemoteConfigService)),
	wire.Bind(new(services.AppStateInterface), new(*services.AppState)),
	wire.Bind(new(services.EventTracker), new(*services.AnalyticsService)),
	wire.Bind(new(services.InfectionChecker), new(*services.ContactStatusService)),
)

var schedulerSet = wire.NewSet(
	scheduler.NewOrchestrator,
	scheduler.NewScheduler,
	wire.Bind(new(scheduler.ConfigRefresher), new(*services.RemoteConfigService)),
	wire.Bind(new(scheduler.BackToHealthyChecker), new(*services.ContactStatusService)),
	wire.Bind(new(scheduler.AnalyticsUploader), new(*services.AnalyticsService)),
	wire.Bind(new(scheduler.FakeRequestRunner), new(*services.FakeRequestService)),
	wire.Bind(new(scheduler.CheckInTicker), new(*services.CheckInLifecycleMonitor)),
	wire.Bind(new(scheduler.EventSyncer), new(*services.ProblematicEventSync)),
	wire.Bind(new(scheduler.Runner), new(*scheduler.Orchestrator)),
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewZstdCompressor,
		storage.NewKeyValueStore,
		storage.NewVenueRecordStore,

		clientSet,
		serviceSet,
		schedulerSet,

		controllers.NewExposureCacheInvalidator,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
