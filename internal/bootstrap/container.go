package bootstrap

import (
	"context"
	"log"

	"focus-shield-be/internal/config"
	"focus-shield-be/internal/controller"
	"focus-shield-be/internal/handler"
	"focus-shield-be/internal/pkg/logger"
	"focus-shield-be/internal/repository/contract"
	"focus-shield-be/internal/repository/implementation"
	"focus-shield-be/internal/repository/memory"
	"focus-shield-be/internal/service"
	"focus-shield-be/internal/websocket"

	pktNats "focus-shield-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController    controller.ISessionController
	NavigationController controller.INavigationController
	ClassifyController   controller.IClassifyController
	QuestionController   controller.IQuestionController
	StateController      controller.IStateController

	// Background Services (Exposed for main.go to run)
	SessionService  service.ISessionService
	NotifierService service.INotifierService
	ActivityService service.IActivityService

	// WebSockets & push channel
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub
}

// NewContainer wires the whole enforcement core. db may be nil: everything
// then runs on the in-memory repositories, which matches a single-profile
// install with no Postgres around.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS (optional mirror of the in-process bus)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}

	// Redis (optional cross-instance websocket fan-out)
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Repositories
	var (
		sessionRepo  contract.SessionRepository
		decisionRepo contract.DecisionRepository
		activityRepo contract.ActivityRepository
	)
	if db != nil {
		sessionRepo = implementation.NewSessionRepository(db)
		decisionRepo = implementation.NewDecisionRepository(db)
		activityRepo = implementation.NewActivityRepository(db)
	} else {
		log.Printf("[INFO] No database configured, using in-memory repositories")
		sessionRepo = memory.NewSessionRepository()
		decisionRepo = memory.NewDecisionRepository()
		activityRepo = memory.NewActivityRepository()
	}
	inflightRepo := memory.NewInflightRepository()
	tabRegistry := memory.NewTabRegistry()

	exemptList := service.NewExemptList(cfg.Classifier.BaseURL, cfg.Shield.BlockPageURL, cfg.Shield.ExtraExemptHosts)

	// 4. Services
	eventBus := service.NewEventBusService(pubSub, natsPub, sysLogger)
	sessionService := service.NewSessionService(sessionRepo, decisionRepo, inflightRepo, eventBus, sysLogger)
	interceptorService := service.NewInterceptorService(
		sessionService,
		decisionRepo,
		inflightRepo,
		tabRegistry,
		exemptList,
		cfg.Shield.BlockPageURL,
		cfg.Shield.RedirectCooldown,
		sysLogger,
	)
	gatewayService := service.NewGatewayService(
		sessionService,
		decisionRepo,
		inflightRepo,
		eventBus,
		cfg.Classifier.BaseURL,
		cfg.Classifier.Timeout,
		cfg.Shield.ResultCacheTTL,
		sysLogger,
	)
	questionService := service.NewQuestionService(cfg.Classifier.BaseURL, cfg.Classifier.Timeout, sysLogger)
	stateService := service.NewStateService(sessionService, decisionRepo, sysLogger)

	notifierService := service.NewNotifierService(pubSub, wsHub, tabRegistry, exemptList, cfg.Shield.BlockPageURL, wsLogger)
	activityService := service.NewActivityService(activityRepo, natsSub, pubSub, sysLogger)

	// Handler
	streamHandler := handler.NewStreamHandler(activityService, wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		SessionController:    controller.NewSessionController(sessionService),
		NavigationController: controller.NewNavigationController(interceptorService),
		ClassifyController:   controller.NewClassifyController(gatewayService),
		QuestionController:   controller.NewQuestionController(questionService),
		StateController:      controller.NewStateController(stateService),

		SessionService:  sessionService,
		NotifierService: notifierService,
		ActivityService: activityService,

		StreamHandler: streamHandler,
		WebSocketHub:  wsHub,
	}
}
