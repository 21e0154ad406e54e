package deps

import (
	"context"
	"fmt"
	"sync"
	"time"
	"ums/internal/config"
	dl "ums/internal/core/domain/logging"
	drl "ums/internal/core/domain/rate_limiter"
	duow "ums/internal/core/domain/unit_of_work"
	"ums/internal/core/domain/user"
	"ums/internal/core/services/captcha"
	uow "ums/internal/db/unit_of_work"
	dbuser "ums/internal/db/user"
	"ums/internal/implementations/email"
	"ums/internal/implementations/events"
	imagestorage "ums/internal/implementations/image_storage"
	"ums/internal/implementations/logging"
	passwordhasher "ums/internal/implementations/password_hasher"
	passwordresettoken "ums/internal/implementations/password_reset_token"
	ratelimiter "ums/internal/implementations/rate_limiter"
	"ums/internal/implementations/recaptcha"
	"ums/internal/implementations/session"
	"ums/internal/rabbitmq"
	accountevents "ums/internal/rabbitmq/publishers/account_events"
	"ums/internal/rabbitmq/schema"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server

	Now func() time.Time

	UnitOfWork        duow.UnitOfWork
	UserRepository    user.UserRepository
	SessionRepository user.SessionRepository

	RateLimiter drl.RateLimiter

	Notifier    email.Notifier
	EmailSender *email.Sender

	// DiskImageDir is set when images are stored on local disk and served by the HTTP server.
	DiskImageDir string
	ImageStorage user.ImageStorage

	EventPublisher user.EventPublisher

	SessionTokenGenerator       user.SessionTokenGenerator
	PasswordHasher              user.PasswordHasher
	PasswordResetTokenGenerator user.PasswordResetTokenGenerator
	VerificationLinkSender      user.VerificationLinkSender
	PasswordResetLinkSender     user.PasswordResetLinkSender
	CaptchaValidator            captcha.CaptchaValidator
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.SessionRepository = dbuser.NewPgxSessionRepository(deps.DB)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)

	deps.Notifier = deps.initNotifier()
	deps.EmailSender = email.NewSender(
		deps.Notifier,
		deps.Config.VerificationURL,
		deps.Config.PasswordResetURL,
		deps.Config.NotifierTimeout,
	)
	deps.VerificationLinkSender = deps.EmailSender
	deps.PasswordResetLinkSender = deps.EmailSender

	deps.ImageStorage = deps.initImageStorage()

	deps.SessionTokenGenerator = session.NewUUID()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordResetTokenGenerator = passwordresettoken.NewGenerator()
	deps.CaptchaValidator = deps.initCaptchaValidator()

	closeEventPublisher := deps.initEventPublisher()

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			closeEventPublisher,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	opts := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	}
	if deps.Config.AwsAccessKey != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		))
	}
	cfg, err := awsConfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.SentryDsn != "")
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

// DeclareAccountEvents declares the account events exchange and the audit queue bound to it.
func (deps *Deps) DeclareAccountEvents() *rabbitmq.Channel {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	exchange := deps.Config.RabbitmqAccountEventsExchange
	if err := rabbitmqChannel.ExchangeDeclare(exchange, schema.ACCOUNT_EVENTS_EXCHANGE_KIND); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}
	if err := rabbitmqChannel.QueueDeclareAndBind(
		deps.Config.RabbitmqAccountEventsQueue,
		exchange,
		schema.ACCOUNT_EVENTS_BINDING_KEY,
	); err != nil {
		deps.Logger.Error(context.Background(), "Could not bind queue to RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}
	return rabbitmqChannel
}

func (deps *Deps) initEventPublisher() func() {
	rabbitmqChannel := deps.DeclareAccountEvents()
	deps.EventPublisher = events.NewMulti(
		accountevents.NewRabbitMQ(deps.Logger, rabbitmqChannel, deps.Config.RabbitmqAccountEventsExchange),
		events.NewSSE(deps.SseServer),
	)
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down account events publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Account events publisher shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

func (deps *Deps) initNotifier() email.Notifier {
	switch deps.Config.Notifier {
	case config.NOTIFIER_SES:
		return email.NewSESNotifier(deps.AwsConfig, deps.Config.EmailSender)
	case config.NOTIFIER_FAKE:
		return email.NewFakeNotifier(deps.Logger)
	default:
		notifier, err := email.NewSMTPNotifier(email.SMTPConfig{
			Host:     deps.Config.SMTPHost,
			Port:     deps.Config.SMTPPort,
			TLS:      deps.Config.SMTPTLS,
			Username: deps.Config.SMTPUsername,
			Password: deps.Config.SMTPPassword,
			From:     deps.Config.EmailSender,
			Timeout:  deps.Config.NotifierTimeout,
		})
		if err != nil {
			deps.Logger.Error(context.Background(), "Could not create SMTP notifier.", dl.Entry("err", err))
			panic(err)
		}
		return notifier
	}
}

func (deps *Deps) initImageStorage() user.ImageStorage {
	if deps.Config.ImageStorage == config.IMAGE_STORAGE_S3 {
		return imagestorage.NewS3(deps.AwsConfig, deps.Config.S3Bucket, deps.Config.S3Endpoint)
	}
	disk, err := imagestorage.NewDisk(deps.Config.ImageDir)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create image directory.", dl.Entry("err", err))
		panic(err)
	}
	deps.DiskImageDir = disk.Dir()
	return disk
}

func (deps *Deps) initCaptchaValidator() captcha.CaptchaValidator {
	if deps.Config.IsTestMode {
		return captcha.NewAllowAlwaysCaptchaValidator()
	}
	return recaptcha.New(
		deps.Logger,
		deps.Config.GoogleRecaptchaSecretKey,
		deps.Config.GoogleRecaptchaScoreThreshold,
		deps.Config.GoogleRecaptchaRequestTimeout,
	)
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn,
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
