package deps

import (
	"accounts/internal/config"
	"accounts/internal/core/domain/account"
	dl "accounts/internal/core/domain/logging"
	duow "accounts/internal/core/domain/unit_of_work"
	dbaccount "accounts/internal/db/account"
	"accounts/internal/db/migrations"
	uow "accounts/internal/db/unit_of_work"
	credentialgenerator "accounts/internal/implementations/credential_generator"
	"accounts/internal/implementations/email"
	"accounts/internal/implementations/logging"
	passwordhasher "accounts/internal/implementations/password_hasher"
	"accounts/internal/implementations/session"
	tokenledger "accounts/internal/implementations/token_ledger"
	"accounts/internal/rabbitmq"
	confirmationtoken "accounts/internal/rabbitmq/publishers/confirmation_token"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork        duow.UnitOfWork
	AccountRepository account.AccountRepository
	SessionRepository account.SessionRepository

	PasswordHasher             account.PasswordHasher
	PasswordGenerator          account.PasswordGenerator
	ConfirmationTokenGenerator account.ConfirmationTokenGenerator
	SessionTokenGenerator      account.SessionTokenGenerator

	// EmailSender is nil unless AWS_EMAIL_SENDER is set.
	EmailSender             *email.EmailSender
	ConfirmationTokenSender account.ConfirmationTokenSender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	deps.applyMigrations()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = deps.initUnitOfWork()
	deps.AccountRepository = dbaccount.NewPgxAccountRepository(deps.DB)
	deps.SessionRepository = dbaccount.NewPgxSessionRepository(deps.DB)

	generator := credentialgenerator.NewGenerator()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordGenerator = generator
	deps.ConfirmationTokenGenerator = generator
	deps.SessionTokenGenerator = session.NewUUID()

	if deps.Config.AwsEmailSender != "" {
		deps.EmailSender = email.NewEmailSender(deps.AwsConfig, deps.Config.AwsEmailSender)
	}
	closeConfirmationTokenPublisher := deps.initConfirmationTokenSender()

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closeConfirmationTokenPublisher,
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
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.IsTestMode)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) applyMigrations() {
	if !deps.Config.MigrateOnStart {
		deps.Logger.Info(context.Background(), "Migrations on start are disabled.")
		return
	}
	if err := migrations.Apply(deps.Config.PostgresqlURL); err != nil {
		deps.Logger.Error(context.Background(), "Could not apply migrations.", dl.Entry("err", err))
		panic(err)
	}
	deps.Logger.Info(context.Background(), "Migrations have been applied.")
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
	if deps.Config.RedisURL == "" {
		return func() {}
	}
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
	if deps.Config.RabbitmqURL == "" {
		return func() {}
	}
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

func (deps *Deps) initUnitOfWork() duow.UnitOfWork {
	if deps.Config.TokenLedger == config.TOKEN_LEDGER_REDIS {
		deps.Logger.Info(context.Background(), "Confirmation tokens are kept in Redis.")
		return uow.NewPgxUnitOfWorkWithLedger(deps.DB, tokenledger.NewRedis(deps.Redis))
	}
	return uow.NewPgxUnitOfWork(deps.DB)
}

func (deps *Deps) initConfirmationTokenSender() func() {
	if deps.Config.NotificationTransport != config.NOTIFICATION_TRANSPORT_RABBITMQ {
		deps.ConfirmationTokenSender = deps.EmailSender
		return func() {}
	}

	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	queue := deps.Config.RabbitmqNotificationQueue
	if err := rabbitmqChannel.DeclareQueue(queue); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not create RabbitMQ queue.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.ConfirmationTokenSender = confirmationtoken.NewRabbitMQ(deps.Logger, rabbitmqChannel, queue)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down confirmation token publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Confirmation token publisher shut down.")
	}
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
